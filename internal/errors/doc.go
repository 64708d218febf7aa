// Package errors provides structured, actionable error messages for qszone.
//
// Every error the CLI, config loader and server can produce has a code
// (e.g. "E002") that maps to a short message, a longer explanation and a
// documentation URL. The merge core itself never fails and has no codes.
//
// # Error Categories
//
//   - config: configuration files that are missing, malformed or invalid
//   - validation: requests that name unknown zones or carry bad input
//   - protocol: websocket frames the server cannot understand
//   - cli: command-line usage problems
//   - runtime: server lifecycle failures
//
// # Usage
//
//	err := errors.New("E002").
//	    WithLocation("qszone.yaml", 7, 0).
//	    WithSuggestion("zone keys must be a list of strings").
//	    Wrap(decodeErr)
//
//	fmt.Println(err.Format())
//	// ERROR E002: Config parse failed
//	//
//	//   qszone.yaml:7
//	//
//	//       6 │ zones:
//	//   →   7 │   - name: list
//	//       8 │     nullKeys: page
//	//
//	//   Hint: zone keys must be a list of strings
package errors
