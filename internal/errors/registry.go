package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file could not be opened. Pass --config with a valid path or run without one to use defaults.",
		DocURL:   "https://qszone.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryConfig,
		Message:  "Config parse failed",
		Detail:   "The configuration file is not valid JSON or YAML for the qszone schema.",
		DocURL:   "https://qszone.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Invalid zone definition",
		Detail:   "Every zone needs a non-empty name, and its key lists may not contain empty keys.",
		DocURL:   "https://qszone.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Duplicate zone name",
		Detail:   "Two zones share a name. Zone names must be unique.",
		DocURL:   "https://qszone.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .json, .yaml or .yml.",
		DocURL:   "https://qszone.dev/docs/errors/E005",
	},
	"E006": {
		Category: CategoryConfig,
		Message:  "Remote config fetch failed",
		Detail:   "The configuration object could not be read from S3.",
		DocURL:   "https://qszone.dev/docs/errors/E006",
	},
	"E007": {
		Category: CategoryConfig,
		Message:  "Invalid server settings",
		Detail:   "The server address must be non-empty and buffer sizes must not be negative.",
		DocURL:   "https://qszone.dev/docs/errors/E007",
	},

	// ============================================
	// Validation Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryValidation,
		Message:  "Unknown zone",
		Detail:   "The request names a zone that is not defined in the configuration.",
		DocURL:   "https://qszone.dev/docs/errors/E020",
	},

	// ============================================
	// Protocol Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The websocket message is not a JSON object.",
		DocURL:   "https://qszone.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryProtocol,
		Message:  "Unknown frame type",
		Detail:   "Frame type must be one of navigate, query, keys or zone.",
		DocURL:   "https://qszone.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The HTTP connection could not be upgraded to a WebSocket.",
		DocURL:   "https://qszone.dev/docs/errors/E042",
	},

	// ============================================
	// CLI Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "Conflicting flags",
		Detail:   "--zone cannot be combined with --null-keys or --default-keys.",
		DocURL:   "https://qszone.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryCLI,
		Message:  "Invalid log settings",
		Detail:   "--log-level must be debug, info, warn or error and --log-format must be text or json.",
		DocURL:   "https://qszone.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryCLI,
		Message:  "Config file exists",
		Detail:   "init will not overwrite an existing configuration file.",
		DocURL:   "https://qszone.dev/docs/errors/E062",
	},

	// ============================================
	// Runtime Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryRuntime,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   "https://qszone.dev/docs/errors/E080",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
