// Package server exposes href computation over HTTP and WebSocket.
//
// # Endpoints
//
//   - GET /href: one-shot computation from query parameters
//   - GET /zones: the configured zone definitions
//   - GET /healthz: liveness
//   - GET /metrics: Prometheus exposition
//   - GET /ws: a live session
//
// # Sessions
//
// Each WebSocket connection owns a location, a query signal, a zone and a
// link. The client drives them with JSON frames:
//
//	{"type":"navigate","url":"/list?page=2"}
//	{"type":"query","query":"sort=asc"}
//	{"type":"keys","keys":["page"]}
//	{"type":"zone","zone":"results"}
//
// The server answers with {"type":"href","href":"..."} every time the link
// recomputes, and with {"type":"error","code":"E040","message":"..."} when
// a frame is rejected. Frames are handled on the connection's own goroutine
// in arrival order.
//
// A keys frame replaces the session zone's override outright. The
// "nullKeys" parameter of GET /href instead adds to the configured zone:
//
//	GET /href?url=/list?page=2%26view=grid&zone=results&nullKeys=view
//	    -> "#/list"
//	ws  zone=results, then {"type":"keys","keys":["view"]}
//	    -> "#/list?page=2"
package server
