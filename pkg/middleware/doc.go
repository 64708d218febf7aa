// Package middleware provides HTTP observability for qszone.
//
// # Prometheus
//
// Metrics collects request and href-computation metrics:
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//
// Its ObserveHref method has the link.Observer signature, so links can feed
// it directly:
//
//	link.New(loc, query, link.WithObserver(m.ObserveHref))
//
// Metrics exposed (namespace "qszone" by default):
//   - qszone_http_requests_total{route,method,status}
//   - qszone_http_request_duration_seconds{route}
//   - qszone_hrefs_computed_total{zone,overridden}
//   - qszone_href_compute_duration_seconds
//   - qszone_active_sessions
//   - qszone_websocket_errors_total{type}
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request using the global tracer
// provider. Handlers add attributes through SpanFromContext.
package middleware
