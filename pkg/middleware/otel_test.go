package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

func TestOpenTelemetryPassesThrough(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithTracerName("test"),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if SpanFromContext(r.Context()) == nil {
			t.Error("expected a span in the request context")
		}
		RecordError(r.Context(), errors.New("boom"))
		RecordError(r.Context(), nil)
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/href", nil))

	if !called || !extracted {
		t.Errorf("called = %v, extracted = %v", called, extracted)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			extracted = true
			return nil
		}),
	)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if extracted {
		t.Error("filtered request should not be traced")
	}
}

func TestSpanName(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"Static", http.MethodGet, "/href", "qszone GET /href"},
		{"Param", http.MethodGet, "/zones/results", "qszone GET /zones/{name}"},
		{"ParamOtherValue", http.MethodGet, "/zones/reset", "qszone GET /zones/{name}"},
		{"Unmatched", http.MethodGet, "/no/such/path/12345", "qszone GET unmatched"},
	}

	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = spanName(req)
		})
	})
	ok := func(w http.ResponseWriter, r *http.Request) {}
	r.Get("/href", ok)
	r.Get("/zones/{name}", ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = ""
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))
			if got != tt.want {
				t.Errorf("spanName = %q, want %q", got, tt.want)
			}
		})
	}
}
