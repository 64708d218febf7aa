package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/qszone/internal/errors"
	"github.com/vango-dev/qszone/pkg/link"
	"github.com/vango-dev/qszone/pkg/location"
	"github.com/vango-dev/qszone/pkg/middleware"
	"github.com/vango-dev/qszone/pkg/search"
	"github.com/vango-dev/qszone/pkg/zone"
)

// HrefResponse is the body of GET /href.
type HrefResponse struct {
	Href       string `json:"href"`
	Zone       string `json:"zone,omitempty"`
	Overridden bool   `json:"overridden"`
}

// ZoneResponse describes one zone in GET /zones.
type ZoneResponse struct {
	Name         string   `json:"name"`
	NullKeys     []string `json:"nullKeys,omitempty"`
	DefaultKeys  []string `json:"defaultKeys,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleHref computes one href.
//
// The current location comes from "url", or from "path", "search" and
// "hash" when "url" is absent. "q" is the fragment to merge. "zone" selects
// a configured zone and "nullKeys" (comma separated) adds keys to null on
// top of it. "lossless=true" keeps every "=" after the first in q.
func (s *Server) handleHref(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var snap location.Snapshot
	if raw := q.Get("url"); raw != "" {
		snap = location.ParseURL(raw)
	} else {
		snap = location.Snapshot{
			Path:   q.Get("path"),
			Search: search.Parse(q.Get("search")),
			Hash:   strings.TrimPrefix(q.Get("hash"), "#"),
		}
		if snap.Path == "" {
			snap.Path = "/"
		}
	}

	z, err := s.resolveZone(q.Get("zone"), splitKeys(q.Get("nullKeys")))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	opts := search.ParseOptions{KeepExtraEquals: q.Get("lossless") == "true"}
	href := link.ComputeWith(snap, q.Get("q"), z, opts)
	if s.metrics != nil {
		s.metrics.ObserveHref(z.Name(), z.HasOverride(), time.Since(start))
	}

	middleware.SpanFromContext(r.Context()).SetAttributes(
		attribute.String("qszone.zone", z.Name()),
		attribute.Bool("qszone.overridden", z.HasOverride()),
	)

	writeJSON(w, http.StatusOK, HrefResponse{
		Href:       href,
		Zone:       z.Name(),
		Overridden: z.HasOverride(),
	})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	names := s.zones.Names()
	out := make([]ZoneResponse, 0, len(names))
	for _, name := range names {
		d, _ := s.zones.Lookup(name)
		out = append(out, ZoneResponse{
			Name:         d.Name,
			NullKeys:     d.NullKeys,
			DefaultKeys:  d.DefaultKeys,
			DefaultValue: d.DefaultValue,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// resolveZone builds the zone for a request. An empty name and no extra
// keys yields nil (no zone). Extra null keys without a name produce an
// anonymous zone.
func (s *Server) resolveZone(name string, nullKeys []string) (*zone.Zone, error) {
	var z *zone.Zone
	if name != "" {
		var ok bool
		z, ok = s.zones.New(name)
		if !ok {
			return nil, errors.New("E020").
				WithDetail("No zone named \"" + name + "\" is configured.").
				WithSuggestion("GET /zones lists the configured zones")
		}
	}
	if len(nullKeys) == 0 {
		return z, nil
	}
	if z == nil {
		z = zone.New("")
	}
	z.SetOverride(zone.Chain(z.Override(), zone.NullKeys(nullKeys)))
	return z, nil
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	e := errors.FromError(err, "E080")
	s.logger.Warn("request rejected",
		"path", r.URL.Path,
		"code", e.Code,
		"error", e.Error(),
	)
	middleware.RecordError(r.Context(), e)
	writeJSON(w, status, e)
}
