package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/vango-dev/qszone/internal/config"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Zones = []config.ZoneConfig{
		{Name: "results", NullKeys: []string{"page"}},
		{Name: "reset", DefaultKeys: []string{"page"}, DefaultValue: "1"},
	}
	return cfg
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(testConfig(), WithLogger(quiet))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func getHref(t *testing.T, ts *httptest.Server, params url.Values) (int, HrefResponse, map[string]any) {
	t.Helper()
	resp, err := http.Get(ts.URL + "/href?" + params.Encode())
	if err != nil {
		t.Fatalf("GET /href: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var ok HrefResponse
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("response is not JSON: %s", body)
	}
	json.Unmarshal(body, &ok)
	return resp.StatusCode, ok, raw
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("status = %d, body = %q", resp.StatusCode, body)
	}
}

func TestHref(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name       string
		params     url.Values
		href       string
		zone       string
		overridden bool
	}{
		{
			name:   "NoZone",
			params: url.Values{"url": {"/list?page=2#top"}, "q": {"sort=asc"}},
			href:   "#/list?page=2&sort=asc#top",
		},
		{
			name:       "AdHocNullKeys",
			params:     url.Values{"url": {"/list?page=2"}, "q": {"sort=asc"}, "nullKeys": {"page"}},
			href:       "#/list?sort=asc",
			overridden: true,
		},
		{
			name:       "ConfiguredNullZone",
			params:     url.Values{"path": {"/list"}, "search": {"page=2&view=grid"}, "q": {"sort=asc"}, "zone": {"results"}},
			href:       "#/list?view=grid&sort=asc",
			zone:       "results",
			overridden: true,
		},
		{
			name:       "ConfiguredDefaultZone",
			params:     url.Values{"url": {"/list?page=4&sort=asc"}, "q": {"view=grid"}, "zone": {"reset"}},
			href:       "#/list?page=1&sort=asc&view=grid",
			zone:       "reset",
			overridden: true,
		},
		{
			name:       "ZonePlusExtraKeys",
			params:     url.Values{"url": {"/list?page=4&sort=asc"}, "zone": {"reset"}, "nullKeys": {"sort, "}},
			href:       "#/list?page=1",
			zone:       "reset",
			overridden: true,
		},
		{
			name:   "PartsWithHash",
			params: url.Values{"path": {"/a"}, "hash": {"#sec"}, "q": {"debug"}},
			href:   "#/a?debug=true#sec",
		},
		{
			name:   "Lossless",
			params: url.Values{"url": {"/a"}, "q": {"t=x=y"}, "lossless": {"true"}},
			href:   "#/a?t=x=y",
		},
		{
			name:   "EmptyPathDefaultsToRoot",
			params: url.Values{"q": {"x=1"}},
			href:   "#/?x=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, got, _ := getHref(t, ts, tt.params)
			if status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if got.Href != tt.href {
				t.Errorf("href = %q, want %q", got.Href, tt.href)
			}
			if got.Zone != tt.zone || got.Overridden != tt.overridden {
				t.Errorf("zone = %q overridden = %v, want %q %v", got.Zone, got.Overridden, tt.zone, tt.overridden)
			}
		})
	}
}

func TestHrefUnknownZone(t *testing.T) {
	_, ts := newTestServer(t)

	status, _, raw := getHref(t, ts, url.Values{"url": {"/list"}, "zone": {"nope"}})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if raw["code"] != "E020" {
		t.Errorf("code = %v, want E020", raw["code"])
	}
	if raw["category"] != "validation" {
		t.Errorf("category = %v", raw["category"])
	}
}

func TestZones(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/zones")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var zones []ZoneResponse
	if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
		t.Fatal(err)
	}
	if len(zones) != 2 || zones[0].Name != "reset" || zones[1].Name != "results" {
		t.Fatalf("zones = %+v", zones)
	}
	if zones[0].DefaultValue != "1" || len(zones[1].NullKeys) != 1 {
		t.Errorf("zones = %+v", zones)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	getHref(t, ts, url.Values{"url": {"/a"}, "zone": {"results"}})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`qszone_hrefs_computed_total{overridden="true",zone="results"} 1`,
		`qszone_http_requests_total{method="GET",route="/href",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	srv := New(cfg, WithLogger(quiet))
	if srv.Metrics() != nil {
		t.Fatal("metrics should be nil when disabled")
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/href?url=/a&nullKeys=x", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /href = %d, want 200", rec.Code)
	}
}

func TestCheckOrigin(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		r.Header.Set("Origin", origin)
		return r
	}

	if checkOrigin(nil) != nil {
		t.Error("empty list should defer to the same-origin check")
	}
	if !checkOrigin([]string{"*"})(req("https://any.example")) {
		t.Error("* should allow any origin")
	}
	only := checkOrigin([]string{"https://app.example"})
	if !only(req("https://app.example")) || only(req("https://evil.example")) {
		t.Error("explicit list not enforced")
	}
}

func TestSplitKeys(t *testing.T) {
	got := splitKeys(" a, ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitKeys = %q", got)
	}
	if splitKeys("") != nil {
		t.Error("empty input should give nil")
	}
}
