package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/qszone/internal/config"
	"github.com/vango-dev/qszone/internal/errors"
	"github.com/vango-dev/qszone/pkg/server"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const yamlConfig = `
zones:
  - name: results
    nullKeys: [page]
  - name: reset
    defaultKeys: [page]
    defaultValue: "1"
`

func TestHrefCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "qszone.yaml", yamlConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"PlainMerge", []string{"href", "--url", "/list?page=2", "-q", "sort=asc"}, "#/list?page=2&sort=asc"},
		{"NullKeys", []string{"href", "--url", "/list?page=2", "-q", "sort=asc", "--null-keys", "page"}, "#/list?sort=asc"},
		{"DefaultKeys", []string{"href", "--path", "/list", "--search", "page=4&sort=asc", "--default-keys", "page", "--default-value", "1"}, "#/list?page=1&sort=asc"},
		{"Parts", []string{"href", "--hash", "top", "-q", "debug"}, "#/?debug=true#top"},
		{"Lossless", []string{"href", "--url", "/a", "-q", "t=x=y", "--lossless"}, "#/a?t=x=y"},
		{"NaiveSplit", []string{"href", "--url", "/a", "-q", "t=x=y"}, "#/a?t=x"},
		{"ConfiguredZone", []string{"href", "--config", cfgPath, "--zone", "results", "--url", "/list?page=2", "-q", "sort=asc"}, "#/list?sort=asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("href = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHrefCommandJSON(t *testing.T) {
	out, err := run(t, "href", "--url", "/list?page=2", "-q", "sort=asc", "--null-keys", "page", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var resp server.HrefResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %q", out)
	}
	if resp.Href != "#/list?sort=asc" || !resp.Overridden {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHrefCommandJSONKeepsAmpersands(t *testing.T) {
	out, err := run(t, "href", "--url", "/a?x=1", "-q", "y=2", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"href":"#/a?x=1&y=2"`) {
		t.Errorf("output = %q", out)
	}
}

func TestHrefCommandZoneFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.ConfigFileName, `{"zones":[{"name":"results","nullKeys":["page"]}]}`)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := run(t, "href", "-z", "results", "--url", "/list?page=2&view=grid")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "#/list?view=grid" {
		t.Errorf("href = %q", got)
	}
}

func TestHrefCommandErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "qszone.yaml", yamlConfig)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"ZoneWithKeys", []string{"href", "--config", cfgPath, "--zone", "results", "--null-keys", "page"}, "E060"},
		{"UnknownZone", []string{"href", "--config", cfgPath, "--zone", "nope"}, "E020"},
		{"MissingConfig", []string{"href", "--config", filepath.Join(dir, "missing.json"), "--zone", "results"}, "E001"},
		{"BadS3URI", []string{"href", "--config", "s3://bucket-only", "--zone", "results"}, "E006"},
		{"BadLogLevel", []string{"--log-level", "loud", "href"}, "E061"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Code(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}

	t.Run("URLWithPath", func(t *testing.T) {
		if _, err := run(t, "href", "--url", "/a", "--path", "/b"); err == nil {
			t.Error("--url and --path should be mutually exclusive")
		}
	})
}

func TestZonesCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "qszone.yaml", yamlConfig)

	out, err := run(t, "zones", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "reset") || !strings.Contains(lines[1], "page") || !strings.HasSuffix(lines[1], "1") {
		t.Errorf("reset row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "results") || !strings.HasSuffix(lines[2], "-") {
		t.Errorf("results row = %q", lines[2])
	}
}

func TestZonesCommandEmpty(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "qszone.json", `{}`)

	out, err := run(t, "zones", "-c", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "no zones configured" {
		t.Errorf("output = %q", out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deploy")

	if _, err := run(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if names := cfg.Registry().Names(); len(names) != 1 || names[0] != "results" {
		t.Errorf("zones = %v", names)
	}

	_, err = run(t, "init", dir)
	if errors.Code(err) != "E062" {
		t.Errorf("second init error = %v, want E062", err)
	}

	if _, err := run(t, "init", dir, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}

	out, _ = run(t, "version")
	if !strings.Contains(out, "Go version:") {
		t.Errorf("long version output:\n%s", out)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "debug", "json")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("json log = %q", buf.String())
	}

	if _, err := newLogger(&buf, "info", "xml"); errors.Code(err) != "E061" {
		t.Errorf("bad format error = %v", err)
	}
}
