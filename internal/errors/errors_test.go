package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config error", "E002", "Config parse failed", CategoryConfig},
		{"validation error", "E020", "Unknown zone", CategoryValidation},
		{"protocol error", "E041", "Unknown frame type", CategoryProtocol},
		{"cli error", "E060", "Conflicting flags", CategoryCLI},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E001").Wrap(os.ErrNotExist)
	if got := err.Error(); got != "E001: Config file not found: file does not exist" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestIsByCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New("E004"))
	if !stderrors.Is(wrapped, New("E004")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(wrapped, New("E003")) {
		t.Error("different code must not match")
	}
	if Code(wrapped) != "E004" {
		t.Errorf("Code() = %q", Code(wrapped))
	}
	if Code(fmt.Errorf("plain")) != "" {
		t.Error("Code() of a plain error should be empty")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E003")
	if FromError(fmt.Errorf("ctx: %w", orig), "E001") != orig {
		t.Error("FromError should unwrap to the existing *Error")
	}

	plain := fmt.Errorf("boom")
	e := FromError(plain, "E080")
	if e.Code != "E080" || e.Wrapped != plain {
		t.Errorf("FromError = %+v", e)
	}
}

func TestWithLocationFromError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qszone.yaml")
	content := "server:\n  addr: :8080\nzones:\n  - name: list\n    nullKeys: page\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E002").WithLocationFromError(path, fmt.Errorf("yaml: unmarshal errors:\n  line 5: cannot unmarshal !!str"))
	if err.Location == nil || err.Location.Line != 5 {
		t.Fatalf("Location = %+v, want line 5", err.Location)
	}
	if len(err.Context) == 0 || !strings.Contains(strings.Join(err.Context, "\n"), "nullKeys: page") {
		t.Errorf("Context = %q", err.Context)
	}

	noLine := New("E002").WithLocationFromError(path, fmt.Errorf("unexpected EOF"))
	if noLine.Location.String() != path {
		t.Errorf("Location = %q, want bare file", noLine.Location.String())
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E020").WithSuggestion("define the zone in qszone.yaml").Wrap(fmt.Errorf("zone %q", "nope"))
	out := err.Format()
	for _, want := range []string{"ERROR E020: Unknown zone", "Hint: define the zone", "Cause: zone \"nope\"", "https://qszone.dev/docs/errors/E020"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E020: Unknown zone" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E041").Wrap(fmt.Errorf(`type "bogus"`))
	var decoded map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("invalid JSON: %v", jerr)
	}
	if decoded["code"] != "E041" || decoded["category"] != "protocol" || decoded["cause"] != `type "bogus"` {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("E005"))
	if !strings.Contains(buf.String(), "ERROR E005") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRegistry(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != "E001" {
		t.Fatalf("GetAllCodes() = %v", codes)
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("%s: incomplete template %+v", code, tmpl)
		}
		if !strings.HasSuffix(tmpl.DocURL, code) {
			t.Errorf("%s: DocURL %q does not end in code", code, tmpl.DocURL)
		}
	}

	Register("E998", ErrorTemplate{Category: CategoryRuntime, Message: "Test only"})
	if New("E998").Message != "Test only" {
		t.Error("Register did not take effect")
	}
	delete(registry, "E998")
}
