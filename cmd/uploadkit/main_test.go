package main

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/uploadkit/internal/config"
	"github.com/vango-dev/uploadkit/internal/errors"
	"github.com/vango-dev/uploadkit/pkg/server"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

// endpoint records the multipart requests it receives.
type endpoint struct {
	status int

	mu     sync.Mutex
	files  map[string][]string
	fields map[string]string
}

func newEndpoint(t *testing.T, status int) (*endpoint, *httptest.Server) {
	t.Helper()
	e := &endpoint{status: status, files: map[string][]string{}, fields: map[string]string{}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e.mu.Lock()
		for field, fhs := range r.MultipartForm.File {
			for _, fh := range fhs {
				e.files[field] = append(e.files[field], fh.Filename)
			}
		}
		for k, v := range r.MultipartForm.Value {
			e.fields[k] = strings.Join(v, ",")
		}
		e.mu.Unlock()
		w.WriteHeader(e.status)
	}))
	t.Cleanup(ts.Close)
	return e, ts
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseExtras(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{"empty", nil, map[string]any{}, false},
		{"pairs", []string{"album=summer", "year=2024"}, map[string]any{"album": "summer", "year": "2024"}, false},
		{"value with equals", []string{"q=a=b"}, map[string]any{"q": "a=b"}, false},
		{"empty value", []string{"note="}, map[string]any{"note": ""}, false},
		{"missing equals", []string{"album"}, nil, true},
		{"missing key", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExtras(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExtras() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !stderrors.Is(err, errors.New("E160")) {
					t.Errorf("error = %v, want E160", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseExtras() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUploadCommand(t *testing.T) {
	e, ts := newEndpoint(t, http.StatusOK)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "b.txt", "beta")

	stdout, _, err := execute(t, "upload", "--url", ts.URL, "-m", "-e", "album=summer", a, b)
	if err != nil {
		t.Fatalf("upload error = %v", err)
	}

	if diff := cmp.Diff(map[string][]string{"files[]": {"a.txt", "b.txt"}}, e.files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if e.fields["album"] != "summer" {
		t.Errorf("album = %q, want summer", e.fields["album"])
	}
	if !strings.Contains(stdout, "Uploaded 2 file(s)") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestUploadSingleSelection(t *testing.T) {
	e, ts := newEndpoint(t, http.StatusOK)
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.png", "\x89PNG")

	_, _, err := execute(t, "upload", "--url", ts.URL, "--accept", "image/*", "--field", "docs", "--dir", dir)
	if err != nil {
		t.Fatalf("upload error = %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"docs[]": {"b.png"}}, e.files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadFailures(t *testing.T) {
	_, rejecting := newEndpoint(t, http.StatusInternalServerError)
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "alpha")

	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantErr  error
	}{
		{"no url", []string{"upload", file}, "E161", widget.ErrNoEndpointConfigured},
		{"server error", []string{"upload", "--url", rejecting.URL, file}, "E161", widget.ErrUploadFailed},
		{"no match", []string{"upload", "--url", rejecting.URL, "--accept", "image/*", file}, "E161", widget.ErrNoFilesSelected},
		{"too large", []string{"upload", "--url", rejecting.URL, "--max-size", "2", file}, "E041", nil},
		{"missing file", []string{"upload", "--url", rejecting.URL, filepath.Join(dir, "nope.txt")}, "E040", nil},
		{"bad extra", []string{"upload", "--extra", "oops", file}, "E160", nil},
		{"bad url", []string{"upload", "--url", "not a url", file}, "E122", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if !stderrors.Is(err, errors.New(tt.wantCode)) {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestUploadWithConfigFile(t *testing.T) {
	e, ts := newEndpoint(t, http.StatusOK)
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "alpha")
	cfg := writeFile(t, dir, "uploadkit.toml", `
[widget]
endpoint_url = "`+ts.URL+`"

[widget.extra_fields]
album = "winter"
owner = "sam"
`)

	_, _, err := execute(t, "--config", cfg, "upload", "-e", "album=summer", file)
	if err != nil {
		t.Fatalf("upload error = %v", err)
	}
	want := map[string]string{"album": "summer", "owner": "sam"}
	if diff := cmp.Diff(want, e.fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "uploadkit.json", `{"log": {"level": "loud"}}`)

	if _, _, err := execute(t, "--config", bad, "upload"); !stderrors.Is(err, errors.New("E122")) {
		t.Errorf("invalid level error = %v, want E122", err)
	}
	if _, _, err := execute(t, "--config", filepath.Join(dir, "x.ini"), "upload"); !stderrors.Is(err, errors.New("E121")) {
		t.Errorf("unsupported format error = %v, want E121", err)
	}
	if _, _, err := execute(t, "--log-format", "xml", "upload"); !stderrors.Is(err, errors.New("E122")) {
		t.Errorf("invalid format error = %v, want E122", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cat.png", "meow")
	writeFile(t, dir, "notes.txt", "hello")
	out := filepath.Join(dir, "out", "page.html")
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "preview", "-m", "--out", out, dir)
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`alt="cat.png"`,
		"data:image/png;base64,bWVvdw==",
		`height="60"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "notes.txt") {
		t.Error("non-image file should not be previewed")
	}
}

func TestPreviewStdout(t *testing.T) {
	stdout, stderr, err := execute(t, "preview", "--dir", t.TempDir())
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	if !strings.Contains(stdout, "<body") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "No files selected") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestNewServer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cat.png", "meow")

	a := &app{cfg: config.New(), logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	a.cfg.Serve.Title = "Serve test"
	srv := newServer(a, []string{dir})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	defer srv.Hub().Close()

	get := func(path string) string {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	page := get("/")
	for _, want := range []string{"<title>Serve test</title>", server.OpenButtonID, `<section aria-live="polite" class="uploadkit-previews" id="previews">`} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if m := get(server.MetricsPath); !strings.Contains(m, "go_goroutines") {
		t.Error("metrics missing Go collector output")
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != version {
		t.Errorf("version = %q, want %q", stdout, version)
	}
}
