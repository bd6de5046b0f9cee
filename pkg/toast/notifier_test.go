package toast_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/uploadkit/pkg/toast"
)

func TestRecorder(t *testing.T) {
	r := &toast.Recorder{}
	if _, ok := r.Last(); ok {
		t.Error("Last() ok on empty recorder")
	}

	r.Notify(toast.Toast{Level: toast.TypeError, Message: "a"})
	r.Notify(toast.Toast{Level: toast.TypeSuccess, Message: "b"})

	want := []toast.Toast{
		{Level: toast.TypeError, Message: "a"},
		{Level: toast.TypeSuccess, Message: "b"},
	}
	if diff := cmp.Diff(want, r.Toasts()); diff != "" {
		t.Errorf("Toasts() mismatch (-want +got):\n%s", diff)
	}
	if last, _ := r.Last(); last.Message != "b" {
		t.Errorf("Last() = %+v", last)
	}

	r.Reset()
	if len(r.Toasts()) != 0 {
		t.Error("Reset() kept toasts")
	}
}

func TestEmitNotifier(t *testing.T) {
	e := &mockEmitter{}
	n := toast.EmitNotifier{Emitter: e}

	n.Notify(toast.Toast{Level: toast.TypeInfo, Message: "plain"})
	n.Notify(toast.Toast{Level: toast.TypeError, Title: "Upload", Message: "titled"})

	if len(e.emittedEvents) != 2 {
		t.Fatalf("expected 2 events, got %d", len(e.emittedEvents))
	}
	first := e.emittedEvents[0].data.(map[string]any)
	if _, ok := first["title"]; ok {
		t.Error("untitled toast carried a title")
	}
	second := e.emittedEvents[1].data.(map[string]any)
	if second["title"] != "Upload" || second["level"] != "error" {
		t.Errorf("titled toast = %v", second)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	toast.LogNotifier{Logger: logger}.Notify(toast.Toast{Level: toast.TypeError, Message: "Files could not be uploaded successfully"})

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected ERROR record, got %q", out)
	}
	if !strings.Contains(out, `msg="Files could not be uploaded successfully"`) {
		t.Errorf("expected message, got %q", out)
	}
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	n := toast.NewTerminal(&buf)

	n.Notify(toast.Toast{Level: toast.TypeSuccess, Message: "Files uploaded successfully"})
	n.Notify(toast.Toast{Level: toast.TypeWarning, Title: "Heads up", Message: "careful"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "✓") || !strings.Contains(lines[0], "Files uploaded successfully") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Heads up:") || !strings.Contains(lines[1], "careful") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestMulti(t *testing.T) {
	a, b := &toast.Recorder{}, &toast.Recorder{}
	toast.Multi(a, nil, b).Notify(toast.Toast{Level: toast.TypeInfo, Message: "x"})

	if len(a.Toasts()) != 1 || len(b.Toasts()) != 1 {
		t.Errorf("fan-out = %d, %d", len(a.Toasts()), len(b.Toasts()))
	}
}
