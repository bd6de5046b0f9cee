package server

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingProvider struct {
	embedded.TracerProvider

	mu    sync.Mutex
	spans []string
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{p: p}
}

func (p *recordingProvider) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.spans...)
}

type recordingTracer struct {
	embedded.Tracer
	p *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.p.mu.Lock()
	t.p.spans = append(t.p.spans, name)
	t.p.mu.Unlock()
	return noop.NewTracerProvider().Tracer("").Start(ctx, name, opts...)
}

func TestCommandSpans(t *testing.T) {
	tp := &recordingProvider{}
	f := newFixture(t, func(c *Config) { c.TracerProvider = tp })
	conn := f.dial(t)

	if err := conn.WriteJSON(Command{Action: "submit"}); err != nil {
		t.Fatal(err)
	}
	readMessage(t, conn)
	if err := conn.WriteJSON(Command{Action: "open"}); err != nil {
		t.Fatal(err)
	}
	readMessage(t, conn)
	if err := conn.WriteJSON(Command{Action: "bogus"}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(tp.names()) >= 2 })
	got := tp.names()
	if len(got) != 2 || got[0] != "uploadkit.submit" || got[1] != "uploadkit.open" {
		t.Errorf("spans = %v", got)
	}
}
