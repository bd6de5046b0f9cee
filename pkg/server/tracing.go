package server

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/uploadkit/pkg/server"

// traceCommand runs fn inside a span named after the command. The span
// context is passed on, so upload requests started by fn nest under it.
func (s *Server) traceCommand(ctx context.Context, cmd Command, fn func(context.Context) error) {
	ctx, span := s.tracer.Start(ctx, "uploadkit."+cmd.Action,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("uploadkit.command", cmd.Action),
			attribute.Int("uploadkit.files", len(s.widget.Files())),
		),
	)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
