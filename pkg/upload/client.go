package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the instrumentation name used for upload spans.
const defaultTracerName = "github.com/vango-dev/uploadkit/pkg/upload"

// DefaultUserAgent is sent when no other User-Agent is configured.
const DefaultUserAgent = "uploadkit"

// Client posts payloads to an upload endpoint.
type Client struct {
	httpClient *http.Client
	userAgent  string
	tracer     trace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithTracerProvider sets the provider used to create request spans.
// Default: the global OpenTelemetry provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(cl *Client) {
		if tp != nil {
			cl.tracer = tp.Tracer(defaultTracerName)
		}
	}
}

// NewClient creates a Client. The default HTTP client has no timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		tracer:     otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends p to url as a single multipart POST and returns the response
// status code. The response body is discarded. A non-nil error means no
// status was received.
func (c *Client) Post(ctx context.Context, url string, p *Payload) (int, error) {
	ctx, span := c.tracer.Start(ctx, "upload.post",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", url),
			attribute.Int("upload.parts", p.Len()),
		),
	)
	defer span.End()

	body, contentType, err := p.EncodeContext(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode payload")
		return 0, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return 0, fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send request")
		return 0, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
	}
	return resp.StatusCode, nil
}
