package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/uploadkit/pkg/render"
	"github.com/vango-dev/uploadkit/pkg/vdom"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

// Paths served by the preview server.
const (
	WebSocketPath = "/_uploadkit/ws"
	MetricsPath   = "/metrics"
)

// Element ids the page script binds to.
const (
	OpenButtonID   = "uploadkit-open"
	SubmitButtonID = "uploadkit-submit"
)

// Server is the preview HTTP/WebSocket server.
type Server struct {
	doc    *vdom.Document
	widget *widget.Widget
	hub    *Hub
	config *Config

	router     chi.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New creates a server for w, whose document is doc. hub must be the hub
// the widget notifies through; nil creates a fresh one.
func New(doc *vdom.Document, w *widget.Widget, hub *Hub, config *Config) *Server {
	config = config.withDefaults()
	if hub == nil {
		hub = NewHub(config.Logger, nil)
	}

	s := &Server{
		doc:    doc,
		widget: w,
		hub:    hub,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: config.Logger,
		tracer: config.TracerProvider.Tracer(tracerName),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(WebSocketPath, s.handleWebSocket)
	r.Handle(MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Controls returns the open and submit buttons the page script binds to.
func Controls() *vdom.VNode {
	return vdom.Div(
		vdom.Class("uploadkit-controls"),
		vdom.Button(vdom.ID(OpenButtonID), vdom.Type("button"), "Choose files"),
		vdom.Button(vdom.ID(SubmitButtonID), vdom.Type("button"), "Upload"),
	)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	sr := render.NewStreamingRenderer(w, render.RendererConfig{Loader: s.config.Loader})
	var err error
	s.widget.Sync(func() {
		err = sr.RenderPage(render.PageData{
			Title:  s.config.Title,
			Body:   s.doc.Body(),
			Styles: []string{pageStyle},
			Script: pageScript,
		})
	})
	if err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}

	// Uploads started from a page outlive its connection.
	ctx := context.WithoutCancel(r.Context())
	s.hub.serve(conn, func(cmd Command) {
		s.handleCommand(ctx, cmd)
	})
}

func (s *Server) handleCommand(ctx context.Context, cmd Command) {
	switch cmd.Action {
	case "open":
		s.traceCommand(ctx, cmd, func(ctx context.Context) error {
			if err := s.widget.Open(ctx); err != nil {
				s.logger.Error("open picker", "error", err)
				return err
			}
			s.hub.Emit(RefreshEvent, nil)
			return nil
		})
	case "submit":
		s.traceCommand(ctx, cmd, func(ctx context.Context) error {
			_, err := s.widget.Submit(ctx)
			if err != nil {
				s.logger.Debug("submit rejected", "error", err)
			}
			return err
		})
	default:
		s.logger.Warn("unknown command", "action", cmd.Action)
	}
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
