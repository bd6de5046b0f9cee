package widget

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/uploadkit/pkg/blob"
	"github.com/vango-dev/uploadkit/pkg/metrics"
	"github.com/vango-dev/uploadkit/pkg/toast"
	"github.com/vango-dev/uploadkit/pkg/upload"
	"github.com/vango-dev/uploadkit/pkg/vdom"
)

// Defaults applied by New.
const (
	DefaultFilesFieldName = "files"
	DefaultAccept         = "*/*"
	PreviewHeight         = 60
)

// Config is the widget configuration. Zero values take the documented
// defaults.
type Config struct {
	// Container hosts the file input: a *vdom.VNode or a selector string.
	// Default: document body.
	Container any

	// PreviewContainer hosts preview images. Same resolution as Container.
	PreviewContainer any

	// AllowMultiple lets the picker return more than one file.
	AllowMultiple bool

	// ExtraFields are sent as text fields with every upload.
	ExtraFields map[string]any

	// FilesFieldName names the file field; files are sent as "<name>[]".
	// Default: "files".
	FilesFieldName string

	// AcceptedTypes restricts the picker: a string or a (nested) slice of
	// MIME type or extension patterns. Default: "*/*".
	AcceptedTypes any

	// ID is assigned to the generated input when set.
	ID string

	// EndpointURL is the upload target. Checked at submit time.
	EndpointURL string
}

// Widget is a file-upload widget bound to a document.
type Widget struct {
	doc     *vdom.Document
	cfg     Config
	accept  string
	picker  upload.Picker
	client  *upload.Client
	notify  toast.Notifier
	urls    *blob.Registry
	logger  *slog.Logger
	metrics *metrics.Recorder

	container *vdom.VNode
	preview   *vdom.VNode
	input     *vdom.VNode

	mu    sync.Mutex
	files []*upload.File

	urlMu sync.Mutex
	live  map[string]struct{}
}

// Option configures a Widget.
type Option func(*Widget)

// WithPicker sets the file picker used by Open.
func WithPicker(p upload.Picker) Option {
	return func(w *Widget) {
		if p != nil {
			w.picker = p
		}
	}
}

// WithClient sets the upload transport.
func WithClient(c *upload.Client) Option {
	return func(w *Widget) {
		if c != nil {
			w.client = c
		}
	}
}

// WithNotifier sets where outcome notifications go.
func WithNotifier(n toast.Notifier) Option {
	return func(w *Widget) {
		if n != nil {
			w.notify = n
		}
	}
}

// WithObjectURLs sets the registry that mints preview URLs.
func WithObjectURLs(r *blob.Registry) Option {
	return func(w *Widget) {
		if r != nil {
			w.urls = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(w *Widget) {
		w.metrics = m
	}
}

// New creates a widget in doc and attaches its hidden file input to the
// container. The endpoint is not validated here.
func New(doc *vdom.Document, cfg Config, opts ...Option) *Widget {
	if cfg.FilesFieldName == "" {
		cfg.FilesFieldName = DefaultFilesFieldName
	}
	if cfg.ExtraFields == nil {
		cfg.ExtraFields = map[string]any{}
	}

	w := &Widget{
		doc:    doc,
		cfg:    cfg,
		accept: acceptValue(cfg.AcceptedTypes),
		picker: upload.PickerFunc(func(context.Context, upload.PickRequest) ([]*upload.File, error) {
			return nil, upload.ErrCanceled
		}),
		client: upload.NewClient(),
		urls:   blob.NewRegistry(""),
		logger: slog.Default(),
		live:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.notify == nil {
		w.notify = toast.LogNotifier{Logger: w.logger}
	}

	w.container = ResolveElement(doc, cfg.Container)
	w.preview = ResolveElement(doc, cfg.PreviewContainer)
	w.attachPicker()
	return w
}

// ResolveElement returns ref when it is an element, the first element
// matching ref when it is a selector, and the document body otherwise.
func ResolveElement(doc *vdom.Document, ref any) *vdom.VNode {
	switch v := ref.(type) {
	case *vdom.VNode:
		if v != nil {
			return v
		}
	case string:
		if el := doc.QuerySelector(v); el != nil {
			return el
		}
	}
	return doc.Body()
}

// Config returns the configuration with defaults applied.
func (w *Widget) Config() Config {
	return w.cfg
}

// Input returns the generated file input.
func (w *Widget) Input() *vdom.VNode {
	return w.input
}

// Container returns the resolved input container.
func (w *Widget) Container() *vdom.VNode {
	return w.container
}

// PreviewContainer returns the resolved preview container.
func (w *Widget) PreviewContainer() *vdom.VNode {
	return w.preview
}

// Files returns the current selection.
func (w *Widget) Files() []*upload.File {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*upload.File(nil), w.files...)
}

// SetFiles replaces the selection without rendering previews.
func (w *Widget) SetFiles(files []*upload.File) {
	w.mu.Lock()
	w.files = append([]*upload.File(nil), files...)
	w.mu.Unlock()
}

// Sync runs fn while no selection change or preview rebuild is in
// progress. fn must not call back into the widget, except through event
// handlers on preview images.
func (w *Widget) Sync(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn()
}

func (w *Widget) notifyUser(level toast.Type, message string) {
	w.notify.Notify(toast.Toast{Level: level, Message: message})
	w.metrics.RecordNotification(string(level))
}
