package toast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Toast is a single notification.
type Toast struct {
	Level   Type
	Title   string
	Message string
}

// Notifier receives toasts.
type Notifier interface {
	Notify(t Toast)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(t Toast)

// Notify implements Notifier.
func (f NotifierFunc) Notify(t Toast) {
	f(t)
}

// EmitNotifier forwards toasts to an Emitter as events.
type EmitNotifier struct {
	Emitter Emitter
}

// Notify implements Notifier.
func (n EmitNotifier) Notify(t Toast) {
	if t.Title != "" {
		WithTitle(n.Emitter, t.Level, t.Title, t.Message)
		return
	}
	Show(n.Emitter, t.Level, t.Message)
}

// Recorder keeps every toast it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Notify implements Notifier.
func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Reset drops the recorded toasts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.toasts = nil
	r.mu.Unlock()
}

// LogNotifier writes toasts to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(t Toast) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"level", string(t.Level)}
	if t.Title != "" {
		attrs = append(attrs, "title", t.Title)
	}
	logger.Log(context.Background(), slogLevel(t.Level), t.Message, attrs...)
}

func slogLevel(level Type) slog.Level {
	switch level {
	case TypeError:
		return slog.LevelError
	case TypeWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Terminal prints toasts as styled lines.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Type]lipgloss.Style
	title  lipgloss.Style
}

// NewTerminal creates a Terminal writing to w. Colors are used only when w
// is a terminal that supports them.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w: w,
		styles: map[Type]lipgloss.Style{
			TypeSuccess: r.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true),
			TypeError:   r.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true),
			TypeWarning: r.NewStyle().Foreground(lipgloss.Color("#fab387")).Bold(true),
			TypeInfo:    r.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true),
		},
		title: r.NewStyle().Bold(true),
	}
}

var terminalIcons = map[Type]string{
	TypeSuccess: "✓",
	TypeError:   "✗",
	TypeWarning: "!",
	TypeInfo:    "→",
}

// Notify implements Notifier.
func (n *Terminal) Notify(t Toast) {
	icon, ok := terminalIcons[t.Level]
	if !ok {
		icon = terminalIcons[TypeInfo]
	}
	style, ok := n.styles[t.Level]
	if !ok {
		style = n.styles[TypeInfo]
	}

	line := style.Render(icon)
	if t.Title != "" {
		line += " " + n.title.Render(t.Title+":")
	}
	line += " " + t.Message

	n.mu.Lock()
	fmt.Fprintln(n.w, line)
	n.mu.Unlock()
}

// Multi fans each toast out to every notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(t Toast) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(t)
			}
		}
	})
}
