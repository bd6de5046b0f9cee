package toast

// EventName is the event name dispatched for toasts.
// Client-side code should listen for this event.
const EventName = "uploadkit:toast"

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Emitter dispatches custom events to a client.
type Emitter interface {
	Emit(name string, data any)
}

// Show displays a toast notification to the user.
//
// The client receives a CustomEvent with:
//   - event.type = "uploadkit:toast"
//   - event.detail = { level: "success|error|warning|info", message: "..." }
func Show(e Emitter, level Type, message string) {
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"message": message,
	})
}

// Success shows a success toast.
//
//	toast.Success(hub, "Files uploaded successfully")
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Error shows an error toast.
func Error(e Emitter, message string) {
	Show(e, TypeError, message)
}

// Warning shows a warning toast.
func Warning(e Emitter, message string) {
	Show(e, TypeWarning, message)
}

// Info shows an info toast.
func Info(e Emitter, message string) {
	Show(e, TypeInfo, message)
}

// WithTitle shows a toast with a title and message.
//
//	toast.WithTitle(hub, toast.TypeSuccess, "Upload", "Files uploaded successfully")
func WithTitle(e Emitter, level Type, title, message string) {
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"title":   title,
		"message": message,
	})
}

// Custom shows a toast with custom data.
func Custom(e Emitter, data map[string]any) {
	e.Emit(EventName, data)
}
