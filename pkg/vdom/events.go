package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnLoad handles load events (images, iframes).
func OnLoad(handler any) EventHandler { return event("load", handler) }

// OnError handles error events (images failing to load).
func OnError(handler any) EventHandler { return event("error", handler) }

// Event is passed to handlers registered as func(*Event).
type Event struct {
	// Type is the event name without the "on" prefix.
	Type string

	// Target is the node the event was dispatched on.
	Target *VNode

	// Detail carries event-specific data, e.g. the selected files of a
	// change event on a file input.
	Detail any
}

// Dispatch invokes the handler registered for eventType on node.
// Handlers may be func() or func(*Event). It reports whether a handler ran.
func Dispatch(node *VNode, eventType string, detail any) bool {
	if node == nil || node.Kind != KindElement {
		return false
	}
	switch h := node.Props["on"+eventType].(type) {
	case func():
		h()
	case func(*Event):
		h(&Event{Type: eventType, Target: node, Detail: detail})
	default:
		return false
	}
	return true
}
