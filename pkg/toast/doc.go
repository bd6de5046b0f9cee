// Package toast provides feedback notifications for the upload widget.
//
// Toasts travel two ways. A Notifier receives them directly from the widget
// (recorded in tests, logged, printed to a terminal). An Emitter carries them
// to a connected page as a custom event, the way the preview server pushes
// them over its websocket.
//
// # Client-Side Handler
//
// The page listens for the event and shows the message with any toast UI:
//
//	window.addEventListener("uploadkit:toast", (e) => {
//	    const { level, message, title } = e.detail;
//	    alert(message);
//	});
//
// # Server-Side Usage
//
//	toast.Success(hub, "Files uploaded successfully")
//
// With title:
//
//	toast.WithTitle(hub, toast.TypeSuccess, "Upload", "Files uploaded successfully")
package toast
