// Package server serves a widget's document to a browser.
//
// The preview server renders the document on GET /, keeps one websocket per
// open page on /_uploadkit/ws and exposes Prometheus metrics on /metrics.
//
// # Wire Messages
//
// Server to page, one JSON object per websocket text message:
//
//	{"event": "uploadkit:toast", "detail": {"level": "success", "message": "..."}}
//	{"event": "uploadkit:refresh"}
//
// Page to server:
//
//	{"action": "open"}    // run the widget's picker, then refresh
//	{"action": "submit"}  // submit the selection
//
// The Hub is a toast.Emitter, so wiring toast.EmitNotifier{Emitter: hub}
// into the widget delivers every notification to every open page.
package server
