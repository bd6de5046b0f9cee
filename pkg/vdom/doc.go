// Package vdom provides the server-side DOM used by uploadkit widgets.
//
// VNode is the building block representing elements, text, fragments and
// raw HTML. Props holds attributes and event handlers; Attr and
// EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("uploader"), ID("main"),
//	    Input(Type("file"), Accept("image/*"), OnChange(handler)),
//	)
//
// # Documents
//
// Document holds an <html> tree with a <head> and <body>. Elements are
// located with CSS selectors (QuerySelector, QuerySelectorAll) and mutated
// with AppendChild, RemoveChild and RemoveChildNodes. Dispatch delivers an
// event to the handler registered on a node, the way the host UI thread
// would after a native interaction.
package vdom
