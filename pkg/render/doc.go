// Package render converts vdom trees into HTML.
//
// Output is deterministic: attributes are written in sorted order, text and
// attribute values are escaped, void elements have no closing tag and
// boolean attributes are written bare. Event handlers are never serialised;
// an element carrying one gets a data-on-<event> marker instead.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Image Sources
//
// When RendererConfig.Loader resolves the src of an img element, the
// content is inlined as a data URI and the element's load event is
// dispatched once its tag has been written. A blob.Registry is a Loader.
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title: "Upload",
//	    Body:  doc.Body(),
//	})
//
// For HTTP responses, StreamingRenderer flushes the head before the body.
package render
