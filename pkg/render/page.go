package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/uploadkit/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the page content. A body element is rendered as the
	// document body; anything else is wrapped in one.
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Styles contains inline CSS styles
	Styles []string

	// Script is inline JavaScript appended at the end of the body.
	Script string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	return r.renderPage(w, page, nil)
}

// renderPage writes the document, calling flush once the head is out.
func (r *Renderer) renderPage(w io.Writer, page PageData, flush func()) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if flush != nil {
		flush()
	}

	body := page.Body
	if body == nil || body.Kind != vdom.KindElement || body.Tag != "body" {
		body = vdom.Body(page.Body)
	}
	if err := r.openTag(w, body, nil); err != nil {
		return err
	}
	io.WriteString(w, "\n")

	for _, child := range body.Children {
		if err := r.renderNode(w, child, 1); err != nil {
			return err
		}
	}
	if !r.config.Pretty && len(body.Children) > 0 {
		io.WriteString(w, "\n")
	}

	if page.Script != "" {
		if err := r.renderBlock(w, vdom.Script(vdom.Raw(page.Script))); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
	)
	if page.Title != "" {
		vdom.AppendChild(head, vdom.Title(page.Title))
	}
	for _, style := range page.Styles {
		vdom.AppendChild(head, vdom.Style(vdom.Raw(style)))
	}
	return r.renderBlock(w, head)
}

// renderBlock renders a top-level node on its own line.
func (r *Renderer) renderBlock(w io.Writer, node *vdom.VNode) error {
	if err := r.renderNode(w, node, 0); err != nil {
		return err
	}
	if r.config.Pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
