package widget

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/uploadkit/pkg/vdom"
)

// altPolicy strips markup from file names used as alt text.
var altPolicy = bluemonday.StrictPolicy()

// RenderPreviews rebuilds the preview container from the current
// selection: one img per image file, in selection order.
func (w *Widget) RenderPreviews() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.renderPreviews()
}

// renderPreviews must be called with w.mu held.
func (w *Widget) renderPreviews() {
	w.revokeAll()
	vdom.RemoveChildNodes(w.preview)

	n := 0
	for _, f := range w.files {
		if !f.IsImage() {
			continue
		}
		url := w.urls.Create(f)
		w.track(url)

		vdom.AppendChild(w.preview, vdom.Img(
			vdom.Height(PreviewHeight),
			vdom.Src(url),
			vdom.Alt(altText(f.Filename)),
			vdom.OnLoad(func() { w.release(url) }),
		))
		n++
	}

	w.metrics.RecordPreviews(n)
	w.logger.Debug("previews rendered", "images", n, "files", len(w.files))
}

func altText(name string) string {
	return html.UnescapeString(altPolicy.Sanitize(name))
}

func (w *Widget) track(url string) {
	w.urlMu.Lock()
	w.live[url] = struct{}{}
	w.urlMu.Unlock()
}

// release revokes one object URL once its image has loaded.
func (w *Widget) release(url string) {
	w.urlMu.Lock()
	delete(w.live, url)
	w.urlMu.Unlock()
	w.urls.Revoke(url)
}

// revokeAll revokes every object URL minted by the previous render.
func (w *Widget) revokeAll() {
	w.urlMu.Lock()
	urls := w.live
	w.live = make(map[string]struct{})
	w.urlMu.Unlock()

	for url := range urls {
		w.urls.Revoke(url)
	}
}
