package widget

import (
	"context"
	"errors"
	"strings"

	"github.com/vango-dev/uploadkit/pkg/flatten"
	"github.com/vango-dev/uploadkit/pkg/upload"
	"github.com/vango-dev/uploadkit/pkg/vdom"
)

// acceptValue flattens the accepted types into an accept attribute value.
func acceptValue(types any) string {
	var patterns []string
	for _, s := range flatten.Strings(types) {
		if s = strings.TrimSpace(s); s != "" {
			patterns = append(patterns, s)
		}
	}
	if len(patterns) == 0 {
		return DefaultAccept
	}
	return strings.Join(patterns, ", ")
}

// attachPicker creates the hidden file input and appends it to the
// container.
func (w *Widget) attachPicker() {
	w.input = vdom.Input(
		vdom.Type("file"),
		vdom.StyleAttr("display: none"),
		vdom.Multiple(w.cfg.AllowMultiple),
		vdom.Accept(w.accept),
		vdom.AttrIf(w.cfg.ID != "", vdom.ID(w.cfg.ID)),
		vdom.OnChange(w.handleChange),
	)
	vdom.AppendChild(w.container, w.input)
}

// handleChange replaces the selection with the event's files and rebuilds
// the previews.
func (w *Widget) handleChange(e *vdom.Event) {
	files, _ := e.Detail.([]*upload.File)

	w.mu.Lock()
	w.files = append([]*upload.File(nil), files...)
	w.renderPreviews()
	w.mu.Unlock()

	w.metrics.RecordSelection(len(files))
	w.logger.Info("files selected", "count", len(files))
}

// Open shows the picker for the hidden input. A completed selection is
// delivered as a change event on the input; a dismissed picker changes
// nothing.
func (w *Widget) Open(ctx context.Context) error {
	vdom.Dispatch(w.input, "click", nil)

	multiple, _ := w.input.Attr("multiple").(bool)
	req := upload.PickRequest{
		Multiple: multiple,
		Accept:   upload.ParseAccept(w.input.AttrString("accept")),
	}

	files, err := w.picker.Pick(ctx, req)
	if errors.Is(err, upload.ErrCanceled) {
		w.logger.Debug("picker dismissed")
		return nil
	}
	if err != nil {
		w.logger.Error("picker failed", "error", err)
		return err
	}

	vdom.Dispatch(w.input, "change", files)
	return nil
}
