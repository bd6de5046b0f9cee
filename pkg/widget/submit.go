package widget

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	apperrors "github.com/vango-dev/uploadkit/internal/errors"
	"github.com/vango-dev/uploadkit/pkg/metrics"
	"github.com/vango-dev/uploadkit/pkg/toast"
	"github.com/vango-dev/uploadkit/pkg/upload"
)

// Pending is an upload in flight.
type Pending struct {
	done chan struct{}
	err  error
}

// Done is closed when the upload has finished and its notification has
// been sent.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the upload finishes. It returns nil when the endpoint
// answered 200 and an error matching ErrUploadFailed otherwise.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Submit posts the selection and extra fields to the endpoint. Missing
// files or a missing endpoint fail immediately without a request; otherwise
// the request runs in the background and the returned Pending reports its
// outcome.
func (w *Widget) Submit(ctx context.Context) (*Pending, error) {
	files := w.Files()

	if len(files) == 0 {
		w.notifyUser(toast.TypeError, MsgNoFiles)
		w.metrics.RecordUpload(metrics.OutcomeNoFiles, 0)
		w.logger.Warn("submit without files")
		return nil, apperrors.New("E001")
	}
	if w.cfg.EndpointURL == "" {
		w.notifyUser(toast.TypeError, MsgNoEndpoint)
		w.metrics.RecordUpload(metrics.OutcomeNoURL, 0)
		w.logger.Warn("submit without endpoint")
		return nil, apperrors.New("E002")
	}

	payload := w.buildPayload(files)
	url := w.cfg.EndpointURL
	p := &Pending{done: make(chan struct{})}

	w.logger.Info("upload started", "url", url, "files", len(files), "fields", len(w.cfg.ExtraFields))

	go func() {
		defer close(p.done)
		start := time.Now()
		status, err := w.client.Post(ctx, url, payload)
		elapsed := time.Since(start)

		switch {
		case errors.Is(err, upload.ErrEncode):
			p.err = apperrors.New("E003").Wrap(apperrors.New("E004").Wrap(err))
			w.metrics.RecordUpload(metrics.OutcomeTransport, elapsed)
			w.logger.Error("upload payload", "url", url, "error", err)
			w.notifyUser(toast.TypeError, MsgUploadFailure)
		case err != nil:
			p.err = apperrors.New("E003").Wrap(err)
			w.metrics.RecordUpload(metrics.OutcomeTransport, elapsed)
			w.logger.Error("upload failed", "url", url, "error", err)
			w.notifyUser(toast.TypeError, MsgUploadFailure)
		case status != http.StatusOK:
			p.err = apperrors.New("E003").WithDetail(fmt.Sprintf("The endpoint responded with status %d.", status))
			w.metrics.RecordUpload(metrics.OutcomeFailure, elapsed)
			w.logger.Warn("upload rejected", "url", url, "status", status)
			w.notifyUser(toast.TypeError, MsgUploadFailure)
		default:
			w.metrics.RecordUpload(metrics.OutcomeSuccess, elapsed)
			w.logger.Info("upload succeeded", "url", url, "duration", elapsed)
			w.notifyUser(toast.TypeSuccess, MsgUploadSuccess)
		}
	}()

	return p, nil
}

// buildPayload appends every file under "<field>[]" followed by the extra
// fields in key order.
func (w *Widget) buildPayload(files []*upload.File) *upload.Payload {
	p := upload.NewPayload()
	field := w.cfg.FilesFieldName + "[]"
	for _, f := range files {
		p.AddFile(field, f)
	}

	keys := make([]string, 0, len(w.cfg.ExtraFields))
	for k := range w.cfg.ExtraFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.AddField(k, w.cfg.ExtraFields[k])
	}
	return p
}
