package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a file's content cannot be located.
var ErrNotFound = errors.New("upload: file not found")

// ErrTooLarge is returned when a file exceeds the size limit.
var ErrTooLarge = errors.New("upload: file too large")

// ErrEncode marks a failure to build the multipart body, usually because
// a file's content could not be read.
var ErrEncode = errors.New("upload: encode payload")

// ErrCanceled is returned by a Picker when the user dismissed the
// selection or nothing matched the request.
var ErrCanceled = errors.New("upload: selection canceled")

// File represents a selected file.
type File struct {
	// ID is the unique identifier for this file handle.
	ID string

	// Filename is the base name presented to the endpoint.
	Filename string

	// ContentType is the MIME type of the file.
	ContentType string

	// Size is the file size in bytes.
	Size int64

	// Path is the local filesystem path (for DiskPicker).
	Path string

	// URL is the remote location (for S3Picker).
	URL string

	open func(ctx context.Context) (io.ReadCloser, error)
}

// NewFile creates an in-memory file.
func NewFile(filename, contentType string, data []byte) *File {
	return &File{
		ID:          generateID(),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Open returns a reader over the file content. The caller must close it.
func (f *File) Open() (io.ReadCloser, error) {
	return f.OpenContext(context.Background())
}

// OpenContext is like Open but remote sources honor ctx.
func (f *File) OpenContext(ctx context.Context) (io.ReadCloser, error) {
	if f.open == nil {
		return nil, ErrNotFound
	}
	return f.open(ctx)
}

// Bytes reads the whole file content.
func (f *File) Bytes() ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// IsImage reports whether the MIME type begins with "image/".
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// PickRequest describes the selection the file input asks for.
type PickRequest struct {
	// Multiple allows more than one file to be selected.
	Multiple bool

	// Accept lists MIME type or extension patterns. Empty accepts all.
	Accept []string
}

// Picker is the native file-selection dialog.
type Picker interface {
	// Pick returns the selected files in order, or ErrCanceled when the
	// selection was dismissed.
	Pick(ctx context.Context, req PickRequest) ([]*File, error)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(ctx context.Context, req PickRequest) ([]*File, error)

// Pick implements Picker.
func (f PickerFunc) Pick(ctx context.Context, req PickRequest) ([]*File, error) {
	return f(ctx, req)
}

// Lister enumerates candidate files for a picker.
type Lister interface {
	List(ctx context.Context) ([]*File, error)
}

// SizeLimiter is implemented by sources that reject large files.
type SizeLimiter interface {
	// MaxFileSize returns the limit in bytes; 0 means no limit.
	MaxFileSize() int64
}

// checkSize fails with ErrTooLarge for the first file above max.
func checkSize(files []*File, max int64) error {
	if max <= 0 {
		return nil
	}
	for _, f := range files {
		if f.Size > max {
			return fmt.Errorf("%w: %s", ErrTooLarge, f.Filename)
		}
	}
	return nil
}

// choose filters candidates by the request's accept patterns and trims the
// result to one file for single selection.
func choose(candidates []*File, req PickRequest) ([]*File, error) {
	var out []*File
	for _, f := range candidates {
		if !Accepts(req.Accept, f) {
			continue
		}
		out = append(out, f)
		if !req.Multiple {
			break
		}
	}
	if len(out) == 0 {
		return nil, ErrCanceled
	}
	return out, nil
}

func generateID() string {
	return uuid.NewString()
}
