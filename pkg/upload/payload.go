package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/uploadkit/pkg/flatten"
)

// Payload is an ordered multipart/form-data body under construction.
type Payload struct {
	parts []part
}

type part struct {
	name  string
	file  *File
	value string
}

// NewPayload creates an empty payload.
func NewPayload() *Payload {
	return &Payload{}
}

// AddFile appends a file part. Repeating a field name adds another entry.
func (p *Payload) AddFile(field string, f *File) *Payload {
	p.parts = append(p.parts, part{name: field, file: f})
	return p
}

// AddField appends a text part holding FieldValue(value).
func (p *Payload) AddField(name string, value any) *Payload {
	p.parts = append(p.parts, part{name: name, value: FieldValue(value)})
	return p
}

// Len returns the number of parts.
func (p *Payload) Len() int {
	return len(p.parts)
}

// Encode renders the payload. It returns the body and the Content-Type
// header value carrying the multipart boundary.
func (p *Payload) Encode() (io.Reader, string, error) {
	return p.EncodeContext(context.Background())
}

// EncodeContext is like Encode but opens file content with ctx.
func (p *Payload) EncodeContext(ctx context.Context) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, pt := range p.parts {
		if pt.file == nil {
			if err := w.WriteField(pt.name, pt.value); err != nil {
				return nil, "", err
			}
			continue
		}
		if err := writeFilePart(ctx, w, pt.name, pt.file); err != nil {
			return nil, "", fmt.Errorf("encode %s: %w", pt.file.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// writeFilePart writes a file part keeping the file's own Content-Type;
// multipart.Writer.CreateFormFile would force application/octet-stream.
func writeFilePart(ctx context.Context, w *multipart.Writer, field string, f *File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(f.Filename)))
	h.Set("Content-Type", contentType)

	dst, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	src, err := f.OpenContext(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(dst, src)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// FieldValue returns the natural text form of a form value: strings as-is,
// nil as "null", numbers and booleans in their shortest form, and slices
// flattened and joined with commas (nil elements become empty).
func FieldValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}

	if k := reflect.ValueOf(v).Kind(); k != reflect.Slice && k != reflect.Array {
		return fmt.Sprint(v)
	}
	leaves := flatten.Append(nil, v)
	items := make([]string, len(leaves))
	for i, leaf := range leaves {
		if leaf != nil {
			items[i] = FieldValue(leaf)
		}
	}
	return strings.Join(items, ",")
}
