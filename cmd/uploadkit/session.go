package main

import (
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uploadkit/internal/config"
	"github.com/vango-dev/uploadkit/internal/errors"
	"github.com/vango-dev/uploadkit/pkg/blob"
	"github.com/vango-dev/uploadkit/pkg/upload"
	"github.com/vango-dev/uploadkit/pkg/vdom"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

// widgetFlags are the selection and upload flags shared by commands.
type widgetFlags struct {
	url         string
	field       string
	id          string
	dir         string
	extras      []string
	accept      []string
	multiple    bool
	interactive bool
	maxSize     int64
	s3          config.S3Config
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.url, "url", "u", "", "Upload endpoint URL")
	flags.StringVar(&f.field, "field", "", `Files field name; files are sent as "<field>[]"`)
	flags.StringArrayVarP(&f.extras, "extra", "e", nil, "Extra form field as key=value (repeatable)")
	flags.StringArrayVarP(&f.accept, "accept", "a", nil, "Accepted MIME type or extension (repeatable)")
	flags.BoolVarP(&f.multiple, "multiple", "m", false, "Allow selecting several files")
	flags.StringVar(&f.id, "id", "", "DOM id of the file input")
	flags.StringVarP(&f.dir, "dir", "d", "", "Directory to pick files from")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "Choose files in an interactive prompt")
	flags.Int64Var(&f.maxSize, "max-size", 0, "Reject files larger than this many bytes")
	flags.StringVar(&f.s3.Bucket, "s3-bucket", "", "Pick files from this S3 bucket")
	flags.StringVar(&f.s3.Prefix, "s3-prefix", "", "S3 key prefix")
	flags.StringVar(&f.s3.Region, "s3-region", "", "S3 region")
	flags.StringVar(&f.s3.Endpoint, "s3-endpoint", "", "S3 endpoint override, e.g. for MinIO")
}

// apply overrides cfg with the flags that were set on cmd.
func (f *widgetFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("url") {
		cfg.Widget.EndpointURL = f.url
	}
	if changed("field") {
		cfg.Widget.FilesFieldName = f.field
	}
	if changed("id") {
		cfg.Widget.ID = f.id
	}
	if changed("multiple") {
		cfg.Widget.AllowMultiple = f.multiple
	}
	if changed("accept") {
		cfg.Widget.AcceptedTypes = f.accept
	}
	if changed("extra") {
		extras, err := parseExtras(f.extras)
		if err != nil {
			return err
		}
		if cfg.Widget.ExtraFields == nil {
			cfg.Widget.ExtraFields = map[string]any{}
		}
		for k, v := range extras {
			cfg.Widget.ExtraFields[k] = v
		}
	}
	if changed("dir") {
		cfg.Source.Dir = f.dir
	}
	if changed("interactive") {
		cfg.Source.Interactive = f.interactive
	}
	if changed("max-size") {
		cfg.Source.MaxSize = f.maxSize
	}
	if changed("s3-bucket") {
		cfg.S3.Bucket = f.s3.Bucket
	}
	if changed("s3-prefix") {
		cfg.S3.Prefix = f.s3.Prefix
	}
	if changed("s3-region") {
		cfg.S3.Region = f.s3.Region
	}
	if changed("s3-endpoint") {
		cfg.S3.Endpoint = f.s3.Endpoint
		cfg.S3.UsePathStyle = true
	}

	return cfg.Validate()
}

// parseExtras parses key=value pairs.
func parseExtras(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New("E160").
				WithDetail("Invalid --extra value " + pair).
				WithSuggestion("Use --extra key=value")
		}
		out[key] = value
	}
	return out, nil
}

// buildPicker returns the file source described by cfg. Explicit paths
// win over the configured directory; an S3 bucket wins over both.
func buildPicker(cfg *config.Config, paths []string) upload.Picker {
	var source interface {
		upload.Picker
		upload.Lister
	}

	switch {
	case cfg.S3.Bucket != "":
		client := upload.NewS3Client(upload.S3Config{
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		source = upload.NewS3Picker(client, cfg.S3.Bucket, cfg.S3.Prefix, cfg.Source.MaxSize)
	case len(paths) > 0:
		source = upload.NewDiskPicker(cfg.Source.MaxSize, paths...)
	default:
		dir := cfg.SourceDir()
		if dir == "" {
			dir = "."
		}
		source = upload.NewDiskPicker(cfg.Source.MaxSize, dir)
	}

	if cfg.Source.Interactive {
		return upload.NewPromptPicker(source)
	}
	return source
}

// session is a document with one upload widget.
type session struct {
	doc    *vdom.Document
	widget *widget.Widget
	urls   *blob.Registry
}

// newSession builds a widget from cfg in doc. A nil doc creates an empty
// document.
func newSession(doc *vdom.Document, cfg *config.Config, picker upload.Picker, logger *slog.Logger, opts ...widget.Option) *session {
	if doc == nil {
		doc = vdom.NewDocument()
	}
	urls := blob.NewRegistry("")

	var clientOpts []upload.ClientOption
	if cfg.Widget.UserAgent != "" {
		clientOpts = append(clientOpts, upload.WithUserAgent(cfg.Widget.UserAgent))
	}

	wcfg := widget.Config{
		AllowMultiple:  cfg.Widget.AllowMultiple,
		ExtraFields:    cfg.Widget.ExtraFields,
		FilesFieldName: cfg.Widget.FilesFieldName,
		ID:             cfg.Widget.ID,
		EndpointURL:    cfg.Widget.EndpointURL,
	}
	if cfg.Widget.Container != "" {
		wcfg.Container = cfg.Widget.Container
	}
	if cfg.Widget.PreviewContainer != "" {
		wcfg.PreviewContainer = cfg.Widget.PreviewContainer
	}
	if len(cfg.Widget.AcceptedTypes) > 0 {
		wcfg.AcceptedTypes = cfg.Widget.AcceptedTypes
	}

	opts = append([]widget.Option{
		widget.WithPicker(picker),
		widget.WithClient(upload.NewClient(clientOpts...)),
		widget.WithObjectURLs(urls),
		widget.WithLogger(logger),
	}, opts...)

	return &session{
		doc:    doc,
		widget: widget.New(doc, wcfg, opts...),
		urls:   urls,
	}
}

// pickError maps picker failures to CLI errors.
func pickError(err error) error {
	if stderrors.Is(err, upload.ErrTooLarge) {
		return errors.New("E041").WithDetail(err.Error()).
			WithSuggestion("Raise --max-size or pick a smaller file")
	}
	return errors.New("E040").Wrap(err)
}
