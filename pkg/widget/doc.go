// Package widget implements the file-upload widget.
//
// A Widget binds three things inside a vdom.Document: a hidden file input
// appended to its container, a preview container holding one img per
// selected image file, and a multipart POST of the selection to an endpoint.
//
//	doc := vdom.NewDocument()
//	w := widget.New(doc, widget.Config{
//	    Container:        "#uploader",
//	    PreviewContainer: "#previews",
//	    AllowMultiple:    true,
//	    AcceptedTypes:    []string{"image/*", ".pdf"},
//	    ExtraFields:      map[string]any{"user_id": 100},
//	    EndpointURL:      "https://example.com/upload",
//	}, widget.WithPicker(picker))
//
//	if err := w.Open(ctx); err != nil { ... }
//	pending, err := w.Submit(ctx)
//	if err != nil { ... }           // ErrNoFilesSelected, ErrNoEndpointConfigured
//	if err := pending.Wait(); err != nil { ... } // ErrUploadFailed
//
// Every outcome is also reported to the configured toast.Notifier with one
// of four fixed messages (see MsgNoFiles and friends).
package widget
