// Package upload provides the client side of uploadkit's file uploads.
//
// # Files
//
// File is an opaque handle to a selected file: a name, a MIME type, a size
// and lazily opened content. Files come from a Picker, the stand-in for the
// host's native file-selection dialog:
//
//   - DiskPicker selects from explicit paths or a directory
//   - S3Picker selects objects under an S3 bucket prefix
//   - PromptPicker asks the user in the terminal which candidates to keep
//   - PickerFunc adapts a plain function
//
// Every picker honours the accept patterns of the requesting input
// ("image/*", "image/png", ".png", "*/*") and its multiple flag.
//
// # Transport
//
// Payload builds a multipart/form-data body. Files keep their filename and
// MIME type in the part headers; text fields carry the natural string form
// of their values:
//
//	p := upload.NewPayload()
//	p.AddFile("files[]", file)
//	p.AddField("user_id", 100) // "100"
//
//	status, err := upload.NewClient().Post(ctx, "https://example.com/upload", p)
//
// Client issues a single POST per call with no retries and no timeout
// unless the supplied *http.Client sets one. Each request is traced with
// OpenTelemetry.
package upload
