package widget

import (
	apperrors "github.com/vango-dev/uploadkit/internal/errors"
)

// Notification messages, one per outcome.
const (
	MsgNoFiles       = "No files selected to upload!"
	MsgNoEndpoint    = "No URL Specified to upload!"
	MsgUploadSuccess = "Files uploaded successfully"
	MsgUploadFailure = "Files could not be uploaded successfully"
)

// Outcome errors. Match them with errors.Is; errors carrying the same code
// compare equal. Submit returns fresh values so callers may decorate them.
var (
	ErrEncodeFailed         = apperrors.New("E004")
	ErrNoFilesSelected      = apperrors.New("E001")
	ErrNoEndpointConfigured = apperrors.New("E002")
	ErrUploadFailed         = apperrors.New("E003")
)
