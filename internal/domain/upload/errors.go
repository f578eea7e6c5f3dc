package upload

import "errors"

var (
	ErrStorageUnavailable = errors.New("image storage unavailable")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType    = errors.New("file type is not allowed")
)
