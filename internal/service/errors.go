package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProductAlreadyExists = errors.New("product already exists")
	ErrProductFieldsMissing = errors.New("title and description are required")

	ErrInvalidMessage      = errors.New("invalid review message")
	ErrInvalidRating       = errors.New("invalid review rating")
	ErrInvalidImageURL     = errors.New("invalid review image url")
	ErrReviewAlreadyExists = errors.New("review already exists")

	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrInvalidSize           = errors.New("invalid upload size")
	ErrFileTooLarge          = errors.New("file too large")
	ErrMissingURL            = errors.New("missing upload url")
	ErrInvalidURL            = errors.New("invalid upload url")
	ErrObjectStorageDisabled = errors.New("object storage is not configured")
)

// ConflictError reports a write that clashes with an existing resource.
// ID names that resource so the client can switch to an update.
type ConflictError struct {
	Err error
	ID  string
}

func (e *ConflictError) Error() string {
	return e.Err.Error() + " (id " + e.ID + ")"
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
