package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoSource            = errors.New("no input source provided")
	ErrMultipleSources     = errors.New("more than one input source provided")
	ErrSourceNotFound      = errors.New("input source not found")
	ErrSourceFetchFailed   = errors.New("fetching remote source failed")
	ErrPDFRender           = errors.New("rendering PDF pages failed")
)
