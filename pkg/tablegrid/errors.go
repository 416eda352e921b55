package tablegrid

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates a file extension Load and Save do not handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrNoTable indicates a document without any table where one is required.
var ErrNoTable = errors.New("document has no table")

// DocumentError represents an error while processing a document file.
type DocumentError struct {
	Path  string
	Stage string // "read", "decode", "encode", "write", "import", "export"
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document error in %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError.
func NewDocumentError(path, stage string, err error) *DocumentError {
	return &DocumentError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
