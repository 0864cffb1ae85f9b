package document

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPath is returned when an operation needs a file on disk but the
	// document is an untitled buffer.
	ErrNoPath = errors.New("document has no file path")

	// ErrAlreadyExists is returned by SaveAs when the target path is taken.
	ErrAlreadyExists = errors.New("file already exists")
)

// ReadError reports that a file could not be loaded when it was opened.
// The document still opens, with empty content.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// SaveError reports a failed write. The document is left unchanged.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("error saving file %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// DeleteError reports a failed removal. The document is left unchanged.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("error deleting file %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
