package x12doc

import (
	"errors"
	"fmt"
)

// ParseError is the root of the hard failure taxonomy. Errors returned by
// Parse/ParseFile always match this via errors.Is. Soft validation findings
// never surface here - they're collected in a ValidationReport instead.
var ParseError = errors.New("parse error")

var (
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrTerminatorNotFound = errors.New("segment terminator not found")
	ErrInvalidHeader      = errors.New("invalid interchange header")
)

// FileTypeError indicates the document doesn't open with the interchange
// header tag. Both tags and their lengths are reported - length mismatches
// are a common source of malformed-file confusion.
type FileTypeError struct {
	Expected string
	Found    string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf(
		"expected envelope %q (length: %d), found %q (length: %d)",
		e.Expected,
		len(e.Expected),
		e.Found,
		len(e.Found),
	)
}

func (e *FileTypeError) Unwrap() error {
	return ErrInvalidFileType
}

// newFileTypeError creates a FileTypeError from the leading bytes of the
// document text, truncated to the expected tag's length.
func newFileTypeError(expected string, text string) error {
	found := text
	if len(found) > len(expected) {
		found = found[:len(expected)]
	}
	return fmt.Errorf("%w: %w", ParseError, &FileTypeError{
		Expected: expected,
		Found:    found,
	})
}
