package dataset

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("dataset has no header row")

// FileNotFoundError reports a missing input file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("dataset file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// MissingColumnError reports a required column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// DateParseError reports a date cell whose text matches none of the accepted layouts.
type DateParseError struct {
	Line   int
	Column string
	Value  string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s value %q as a date", e.Line, e.Column, e.Value)
}
