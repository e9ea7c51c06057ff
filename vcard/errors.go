package vcard

import (
	"fmt"

	"github.com/ghettovoice/govcard/internal/errorutil"
)

// Error represents a codec error.
// See [errorutil.Error].
type Error = errorutil.Error

const (
	// ErrDecode is returned when an encoded property value cannot be decoded.
	ErrDecode Error = "decode failed"
	// ErrMalformedTuple is returned when a structured form does not have the expected shape.
	ErrMalformedTuple Error = "malformed structured form"
	// ErrUnknownCharset is returned when a text encoding name cannot be resolved.
	ErrUnknownCharset Error = "unknown charset"
)

// ParseError is returned when a previously serialized structured form cannot be parsed back.
//
// Path locates the offending element, e.g. "[0][1][3]".
type ParseError struct {
	Err  error
	Path string
}

func (err *ParseError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("parse error: %v", err.Err)
	}
	return fmt.Sprintf("parse error at %s: %v", err.Path, err.Err)
}

func (err *ParseError) Unwrap() error { return err.Err }

func newMalformedError(path string, args ...any) *ParseError {
	return &ParseError{Err: errorutil.NewWrapperError(ErrMalformedTuple, args...), Path: path}
}
