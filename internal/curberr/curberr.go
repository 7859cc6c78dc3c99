// Package curberr defines the error taxonomy shared across the parser.
// Every error surfaced to callers is classified as exactly one Kind so
// downstream pipelines can branch on failure class without string matching.
package curberr

import (
	"errors"
	"fmt"
)

// Kind classifies a parser failure.
type Kind string

const (
	// KindImageProcessing covers unreadable, corrupt, or oversize images.
	KindImageProcessing Kind = "image_processing"
	// KindProvider covers transport or protocol failures from a model backend.
	KindProvider Kind = "provider"
	// KindValidation covers record-construction invariant violations.
	KindValidation Kind = "validation"
	// KindUnsupportedFormat covers unrecognized image extensions.
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindConfiguration covers construction-time configuration problems,
	// including an unrecognized provider name.
	KindConfiguration Kind = "configuration"
	// KindParsing covers model-response parsing problems. Note that a
	// non-JSON model response is downgraded by the normalizer and never
	// reaches callers as an error.
	KindParsing Kind = "parsing"
)

// Error is a classified parser error. It wraps an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. Returns nil if err is nil.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of err, or "" if err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
