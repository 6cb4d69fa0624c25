package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories the rest of the system reacts to.
type ErrorKind int

const (
	// KindConfig marks missing or invalid configuration.
	KindConfig ErrorKind = iota + 1
	// KindAPI marks a failed news-source call.
	KindAPI
	// KindAnalysis marks a failed or unusable analysis call.
	KindAnalysis
	// KindSource marks a request for a source that is not registered.
	KindSource
)

// Kinds lists every error kind, in declaration order.
var Kinds = []ErrorKind{KindConfig, KindAPI, KindAnalysis, KindSource}

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindAPI:
		return "APIError"
	case KindAnalysis:
		return "AnalysisError"
	case KindSource:
		return "SourceError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type crossing component boundaries.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrConfig   = &Error{Kind: KindConfig}
	ErrAPI      = &Error{Kind: KindAPI}
	ErrAnalysis = &Error{Kind: KindAnalysis}
	ErrSource   = &Error{Kind: KindSource}
)

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return e.Message
	case e.Message == "":
		return e.Err.Error()
	default:
		return e.Message + ": " + e.Err.Error()
	}
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewConfigError reports missing or invalid configuration.
func NewConfigError(format string, args ...any) error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// NewSourceError reports an unknown source name.
func NewSourceError(format string, args ...any) error {
	return &Error{Kind: KindSource, Message: fmt.Sprintf(format, args...)}
}

// NewAPIError wraps a news-source failure. An error that already carries a
// kind is returned unchanged.
func NewAPIError(cause error, format string, args ...any) error {
	return wrap(KindAPI, cause, format, args...)
}

// NewAnalysisError wraps an analysis failure. An error that already carries
// a kind is returned unchanged.
func NewAnalysisError(cause error, format string, args ...any) error {
	return wrap(KindAnalysis, cause, format, args...)
}

func wrap(kind ErrorKind, cause error, format string, args ...any) error {
	var de *Error
	if errors.As(cause, &de) {
		return cause
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
