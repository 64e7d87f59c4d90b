package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeLineTooLong indicates a line exceeded the configured limit.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeNotATerm indicates a value without a term classification.
	ErrCodeNotATerm ErrorCode = "NOT_A_TERM"
	// ErrCodeInvalidTerm indicates a malformed or unknown term.
	ErrCodeInvalidTerm ErrorCode = "INVALID_TERM"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format or content type.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrLineTooLong indicates a line exceeded the configured limit.
	ErrLineTooLong = errors.New("rdf: line exceeds configured limit")
	// ErrNotATerm indicates a value that carries no term type.
	ErrNotATerm = errors.New("rdf: not an RDF term")
	// ErrUnknownTermType indicates a term type tag outside symbol/literal/bnode.
	ErrUnknownTermType = errors.New("rdf: unknown term type")
	// ErrInvalidTerm indicates a term missing a required field.
	ErrInvalidTerm = errors.New("rdf: invalid term")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF.
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrLineTooLong):
		return ErrCodeLineTooLong
	case errors.Is(err, ErrNotATerm):
		return ErrCodeNotATerm
	case errors.Is(err, ErrUnknownTermType), errors.Is(err, ErrInvalidTerm):
		return ErrCodeInvalidTerm
	case errors.Is(err, context.Canceled):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format Format // Format being decoded
	Line   int    // 1-based line number (0 if unknown)
	Err    error  // Underlying error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
