package rdf

import (
	"context"
	"fmt"
	"io"
)

// DefaultMaxLineBytes bounds a single N-Triples/N-Quads line.
const DefaultMaxLineBytes = 1 << 20

// Decoder streams statements from an input.
type Decoder interface {
	// Next returns the next statement, or io.EOF when the input is exhausted.
	Next() (Statement, error)
	Close() error
}

// Encoder streams statements to an output.
// For N-Triples the Why field is dropped.
type Encoder interface {
	Write(Statement) error
	Flush() error
	Close() error
}

// Handler processes statements in push mode.
type Handler func(Statement) error

// Option configures decoder behavior.
type Option func(*Options)

// Options configures decoder behavior.
type Options struct {
	// Context cancels decoding work.
	Context context.Context
	// MaxLineBytes limits line length for line-based formats. Negative disables the limit.
	MaxLineBytes int
	// Base resolves relative IRIs.
	Base string
	// Why is assigned to statements that carry no graph name of their own.
	Why Term
	// BlankNodePrefix is prepended to every blank node label, keeping the
	// blank nodes of separately decoded documents apart.
	BlankNodePrefix string
}

func defaultOptions() Options {
	return Options{
		Context:      context.Background(),
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptBase sets the base IRI.
func OptBase(base string) Option {
	return func(opts *Options) {
		opts.Base = base
	}
}

// OptWhy sets the default context term of decoded statements.
func OptWhy(why Term) Option {
	return func(opts *Options) {
		opts.Why = why
	}
}

// OptBlankNodePrefix sets the prefix of decoded blank node labels.
func OptBlankNodePrefix(prefix string) Option {
	return func(opts *Options) {
		opts.BlankNodePrefix = prefix
	}
}

// NewDecoder creates a decoder for the specified format.
func NewDecoder(r io.Reader, format Format, opts ...Option) (Decoder, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatNTriples, FormatNQuads:
		return newNTDecoder(r, format, options), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r, options), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// NewEncoder creates an encoder for the specified format.
func NewEncoder(w io.Writer, format Format) (Encoder, error) {
	switch format {
	case FormatNTriples, FormatNQuads:
		return newNTEncoder(w, format), nil
	default:
		return nil, fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, format)
	}
}

// Parse decodes r and streams statements to handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, format Format, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append([]Option{OptContext(ctx)}, opts...)
	dec, err := NewDecoder(r, format, opts...)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stmt, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(stmt); err != nil {
			return err
		}
	}
}
