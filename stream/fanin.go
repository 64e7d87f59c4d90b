package stream

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrorHandler decides what a failed operation does to the stream.
// Returning true stops the stream with that error; false skips the failure.
// It may be called from several goroutines at once.
type ErrorHandler func(error) (stop bool)

// Option configures FromPromises.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	onError ErrorHandler
}

// WithLogger sets the logger used by the default error handler.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithErrorHandler replaces the default log-and-continue failure policy.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		o.onError = h
	}
}

// LogAndContinue returns the default handler: it logs the failure at debug
// level and keeps the stream going.
func LogAndContinue(logger *zap.Logger) ErrorHandler {
	return func(err error) bool {
		logger.Debug("Promise failed, skipping", zap.Error(err))
		return false
	}
}

// FromPromises returns a stream that emits the value of each promise as it
// resolves and completes once all of them have settled. A failed promise is
// passed to the error handler; if it asks to stop, the stream ends with that
// error and nothing more is emitted. An empty list gives a completed stream.
func FromPromises[T any](promises []*Promise[T], opts ...Option) *Stream[T] {
	if len(promises) == 0 {
		return Empty[T]()
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.onError == nil {
		o.onError = LogAndContinue(o.logger)
	}

	s := newStream[T]()
	var g errgroup.Group
	for _, p := range promises {
		p := p
		g.Go(func() error {
			<-p.Done()
			v, err := p.result()
			if err != nil {
				if o.onError(err) {
					s.fail(err)
					return err
				}
				return nil
			}
			s.next(v)
			return nil
		})
	}
	go func() {
		if err := g.Wait(); err == nil {
			s.complete()
		}
	}()
	return s
}
