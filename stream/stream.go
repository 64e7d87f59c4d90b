// Package stream turns a fixed set of in-flight operations into a replayable
// event stream.
//
// FromPromises emits one event per successful operation in the order the
// operations settle, then completes exactly once. Failures are handed to an
// error handler that decides whether the stream errors out or skips them.
// There is no cancellation, timeout or back-pressure: the stream only observes
// operations that were started elsewhere.
package stream

import (
	"context"
	"sync"
)

// EventKind distinguishes value events from the terminal event.
type EventKind uint8

const (
	// EventNext carries a value.
	EventNext EventKind = iota
	// EventError ends the stream with an error.
	EventError
	// EventComplete ends the stream normally.
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventNext:
		return "next"
	case EventError:
		return "error"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is a single notification delivered to subscribers.
type Event[T any] struct {
	Kind  EventKind
	Value T
	Err   error
}

// Stream is a multicast stream that replays every past event to new
// subscribers. It ends with exactly one terminal event.
type Stream[T any] struct {
	mu      sync.Mutex
	values  []T
	err     error
	closed  bool
	changed chan struct{}
	done    chan struct{}
}

func newStream[T any]() *Stream[T] {
	return &Stream[T]{
		changed: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Empty returns an already-completed stream with no values.
func Empty[T any]() *Stream[T] {
	s := newStream[T]()
	s.complete()
	return s
}

// notify must be called with the lock held.
func (s *Stream[T]) notify() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Stream[T]) next(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.values = append(s.values, v)
	s.notify()
	return true
}

func (s *Stream[T]) terminate(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	s.err = err
	close(s.done)
	s.notify()
	return true
}

func (s *Stream[T]) fail(err error) bool { return s.terminate(err) }

func (s *Stream[T]) complete() bool { return s.terminate(nil) }

// Done is closed when the stream has completed or failed.
func (s *Stream[T]) Done() <-chan struct{} { return s.done }

// Err returns the error that ended the stream, or nil.
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Values returns a snapshot of the values emitted so far.
func (s *Stream[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.values...)
}

// Subscribe returns a channel that receives every past and future event,
// ending with the terminal event. The channel is closed after the terminal
// event or when ctx is done.
func (s *Stream[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	ch := make(chan Event[T])
	go func() {
		defer close(ch)
		for i := 0; ; {
			s.mu.Lock()
			var (
				ev      Event[T]
				last    bool
				changed chan struct{}
			)
			switch {
			case i < len(s.values):
				ev = Event[T]{Kind: EventNext, Value: s.values[i]}
				i++
			case s.closed && s.err != nil:
				ev, last = Event[T]{Kind: EventError, Err: s.err}, true
			case s.closed:
				ev, last = Event[T]{Kind: EventComplete}, true
			default:
				changed = s.changed
			}
			s.mu.Unlock()

			if changed != nil {
				select {
				case <-changed:
					continue
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
			if last {
				return
			}
		}
	}()
	return ch
}

// Collect waits for the stream to end and returns every emitted value with
// the terminal error. If ctx is done first, the values seen so far are
// returned with ctx.Err().
func (s *Stream[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for ev := range s.Subscribe(ctx) {
		switch ev.Kind {
		case EventNext:
			out = append(out, ev.Value)
		case EventError:
			return out, ev.Err
		case EventComplete:
			return out, nil
		}
	}
	return out, ctx.Err()
}
