package stream

import (
	"context"
	"sync"
)

// Promise is the eventual result of an operation started elsewhere.
// It settles exactly once; later Resolve or Reject calls are ignored.
type Promise[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewPromise returns an unsettled promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Go runs fn in a new goroutine and returns a promise for its result.
func Go[T any](fn func() (T, error)) *Promise[T] {
	p := NewPromise[T]()
	go func() {
		v, err := fn()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(v)
	}()
	return p
}

// Resolved returns a promise already settled with v.
func Resolved[T any](v T) *Promise[T] {
	p := NewPromise[T]()
	p.Resolve(v)
	return p
}

// Rejected returns a promise already settled with err.
func Rejected[T any](err error) *Promise[T] {
	p := NewPromise[T]()
	p.Reject(err)
	return p
}

// Resolve settles the promise with v. It reports whether this call settled it.
func (p *Promise[T]) Resolve(v T) bool {
	return p.settle(v, nil)
}

// Reject settles the promise with err. It reports whether this call settled it.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.settle(zero, err)
}

func (p *Promise[T]) settle(v T, err error) bool {
	settled := false
	p.once.Do(func() {
		p.value, p.err = v, err
		settled = true
		close(p.done)
	})
	return settled
}

// Done is closed once the promise has settled.
func (p *Promise[T]) Done() <-chan struct{} { return p.done }

// Await blocks until the promise settles or ctx is done. Giving up on ctx does
// not affect the promise.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// result must only be called after done is closed.
func (p *Promise[T]) result() (T, error) {
	return p.value, p.err
}

// Then returns a promise for fn applied to the value of p. A rejection of p
// is passed through without calling fn.
func Then[T, U any](p *Promise[T], fn func(T) (U, error)) *Promise[U] {
	next := NewPromise[U]()
	go func() {
		<-p.Done()
		v, err := p.result()
		if err != nil {
			next.Reject(err)
			return
		}
		u, err := fn(v)
		if err != nil {
			next.Reject(err)
			return
		}
		next.Resolve(u)
	}()
	return next
}
