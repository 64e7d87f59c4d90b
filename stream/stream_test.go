package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPromiseSettlesOnce(t *testing.T) {
	p := NewPromise[int]()
	assert.True(t, p.Resolve(1))
	assert.False(t, p.Resolve(2))
	assert.False(t, p.Reject(errors.New("late")))

	v, err := p.Await(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestPromiseGo(t *testing.T) {
	boom := errors.New("boom")
	_, err := Go(func() (string, error) { return "", boom }).Await(testContext(t))
	assert.ErrorIs(t, err, boom)

	v, err := Go(func() (string, error) { return "ok", nil }).Await(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestPromiseAwaitContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPromise[int]().Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromPromisesEmpty(t *testing.T) {
	s := FromPromises[int](nil)
	select {
	case <-s.Done():
	default:
		t.Fatal("empty stream must already be complete")
	}
	values, err := s.Collect(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestFromPromisesAllResolved(t *testing.T) {
	s := FromPromises([]*Promise[int]{Resolved(1), Resolved(2), Resolved(3)})

	var (
		values    []int
		completes int
	)
	for ev := range s.Subscribe(testContext(t)) {
		switch ev.Kind {
		case EventNext:
			values = append(values, ev.Value)
		case EventComplete:
			completes++
		case EventError:
			t.Fatalf("unexpected error event: %v", ev.Err)
		}
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, values)
	assert.Equal(t, 1, completes)
}

func TestFromPromisesSettlementOrder(t *testing.T) {
	ps := []*Promise[string]{NewPromise[string](), NewPromise[string](), NewPromise[string]()}
	s := FromPromises(ps)
	events := s.Subscribe(testContext(t))

	for _, i := range []int{2, 0, 1} {
		ps[i].Resolve(string(rune('a' + i)))
		ev := <-events
		require.Equal(t, EventNext, ev.Kind)
		assert.Equal(t, string(rune('a'+i)), ev.Value)
	}
	ev := <-events
	assert.Equal(t, EventComplete, ev.Kind)
	_, open := <-events
	assert.False(t, open)
}

func TestFromPromisesReplay(t *testing.T) {
	s := FromPromises([]*Promise[int]{Resolved(7), Resolved(8)})
	first, err := s.Collect(testContext(t))
	require.NoError(t, err)
	second, err := s.Collect(testContext(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, first, second)
	assert.Len(t, second, 2)
}

func TestFromPromisesFatalError(t *testing.T) {
	boom := errors.New("boom")
	first, failing, late := NewPromise[int](), NewPromise[int](), NewPromise[int]()
	s := FromPromises([]*Promise[int]{first, failing, late}, WithErrorHandler(func(err error) bool {
		return true
	}))
	events := s.Subscribe(testContext(t))

	first.Resolve(1)
	ev := <-events
	require.Equal(t, EventNext, ev.Kind)

	failing.Reject(boom)
	ev = <-events
	require.Equal(t, EventError, ev.Kind)
	assert.ErrorIs(t, ev.Err, boom)
	<-s.Done()

	late.Resolve(3)
	_, open := <-events
	assert.False(t, open)

	values, err := s.Collect(testContext(t))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1}, values)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestFromPromisesSkippedError(t *testing.T) {
	var calls atomic.Int32
	s := FromPromises(
		[]*Promise[int]{Resolved(1), Rejected[int](errors.New("skip me")), Resolved(3)},
		WithErrorHandler(func(err error) bool {
			calls.Add(1)
			return false
		}),
	)
	values, err := s.Collect(testContext(t))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, values)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFromPromisesDefaultHandlerLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := FromPromises(
		[]*Promise[int]{Rejected[int](errors.New("quiet")), Resolved(2)},
		WithLogger(zap.New(core)),
	)
	values, err := s.Collect(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, values)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "quiet", logs.All()[0].ContextMap()["error"])
}

func TestSubscribeStopsOnContext(t *testing.T) {
	p := NewPromise[int]()
	s := FromPromises([]*Promise[int]{p})
	ctx, cancel := context.WithCancel(context.Background())
	events := s.Subscribe(ctx)
	cancel()
	_, open := <-events
	assert.False(t, open)
	p.Resolve(1)
	<-s.Done()
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "next", EventNext.String())
	assert.Equal(t, "error", EventError.String())
	assert.Equal(t, "complete", EventComplete.String())
}

func TestThen(t *testing.T) {
	doubled := Then(Resolved(21), func(v int) (int, error) { return v * 2, nil })
	v, err := doubled.Await(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	boom := errors.New("boom")
	called := false
	_, err = Then(Rejected[int](boom), func(v int) (int, error) {
		called = true
		return v, nil
	}).Await(testContext(t))
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
