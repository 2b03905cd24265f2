// Package fetchstate tracks the lifecycle of network-backed reads.
//
// A Tracker owns one State. Begin moves it to Loading and hands back an
// Attempt; running the Attempt yields a Result that Settle applies exactly
// once. Starting a new attempt cancels the previous attempt's context and
// makes its Result stale, so a superseded response can never overwrite state.
package fetchstate

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Status is the phase of a fetch.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// FallbackMessage is used when a failure carries no text of its own.
const FallbackMessage = "An error occurred"

// State is the read-only view a consumer renders from.
type State[T any] struct {
	Status Status
	Data   T
	Err    string
	// Key identifies what the current or last attempt fetched.
	Key string
}

// IsLoading reports whether a fetch is in flight.
func (s State[T]) IsLoading() bool { return s.Status == Loading }

// HasError reports whether the last settled attempt failed.
func (s State[T]) HasError() bool { return s.Err != "" }

// Message reduces err to a single human readable line.
func Message(err error) string {
	if err == nil {
		return FallbackMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

// Tracker holds fetch state for one consumer.
type Tracker[T any] struct {
	// notify holds each transition together with its observer call.
	notify sync.Mutex

	mu       sync.Mutex
	state    State[T]
	prev     State[T]
	gen      uint64
	cancel   context.CancelFunc
	observer func(State[T])
}

// NewTracker returns an Idle tracker whose data starts as initial.
func NewTracker[T any](initial T) *Tracker[T] {
	return &Tracker[T]{state: State[T]{Status: Idle, Data: initial}}
}

// Observe registers fn to receive every state transition in order. fn must
// not call back into Begin, Cancel or Settle synchronously.
func (t *Tracker[T]) Observe(fn func(State[T])) {
	t.mu.Lock()
	t.observer = fn
	t.mu.Unlock()
}

// Snapshot returns the current state.
func (t *Tracker[T]) Snapshot() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Begin supersedes any in-flight attempt, moves to Loading and returns the
// attempt that will call fn with a context derived from parent.
func (t *Tracker[T]) Begin(parent context.Context, key string, fn func(ctx context.Context) (T, error)) *Attempt[T] {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	t.notify.Lock()
	defer t.notify.Unlock()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	if t.state.Status != Loading {
		t.prev = t.state
	}
	t.gen++
	t.cancel = cancel
	t.state.Status = Loading
	t.state.Key = key
	snap := t.state
	gen := t.gen
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(snap)
	}

	return &Attempt[T]{
		ID:  uuid.NewString(),
		Key: key,
		gen: gen,
		ctx: ctx,
		fn:  fn,
	}
}

// Cancel aborts any in-flight attempt. Its result becomes stale and the
// tracker returns to the state it held before that attempt began.
func (t *Tracker[T]) Cancel() {
	t.notify.Lock()
	defer t.notify.Unlock()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
	if t.state.Status != Loading {
		t.mu.Unlock()
		return
	}
	t.state = t.prev
	snap := t.state
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(snap)
	}
}

// Settle applies r if it belongs to the current attempt. It returns false for
// stale or already-settled results, leaving state untouched.
func (t *Tracker[T]) Settle(r Result[T]) bool {
	t.notify.Lock()
	defer t.notify.Unlock()

	t.mu.Lock()
	if r.gen != t.gen || t.state.Status != Loading {
		t.mu.Unlock()
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if r.Err != nil {
		// prior data is kept on failure
		t.state.Status = Failure
		t.state.Err = Message(r.Err)
	} else {
		t.state.Status = Success
		t.state.Data = r.Value
		t.state.Err = ""
	}
	snap := t.state
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(snap)
	}
	return true
}

// Attempt is one pending fetch created by Begin.
type Attempt[T any] struct {
	// ID correlates log lines for this attempt.
	ID  string
	Key string
	gen uint64
	ctx context.Context
	fn  func(ctx context.Context) (T, error)
}

// Context returns the attempt's cancellable context.
func (a *Attempt[T]) Context() context.Context { return a.ctx }

// Run performs the fetch. It blocks and is meant to run off the UI loop.
func (a *Attempt[T]) Run() Result[T] {
	v, err := a.fn(a.ctx)
	return Result[T]{Value: v, Err: err, AttemptID: a.ID, Key: a.Key, gen: a.gen}
}

// Result is the outcome of an Attempt, settled with Tracker.Settle.
type Result[T any] struct {
	Value     T
	Err       error
	AttemptID string
	Key       string
	gen       uint64
}
