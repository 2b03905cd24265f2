package fetchstate

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type recorder[T any] struct {
	mu     sync.Mutex
	states []State[T]
}

func (r *recorder[T]) observe(s State[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder[T]) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.states))
	for i, s := range r.states {
		out[i] = s.Status
	}
	return out
}

func constant[T any](v T, err error) func(context.Context) (T, error) {
	return func(context.Context) (T, error) { return v, err }
}

func TestTrackerStartsIdle(t *testing.T) {
	tr := NewTracker([]string{})
	s := tr.Snapshot()
	if s.Status != Idle || s.IsLoading() || s.HasError() {
		t.Fatalf("unexpected initial state %+v", s)
	}
	if s.Data == nil {
		t.Fatal("initial data must be preserved")
	}
}

func TestSuccessTransitionsLoadingThenSuccessOnce(t *testing.T) {
	tr := NewTracker(0)
	rec := &recorder[int]{}
	tr.Observe(rec.observe)

	attempt := tr.Begin(context.Background(), "k", constant(42, nil))
	result := attempt.Run()

	if !tr.Settle(result) {
		t.Fatal("first settle must apply")
	}
	if tr.Settle(result) {
		t.Fatal("second settle of the same result must be ignored")
	}

	if got := rec.statuses(); !reflect.DeepEqual(got, []Status{Loading, Success}) {
		t.Fatalf("unexpected transitions %v", got)
	}
	s := tr.Snapshot()
	if s.Data != 42 || s.Err != "" || s.Key != "k" {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestFailureKeepsPriorDataAndSetsMessage(t *testing.T) {
	tr := NewTracker("")
	rec := &recorder[string]{}

	tr.Settle(tr.Begin(context.Background(), "", constant("first", nil)).Run())
	tr.Observe(rec.observe)

	tr.Settle(tr.Begin(context.Background(), "", constant("", errors.New("failed to fetch articles: status 500"))).Run())

	if got := rec.statuses(); !reflect.DeepEqual(got, []Status{Loading, Failure}) {
		t.Fatalf("unexpected transitions %v", got)
	}
	s := tr.Snapshot()
	if s.Data != "first" {
		t.Fatalf("prior data must be preserved, got %q", s.Data)
	}
	if s.Err != "failed to fetch articles: status 500" {
		t.Fatalf("unexpected error %q", s.Err)
	}
}

func TestSuccessClearsPriorError(t *testing.T) {
	tr := NewTracker(0)
	tr.Settle(tr.Begin(context.Background(), "", constant(0, errors.New("boom"))).Run())
	tr.Settle(tr.Begin(context.Background(), "", constant(7, nil)).Run())

	s := tr.Snapshot()
	if s.Status != Success || s.Err != "" || s.Data != 7 {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(errors.New("   ")); got != FallbackMessage {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := Message(nil); got != FallbackMessage {
		t.Fatalf("expected fallback for nil, got %q", got)
	}
	if got := Message(errors.New("x")); got != "x" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestSupersededAttemptIsDiscardedAndCancelled(t *testing.T) {
	tr := NewTracker("")

	first := tr.Begin(context.Background(), "old", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "old", nil
	})
	second := tr.Begin(context.Background(), "new", constant("new", nil))

	select {
	case <-first.Context().Done():
	default:
		t.Fatal("starting a new attempt must cancel the previous one")
	}

	// the newer attempt resolves first, the stale one afterwards
	if !tr.Settle(second.Run()) {
		t.Fatal("current attempt must settle")
	}
	if tr.Settle(first.Run()) {
		t.Fatal("stale attempt must not settle")
	}

	s := tr.Snapshot()
	if s.Data != "new" || s.Key != "new" {
		t.Fatalf("stale result overwrote state: %+v", s)
	}
}

func TestStaleResultDiscardedWhileNewAttemptLoading(t *testing.T) {
	tr := NewTracker("")
	first := tr.Begin(context.Background(), "a", constant("a", nil))
	tr.Begin(context.Background(), "b", constant("b", nil))

	if tr.Settle(first.Run()) {
		t.Fatal("stale result must be discarded")
	}
	if s := tr.Snapshot(); s.Status != Loading || s.Key != "b" {
		t.Fatalf("expected loading for b, got %+v", s)
	}
}

func TestCancelMakesInFlightResultStale(t *testing.T) {
	tr := NewTracker(0)
	attempt := tr.Begin(context.Background(), "", constant(1, nil))
	tr.Cancel()

	if attempt.Context().Err() == nil {
		t.Fatal("expected cancelled context")
	}
	if tr.Settle(attempt.Run()) {
		t.Fatal("cancelled attempt must not settle")
	}
}

func TestCancelRestoresStateBeforeAttempt(t *testing.T) {
	tr := NewTracker(0)
	rec := &recorder[int]{}
	tr.Observe(rec.observe)

	first := tr.Begin(context.Background(), "a", constant(1, nil))
	tr.Begin(context.Background(), "b", constant(2, nil))
	tr.Cancel()

	if s := tr.Snapshot(); s.Status != Idle || s.Key != "" || s.Data != 0 {
		t.Fatalf("expected idle after cancel, got %+v", s)
	}
	if tr.Settle(first.Run()) {
		t.Fatal("superseded attempt must not settle")
	}
	if got := rec.statuses(); !reflect.DeepEqual(got, []Status{Loading, Loading, Idle}) {
		t.Fatalf("unexpected transitions %v", got)
	}

	tr.Settle(tr.Begin(context.Background(), "c", constant(3, nil)).Run())
	tr.Begin(context.Background(), "d", constant(4, nil))
	tr.Cancel()
	if s := tr.Snapshot(); s.Status != Success || s.Key != "c" || s.Data != 3 {
		t.Fatalf("expected settled state for c, got %+v", s)
	}

	// nothing in flight: no transition
	tr.Cancel()
	if n := len(rec.statuses()); n != 7 {
		t.Fatalf("expected 7 transitions, got %d", n)
	}
}

func TestObserverSeesTransitionsInOrderAcrossWriters(t *testing.T) {
	tr := NewTracker(0)
	var mu sync.Mutex
	var seen []State[int]
	tr.Observe(func(s State[int]) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Settle(tr.Begin(context.Background(), "", constant(i, nil)).Run())
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	last := seen[len(seen)-1]
	if final := tr.Snapshot(); last != final {
		t.Fatalf("last observed %+v differs from final state %+v", last, final)
	}
}

func TestAttemptsHaveDistinctIDs(t *testing.T) {
	tr := NewTracker(0)
	a := tr.Begin(context.Background(), "", constant(1, nil))
	b := tr.Begin(context.Background(), "", constant(1, nil))
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct attempt ids, got %q and %q", a.ID, b.ID)
	}
	if r := b.Run(); r.AttemptID != b.ID {
		t.Fatalf("result must carry attempt id")
	}
}

func TestConcurrentSettleAppliesOnce(t *testing.T) {
	tr := NewTracker(0)
	result := tr.Begin(context.Background(), "", constant(5, nil)).Run()

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tr.Settle(result) {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if applied != 1 {
		t.Fatalf("expected exactly one settle, got %d", applied)
	}
}

func TestStatusString(t *testing.T) {
	if Loading.String() != "loading" || Status(99).String() != "unknown" {
		t.Fatal("unexpected status strings")
	}
}
