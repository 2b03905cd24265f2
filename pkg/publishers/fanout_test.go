package publishers

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  atomic.Int32
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls.Add(1)
	return s.err
}

type closingPublisher struct {
	stubPublisher
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: TypeHTTP}
	bad := &stubPublisher{id: "bad", typ: TypeSQS, err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("nil publishers must be dropped, size %d", fanout.Size())
	}

	count, err := fanout.Publish(context.Background(), Event{RunID: "r1"})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil || !strings.Contains(err.Error(), "sqs publisher[bad]") {
		t.Fatalf("expected aggregated error naming the publisher, got %v", err)
	}
	if ok.calls.Load() != 1 || bad.calls.Load() != 1 {
		t.Fatalf("every publisher must be called once")
	}
}

func TestFanoutEmpty(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout must be a no-op, got %d %v", n, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFanoutCloseReleasesClosers(t *testing.T) {
	c := &closingPublisher{stubPublisher{id: "ps", typ: TypePubSub}}
	fanout := NewFanout([]Publisher{&stubPublisher{id: "h", typ: TypeHTTP}, c})
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Fatal("closer was not closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Type() != TypeHTTP || pubs[0].ID() != "hook" {
		t.Fatalf("unexpected publishers %v", pubs)
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), NewRegistry(nil), []PublisherConfig{{ID: "x", Type: "kafka"}}, nil)
	if err == nil {
		t.Fatal("expected error for unregistered type")
	}
}
