package publishers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/samvad-hq/samvad-recipes/internal/logger"
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
func (s *stubPublisher) Publish(context.Context, CatalogEvent) error {
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
	cause := errors.New("failed")
	ok := &stubPublisher{id: "ok", typ: TypeHTTP}
	bad := &stubPublisher{id: "bad", typ: TypeSQS, err: cause}
	fanout := NewFanout([]Publisher{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("nil publishers must be skipped, size=%d", fanout.Size())
	}

	count, err := fanout.Publish(context.Background(), CatalogEvent{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected joined error to wrap cause, got %v", err)
	}
	if ok.calls.Load() != 1 || bad.calls.Load() != 1 {
		t.Fatalf("every publisher must be called once: ok=%d bad=%d", ok.calls.Load(), bad.calls.Load())
	}
}

func TestFanoutEmpty(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), CatalogEvent{}); n != 0 || err != nil {
		t.Fatalf("nil fanout publish = %d, %v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil {
		t.Fatal("nil fanout must be inert")
	}
}

func TestFanoutCloseOnlyClosers(t *testing.T) {
	c := &closingPublisher{stubPublisher{id: "c", typ: TypePubSub}}
	fanout := NewFanout([]Publisher{&stubPublisher{id: "s", typ: TypeHTTP}, c})

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Fatal("closer was not closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	pubs, err := DefaultRegistry().BuildAll(context.Background(), []PublisherConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com", Method: "POST", TimeoutSeconds: 1}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 || pubs[0].ID() != "hook" || pubs[0].Type() != TypeHTTP {
		t.Fatalf("unexpected publishers %#v", pubs)
	}
}

func TestRegistryUnknownType(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.Build(context.Background(), PublisherConfig{ID: "x", Type: "kafka"}, nil); err == nil {
		t.Fatal("expected error for unregistered type")
	}
	if _, err := reg.Build(context.Background(), PublisherConfig{ID: "x"}, nil); err == nil {
		t.Fatal("expected error for missing type")
	}

	stub := &stubPublisher{id: "k", typ: "kafka"}
	reg.Register(" Kafka ", func(context.Context, PublisherConfig, logger.Logger) (Publisher, error) {
		return stub, nil
	})
	pub, err := reg.Build(context.Background(), PublisherConfig{ID: "k", Type: "kafka"}, nil)
	if err != nil || pub != stub {
		t.Fatalf("registered builder not used: %v", err)
	}
}
