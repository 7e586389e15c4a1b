package server

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/widget"
)

func newTestStore(ttl time.Duration, max int) (*Store, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(func(display details.Display) (*widget.Widget, error) {
		return widget.New(widget.WithDetailsDisplay(display))
	}, nil, ttl, max)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestStore_ExpiresIdleInstances(t *testing.T) {
	store, now := newTestStore(time.Minute, 0)

	first, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := store.Get(first.ID); !ok {
		t.Fatalf("expected instance")
	}

	*now = now.Add(2 * time.Minute)
	if _, ok := store.Get(first.ID); ok {
		t.Fatalf("expected instance expired")
	}

	second, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	*now = now.Add(30 * time.Second)
	if _, ok := store.Get(second.ID); !ok {
		t.Fatalf("access must keep the instance alive")
	}
	*now = now.Add(45 * time.Second)
	if removed := store.Sweep(); removed != 0 {
		t.Fatalf("expected nothing swept, got %d", removed)
	}
	*now = now.Add(2 * time.Minute)
	if removed := store.Sweep(); removed != 1 || store.Len() != 0 {
		t.Fatalf("expected one instance swept, got %d (len %d)", removed, store.Len())
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store, now := newTestStore(0, 2)

	a, _ := store.Create()
	*now = now.Add(time.Second)
	b, _ := store.Create()
	*now = now.Add(time.Second)
	store.Get(a.ID)
	*now = now.Add(time.Second)

	c, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := store.Get(b.ID); ok {
		t.Fatalf("expected least recently used instance evicted")
	}
	for _, id := range []string{a.ID, c.ID} {
		if _, ok := store.Get(id); !ok {
			t.Fatalf("expected instance %s kept", id)
		}
	}
}

func TestStore_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	store := NewStore(func(details.Display) (*widget.Widget, error) { return nil, boom }, nil, 0, 0)
	if _, err := store.Create(); !errors.Is(err, boom) {
		t.Fatalf("expected factory error, got %v", err)
	}
}

func TestInstance_Notice(t *testing.T) {
	instance := &Instance{}
	instance.SetNotice("hello")
	if got := instance.TakeNotice(); got != "hello" {
		t.Fatalf("unexpected notice %q", got)
	}
	if got := instance.TakeNotice(); got != "" {
		t.Fatalf("notice must be cleared, got %q", got)
	}
}
