// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

func TestAddDeduplicatesOutstandingMessage(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	first := store.Add("Title", "same message", "")
	if first == 0 {
		t.Fatal("first Add() returned 0, want assigned id")
	}
	if dup := store.Add("Other Title", "same message", ""); dup != 0 {
		t.Errorf("duplicate Add() = %d, want 0", dup)
	}
	if got := len(store.Active()); got != 1 {
		t.Errorf("active count = %d, want 1", got)
	}

	// After removal the same message is accepted again.
	store.Remove(first)
	if id := store.Add("Title", "same message", ""); id == 0 {
		t.Error("Add() after removal = 0, want assigned id")
	}
}

func TestNotificationsExpire(t *testing.T) {
	t.Parallel()

	store := NewStore(30 * time.Millisecond)
	defer store.Close()

	store.Add("Title", "short lived", "")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(store.Active()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("notification did not expire within 2s")
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	id := store.Add("Title", "message", "")
	store.Remove(id)
	store.Remove(id)
	store.Remove(999999)

	if got := len(store.Active()); got != 0 {
		t.Errorf("active count = %d, want 0", got)
	}
}

func TestIDsAreUnique(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		id := store.Add("Title", time.Now().String()+string(rune('a'+i)), "")
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestSubscribeReceivesBroadcast(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := store.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	store.Add("Achievement Earned", "Top Scorer (+50 points)", "")

	select {
	case msg := <-messages:
		var n models.Notification
		if err := json.Unmarshal(msg.Payload, &n); err != nil {
			t.Fatalf("unmarshal broadcast payload: %v", err)
		}
		msg.Ack()
		if n.Message != "Top Scorer (+50 points)" {
			t.Errorf("broadcast message = %q, want Top Scorer (+50 points)", n.Message)
		}
	case <-ctx.Done():
		t.Fatal("no broadcast received within 2s")
	}
}

func TestSlotSetOverwritesAndTakeDrains(t *testing.T) {
	t.Parallel()

	slot := &Slot{}

	if _, ok := slot.Take(); ok {
		t.Error("Take() on empty slot returned ok")
	}

	slot.Set(Pending{Title: "first"})
	slot.Set(Pending{Title: "second"})

	got, ok := slot.Take()
	if !ok || got.Title != "second" {
		t.Errorf("Take() = %+v ok=%v, want second", got, ok)
	}
	if _, ok := slot.Take(); ok {
		t.Error("second Take() returned ok, want drained")
	}
}

func TestSlotPollerDelivers(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	slot := &Slot{}
	poller := NewSlotPoller(slot, store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	slot.Set(Pending{Title: "Achievement Earned", Message: "MVP (+25 points)"})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, n := range store.Active() {
			if n.Message == "MVP (+25 points)" {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("slot poller did not deliver within 2s")
}

func TestSlotPollerStartIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	defer store.Close()

	poller := NewSlotPoller(&Slot{}, store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}
