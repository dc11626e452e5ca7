// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package cache

import (
	"testing"
	"time"
)

func TestAddAndGet(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](4, time.Minute)
	c.Add("a", "one")

	got, ok := c.Get("a")
	if !ok || got != "one" {
		t.Errorf("Get(a) = %q, %v, want one, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) = true, want false")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	// Touch a so b becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) = false")
	}

	c.Add("c", 3)
	if c.Contains("b") {
		t.Error("b survived eviction, want LRU entry evicted")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Error("a or c missing after eviction")
	}
}

func TestEntriesExpire(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, 20*time.Millisecond)
	c.Add("a", 1)

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) = true after TTL, want expired")
	}
}

func TestAddRefreshesExisting(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, time.Minute)
	c.Add("a", 1)
	c.Add("a", 2)

	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Get(a) = %d, want refreshed value 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestRemoveAndCleanup(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](4, 20*time.Millisecond)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	time.Sleep(50 * time.Millisecond)
	c.CleanupExpired()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after cleanup, want 0", c.Len())
	}
}
