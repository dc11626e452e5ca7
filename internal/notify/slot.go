// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package notify

import "sync"

// Pending is a notification queued for hand-off through a Slot.
type Pending struct {
	Title   string
	Message string
	IconURL string
}

// Slot is a single-value hand-off point between a producer (the
// achievement ledger) and the slot poller. Set overwrites any unclaimed
// value; Take drains it. A notification set and overwritten between two
// poll ticks is lost, which is acceptable for this class of hint.
type Slot struct {
	mu      sync.Mutex
	pending *Pending
}

// Set queues a notification for the next poll tick, replacing any
// unclaimed one.
func (s *Slot) Set(p Pending) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &p
}

// Take removes and returns the queued notification, if any.
func (s *Slot) Take() (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Pending{}, false
	}
	p := *s.pending
	s.pending = nil
	return p, true
}
