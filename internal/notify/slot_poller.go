// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
)

// SlotPoller drains a Slot into a Store on a fixed interval (default 1s).
// The interval decouples producers from notification display: producers
// only ever touch the slot, and the poller is the single writer into the
// store for this path.
type SlotPoller struct {
	slot     *Slot
	store    *Store
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSlotPoller creates a slot poller. interval <= 0 selects 1s.
func NewSlotPoller(slot *Slot, store *Store, interval time.Duration) *SlotPoller {
	if interval <= 0 {
		interval = time.Second
	}
	return &SlotPoller{
		slot:     slot,
		store:    store,
		interval: interval,
	}
}

// Start begins polling. Safe to call multiple times; subsequent calls are
// no-ops while running.
func (p *SlotPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		logging.Warn().Msg("Slot poller already running")
		return
	}

	p.running = true
	p.stopChan = make(chan struct{})
	p.wg.Add(1)

	go p.pollLoop(ctx)

	logging.Info().
		Dur("interval", p.interval).
		Msg("Started notification slot poller")
}

// Stop halts polling and waits for the loop to exit.
func (p *SlotPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	logging.Info().Msg("Stopped notification slot poller")
}

func (p *SlotPoller) pollLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.drain()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.drain()
		}
	}
}

// drain moves at most one pending notification from the slot to the store.
func (p *SlotPoller) drain() {
	pending, ok := p.slot.Take()
	if !ok {
		metrics.PollCyclesTotal.WithLabelValues("notification_slot", "empty").Inc()
		return
	}

	p.store.Add(pending.Title, pending.Message, pending.IconURL)
	metrics.PollCyclesTotal.WithLabelValues("notification_slot", "delivered").Inc()
	metrics.PollNewItems.WithLabelValues("notification_slot").Inc()
}
