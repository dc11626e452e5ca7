// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package social

import (
	"context"
	"sync"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/logging"
)

// RequestPoller refreshes the incoming friend request set on a fixed
// interval (default 5s). Poll errors are logged and the next tick retries;
// the circuit breaker in the underlying client keeps a dead API from being
// hammered every cycle.
type RequestPoller struct {
	manager  *Manager
	interval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewRequestPoller creates a friend request poller. interval <= 0 selects
// 5s.
func NewRequestPoller(manager *Manager, interval time.Duration) *RequestPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RequestPoller{
		manager:  manager,
		interval: interval,
	}
}

// Start begins polling. Safe to call multiple times; subsequent calls are
// no-ops while running.
func (p *RequestPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		logging.Warn().Msg("Friend request poller already running")
		return
	}

	p.running = true
	p.stopChan = make(chan struct{})
	p.wg.Add(1)

	go p.pollLoop(ctx)

	logging.Info().
		Dur("interval", p.interval).
		Msg("Started friend request poller")
}

// Stop halts polling and waits for the loop to exit.
func (p *RequestPoller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	logging.Info().Msg("Stopped friend request poller")
}

func (p *RequestPoller) pollLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *RequestPoller) pollOnce(ctx context.Context) {
	if err := p.manager.PollOnce(ctx); err != nil {
		logging.Warn().Err(err).Msg("Friend request poll failed")
	}
}
