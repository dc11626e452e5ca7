// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

/*
store.go - Notification Store

Process-wide broadcast of short-lived, deduplicated user-facing events
(friend request received, achievement earned, request sent).

The store is an explicit injectable service, not a hidden singleton:
tests and the application root each construct their own instance. Every
accepted notification is also published on a Watermill GoChannel topic so
any number of subscribers (UI shell, log sink, tests) can observe the
stream without polling Active().

Lifecycle per notification: pending -> expired/removed. Expiry is a fixed
display window (default 5s) scheduled with time.AfterFunc; explicit
removal cancels the timer. Identity is the creation timestamp in
milliseconds, bumped monotonically on collision, which is sufficient to
disambiguate within a <=5s display window.
*/

//nolint:staticcheck // File documentation, not package doc
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

// Topic is the Watermill topic notifications are broadcast on.
const Topic = "notifications"

// DefaultDisplayWindow is how long a notification stays active unless
// removed explicitly.
const DefaultDisplayWindow = 5 * time.Second

// Store holds the active set of notifications. All methods are safe for
// concurrent use.
type Store struct {
	mu     sync.Mutex
	active []models.Notification
	timers map[int64]*time.Timer
	lastID int64

	window time.Duration
	pubsub *gochannel.GoChannel
}

// NewStore creates a notification store with the given display window
// (<=0 selects DefaultDisplayWindow).
func NewStore(window time.Duration) *Store {
	if window <= 0 {
		window = DefaultDisplayWindow
	}
	return &Store{
		timers: make(map[int64]*time.Timer),
		window: window,
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			logging.NewWatermillAdapter(),
		),
	}
}

// Add registers a notification. It is a silent no-op while an identical
// message string is still outstanding. Returns the assigned id, or 0 when
// deduplicated.
func (s *Store) Add(title, msg, iconURL string) int64 {
	s.mu.Lock()

	for i := range s.active {
		if s.active[i].Message == msg {
			s.mu.Unlock()
			metrics.NotificationsDeduplicated.Inc()
			return 0
		}
	}

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	n := models.Notification{ID: id, Title: title, Message: msg, IconURL: iconURL}
	s.active = append(s.active, n)
	s.timers[id] = time.AfterFunc(s.window, func() { s.Remove(id) })
	metrics.NotificationsEmitted.Inc()
	metrics.NotificationsActive.Set(float64(len(s.active)))
	s.mu.Unlock()

	s.publish(&n)
	return id
}

// Remove deletes a notification by id. Idempotent: absent ids are ignored.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	for i := range s.active {
		if s.active[i].ID == id {
			s.active = append(s.active[:i], s.active[i+1:]...)
			break
		}
	}
	metrics.NotificationsActive.Set(float64(len(s.active)))
}

// Active returns a snapshot of the active set in insertion order.
func (s *Store) Active() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.active))
	copy(out, s.active)
	return out
}

// Subscribe returns a channel of broadcast notifications (JSON-encoded
// models.Notification payloads). The subscription ends when ctx is
// cancelled. Subscribers must Ack every message.
func (s *Store) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.pubsub.Subscribe(ctx, Topic)
}

// Close shuts down the broadcast channel and stops all expiry timers.
func (s *Store) Close() error {
	s.mu.Lock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
	return s.pubsub.Close()
}

func (s *Store) publish(n *models.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal notification for broadcast")
		return
	}
	if err := s.pubsub.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		logging.Error().Err(err).Msg("Failed to broadcast notification")
	}
}
