// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

/*
manager.go - Friend Relationship Manager

Holds the three relationship sets of the signed-in user: accepted
friends, incoming pending requests, and the current search result page.
All mutations are fail-safe: the API call goes first, local state changes
only on success, and a failed call leaves the sets exactly as they were.

The incoming set is additionally refreshed by a background poller (see
poller.go) which diffs by relationship id and emits one notification per
newly seen request.
*/

//nolint:staticcheck // File documentation, not package doc
package social

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

// PollAPI is the read surface the manager polls. Satisfied by
// api.CircuitBreakerClient.
type PollAPI interface {
	GetFriends(ctx context.Context, userID int) ([]models.FriendRelationship, error)
	GetFriendRequests(ctx context.Context, userID int) ([]models.FriendRelationship, error)
}

// UserAPI is the user-triggered surface. Satisfied by api.Client directly:
// these calls bypass the circuit breaker.
type UserAPI interface {
	SearchUsers(ctx context.Context, term string, userID int) ([]models.FriendRelationship, error)
	SendFriendRequest(ctx context.Context, senderID, receiverID int) error
	AcceptFriendRequest(ctx context.Context, requestID int) error
	DeclineFriendRequest(ctx context.Context, requestID int) error
	RemoveFriend(ctx context.Context, friendshipID int) error
}

// Notifier receives user-facing notifications. Satisfied by notify.Store.
type Notifier interface {
	Add(title, msg, iconURL string) int64
}

// DefaultSearchDebounce is the quiet period before a search term is sent
// to the server.
const DefaultSearchDebounce = 400 * time.Millisecond

// Manager owns the relationship state of one signed-in user.
type Manager struct {
	poll     PollAPI
	api      UserAPI
	notifier Notifier
	userID   int
	debounce time.Duration

	mu       sync.RWMutex
	friends  []models.FriendRelationship
	incoming []models.FriendRelationship
	results  []models.FriendRelationship

	searchMu    sync.Mutex
	searchTimer *time.Timer
}

// NewManager creates a relationship manager for the given user.
// debounce <= 0 selects DefaultSearchDebounce.
func NewManager(poll PollAPI, userAPI UserAPI, notifier Notifier, userID int, debounce time.Duration) *Manager {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &Manager{
		poll:     poll,
		api:      userAPI,
		notifier: notifier,
		userID:   userID,
		debounce: debounce,
	}
}

// LoadInitial fetches friends and incoming requests concurrently. On any
// failure the local sets are left untouched and the first error is
// returned.
func (m *Manager) LoadInitial(ctx context.Context) error {
	var (
		wg          sync.WaitGroup
		friends     []models.FriendRelationship
		incoming    []models.FriendRelationship
		friendsErr  error
		incomingErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		friends, friendsErr = m.poll.GetFriends(ctx, m.userID)
	}()
	go func() {
		defer wg.Done()
		incoming, incomingErr = m.poll.GetFriendRequests(ctx, m.userID)
	}()
	wg.Wait()

	if friendsErr != nil {
		return fmt.Errorf("load friends: %w", friendsErr)
	}
	if incomingErr != nil {
		return fmt.Errorf("load friend requests: %w", incomingErr)
	}

	m.mu.Lock()
	m.friends = friends
	m.incoming = incoming
	m.mu.Unlock()

	logging.Debug().
		Int("friends", len(friends)).
		Int("incoming", len(incoming)).
		Msg("Loaded initial relationship state")
	return nil
}

// PollOnce refreshes the incoming set from the server, emitting one
// notification per request id not seen in the previous set. The whole set
// is replaced wholesale so server-side removals propagate too.
func (m *Manager) PollOnce(ctx context.Context) error {
	fetched, err := m.poll.GetFriendRequests(ctx, m.userID)
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("friend_requests", "error").Inc()
		return fmt.Errorf("poll friend requests: %w", err)
	}

	m.mu.Lock()
	known := make(map[int]struct{}, len(m.incoming))
	for i := range m.incoming {
		known[m.incoming[i].ID] = struct{}{}
	}

	var fresh []models.FriendRelationship
	for i := range fetched {
		if _, ok := known[fetched[i].ID]; !ok {
			fresh = append(fresh, fetched[i])
		}
	}
	m.incoming = fetched
	m.mu.Unlock()

	for i := range fresh {
		m.notifier.Add(
			"New Friend Request",
			fmt.Sprintf("You have a new friend request from %s", fresh[i].User.Name),
			fresh[i].Profile.ProfilePicture,
		)
	}

	metrics.PollCyclesTotal.WithLabelValues("friend_requests", "success").Inc()
	if len(fresh) > 0 {
		metrics.PollNewItems.WithLabelValues("friend_requests").Add(float64(len(fresh)))
	}
	return nil
}

// Search schedules a debounced directory search. An empty or
// whitespace-only term cancels any pending search and clears results
// without touching the network. A failed search keeps the previous result
// page.
func (m *Manager) Search(ctx context.Context, term string) {
	term = strings.TrimSpace(term)

	m.searchMu.Lock()
	defer m.searchMu.Unlock()

	if m.searchTimer != nil {
		m.searchTimer.Stop()
		m.searchTimer = nil
	}

	if term == "" {
		m.mu.Lock()
		m.results = nil
		m.mu.Unlock()
		return
	}

	m.searchTimer = time.AfterFunc(m.debounce, func() {
		results, err := m.api.SearchUsers(ctx, term, m.userID)
		if err != nil {
			logging.Warn().Err(err).Str("term", term).Msg("User search failed, keeping previous results")
			return
		}
		m.mu.Lock()
		m.results = results
		m.mu.Unlock()
	})
}

// SendRequest sends a friend request to receiverID. On success the
// receiver is removed from the current search results and a confirmation
// notification is emitted.
func (m *Manager) SendRequest(ctx context.Context, receiverID int) error {
	if err := m.api.SendFriendRequest(ctx, m.userID, receiverID); err != nil {
		return fmt.Errorf("send friend request: %w", err)
	}

	m.mu.Lock()
	for i := range m.results {
		if m.results[i].User.UserID == receiverID {
			m.results = append(m.results[:i], m.results[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.notifier.Add("Friend Request Sent", "Your friend request was sent", "")
	return nil
}

// Accept accepts an incoming request, removes it locally and refetches
// the friends set so the new friendship id is authoritative.
func (m *Manager) Accept(ctx context.Context, requestID int) error {
	if err := m.api.AcceptFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("accept friend request: %w", err)
	}

	m.removeIncoming(requestID)

	friends, err := m.poll.GetFriends(ctx, m.userID)
	if err != nil {
		// The acceptance itself succeeded; the stale friends set heals on
		// the next refresh.
		logging.Warn().Err(err).Msg("Friends refresh after accept failed")
		return nil
	}
	m.mu.Lock()
	m.friends = friends
	m.mu.Unlock()
	return nil
}

// Decline declines an incoming request and removes it locally.
func (m *Manager) Decline(ctx context.Context, requestID int) error {
	if err := m.api.DeclineFriendRequest(ctx, requestID); err != nil {
		return fmt.Errorf("decline friend request: %w", err)
	}
	m.removeIncoming(requestID)
	return nil
}

// RemoveFriend deletes an accepted friendship and removes it locally.
func (m *Manager) RemoveFriend(ctx context.Context, friendshipID int) error {
	if err := m.api.RemoveFriend(ctx, friendshipID); err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}

	m.mu.Lock()
	for i := range m.friends {
		if m.friends[i].ID == friendshipID {
			m.friends = append(m.friends[:i], m.friends[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	return nil
}

// Friends returns a snapshot of the accepted friendships.
func (m *Manager) Friends() []models.FriendRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshot(m.friends)
}

// Incoming returns a snapshot of the incoming pending requests.
func (m *Manager) Incoming() []models.FriendRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshot(m.incoming)
}

// Results returns a snapshot of the current search results.
func (m *Manager) Results() []models.FriendRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshot(m.results)
}

func (m *Manager) removeIncoming(requestID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.incoming {
		if m.incoming[i].ID == requestID {
			m.incoming = append(m.incoming[:i], m.incoming[i+1:]...)
			return
		}
	}
}

func snapshot(in []models.FriendRelationship) []models.FriendRelationship {
	out := make([]models.FriendRelationship, len(in))
	copy(out, in)
	return out
}
