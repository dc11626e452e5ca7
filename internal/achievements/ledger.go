// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

/*
ledger.go - Achievement Assignment & Point Ledger

Caches the achievement catalog and per-user point totals for display.
The cached totals are maintained by applying the point delta of each
successful assign/unassign; they are display-only and reconciled against
the server by Reload, which refetches profiles.

Assignment is keyed by (userID, achievementID): the same achievement can
be awarded to many participants of one event, but only once per user.
Unassigning an achievement whose id is no longer in the catalog is an
explicit error rather than a zero-point delta that would silently corrupt
the cached total.
*/

//nolint:staticcheck // File documentation, not package doc
package achievements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/models"
	"github.com/EnzoDV08/sportify-client/internal/notify"
)

// Sentinel errors for assignment preconditions.
var (
	// ErrNotInCatalog is returned when the achievement id is not present
	// in the loaded catalog.
	ErrNotInCatalog = errors.New("achievement not in catalog")

	// ErrAlreadyAssigned is returned when the (user, achievement) pair has
	// already been awarded this session.
	ErrAlreadyAssigned = errors.New("achievement already assigned to user")

	// ErrNotAssigned is returned when unassigning a pair that was never
	// assigned this session.
	ErrNotAssigned = errors.New("achievement not assigned to user")
)

// API is the remote surface the ledger consumes. Satisfied by api.Client.
type API interface {
	GetAchievements(ctx context.Context) ([]models.Achievement, error)
	AssignAchievement(ctx context.Context, award models.UserAchievement) error
	UnassignAchievement(ctx context.Context, userID, achievementID, eventID int) error
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
}

type assignmentKey struct {
	userID        int
	achievementID int
}

// Ledger caches the achievement catalog, the session's assignments and
// per-user point totals. All methods are safe for concurrent use.
type Ledger struct {
	api  API
	slot *notify.Slot
	now  func() time.Time

	mu       sync.RWMutex
	catalog  map[int]models.Achievement
	totals   map[int]int
	assigned map[assignmentKey]bool
}

// NewLedger creates a point ledger. slot may be nil when no notification
// hand-off is wanted. now may be nil, in which case time.Now is used.
func NewLedger(apiClient API, slot *notify.Slot, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		api:      apiClient,
		slot:     slot,
		now:      now,
		catalog:  make(map[int]models.Achievement),
		totals:   make(map[int]int),
		assigned: make(map[assignmentKey]bool),
	}
}

// LoadCatalog replaces the cached catalog from the server.
func (l *Ledger) LoadCatalog(ctx context.Context) error {
	fetched, err := l.api.GetAchievements(ctx)
	if err != nil {
		return fmt.Errorf("load achievement catalog: %w", err)
	}

	catalog := make(map[int]models.Achievement, len(fetched))
	for i := range fetched {
		catalog[fetched[i].AchievementID] = fetched[i]
	}

	l.mu.Lock()
	l.catalog = catalog
	l.mu.Unlock()
	return nil
}

// Eligible returns the manually assignable achievements for a sport type,
// excluding auto-generated ones. The sport match is case-insensitive.
func (l *Ledger) Eligible(sportType string) []models.Achievement {
	want := strings.ToLower(sportType)

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Achievement
	for _, a := range l.catalog {
		if a.IsAutoGenerated {
			continue
		}
		if strings.ToLower(a.SportType) != want {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Assign awards an achievement to an event participant. Preconditions:
// the achievement must be in the catalog and the (user, achievement) pair
// must not already be assigned. On success the user's cached total gains
// the achievement's points and an earned-achievement notification is
// queued on the hand-off slot.
func (l *Ledger) Assign(ctx context.Context, userID, eventID, achievementID, awardedBy int) error {
	l.mu.RLock()
	achievement, inCatalog := l.catalog[achievementID]
	already := l.assigned[assignmentKey{userID, achievementID}]
	l.mu.RUnlock()

	if !inCatalog {
		return ErrNotInCatalog
	}
	if already {
		return ErrAlreadyAssigned
	}

	award := models.UserAchievement{
		UserID:          userID,
		AchievementID:   achievementID,
		EventID:         eventID,
		AwardedByUserID: awardedBy,
		DateAwarded:     l.now(),
	}
	if err := l.api.AssignAchievement(ctx, award); err != nil {
		return fmt.Errorf("assign achievement: %w", err)
	}

	l.mu.Lock()
	l.assigned[assignmentKey{userID, achievementID}] = true
	l.totals[userID] += achievement.Points
	l.mu.Unlock()

	if l.slot != nil {
		l.slot.Set(notify.Pending{
			Title:   "Achievement Earned",
			Message: fmt.Sprintf("%s (+%d points)", achievement.Title, achievement.Points),
			IconURL: achievement.IconURL,
		})
	}
	return nil
}

// Unassign revokes a previously awarded achievement, subtracting its
// points from the cached total. The achievement must still be in the
// catalog: without its point value the delta cannot be applied.
func (l *Ledger) Unassign(ctx context.Context, userID, eventID, achievementID int) error {
	l.mu.RLock()
	achievement, inCatalog := l.catalog[achievementID]
	already := l.assigned[assignmentKey{userID, achievementID}]
	l.mu.RUnlock()

	if !inCatalog {
		return ErrNotInCatalog
	}
	if !already {
		return ErrNotAssigned
	}

	if err := l.api.UnassignAchievement(ctx, userID, achievementID, eventID); err != nil {
		return fmt.Errorf("unassign achievement: %w", err)
	}

	l.mu.Lock()
	delete(l.assigned, assignmentKey{userID, achievementID})
	l.totals[userID] -= achievement.Points
	l.mu.Unlock()
	return nil
}

// Reload reconciles the cached totals for the given users against their
// server-side profiles. Users whose profile fetch fails keep their cached
// total; the first error is returned after all fetches were attempted.
func (l *Ledger) Reload(ctx context.Context, userIDs []int) error {
	var firstErr error
	for _, id := range userIDs {
		profile, err := l.api.GetProfile(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("reload profile %d: %w", id, err)
			}
			continue
		}
		l.mu.Lock()
		l.totals[id] = profile.TotalPoints
		l.mu.Unlock()
	}
	return firstErr
}

// Total returns the cached point total for a user. Unknown users total 0.
func (l *Ledger) Total(userID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totals[userID]
}

// Assigned reports whether the (user, achievement) pair was awarded this
// session.
func (l *Ledger) Assigned(userID, achievementID int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.assigned[assignmentKey{userID, achievementID}]
}

// Catalog returns a snapshot of the cached catalog.
func (l *Ledger) Catalog() []models.Achievement {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Achievement, 0, len(l.catalog))
	for _, a := range l.catalog {
		out = append(out, a)
	}
	return out
}
