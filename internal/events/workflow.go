// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

/*
workflow.go - Event Join & Approval Workflow

Per-(event, user) participation moves NotRequested -> Pending ->
{Approved, Rejected}. Approval and rejection are terminal: the pair is
removed from the creator's pending set and a repeat decision on the same
pair fails with ErrRequestNotFound rather than silently removing nothing.

Invites are the creator-initiated mirror of join requests but one-shot:
Invited -> Accepted/Declined with no approval step.

All mutations are fail-safe in the same sense as the relationship
manager: API call first, local state second, failure leaves state as-is.
The one deliberate exception is Join, whose Pending participant is
appended optimistically so the roster reflects the request immediately.
*/

//nolint:staticcheck // File documentation, not package doc
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

// Sentinel errors for workflow preconditions.
var (
	// ErrRequestNotFound is returned when a decision targets a
	// (event, user) pair with no pending join request.
	ErrRequestNotFound = errors.New("join request not found")

	// ErrDeleteCancelled is returned when the confirmation gate declines
	// an event deletion.
	ErrDeleteCancelled = errors.New("event deletion cancelled")
)

// API is the remote surface the workflow consumes. Satisfied by
// api.Client.
type API interface {
	GetEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID int) (*models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID int) error
	JoinEvent(ctx context.Context, eventID, userID int) error
	GetJoinRequests(ctx context.Context, creatorUserID int) ([]models.JoinRequest, error)
	ApproveJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error
	RejectJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error
	GetInvites(ctx context.Context, userID int) ([]models.Invite, error)
	CreateInvite(ctx context.Context, eventID, userID int) (*models.Invite, error)
	AcceptInvite(ctx context.Context, inviteID int) error
	RejectInvite(ctx context.Context, inviteID int) error
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// GeoLocator biases the nearby filter. Satisfied by api.IPAPIProvider.
type GeoLocator interface {
	Locate(ctx context.Context) (*models.Geolocation, bool)
}

// ConfirmFunc gates destructive operations. It receives the event title
// and returns whether the user confirmed.
type ConfirmFunc func(title string) bool

// Workflow owns the event, pending join request and invite state of one
// signed-in user.
type Workflow struct {
	api     API
	geo     GeoLocator
	user    models.User
	confirm ConfirmFunc
	now     func() time.Time

	mu      sync.RWMutex
	events  []models.Event
	pending []models.JoinRequest
	invites []models.Invite
}

// NewWorkflow creates an event workflow for the given signed-in user.
// confirm may be nil, in which case deletions are always confirmed. now
// may be nil, in which case time.Now is used.
func NewWorkflow(apiClient API, geo GeoLocator, user models.User, confirm ConfirmFunc, now func() time.Time) *Workflow {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	if now == nil {
		now = time.Now
	}
	return &Workflow{
		api:     apiClient,
		geo:     geo,
		user:    user,
		confirm: confirm,
		now:     now,
	}
}

// LoadEvents replaces the local event list from the server.
func (w *Workflow) LoadEvents(ctx context.Context) error {
	fetched, err := w.api.GetEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	w.mu.Lock()
	w.events = fetched
	w.mu.Unlock()
	return nil
}

// LoadPending replaces the creator's pending join request set from the
// server.
func (w *Workflow) LoadPending(ctx context.Context) error {
	fetched, err := w.api.GetJoinRequests(ctx, w.user.UserID)
	if err != nil {
		return fmt.Errorf("load join requests: %w", err)
	}
	w.mu.Lock()
	w.pending = fetched
	w.mu.Unlock()
	return nil
}

// LoadInvites replaces the local invite list from the server.
func (w *Workflow) LoadInvites(ctx context.Context) error {
	fetched, err := w.api.GetInvites(ctx, w.user.UserID)
	if err != nil {
		return fmt.Errorf("load invites: %w", err)
	}
	w.mu.Lock()
	w.invites = fetched
	w.mu.Unlock()
	return nil
}

// Create creates an event and appends the server's version locally.
func (w *Workflow) Create(ctx context.Context, event models.Event) (*models.Event, error) {
	event.CreatorUserID = w.user.UserID
	created, err := w.api.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	w.mu.Lock()
	w.events = append(w.events, *created)
	w.mu.Unlock()
	return created, nil
}

// Update updates an event and replaces the local copy.
func (w *Workflow) Update(ctx context.Context, event models.Event) (*models.Event, error) {
	updated, err := w.api.UpdateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	w.mu.Lock()
	for i := range w.events {
		if w.events[i].EventID == updated.EventID {
			w.events[i] = *updated
			break
		}
	}
	w.mu.Unlock()
	return updated, nil
}

// Join submits a join request and optimistically appends a Pending
// participant to the local roster so the UI reflects it immediately.
func (w *Workflow) Join(ctx context.Context, eventID int) error {
	if err := w.api.JoinEvent(ctx, eventID, w.user.UserID); err != nil {
		return fmt.Errorf("join event: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.events {
		if w.events[i].EventID != eventID {
			continue
		}
		for j := range w.events[i].Participants {
			if w.events[i].Participants[j].User.UserID == w.user.UserID {
				return nil
			}
		}
		w.events[i].Participants = append(w.events[i].Participants, models.Participant{
			User:   w.user,
			Status: models.ParticipationPending,
		})
		return nil
	}
	return nil
}

// Approve approves the pending join request for (eventID, userID). The
// pair must currently be pending; a repeat decision returns
// ErrRequestNotFound. The participant list is not patched locally, the
// next event refresh carries the authoritative roster.
func (w *Workflow) Approve(ctx context.Context, eventID, userID int) error {
	return w.decide(ctx, eventID, userID, w.api.ApproveJoinRequest)
}

// Reject rejects the pending join request for (eventID, userID) under the
// same precondition as Approve.
func (w *Workflow) Reject(ctx context.Context, eventID, userID int) error {
	return w.decide(ctx, eventID, userID, w.api.RejectJoinRequest)
}

func (w *Workflow) decide(ctx context.Context, eventID, userID int, call func(context.Context, int, int, int) error) error {
	w.mu.RLock()
	found := false
	for i := range w.pending {
		if w.pending[i].EventID == eventID && w.pending[i].UserID == userID {
			found = true
			break
		}
	}
	w.mu.RUnlock()
	if !found {
		return ErrRequestNotFound
	}

	if err := call(ctx, eventID, userID, w.user.UserID); err != nil {
		return fmt.Errorf("decide join request: %w", err)
	}

	w.mu.Lock()
	for i := range w.pending {
		if w.pending[i].EventID == eventID && w.pending[i].UserID == userID {
			w.pending = append(w.pending[:i], w.pending[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// Delete removes an event after the confirmation gate passes. A declined
// confirmation returns ErrDeleteCancelled without any network call.
func (w *Workflow) Delete(ctx context.Context, eventID int) error {
	title := ""
	w.mu.RLock()
	for i := range w.events {
		if w.events[i].EventID == eventID {
			title = w.events[i].Title
			break
		}
	}
	w.mu.RUnlock()

	if !w.confirm(title) {
		return ErrDeleteCancelled
	}

	if err := w.api.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	w.mu.Lock()
	for i := range w.events {
		if w.events[i].EventID == eventID {
			w.events = append(w.events[:i], w.events[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// Invite offers an event to a specific user.
func (w *Workflow) Invite(ctx context.Context, eventID, userID int) error {
	if _, err := w.api.CreateInvite(ctx, eventID, userID); err != nil {
		return fmt.Errorf("create invite: %w", err)
	}
	return nil
}

// AcceptInvite accepts an open invite and refetches the whole invite list
// so server-side side effects (roster membership) are reflected.
func (w *Workflow) AcceptInvite(ctx context.Context, inviteID int) error {
	if err := w.api.AcceptInvite(ctx, inviteID); err != nil {
		return fmt.Errorf("accept invite: %w", err)
	}

	fetched, err := w.api.GetInvites(ctx, w.user.UserID)
	if err != nil {
		// The acceptance went through; the stale invite list heals on the
		// next refresh.
		logging.Warn().Err(err).Msg("Invite refresh after accept failed")
		return nil
	}
	w.mu.Lock()
	w.invites = fetched
	w.mu.Unlock()
	return nil
}

// RejectInvite declines an open invite and splices it out locally.
func (w *Workflow) RejectInvite(ctx context.Context, inviteID int) error {
	if err := w.api.RejectInvite(ctx, inviteID); err != nil {
		return fmt.Errorf("reject invite: %w", err)
	}

	w.mu.Lock()
	for i := range w.invites {
		if w.invites[i].InviteID == inviteID {
			w.invites = append(w.invites[:i], w.invites[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	return nil
}

// Roster returns the participant list for an event with the creator
// synthesized as an implicit Approved participant when the server roster
// does not already carry them. The creator lookup is best-effort: on
// failure a placeholder entry is used so the roster never loses its
// creator row.
func (w *Workflow) Roster(ctx context.Context, eventID int) ([]models.Participant, error) {
	event, err := w.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event roster: %w", err)
	}

	roster := make([]models.Participant, 0, len(event.Participants)+1)
	creatorPresent := false
	for i := range event.Participants {
		if event.Participants[i].User.UserID == event.CreatorUserID {
			creatorPresent = true
		}
		roster = append(roster, event.Participants[i])
	}
	if creatorPresent {
		return roster, nil
	}

	creator := models.User{UserID: event.CreatorUserID, Name: "Event Creator"}
	if u, err := w.api.GetUser(ctx, event.CreatorUserID); err == nil {
		creator = *u
	} else {
		logging.Debug().Err(err).Int("user_id", event.CreatorUserID).Msg("Creator lookup failed, using placeholder")
	}

	roster = append([]models.Participant{{User: creator, Status: models.ParticipationApproved}}, roster...)
	return roster, nil
}

// Upcoming returns the locally cached events that start after now.
func (w *Workflow) Upcoming() []models.Event {
	return w.filter(func(e *models.Event, now time.Time) bool { return e.IsUpcoming(now) })
}

// Past returns the locally cached events that ended before now.
func (w *Workflow) Past() []models.Event {
	return w.filter(func(e *models.Event, now time.Time) bool { return e.IsPast(now) })
}

// Nearby returns the locally cached events whose location mentions the
// caller's city or country. When the geolocation lookup falls back to the
// regional default the filter still applies, just against that region.
func (w *Workflow) Nearby(ctx context.Context) []models.Event {
	geo, _ := w.geo.Locate(ctx)

	city := strings.ToLower(geo.City)
	country := strings.ToLower(geo.Country)

	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []models.Event
	for i := range w.events {
		loc := strings.ToLower(w.events[i].Location)
		if (city != "" && strings.Contains(loc, city)) || (country != "" && strings.Contains(loc, country)) {
			out = append(out, w.events[i])
		}
	}
	return out
}

// Events returns a snapshot of the cached event list.
func (w *Workflow) Events() []models.Event {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.Event, len(w.events))
	copy(out, w.events)
	return out
}

// Pending returns a snapshot of the creator's pending join requests.
func (w *Workflow) Pending() []models.JoinRequest {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.JoinRequest, len(w.pending))
	copy(out, w.pending)
	return out
}

// Invites returns a snapshot of the open invites.
func (w *Workflow) Invites() []models.Invite {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.Invite, len(w.invites))
	copy(out, w.invites)
	return out
}

func (w *Workflow) filter(keep func(*models.Event, time.Time) bool) []models.Event {
	now := w.now()
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []models.Event
	for i := range w.events {
		if keep(&w.events[i], now) {
			out = append(out, w.events[i])
		}
	}
	return out
}
