// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

type fakeAPI struct {
	mu sync.Mutex

	events   []models.Event
	event    *models.Event
	pending  []models.JoinRequest
	invites  []models.Invite
	user     *models.User
	userErr  error
	callErrs map[string]error

	decideCalls int
}

func (f *fakeAPI) failOn(op string, err error) {
	if f.callErrs == nil {
		f.callErrs = make(map[string]error)
	}
	f.callErrs[op] = err
}

func (f *fakeAPI) errFor(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callErrs[op]
}

func (f *fakeAPI) GetEvents(ctx context.Context) ([]models.Event, error) {
	if err := f.errFor("GetEvents"); err != nil {
		return nil, err
	}
	return append([]models.Event(nil), f.events...), nil
}

func (f *fakeAPI) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	if err := f.errFor("GetEvent"); err != nil {
		return nil, err
	}
	if f.event != nil {
		e := *f.event
		return &e, nil
	}
	return &models.Event{EventID: eventID}, nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if err := f.errFor("CreateEvent"); err != nil {
		return nil, err
	}
	event.EventID = 100
	return &event, nil
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if err := f.errFor("UpdateEvent"); err != nil {
		return nil, err
	}
	return &event, nil
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, eventID int) error {
	return f.errFor("DeleteEvent")
}

func (f *fakeAPI) JoinEvent(ctx context.Context, eventID, userID int) error {
	return f.errFor("JoinEvent")
}

func (f *fakeAPI) GetJoinRequests(ctx context.Context, creatorUserID int) ([]models.JoinRequest, error) {
	if err := f.errFor("GetJoinRequests"); err != nil {
		return nil, err
	}
	return append([]models.JoinRequest(nil), f.pending...), nil
}

func (f *fakeAPI) ApproveJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error {
	f.mu.Lock()
	f.decideCalls++
	f.mu.Unlock()
	return f.errFor("ApproveJoinRequest")
}

func (f *fakeAPI) RejectJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error {
	f.mu.Lock()
	f.decideCalls++
	f.mu.Unlock()
	return f.errFor("RejectJoinRequest")
}

func (f *fakeAPI) GetInvites(ctx context.Context, userID int) ([]models.Invite, error) {
	if err := f.errFor("GetInvites"); err != nil {
		return nil, err
	}
	return append([]models.Invite(nil), f.invites...), nil
}

func (f *fakeAPI) CreateInvite(ctx context.Context, eventID, userID int) (*models.Invite, error) {
	if err := f.errFor("CreateInvite"); err != nil {
		return nil, err
	}
	return &models.Invite{InviteID: 1, EventID: eventID, UserID: userID, Status: models.InviteOffered}, nil
}

func (f *fakeAPI) AcceptInvite(ctx context.Context, inviteID int) error {
	return f.errFor("AcceptInvite")
}

func (f *fakeAPI) RejectInvite(ctx context.Context, inviteID int) error {
	return f.errFor("RejectInvite")
}

func (f *fakeAPI) GetUser(ctx context.Context, userID int) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	if f.user != nil {
		u := *f.user
		return &u, nil
	}
	return &models.User{UserID: userID}, nil
}

type staticGeo struct {
	geo models.Geolocation
}

func (s *staticGeo) Locate(_ context.Context) (*models.Geolocation, bool) {
	g := s.geo
	return &g, true
}

var testUser = models.User{UserID: 1, Name: "Sam"}

func newTestWorkflow(api *fakeAPI) *Workflow {
	return NewWorkflow(api, &staticGeo{}, testUser, nil, nil)
}

func pendingRequest(eventID, userID int) models.JoinRequest {
	return models.JoinRequest{
		EventID: eventID,
		UserID:  userID,
		Status:  models.ParticipationPending,
		User:    models.User{UserID: userID},
	}
}

func TestApproveRemovesPairAndRepeatFails(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{pending: []models.JoinRequest{pendingRequest(5, 7), pendingRequest(5, 8)}}
	w := newTestWorkflow(api)
	if err := w.LoadPending(context.Background()); err != nil {
		t.Fatalf("LoadPending() error = %v", err)
	}

	if err := w.Approve(context.Background(), 5, 7); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got := len(w.Pending()); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}

	err := w.Approve(context.Background(), 5, 7)
	if !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("repeat Approve() error = %v, want ErrRequestNotFound", err)
	}
	if api.decideCalls != 1 {
		t.Errorf("decide calls = %d, want 1 (repeat must not reach the API)", api.decideCalls)
	}
}

func TestRejectUnknownPairFails(t *testing.T) {
	t.Parallel()

	w := newTestWorkflow(&fakeAPI{})
	if err := w.Reject(context.Background(), 5, 99); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("Reject() error = %v, want ErrRequestNotFound", err)
	}
}

func TestApproveAPIFailureKeepsPending(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{pending: []models.JoinRequest{pendingRequest(5, 7)}}
	api.failOn("ApproveJoinRequest", errors.New("api down"))
	w := newTestWorkflow(api)
	if err := w.LoadPending(context.Background()); err != nil {
		t.Fatalf("LoadPending() error = %v", err)
	}

	if err := w.Approve(context.Background(), 5, 7); err == nil {
		t.Fatal("Approve() error = nil, want error")
	}
	if got := len(w.Pending()); got != 1 {
		t.Errorf("pending = %d after failed approve, want 1", got)
	}
}

func TestJoinAppendsPendingParticipant(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{events: []models.Event{{EventID: 5, Title: "Match"}}}
	w := newTestWorkflow(api)
	if err := w.LoadEvents(context.Background()); err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}

	if err := w.Join(context.Background(), 5); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	evs := w.Events()
	if len(evs[0].Participants) != 1 {
		t.Fatalf("participants = %d, want 1", len(evs[0].Participants))
	}
	p := evs[0].Participants[0]
	if p.User.UserID != testUser.UserID || p.Status != models.ParticipationPending {
		t.Errorf("participant = %+v, want pending self", p)
	}

	// Repeat join must not duplicate the entry.
	if err := w.Join(context.Background(), 5); err != nil {
		t.Fatalf("repeat Join() error = %v", err)
	}
	if got := len(w.Events()[0].Participants); got != 1 {
		t.Errorf("participants after repeat join = %d, want 1", got)
	}
}

func TestRosterSynthesizesCreator(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		event: &models.Event{
			EventID:       5,
			CreatorUserID: 2,
			Participants:  []models.Participant{{User: models.User{UserID: 7}, Status: models.ParticipationApproved}},
		},
		user: &models.User{UserID: 2, Name: "Casey"},
	}
	w := newTestWorkflow(api)

	roster, err := w.Roster(context.Background(), 5)
	if err != nil {
		t.Fatalf("Roster() error = %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster size = %d, want 2", len(roster))
	}
	if roster[0].User.Name != "Casey" || roster[0].Status != models.ParticipationApproved {
		t.Errorf("creator row = %+v, want approved Casey first", roster[0])
	}
}

func TestRosterUsesPlaceholderWhenLookupFails(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		event:   &models.Event{EventID: 5, CreatorUserID: 2},
		userErr: errors.New("lookup failed"),
	}
	w := newTestWorkflow(api)

	roster, err := w.Roster(context.Background(), 5)
	if err != nil {
		t.Fatalf("Roster() error = %v", err)
	}
	if len(roster) != 1 || roster[0].User.Name != "Event Creator" {
		t.Errorf("roster = %+v, want placeholder creator", roster)
	}
}

func TestRosterDoesNotDuplicateCreator(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		event: &models.Event{
			EventID:       5,
			CreatorUserID: 2,
			Participants:  []models.Participant{{User: models.User{UserID: 2, Name: "Casey"}, Status: models.ParticipationApproved}},
		},
	}
	w := newTestWorkflow(api)

	roster, err := w.Roster(context.Background(), 5)
	if err != nil {
		t.Fatalf("Roster() error = %v", err)
	}
	if len(roster) != 1 {
		t.Errorf("roster size = %d, want 1 (no duplicate creator)", len(roster))
	}
}

func TestDeleteConfirmationGate(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{events: []models.Event{{EventID: 5, Title: "Match"}}}
	api.failOn("DeleteEvent", errors.New("must not be called"))

	declined := NewWorkflow(api, &staticGeo{}, testUser, func(title string) bool {
		if title != "Match" {
			t.Errorf("confirm title = %q, want Match", title)
		}
		return false
	}, nil)
	if err := declined.LoadEvents(context.Background()); err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}

	if err := declined.Delete(context.Background(), 5); !errors.Is(err, ErrDeleteCancelled) {
		t.Errorf("Delete() error = %v, want ErrDeleteCancelled", err)
	}
	if got := len(declined.Events()); got != 1 {
		t.Errorf("events = %d after declined delete, want 1", got)
	}
}

func TestDeleteRemovesLocally(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{events: []models.Event{{EventID: 5, Title: "Match"}}}
	w := newTestWorkflow(api)
	if err := w.LoadEvents(context.Background()); err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}

	if err := w.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := len(w.Events()); got != 0 {
		t.Errorf("events = %d after delete, want 0", got)
	}
}

func TestAcceptInviteRefetchesList(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{invites: []models.Invite{
		{InviteID: 1, Status: models.InviteOffered},
		{InviteID: 2, Status: models.InviteOffered},
	}}
	w := newTestWorkflow(api)
	if err := w.LoadInvites(context.Background()); err != nil {
		t.Fatalf("LoadInvites() error = %v", err)
	}

	// Server drops the accepted invite from the open list.
	api.mu.Lock()
	api.invites = []models.Invite{{InviteID: 2, Status: models.InviteOffered}}
	api.mu.Unlock()

	if err := w.AcceptInvite(context.Background(), 1); err != nil {
		t.Fatalf("AcceptInvite() error = %v", err)
	}
	invites := w.Invites()
	if len(invites) != 1 || invites[0].InviteID != 2 {
		t.Errorf("invites = %+v, want refetched list with id 2", invites)
	}
}

func TestRejectInviteSplicesOne(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{invites: []models.Invite{
		{InviteID: 1, Status: models.InviteOffered},
		{InviteID: 2, Status: models.InviteOffered},
	}}
	w := newTestWorkflow(api)
	if err := w.LoadInvites(context.Background()); err != nil {
		t.Fatalf("LoadInvites() error = %v", err)
	}

	if err := w.RejectInvite(context.Background(), 1); err != nil {
		t.Fatalf("RejectInvite() error = %v", err)
	}
	invites := w.Invites()
	if len(invites) != 1 || invites[0].InviteID != 2 {
		t.Errorf("invites = %+v, want id 1 spliced out", invites)
	}
}

func TestPastAndUpcomingUseInjectedClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	api := &fakeAPI{events: []models.Event{
		{EventID: 1, StartDateTime: now.Add(-2 * time.Hour), EndDateTime: now.Add(-time.Hour)},
		{EventID: 2, StartDateTime: now.Add(time.Hour), EndDateTime: now.Add(2 * time.Hour)},
		{EventID: 3, StartDateTime: now.Add(-time.Hour), EndDateTime: now.Add(time.Hour)},
	}}
	w := NewWorkflow(api, &staticGeo{}, testUser, nil, func() time.Time { return now })
	if err := w.LoadEvents(context.Background()); err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}

	past := w.Past()
	if len(past) != 1 || past[0].EventID != 1 {
		t.Errorf("past = %+v, want only event 1", past)
	}
	upcoming := w.Upcoming()
	if len(upcoming) != 1 || upcoming[0].EventID != 2 {
		t.Errorf("upcoming = %+v, want only event 2", upcoming)
	}
}

func TestNearbyFiltersByRegion(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{events: []models.Event{
		{EventID: 1, Location: "Loftus Park, Pretoria"},
		{EventID: 2, Location: "Camp Nou, Barcelona"},
		{EventID: 3, Location: "Newlands, South Africa"},
	}}
	geo := &staticGeo{geo: models.Geolocation{City: "Pretoria", Country: "South Africa"}}
	w := NewWorkflow(api, geo, testUser, nil, nil)
	if err := w.LoadEvents(context.Background()); err != nil {
		t.Fatalf("LoadEvents() error = %v", err)
	}

	nearby := w.Nearby(context.Background())
	if len(nearby) != 2 {
		t.Fatalf("nearby = %+v, want events 1 and 3", nearby)
	}
	if nearby[0].EventID != 1 || nearby[1].EventID != 3 {
		t.Errorf("nearby = %+v, want events 1 and 3 in order", nearby)
	}
}
