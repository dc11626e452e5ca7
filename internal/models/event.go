// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

import "time"

// ParticipationStatus is the per-event status of a participant. It is
// distinct from the friend relationship status model.
type ParticipationStatus string

// Participation states for the join/approval workflow.
const (
	ParticipationPending  ParticipationStatus = "Pending"
	ParticipationApproved ParticipationStatus = "Approved"
	ParticipationRejected ParticipationStatus = "Rejected"
)

// Participant is a user's membership entry on an event roster.
type Participant struct {
	User   User                `json:"user"`
	Status ParticipationStatus `json:"status"`
}

// Event is a sports event as returned by the events endpoints.
// StartDateTime <= EndDateTime is assumed, not validated client-side;
// past/upcoming classification is derived from the wall clock at call time.
type Event struct {
	EventID       int           `json:"eventId"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Location      string        `json:"location"`
	Type          string        `json:"type,omitempty"`
	Visibility    string        `json:"visibility,omitempty"`
	Status        string        `json:"status,omitempty"`
	RequiredItems string        `json:"requiredItems,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	StartDateTime time.Time     `json:"startDateTime"`
	EndDateTime   time.Time     `json:"endDateTime"`
	CreatorUserID int           `json:"creatorUserId"`
	Participants  []Participant `json:"participants,omitempty"`
}

// IsPast reports whether the event ended before now.
func (e *Event) IsPast(now time.Time) bool {
	return e.EndDateTime.Before(now)
}

// IsUpcoming reports whether the event starts after now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.StartDateTime.After(now)
}

// JoinRequest is a pending link between a user and an event awaiting
// creator approval. Approval and rejection are terminal; there is no
// re-request path.
type JoinRequest struct {
	EventID int                 `json:"eventId"`
	UserID  int                 `json:"userId"`
	Status  ParticipationStatus `json:"status"`
	User    User                `json:"user"`
	Event   Event               `json:"event"`
}

// InviteStatus is the one-shot state of a creator-initiated invite.
type InviteStatus string

// Invite states. There is no intermediate pending-approval state; an
// invite needs no approval to accept.
const (
	InviteOffered  InviteStatus = "Invited"
	InviteAccepted InviteStatus = "Accepted"
	InviteDeclined InviteStatus = "Declined"
)

// Invite is a no-approval-needed offer to a specific user to join an event.
type Invite struct {
	InviteID int          `json:"inviteId"`
	EventID  int          `json:"eventId"`
	UserID   int          `json:"userId"`
	Status   InviteStatus `json:"status"`
	Event    Event        `json:"event"`
}
