// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

// RelationshipStatus is the client-visible state of a friend relationship
// relative to the current user.
type RelationshipStatus string

// Friend relationship states. A counterpart user appears in at most one of
// the friends / incoming-requests collections at a time.
const (
	RelationshipNone     RelationshipStatus = "none"
	RelationshipPending  RelationshipStatus = "pending"
	RelationshipAccepted RelationshipStatus = "accepted"
	RelationshipRejected RelationshipStatus = "rejected"
)

// FriendRelationship joins the counterpart user, their profile, and the
// relationship state. The ID is the server-side relationship or request id,
// which is what accept/decline/remove calls address.
type FriendRelationship struct {
	ID      int                `json:"id"`
	User    User               `json:"user"`
	Profile Profile            `json:"profile"`
	Status  RelationshipStatus `json:"status"`
}

// FriendRequestBody is the payload for sending a friend request.
type FriendRequestBody struct {
	SenderID   int `json:"senderId"`
	ReceiverID int `json:"receiverId"`
}
