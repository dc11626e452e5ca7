// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

// GetEvents lists all events via GET /api/events.
func (c *Client) GetEvents(ctx context.Context) ([]models.Event, error) {
	var result []models.Event
	if err := c.doJSON(ctx, http.MethodGet, "/api/events", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetEvent fetches a single event via GET /api/events/{id}.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	var result models.Event
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/events/%d", eventID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateEvent creates an event via POST /api/events.
func (c *Client) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var result models.Event
	if err := c.doJSON(ctx, http.MethodPost, "/api/events", nil, event, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEvent updates an event via PUT /api/events/{id}.
func (c *Client) UpdateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var result models.Event
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/events/%d", event.EventID), nil, event, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEvent deletes an event via DELETE /api/events/{id}. Cleanup of
// related join requests is a server-side concern.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), nil, nil, nil)
}

// JoinEvent submits a join request via POST /api/events/{id}/join.
func (c *Client) JoinEvent(ctx context.Context, eventID, userID int) error {
	body := map[string]int{"userId": userID}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/events/%d/join", eventID), nil, body, nil)
}

// GetJoinRequests lists the pending join requests awaiting a creator's
// decision via GET /api/JoinRequests/{creatorUserId}.
func (c *Client) GetJoinRequests(ctx context.Context, creatorUserID int) ([]models.JoinRequest, error) {
	var result []models.JoinRequest
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/JoinRequests/%d", creatorUserID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveJoinRequest approves a pending join request. Terminal: there is no
// transition back to pending.
func (c *Client) ApproveJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error {
	body := map[string]int{"approverUserId": approverUserID}
	path := fmt.Sprintf("/api/events/%d/requests/%d/approve", eventID, userID)
	return c.doJSON(ctx, http.MethodPut, path, nil, body, nil)
}

// RejectJoinRequest rejects a pending join request. Terminal.
func (c *Client) RejectJoinRequest(ctx context.Context, eventID, userID, approverUserID int) error {
	body := map[string]int{"approverUserId": approverUserID}
	path := fmt.Sprintf("/api/events/%d/requests/%d/reject", eventID, userID)
	return c.doJSON(ctx, http.MethodPut, path, nil, body, nil)
}

// GetInvites lists a user's open invites via GET /api/Invites/{userId}.
func (c *Client) GetInvites(ctx context.Context, userID int) ([]models.Invite, error) {
	var result []models.Invite
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/Invites/%d", userID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateInvite offers an event to a specific user via POST /api/Invites.
func (c *Client) CreateInvite(ctx context.Context, eventID, userID int) (*models.Invite, error) {
	body := map[string]int{"eventId": eventID, "userId": userID}
	var result models.Invite
	if err := c.doJSON(ctx, http.MethodPost, "/api/Invites", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AcceptInvite accepts an invite via PUT /api/Invites/{id}/accept. No
// approval step is involved; the transition is one-shot.
func (c *Client) AcceptInvite(ctx context.Context, inviteID int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/Invites/%d/accept", inviteID), nil, nil, nil)
}

// RejectInvite declines an invite via PUT /api/Invites/{id}/reject.
func (c *Client) RejectInvite(ctx context.Context, inviteID int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/Invites/%d/reject", inviteID), nil, nil, nil)
}
