// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

// GetFriends lists the accepted friendships of a user via
// GET /api/Friends/{userId}.
func (c *Client) GetFriends(ctx context.Context, userID int) ([]models.FriendRelationship, error) {
	var result []models.FriendRelationship
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/Friends/%d", userID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetFriendRequests lists the incoming pending requests directed at a user
// via GET /api/FriendRequests/{userId}. This is the endpoint the friend
// request poller hits every cycle.
func (c *Client) GetFriendRequests(ctx context.Context, userID int) ([]models.FriendRelationship, error) {
	var result []models.FriendRelationship
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/FriendRequests/%d", userID), nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchUsers searches the user directory via GET /api/users/search.
// The userID parameter lets the server compute each candidate's
// relationship status relative to the searcher.
func (c *Client) SearchUsers(ctx context.Context, term string, userID int) ([]models.FriendRelationship, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("userId", strconv.Itoa(userID))

	var result []models.FriendRelationship
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/search", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SendFriendRequest sends a friend request via POST /api/FriendRequests/send.
func (c *Client) SendFriendRequest(ctx context.Context, senderID, receiverID int) error {
	body := models.FriendRequestBody{SenderID: senderID, ReceiverID: receiverID}
	return c.doJSON(ctx, http.MethodPost, "/api/FriendRequests/send", nil, body, nil)
}

// AcceptFriendRequest accepts an incoming request via
// PUT /api/FriendRequests/{id}/accept.
func (c *Client) AcceptFriendRequest(ctx context.Context, requestID int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/FriendRequests/%d/accept", requestID), nil, nil, nil)
}

// DeclineFriendRequest declines an incoming request via
// PUT /api/FriendRequests/{id}/decline.
func (c *Client) DeclineFriendRequest(ctx context.Context, requestID int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/FriendRequests/%d/decline", requestID), nil, nil, nil)
}

// RemoveFriend removes an accepted friendship via
// DELETE /api/Friends/{friendshipId}.
func (c *Client) RemoveFriend(ctx context.Context, friendshipID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/Friends/%d", friendshipID), nil, nil, nil)
}
