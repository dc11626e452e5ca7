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

// Login authenticates against POST /api/users/login and returns the user
// record plus bearer token. The token is NOT installed on the client
// automatically; callers decide whether to persist and activate it.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateUser signs up a new user via POST /api/users.
func (c *Client) CreateUser(ctx context.Context, newUser models.NewUser) (*models.User, error) {
	var result models.User
	if err := c.doJSON(ctx, http.MethodPost, "/api/users", nil, newUser, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUsers lists all users via GET /api/users.
func (c *Client) GetUsers(ctx context.Context) ([]models.User, error) {
	var result []models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetUser fetches a single user via GET /api/Users/{id}.
func (c *Client) GetUser(ctx context.Context, userID int) (*models.User, error) {
	var result models.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/Users/%d", userID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUser updates a user via PUT /api/Users/{id}.
func (c *Client) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	var result models.User
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/Users/%d", user.UserID), nil, user, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProfile fetches a user's profile via GET /api/Profiles/{id}.
func (c *Client) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	var result models.Profile
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/Profiles/%d", userID), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile updates a profile via PUT /api/Profiles/{id}.
func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	var result models.Profile
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/Profiles/%d", profile.UserID), nil, profile, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
