// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

// User is the minimal identity record returned by the users endpoints.
type User struct {
	UserID int    `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	// IsAdmin marks curator accounts that may approve events and award
	// achievements.
	IsAdmin bool `json:"isAdmin,omitempty"`
}

// Profile carries the public profile attached to a user, including the
// server-computed point total that the achievement ledger caches locally.
type Profile struct {
	UserID         int    `json:"userId"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FavoriteSports string `json:"favoriteSports,omitempty"`
	TotalPoints    int    `json:"totalPoints"`
}

// Credentials is the login request body for POST /api/users/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is the signup request body for POST /api/users.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the response of a successful login. The token is an opaque
// bearer credential; the client never validates its signature, only its
// expiry claim (see internal/session).
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
