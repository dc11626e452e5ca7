// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

// GetAchievements fetches the full achievement catalog via
// GET /api/Achievements.
func (c *Client) GetAchievements(ctx context.Context) ([]models.Achievement, error) {
	var result []models.Achievement
	if err := c.doJSON(ctx, http.MethodGet, "/api/Achievements", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateAchievement adds a new achievement to the catalog via
// POST /api/Achievements. Curator-only on the server side.
func (c *Client) CreateAchievement(ctx context.Context, achievement models.Achievement) (*models.Achievement, error) {
	var result models.Achievement
	if err := c.doJSON(ctx, http.MethodPost, "/api/Achievements", nil, achievement, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignAchievement awards an achievement to an event participant via
// POST /api/UserAchievements.
func (c *Client) AssignAchievement(ctx context.Context, award models.UserAchievement) error {
	return c.doJSON(ctx, http.MethodPost, "/api/UserAchievements", nil, award, nil)
}

// UnassignAchievement revokes a previously awarded achievement via
// DELETE /api/UserAchievements.
func (c *Client) UnassignAchievement(ctx context.Context, userID, achievementID, eventID int) error {
	query := url.Values{}
	query.Set("userId", strconv.Itoa(userID))
	query.Set("achievementId", strconv.Itoa(achievementID))
	query.Set("eventId", strconv.Itoa(eventID))
	return c.doJSON(ctx, http.MethodDelete, "/api/UserAchievements", query, nil, nil)
}
