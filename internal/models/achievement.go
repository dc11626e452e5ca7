// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

import "time"

// Achievement is a sport-scoped, point-valued badge. Auto-generated
// achievements are awarded server-side and are never manually assignable.
type Achievement struct {
	AchievementID   int    `json:"achievementId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	SportType       string `json:"sportType"`
	IconURL         string `json:"iconUrl,omitempty"`
	Points          int    `json:"points"`
	IsAutoGenerated bool   `json:"isAutoGenerated"`
}

// UserAchievement records a manual award of an achievement to a participant
// of a specific event.
type UserAchievement struct {
	UserID          int       `json:"userId"`
	AchievementID   int       `json:"achievementId"`
	EventID         int       `json:"eventId"`
	AwardedByUserID int       `json:"awardedByUserId"`
	DateAwarded     time.Time `json:"dateAwarded"`
}
