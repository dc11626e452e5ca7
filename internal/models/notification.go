// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

// Notification is a short-lived, deduplicated user-facing message. The ID is
// derived from the creation timestamp and is unique within the process
// lifetime; the display window is short enough (<=5s) that millisecond
// resolution plus a monotonic bump is sufficient.
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	IconURL string `json:"iconUrl,omitempty"`
}
