// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package models

import "time"

// Geolocation is the coarse region used to bias the nearby-events filter.
// It is best-effort data from a third-party lookup; a hardcoded regional
// fallback is substituted on any failure.
type Geolocation struct {
	City        string    `json:"city"`
	Region      string    `json:"region,omitempty"`
	Country     string    `json:"country_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LastUpdated time.Time `json:"-"`
}
