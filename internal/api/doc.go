// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package api is the typed facade over the remote Sportify REST API.
//
// The facade is stateless request/response: every method takes a context,
// issues one HTTP call, and returns typed models or an error. Non-2xx
// responses become *APIError so callers can branch on status without
// parsing strings. HTTP 429 is retried with exponential backoff inside the
// client; nothing else is retried automatically.
//
// CircuitBreakerClient wraps the read paths used by the background pollers.
// GeoProvider is the third-party geolocation lookup with its hardcoded
// regional fallback.
package api
