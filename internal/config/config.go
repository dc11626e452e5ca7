// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package config loads and validates the Sportify client configuration.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (SPORTIFY_API_URL, IMAGE_SEARCH_API_KEY, ...)
//   - Optional YAML config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the client core.
type Config struct {
	API           APIConfig           `koanf:"api" validate:"required"`
	Polling       PollingConfig       `koanf:"polling"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Geo           GeoConfig           `koanf:"geo"`
	Session       SessionConfig       `koanf:"session"`
	Metrics       MetricsConfig       `koanf:"metrics"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// APIConfig configures the remote Sportify REST API client.
type APIConfig struct {
	// BaseURL is the root of the remote API, e.g. https://api.sportify.example.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// ImageSearchKey is the third-party image-search API key. Optional;
	// features needing it degrade when empty.
	ImageSearchKey string `koanf:"image_search_key"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the maximum outbound requests per second (0 = unlimited).
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the burst size for the outbound rate limiter.
	RateBurst int `koanf:"rate_burst"`
}

// PollingConfig configures the background pollers and the search debounce.
type PollingConfig struct {
	// FriendRequestInterval is the period of the incoming friend-request
	// poller.
	FriendRequestInterval time.Duration `koanf:"friend_request_interval"`

	// AchievementSlotInterval is the period of the achievement hand-off
	// slot poller.
	AchievementSlotInterval time.Duration `koanf:"achievement_slot_interval"`

	// SearchDebounce is the quiet period after the last keystroke before a
	// directory search is issued.
	SearchDebounce time.Duration `koanf:"search_debounce"`
}

// NotificationsConfig configures the notification store.
type NotificationsConfig struct {
	// DisplayWindow is how long a notification stays active before
	// automatic removal.
	DisplayWindow time.Duration `koanf:"display_window"`
}

// GeoConfig configures the geolocation lookup that biases the nearby-events
// filter, including the hardcoded regional fallback used on failure.
type GeoConfig struct {
	LookupURL       string        `koanf:"lookup_url"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	FallbackCity    string        `koanf:"fallback_city"`
	FallbackCountry string        `koanf:"fallback_country"`
	FallbackLat     float64       `koanf:"fallback_lat"`
	FallbackLon     float64       `koanf:"fallback_lon"`
}

// SessionConfig configures the local BadgerDB session store.
type SessionConfig struct {
	// Path is the directory for the BadgerDB session store.
	Path string `koanf:"path" validate:"required"`
}

// MetricsConfig configures the optional Prometheus exposition listener.
// This is an ops-only endpoint, not part of the application surface.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LoggingConfig configures the zerolog pipeline.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Polling.FriendRequestInterval < time.Second {
		return fmt.Errorf("polling.friend_request_interval must be at least 1s, got %s",
			c.Polling.FriendRequestInterval)
	}
	if c.Polling.AchievementSlotInterval < 100*time.Millisecond {
		return fmt.Errorf("polling.achievement_slot_interval must be at least 100ms, got %s",
			c.Polling.AchievementSlotInterval)
	}
	if c.Notifications.DisplayWindow <= 0 {
		return fmt.Errorf("notifications.display_window must be positive, got %s",
			c.Notifications.DisplayWindow)
	}

	return nil
}
