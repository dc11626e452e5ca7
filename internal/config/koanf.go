// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sportify/config.yaml",
	"/etc/sportify/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "",
			ImageSearchKey: "",
			Timeout:        30 * time.Second,
			RateLimit:      10,
			RateBurst:      5,
		},
		Polling: PollingConfig{
			FriendRequestInterval:   5 * time.Second,
			AchievementSlotInterval: 1 * time.Second,
			SearchDebounce:          400 * time.Millisecond,
		},
		Notifications: NotificationsConfig{
			DisplayWindow: 5 * time.Second,
		},
		Geo: GeoConfig{
			LookupURL: "https://ipapi.co/json/",
			CacheTTL:  time.Hour,
			// Regional fallback when the lookup fails.
			FallbackCity:    "Pretoria",
			FallbackCountry: "South Africa",
			FallbackLat:     -25.7479,
			FallbackLon:     28.2293,
		},
		Session: SessionConfig{
			Path: "/data/sportify/session",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9464",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Environment variables take highest priority.
	// SPORTIFY_API_URL -> api.base_url, FRIEND_POLL_INTERVAL -> polling.friend_request_interval
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unrecognized variables are dropped so unrelated environment noise cannot
// leak into the configuration.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		// Remote API (the two variables the web build also reads)
		"sportify_api_url":     "api.base_url",
		"api_url":              "api.base_url",
		"image_search_api_key": "api.image_search_key",
		"api_timeout":          "api.timeout",
		"api_rate_limit":       "api.rate_limit",
		"api_rate_burst":       "api.rate_burst",

		// Pollers and debounce
		"friend_poll_interval":      "polling.friend_request_interval",
		"achievement_slot_interval": "polling.achievement_slot_interval",
		"search_debounce":           "polling.search_debounce",

		// Notifications
		"notification_display_window": "notifications.display_window",

		// Geolocation
		"geo_lookup_url":       "geo.lookup_url",
		"geo_cache_ttl":        "geo.cache_ttl",
		"geo_fallback_city":    "geo.fallback_city",
		"geo_fallback_country": "geo.fallback_country",
		"geo_fallback_lat":     "geo.fallback_lat",
		"geo_fallback_lon":     "geo.fallback_lon",

		// Session store
		"session_path": "session.path",

		// Metrics listener
		"metrics_enabled": "metrics.enabled",
		"metrics_addr":    "metrics.addr",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return "" // drop unknown variables
}
