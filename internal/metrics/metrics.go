// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package metrics provides Prometheus instrumentation for the client core:
// API request latency and outcomes, poll cycle health, notification store
// activity, and circuit breaker state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API client metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_api_requests_total",
			Help: "Total number of requests issued to the remote Sportify API",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sportify_api_request_duration_seconds",
			Help:    "Remote API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIRateLimitWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportify_api_rate_limit_waits_total",
			Help: "Total number of requests delayed by the outbound rate limiter",
		},
	)

	// Poller metrics
	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_poll_cycles_total",
			Help: "Total number of completed poll cycles",
		},
		[]string{"poller", "outcome"}, // outcome: "success", "failure"
	)

	PollNewItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_poll_new_items_total",
			Help: "Total number of new items discovered by poll diffs",
		},
		[]string{"poller"},
	)

	// Notification store metrics
	NotificationsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportify_notifications_emitted_total",
			Help: "Total number of notifications accepted into the store",
		},
	)

	NotificationsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportify_notifications_deduplicated_total",
			Help: "Total number of notifications dropped as duplicates of an outstanding message",
		},
	)

	NotificationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sportify_notifications_active",
			Help: "Current number of active (unexpired) notifications",
		},
	)

	// Circuit breaker metrics (shared by the API breaker wrapper)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sportify_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// Geolocation metrics
	GeoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportify_geo_lookups_total",
			Help: "Geolocation lookups by outcome",
		},
		[]string{"outcome"}, // "hit", "miss", "fallback"
	)
)
