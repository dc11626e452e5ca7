// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

// CircuitBreakerClient wraps the read paths of Client that the background
// pollers hit on fixed intervals. Opening the circuit stops the pollers
// from hammering an unavailable API every cycle.
//
// User-triggered mutations intentionally bypass the breaker: they are
// one-shot, surfaced directly to the user on failure, and retried only by
// the user.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for
// its interval and timeout calculations. Tests should fake the underlying
// client rather than the breaker.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps an API client with circuit breaker
// protection. Configuration:
//   - max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client *Client) *CircuitBreakerClient {
	cbName := "sportify-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: cbName}
}

// execute wraps an API call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// castResult type-casts a circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// GetFriends lists accepted friendships with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetFriends(ctx context.Context, userID int) ([]models.FriendRelationship, error) {
	return castResult[[]models.FriendRelationship](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetFriends(ctx, userID)
	}))
}

// GetFriendRequests lists incoming requests with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetFriendRequests(ctx context.Context, userID int) ([]models.FriendRelationship, error) {
	return castResult[[]models.FriendRelationship](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetFriendRequests(ctx, userID)
	}))
}

// GetEvents lists events with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetEvents(ctx context.Context) ([]models.Event, error) {
	return castResult[[]models.Event](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetEvents(ctx)
	}))
}

// GetInvites lists open invites with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetInvites(ctx context.Context, userID int) ([]models.Invite, error) {
	return castResult[[]models.Invite](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetInvites(ctx, userID)
	}))
}

// GetJoinRequests lists pending join requests with circuit breaker
// protection.
func (cbc *CircuitBreakerClient) GetJoinRequests(ctx context.Context, creatorUserID int) ([]models.JoinRequest, error) {
	return castResult[[]models.JoinRequest](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetJoinRequests(ctx, creatorUserID)
	}))
}

// GetAchievements fetches the catalog with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetAchievements(ctx context.Context) ([]models.Achievement, error) {
	return castResult[[]models.Achievement](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetAchievements(ctx)
	}))
}

// GetProfile fetches a profile with circuit breaker protection.
func (cbc *CircuitBreakerClient) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	return castResult[*models.Profile](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetProfile(ctx, userID)
	}))
}
