// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

/*
client.go - Core Sportify API Client

This file provides the core Client struct and HTTP communication layer for
the remote Sportify REST API.

Client Features:
  - HTTP client with configurable timeout
  - Bearer token authentication (set after login)
  - Outbound rate limiting (golang.org/x/time)
  - Automatic HTTP 429 handling with exponential backoff
  - JSON request/response via goccy/go-json
  - X-Request-ID correlation header on every request
  - Context support for cancellation and timeouts

Resilience Mechanisms:
  - Rate limiting: exponential backoff (1s, 2s, 4s, 8s, 16s) on HTTP 429,
    honoring Retry-After
  - Circuit breaker: see circuit_breaker.go (wraps the read paths used by
    the background pollers)

Related files:
  - users.go: users, login, profiles
  - events.go: events, join requests, invites
  - friends.go: friends, friend requests, directory search
  - achievements.go: achievement catalog and assignment
  - upload.go: multipart image upload
  - geoip.go: third-party geolocation lookup with regional fallback
*/

//nolint:staticcheck // File documentation, not package doc
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/EnzoDV08/sportify-client/internal/config"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
)

// maxErrorBodySize limits how much of a response body is read for error
// reporting, preventing unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// APIError is the typed failure for any non-2xx response from the remote
// API. Callers can inspect StatusCode to distinguish not-found and
// validation failures from transport-level problems.
type APIError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// Client handles communication with the Sportify REST API.
//
// Thread safety: safe for concurrent use. Each call builds its own HTTP
// request; the bearer token is guarded by a mutex.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration

	mu    sync.RWMutex
	token string
}

// NewClient creates a Sportify API client from configuration.
func NewClient(cfg *config.APIConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        limiter,
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// SetToken installs the bearer token attached to subsequent requests.
// Pass an empty string to clear it (logout).
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// readBodyForError reads at most maxErrorBodySize of a response body for
// diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// doJSON executes a JSON request against the remote API and decodes the
// response into result (which may be nil for calls without a body).
// HTTP 429 responses are retried with exponential backoff; every other
// non-2xx status becomes an *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody, result interface{}) error {
	if c.limiter != nil {
		if !c.limiter.Allow() {
			metrics.APIRateLimitWaits.Inc()
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	var payload []byte
	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, method, reqURL, payload)
	metrics.APIRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, path, "error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Endpoint:   path,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doRequestWithRateLimit performs an HTTP request with automatic HTTP 429
// handling. Implements exponential backoff (1s, 2s, 4s, 8s, 16s) and honors
// the Retry-After header. The context cancels backoff waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, method, reqURL string, payload []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var body io.Reader = http.NoBody
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := c.bearerToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close() // will retry anyway

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}
