// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/EnzoDV08/sportify-client/internal/config"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.APIConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	// Keep retry backoff out of test runtime.
	client.retryBaseDelay = time.Millisecond
	return client, server
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var gotAccept, gotRequestID, gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	client.SetToken("token-123")

	if _, err := client.GetUsers(context.Background()); err != nil {
		t.Fatalf("GetUsers() error = %v", err)
	}

	if gotAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", gotAccept)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization header = %q, want Bearer token-123", gotAuth)
	}
}

func TestNonSuccessBecomesAPIError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user not found", http.StatusNotFound)
	}))

	_, err := client.GetUser(context.Background(), 42)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetUser() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
	}
	if apiErr.Method != http.MethodGet {
		t.Errorf("Method = %q, want GET", apiErr.Method)
	}
	if apiErr.Endpoint != "/api/Users/42" {
		t.Errorf("Endpoint = %q, want /api/Users/42", apiErr.Endpoint)
	}
}

func TestRateLimitRetry(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := client.GetEvents(context.Background()); err != nil {
		t.Fatalf("GetEvents() error = %v, want retry to succeed", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	client.maxRetries = 2

	if _, err := client.GetEvents(context.Background()); err == nil {
		t.Fatal("GetEvents() error = nil, want rate limit exhaustion")
	}
}

func TestSendFriendRequestBody(t *testing.T) {
	t.Parallel()

	var got map[string]int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/FriendRequests/send" {
			t.Errorf("path = %q, want /api/FriendRequests/send", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.SendFriendRequest(context.Background(), 7, 9); err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}
	if got["senderId"] != 7 || got["receiverId"] != 9 {
		t.Errorf("request body = %v, want senderId=7 receiverId=9", got)
	}
}

func TestSearchUsersQuery(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("term") != "alex" || q.Get("userId") != "5" {
			t.Errorf("query = %v, want term=alex userId=5", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"user":{"userId":8,"name":"Alex"},"status":"none"}]`))
	}))

	results, err := client.SearchUsers(context.Background(), "alex", 5)
	if err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if len(results) != 1 || results[0].User.Name != "Alex" {
		t.Errorf("results = %+v, want one result named Alex", results)
	}
}

func TestLoginDecodesResult(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds.Email != "a@b.c" {
			t.Errorf("email = %q, want a@b.c", creds.Email)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"userId":3,"name":"Sam"},"token":"jwt"}`))
	}))

	result, err := client.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.UserID != 3 || result.Token != "jwt" {
		t.Errorf("result = %+v, want userId=3 token=jwt", result)
	}
}
