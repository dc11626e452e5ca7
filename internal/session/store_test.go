// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/EnzoDV08/sportify-client/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	token := signedToken(t, jwt.MapClaims{"sub": "7", "exp": time.Now().Add(time.Hour).Unix()})

	saved := &Session{
		User:  models.User{UserID: 7, Name: "Sam", Email: "sam@example.com"},
		Token: token,
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.User.UserID != 7 || loaded.Token != token {
		t.Errorf("loaded = %+v, want saved session back", loaded)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("SavedAt not stamped on save")
	}
}

func TestLoadWithoutSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() error = %v, want ErrNoSession", err)
	}
}

func TestLoadExpiredTokenClearsSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	token := signedToken(t, jwt.MapClaims{"sub": "7", "exp": time.Now().Add(-time.Hour).Unix()})

	if err := store.Save(&Session{User: models.User{UserID: 7}, Token: token}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Load() error = %v, want ErrSessionExpired", err)
	}
	// Expired session is cleared as a side effect.
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("second Load() error = %v, want ErrNoSession", err)
	}
}

func TestLoadGarbageTokenClearsSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Save(&Session{User: models.User{UserID: 7}, Token: "not-a-jwt"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() error = %v, want ErrNoSession for unreadable token", err)
	}
}

func TestTokenWithoutExpiryNeverExpires(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	token := signedToken(t, jwt.MapClaims{"sub": "7"})

	if err := store.Save(&Session{User: models.User{UserID: 7}, Token: token}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil for exp-less token", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store error = %v", err)
	}

	token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	if err := store.Save(&Session{Token: token}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after clear error = %v, want ErrNoSession", err)
	}
}
