// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package session persists the signed-in identity (user id + bearer
// token) across restarts in a local BadgerDB. The token is opaque to the
// client: expiry is read from the unverified JWT claims because the
// signing secret lives on the server.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

const sessionKey = "session:current"

// Sentinel errors for session retrieval.
var (
	// ErrNoSession is returned when no session has been saved.
	ErrNoSession = errors.New("no saved session")

	// ErrSessionExpired is returned when the saved token has expired.
	ErrSessionExpired = errors.New("saved session expired")
)

// Session is the persisted identity of the signed-in user.
type Session struct {
	User    models.User `json:"user"`
	Token   string      `json:"token"`
	SavedAt time.Time   `json:"savedAt"`
}

// Store is a BadgerDB-backed single-session store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithCompactL0OnClose(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open BadgerDB. Used in tests with an
// in-memory database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Save persists the session, replacing any previous one.
func (s *Store) Save(sess *Session) error {
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(sessionKey), data); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

// Load retrieves the saved session. Returns ErrNoSession when nothing was
// saved and ErrSessionExpired when the stored token has expired (the
// expired session is cleared as a side effect).
func (s *Store) Load() (*Session, error) {
	var sess Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSession
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}

	if expired, err := tokenExpired(sess.Token, time.Now()); err != nil {
		logging.Warn().Err(err).Msg("Saved token unreadable, clearing session")
		_ = s.Clear()
		return nil, ErrNoSession
	} else if expired {
		_ = s.Clear()
		return nil, ErrSessionExpired
	}

	return &sess, nil
}

// Clear removes the saved session. Idempotent.
func (s *Store) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(sessionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// tokenExpired reads the exp claim without verifying the signature. A
// token with no exp claim never expires client-side.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(now), nil
}
