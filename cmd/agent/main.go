// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package main is the entry point for the Sportify client agent.
//
// The agent is the headless core of the Sportify client: it signs in
// against the remote REST API, keeps the relationship, event and
// achievement state of the signed-in user fresh, and surfaces changes as
// notifications. A UI shell consumes the package APIs and the
// notification broadcast; the agent itself serves nothing except an
// optional localhost metrics listener.
//
// Startup order:
//
//  1. Configuration: .env file, then environment and optional YAML via Koanf v2
//  2. Logging: zerolog, JSON or console format
//  3. Session: BadgerDB-backed saved identity, else credential login
//  4. API client: rate-limited, retrying, circuit-breaker wrapped
//  5. State: notification store, relationship manager, event workflow,
//     achievement ledger, with initial loads
//  6. Supervision: suture tree running the pollers and metrics listener
//
// The agent handles graceful shutdown on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/EnzoDV08/sportify-client/internal/achievements"
	"github.com/EnzoDV08/sportify-client/internal/api"
	"github.com/EnzoDV08/sportify-client/internal/config"
	"github.com/EnzoDV08/sportify-client/internal/events"
	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/models"
	"github.com/EnzoDV08/sportify-client/internal/notify"
	"github.com/EnzoDV08/sportify-client/internal/session"
	"github.com/EnzoDV08/sportify-client/internal/social"
	"github.com/EnzoDV08/sportify-client/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Agent exited with error")
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("api", cfg.API.BaseURL).Msg("Sportify agent starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, err := session.Open(cfg.Session.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			logging.Warn().Err(err).Msg("Session store close failed")
		}
	}()

	client := api.NewClient(&cfg.API)

	user, err := signIn(ctx, client, sessions)
	if err != nil {
		return err
	}
	logging.Info().Int("user_id", user.UserID).Str("name", user.Name).Msg("Signed in")

	breaker := api.NewCircuitBreakerClient(client)

	notifications := notify.NewStore(cfg.Notifications.DisplayWindow)
	defer func() {
		if err := notifications.Close(); err != nil {
			logging.Warn().Err(err).Msg("Notification store close failed")
		}
	}()

	slot := &notify.Slot{}
	slotPoller := notify.NewSlotPoller(slot, notifications, cfg.Polling.AchievementSlotInterval)

	relationships := social.NewManager(breaker, client, notifications, user.UserID, cfg.Polling.SearchDebounce)
	requestPoller := social.NewRequestPoller(relationships, cfg.Polling.FriendRequestInterval)

	geo := api.NewIPAPIProvider(&cfg.Geo)
	workflow := events.NewWorkflow(client, geo, *user, nil, nil)
	ledger := achievements.NewLedger(client, slot, nil)

	// Initial loads are best-effort: the pollers and on-demand refreshes
	// heal anything that fails here.
	if err := relationships.LoadInitial(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial relationship load failed")
	}
	if err := workflow.LoadEvents(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial event load failed")
	}
	if err := workflow.LoadPending(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial join request load failed")
	}
	if err := workflow.LoadInvites(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial invite load failed")
	}
	if err := ledger.LoadCatalog(ctx); err != nil {
		logging.Warn().Err(err).Msg("Initial achievement catalog load failed")
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddPollingService(supervisor.NewPollerService("friend-request-poller", requestPoller))
	tree.AddPollingService(supervisor.NewPollerService("notification-slot-poller", slotPoller))
	if cfg.Metrics.Enabled {
		tree.AddOpsService(supervisor.NewMetricsService(cfg.Metrics.Addr))
	}

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Msg("Sportify agent stopped")
	return nil
}

// signIn restores the saved session or, failing that, logs in with the
// SPORTIFY_EMAIL / SPORTIFY_PASSWORD credentials from the environment.
func signIn(ctx context.Context, client *api.Client, sessions *session.Store) (*models.User, error) {
	saved, err := sessions.Load()
	switch {
	case err == nil:
		client.SetToken(saved.Token)
		return &saved.User, nil
	case errors.Is(err, session.ErrSessionExpired):
		logging.Info().Msg("Saved session expired, logging in again")
	case errors.Is(err, session.ErrNoSession):
		// First run.
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}

	email := os.Getenv("SPORTIFY_EMAIL")
	password := os.Getenv("SPORTIFY_PASSWORD")
	if email == "" || password == "" {
		return nil, errors.New("no saved session and SPORTIFY_EMAIL/SPORTIFY_PASSWORD not set")
	}

	result, err := client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	client.SetToken(result.Token)

	if err := sessions.Save(&session.Session{User: result.User, Token: result.Token}); err != nil {
		logging.Warn().Err(err).Msg("Could not persist session")
	}
	return &result.User, nil
}
