// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Service wrappers adapting the pollers and the metrics listener to the
// suture.Service interface. Each wrapper starts its component, blocks on
// the context, and shuts the component down on cancellation so suture's
// restart policy applies cleanly.
package supervisor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thejerf/suture/v4"

	"github.com/EnzoDV08/sportify-client/internal/logging"
)

// Poller is the lifecycle surface shared by the background pollers.
type Poller interface {
	Start(ctx context.Context)
	Stop()
}

// PollerService wraps a Poller as a suture.Service.
type PollerService struct {
	name   string
	poller Poller
}

// NewPollerService creates a supervised wrapper around a poller.
func NewPollerService(name string, poller Poller) *PollerService {
	return &PollerService{name: name, poller: poller}
}

// Serve implements suture.Service. Blocks until the context is canceled,
// then stops the poller and reports a clean termination so suture does
// not restart it.
func (s *PollerService) Serve(ctx context.Context) error {
	logging.Info().Str("service", s.name).Msg("Starting supervised poller")

	s.poller.Start(ctx)
	<-ctx.Done()
	s.poller.Stop()

	return errors.Join(suture.ErrDoNotRestart, ctx.Err())
}

func (s *PollerService) String() string { return s.name }

// MetricsService serves the Prometheus registry on a localhost listener.
// Ops-only surface, not an application server.
type MetricsService struct {
	addr string
}

// NewMetricsService creates the metrics listener service for addr
// (e.g. "127.0.0.1:9090").
func NewMetricsService(addr string) *MetricsService {
	return &MetricsService{addr: addr}
}

// Serve implements suture.Service.
func (s *MetricsService) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	logging.Info().Str("addr", s.addr).Msg("Metrics listener started")

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(listener) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return errors.Join(suture.ErrDoNotRestart, ctx.Err())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *MetricsService) String() string { return "metrics-listener" }
