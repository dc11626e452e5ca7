// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/EnzoDV08/sportify-client/internal/cache"
	"github.com/EnzoDV08/sportify-client/internal/config"
	"github.com/EnzoDV08/sportify-client/internal/logging"
	"github.com/EnzoDV08/sportify-client/internal/metrics"
	"github.com/EnzoDV08/sportify-client/internal/models"
)

// GeoProvider resolves the caller's coarse region, used only to bias the
// nearby-events filter. Implementations must never fail: when the lookup
// cannot be completed they return a regional fallback.
type GeoProvider interface {
	// Locate returns the current region. The second return value is false
	// when the result is the hardcoded fallback.
	Locate(ctx context.Context) (*models.Geolocation, bool)
}

// IPAPIProvider implements GeoProvider against the free ipapi.co JSON
// endpoint. Lookups are cached; the fallback region from configuration is
// substituted on any failure (network, non-200, malformed body).
type IPAPIProvider struct {
	client    *http.Client
	lookupURL string
	fallback  models.Geolocation
	cache     *cache.LRU[models.Geolocation]
}

// ipapiResponse is the subset of the ipapi.co body we consume.
type ipapiResponse struct {
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewIPAPIProvider creates a geolocation provider from configuration.
func NewIPAPIProvider(cfg *config.GeoConfig) *IPAPIProvider {
	return &IPAPIProvider{
		client:    &http.Client{Timeout: 10 * time.Second},
		lookupURL: cfg.LookupURL,
		fallback: models.Geolocation{
			City:      cfg.FallbackCity,
			Country:   cfg.FallbackCountry,
			Latitude:  cfg.FallbackLat,
			Longitude: cfg.FallbackLon,
		},
		cache: cache.NewLRU[models.Geolocation](8, cfg.CacheTTL),
	}
}

// Locate resolves the caller's region, caching successful lookups.
func (p *IPAPIProvider) Locate(ctx context.Context) (*models.Geolocation, bool) {
	if geo, ok := p.cache.Get("self"); ok {
		metrics.GeoLookups.WithLabelValues("hit").Inc()
		return &geo, true
	}

	geo, err := p.lookup(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Geolocation lookup failed, using regional fallback")
		metrics.GeoLookups.WithLabelValues("fallback").Inc()
		fb := p.fallback
		fb.LastUpdated = time.Now()
		return &fb, false
	}

	metrics.GeoLookups.WithLabelValues("miss").Inc()
	p.cache.Add("self", *geo)
	return geo, true
}

func (p *IPAPIProvider) lookup(ctx context.Context) (*models.Geolocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.lookupURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation lookup returned status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geolocation response: %w", err)
	}
	if body.City == "" && body.Country == "" {
		return nil, fmt.Errorf("geolocation response empty")
	}

	return &models.Geolocation{
		City:        body.City,
		Region:      body.Region,
		Country:     body.Country,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		LastUpdated: time.Now(),
	}, nil
}

// StaticGeoProvider always returns a fixed region. Used in tests and when
// the lookup is disabled.
type StaticGeoProvider struct {
	Geo models.Geolocation
}

// Locate returns the fixed region.
func (p *StaticGeoProvider) Locate(_ context.Context) (*models.Geolocation, bool) {
	geo := p.Geo
	return &geo, true
}
