// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ErrNoImageSearchKey is returned when image search is used without a
// configured API key. Callers degrade to manual upload.
var ErrNoImageSearchKey = errors.New("image search API key not configured")

const pexelsSearchURL = "https://api.pexels.com/v1/search"

// ImageSearcher finds stock photos for event covers via the Pexels API.
type ImageSearcher struct {
	client    *http.Client
	searchURL string
	apiKey    string
}

// NewImageSearcher creates an image searcher. key may be empty, in which
// case every search returns ErrNoImageSearchKey.
func NewImageSearcher(key string) *ImageSearcher {
	return &ImageSearcher{
		client:    &http.Client{Timeout: 10 * time.Second},
		searchURL: pexelsSearchURL,
		apiKey:    key,
	}
}

type pexelsPhoto struct {
	Src struct {
		Large string `json:"large"`
	} `json:"src"`
	Alt string `json:"alt"`
}

type pexelsResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

// Search returns up to limit image URLs matching the query.
func (s *ImageSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if s.apiKey == "" {
		return nil, ErrNoImageSearchKey
	}
	if limit <= 0 {
		limit = 12
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create image search request: %w", err)
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodGet,
			Endpoint:   s.searchURL,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	var body pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode image search response: %w", err)
	}

	urls := make([]string, 0, len(body.Photos))
	for _, photo := range body.Photos {
		if photo.Src.Large != "" {
			urls = append(urls, photo.Src.Large)
		}
	}
	return urls, nil
}
