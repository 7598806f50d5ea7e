// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client is the transport adapter for the remote analysis service.
// One Analyze call sends one POST /analyze request (more only when a
// bounded retry policy is configured) and returns either a validated
// ResearchResponse or a *TransportError.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/arxtrend/internal/httputil"
	"github.com/pdiddy/arxtrend/pkg/types"
)

const (
	analyzePath      = "/analyze"
	defaultUserAgent = "arxtrend/0.1"
	defaultTimeout   = 5 * time.Minute

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 32 << 20
	// bodyExcerpt bounds how much of an error body is logged.
	bodyExcerpt = 512
)

// Client calls the analysis service.
type Client struct {
	baseURL    string
	userAgent  string
	token      string
	maxRetries int
	http       *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithToken sends token as a bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the service described by cfg.
func New(cfg types.ServiceConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  ua,
		token:      cfg.APIToken,
		maxRetries: cfg.MaxRetries,
		http:       &http.Client{Timeout: timeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze submits req and returns the service's analysis.
func (c *Client) Analyze(ctx context.Context, req types.ResearchRequest) (types.ResearchResponse, error) {
	requestID := uuid.NewString()
	log := c.log.With().Str("request_id", requestID).Str("topic", req.Topic).Logger()

	fail := func(status int, body string, err error) (types.ResearchResponse, error) {
		terr := &TransportError{RequestID: requestID, StatusCode: status, Body: body, Err: err}
		log.Error().Err(err).Int("status", status).Str("body", body).Msg("analysis request failed")
		return types.ResearchResponse{}, terr
	}

	payload, err := json.Marshal(toWireRequest(req))
	if err != nil {
		return fail(0, "", fmt.Errorf("encoding request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, nil)
	if err != nil {
		return fail(0, "", fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().Str("url", httpReq.URL.String()).Msg("submitting analysis")
	start := time.Now()

	resp, err := httputil.DoWithRetry(ctx, c.http, httpReq, payload, c.maxRetries, log)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, excerpt(data), fmt.Errorf("unexpected status %s", resp.Status))
	}

	out, err := DecodeResponse(data)
	if err != nil {
		return fail(resp.StatusCode, excerpt(data), err)
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("papers", out.TotalPapers).
		Int("trends", len(out.KeywordTrends)).
		Msg("analysis received")
	return out, nil
}

func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > bodyExcerpt {
		cut := bodyExcerpt
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
