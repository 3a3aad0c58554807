// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hub talks to the remote identity service over HTTP.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/hubauth/internal/auth"
)

// Hub endpoints, relative to the base URL.
const (
	pathLogin      = "login"
	pathTokenLogin = "sdk/login"
	pathUser       = "terminal/user"
	pathLogout     = "logout"
)

// DefaultTimeout bounds each request when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

const tracerName = "github.com/holomush/hubauth/internal/hub"

// Config holds configuration for the hub client.
type Config struct {
	// BaseURL is the hub API root, e.g. "https://hub.example.com/api/v1/".
	BaseURL string

	// Timeout applies to each request (default: 15s). Ignored when
	// HTTPClient is set.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Client performs hub requests.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewClient creates a Client with a no-op logger.
func NewClient(cfg Config) (*Client, error) {
	return NewClientWithLogger(cfg, slog.New(slog.DiscardHandler))
}

// NewClientWithLogger creates a Client with the provided logger.
func NewClientWithLogger(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, oops.Errorf("base URL is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, oops.Code("HUB_INVALID_URL").With("base_url", cfg.BaseURL).Wrap(err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, oops.Code("HUB_INVALID_URL").
			With("base_url", cfg.BaseURL).
			Errorf("base URL must be http or https")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "hubauth"
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

type passwordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type tokenLoginRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UUID        string `json:"uuid"`
}

// CreateSession exchanges an email/password pair for a session.
// A refusal from the hub is the zero Session with a nil error.
func (c *Client) CreateSession(ctx context.Context, email, password string) (auth.Session, error) {
	return c.createSession(ctx, "CreateSession", pathLogin, passwordLoginRequest{
		Email:    email,
		Password: password,
		Remember: true,
	})
}

// CreateSessionFromToken exchanges a personal access token for a session.
// A refusal from the hub is the zero Session with a nil error.
func (c *Client) CreateSessionFromToken(ctx context.Context, token string) (auth.Session, error) {
	return c.createSession(ctx, "CreateSessionFromToken", pathTokenLogin, tokenLoginRequest{Token: token})
}

func (c *Client) createSession(ctx context.Context, op, path string, payload any) (auth.Session, error) {
	ctx, span := c.tracer.Start(ctx, "hub."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, body, err := c.do(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		recordSpanError(span, err)
		return auth.Session{}, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
	case isRejection(resp.StatusCode):
		c.logger.DebugContext(ctx, "hub refused session request", "operation", op, "status", resp.StatusCode)
		return auth.Session{}, nil
	default:
		err := unexpectedStatus(op, resp.StatusCode, body)
		recordSpanError(span, err)
		return auth.Session{}, err
	}

	var out sessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		err = oops.Code("HUB_MALFORMED_RESPONSE").With("operation", op).Wrap(err)
		recordSpanError(span, err)
		return auth.Session{}, err
	}
	sess := auth.Session{AccessToken: out.AccessToken, TokenType: out.TokenType, UUID: out.UUID}
	if !sess.Valid() {
		err := oops.Code("HUB_MALFORMED_RESPONSE").
			With("operation", op).
			Errorf("hub returned an incomplete session")
		recordSpanError(span, err)
		return auth.Session{}, err
	}
	return sess, nil
}

// FetchUser performs the login exchange: the hub accepts a session by
// returning the user it belongs to. The error, when present, explains a
// LoginNoResponse outcome.
func (c *Client) FetchUser(ctx context.Context, sess auth.Session) (auth.LoginStatus, error) {
	ctx, span := c.tracer.Start(ctx, "hub.FetchUser", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, body, err := c.do(ctx, http.MethodGet, pathUser, sess.AuthHeader(), nil)
	if err != nil {
		recordSpanError(span, err)
		return auth.LoginNoResponse, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusOK:
		if !json.Valid(body) {
			err := oops.Code("HUB_MALFORMED_RESPONSE").
				With("operation", "FetchUser").
				Errorf("user response is not valid JSON")
			recordSpanError(span, err)
			return auth.LoginNoResponse, err
		}
		return auth.LoginSuccess, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return auth.LoginFailed, nil
	default:
		err := unexpectedStatus("FetchUser", resp.StatusCode, body)
		recordSpanError(span, err)
		return auth.LoginNoResponse, err
	}
}

// DeleteSession revokes the session identified by authHeader and token.
func (c *Client) DeleteSession(ctx context.Context, authHeader, token string) error {
	ctx, span := c.tracer.Start(ctx, "hub.DeleteSession", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	resp, body, err := c.do(ctx, http.MethodPost, pathLogout, authHeader, tokenLoginRequest{Token: token})
	if err != nil {
		recordSpanError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := unexpectedStatus("DeleteSession", resp.StatusCode, body)
		recordSpanError(span, err)
		return err
	}
	return nil
}

// do sends a request and reads the (size-capped) response body.
func (c *Client) do(ctx context.Context, method, path, authHeader string, payload any) (*http.Response, []byte, error) {
	endpoint := c.baseURL.JoinPath(path).String()
	requestID := ulid.Make().String()

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, oops.Code("HUB_ENCODE_FAILED").With("path", path).Wrap(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, nil, oops.Code("HUB_REQUEST_FAILED").With("path", path).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, oops.Code("HUB_REQUEST_FAILED").
			With("method", method).
			With("path", path).
			With("request_id", requestID).
			With("timeout", isTimeout(err)).
			Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // body fully read

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, oops.Code("HUB_READ_FAILED").
			With("path", path).
			With("request_id", requestID).
			Wrap(err)
	}

	c.logger.DebugContext(ctx, "hub request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)
	return resp, body, nil
}

func isRejection(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func unexpectedStatus(op string, status int, body []byte) error {
	snippet := string(body)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return oops.Code("HUB_UNEXPECTED_STATUS").
		With("operation", op).
		With("status", status).
		With("body", snippet).
		Errorf("hub answered %d", status)
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
