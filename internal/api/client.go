package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Backend is the subset of the API the interactive widget talks to.
// It is implemented by *Client and can be faked in tests.
type Backend interface {
	Signup(ctx context.Context, req SignupRequest) (SignupResponse, error)
	Verify(ctx context.Context, email, otp string) (VerifyResponse, error)
	Count(ctx context.Context) (Count, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the BuildBoard HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	dev       bool
	logger    *slog.Logger
}

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultUserAgent = "buildboard/0.1"
	requestTimeout   = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithDevMode enables surfacing out-of-band one-time codes on the logger.
func WithDevMode(dev bool) Option {
	return func(c *Client) { c.dev = dev }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the given base address.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Signup requests a one-time code for the given email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	if c == nil {
		return SignupResponse{}, fmt.Errorf("client is nil")
	}
	req.Email = strings.TrimSpace(req.Email)
	var payload SignupResponse
	if err := c.do(ctx, http.MethodPost, "/early-start/signup", req, &payload); err != nil {
		return SignupResponse{}, err
	}
	if payload.OTP != "" {
		if c.dev {
			c.logger.Info("development mode one-time code", "email", req.Email, "otp", payload.OTP)
		} else {
			payload.OTP = ""
		}
	}
	return payload, nil
}

// Verify submits the one-time code for email. The code is uppercased.
func (c *Client) Verify(ctx context.Context, email, otp string) (VerifyResponse, error) {
	if c == nil {
		return VerifyResponse{}, fmt.Errorf("client is nil")
	}
	body := verifyRequest{
		Email: strings.TrimSpace(email),
		OTP:   strings.ToUpper(strings.TrimSpace(otp)),
	}
	var payload VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/early-start/verify", body, &payload); err != nil {
		return VerifyResponse{}, err
	}
	return payload, nil
}

// Count retrieves signup statistics.
func (c *Client) Count(ctx context.Context) (Count, error) {
	if c == nil {
		return Count{}, fmt.Errorf("client is nil")
	}
	var payload Count
	if err := c.do(ctx, http.MethodGet, "/early-start/count", nil, &payload); err != nil {
		return Count{}, err
	}
	return payload, nil
}

// ListSignups retrieves the admin signup listing.
func (c *Client) ListSignups(ctx context.Context) (SignupList, error) {
	if c == nil {
		return SignupList{}, fmt.Errorf("client is nil")
	}
	var payload SignupList
	if err := c.do(ctx, http.MethodGet, "/admin/early-start", nil, &payload); err != nil {
		return SignupList{}, err
	}
	payload.normalize()
	return payload, nil
}

// Health checks the backend health endpoint and returns its decoded body.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	endpoint := method + " " + path
	reqURL := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Endpoint: endpoint, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &APIError{Endpoint: endpoint, Message: "create request", Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "endpoint", endpoint, "request_id", requestID, "error", err)
		return &APIError{Endpoint: endpoint, Message: transportMessage(err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  serverMessage(raw, resp.StatusCode),
		}
		c.logger.Warn("api returned error", "endpoint", endpoint, "request_id", requestID, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func serverMessage(raw []byte, status int) string {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return "could not reach server"
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
