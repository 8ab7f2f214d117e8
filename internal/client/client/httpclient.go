package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call UUID so backend logs can be correlated.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 1 << 20

// HTTPClient talks to the backend over JSON/HTTP. No retries are made; the
// per-request timeout is the only time limit.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (transport, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient validates baseURL and builds a client with the given
// request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*Envelope[LoginData], error) {
	status, body, err := c.post(ctx, PathLogin, req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[LoginData](status, body)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*Envelope[any], error) {
	status, body, err := c.post(ctx, PathRegister, req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[any](status, body)
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*Envelope[VerifyEmailData], error) {
	status, body, err := c.post(ctx, PathVerifyEmail, req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[VerifyEmailData](status, body)
}

// Close drops idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) (int, []byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, c.mapError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, fmt.Errorf("%w: %s %s", ErrUnexpectedStatus, path, resp.Status)
	}
	return resp.StatusCode, body, nil
}

// mapError folds transport failures into ErrUnavailable while keeping the
// cause (including context errors) matchable.
func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
