// Package gateway is the outbound HTTP client for the institutional data
// gateway, the REST backend that owns all persistent entities and enforces
// authorization server-side. Every method maps one gateway endpoint; all
// failures are normalised into typed errors at the call site and never
// propagate as panics.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Zulu-012/luct-reporting-system/pkg/config"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

type tokenContextKey struct{}

// WithToken stores the caller's bearer token so outbound calls act on the
// caller's behalf.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFrom extracts a previously stored bearer token, if any.
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return v
	}
	return ""
}

// CallObserver receives per-endpoint timing for outbound gateway calls.
type CallObserver interface {
	ObserveGatewayCall(endpoint string, duration time.Duration)
}

// Client talks to the data gateway.
type Client struct {
	baseURL  string
	httpc    *http.Client
	logger   *zap.Logger
	observer CallObserver
}

// NewClient constructs a gateway client. A nil observer disables call
// timing.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger, observer CallObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		httpc:    &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
		observer: observer,
	}
}

type gatewayError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode gateway request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build gateway request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if c.observer != nil {
		c.observer.ObserveGatewayCall(metricEndpoint(method, path), time.Since(start))
	}
	if err != nil {
		c.logger.Warn("gateway call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, appErrors.ErrGatewayUnavailable.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		return c.errorFrom(resp, method, path)
	}

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, fmt.Sprintf("decode gateway response for %s", path))
	}
	return nil
}

// metricEndpoint collapses numeric path segments so the per-endpoint
// label stays low-cardinality.
func metricEndpoint(method, path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = ":id"
		}
	}
	return method + " " + strings.Join(parts, "/")
}

func (c *Client) errorFrom(resp *http.Response, method, path string) error {
	var payload gatewayError
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := payload.Message
	if message == "" {
		message = payload.Error
	}

	c.logger.Warn("gateway returned error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return appErrors.Clone(appErrors.ErrValidation, message)
	default:
		return appErrors.Clone(appErrors.ErrGatewayUnavailable, message)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

func (c *Client) put(ctx context.Context, path string, body, dest interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, dest)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
