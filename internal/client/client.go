package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/pkg/config"
	"github.com/noah-isme/scolarite-dao/pkg/middleware/requestid"
)

// Response is a successful (2xx) backend answer.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues JSON requests against the REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a Client from configuration. A zero timeout leaves requests unbounded.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient builds a Client on top of an existing http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request. body is JSON encoded when non-nil. Non-2xx answers
// return a *BackendError, failures without an answer a *TransportError.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = requestid.NewID()
	}
	req.Header.Set(requestid.HeaderKey, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.logger.Debug("backend_request_failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}

	c.logger.Debug("backend_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
		zap.String("request_id", reqID),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newBackendError(resp.StatusCode, data)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}
