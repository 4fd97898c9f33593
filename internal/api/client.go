package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/utils"
)

const refreshPath = "/auth/refresh-token"

// Config carries the client's construction parameters.
type Config struct {
	// BaseURL of the remote API, without a trailing slash.
	BaseURL string

	// Timeout bounds every request wall-clock, refresh exchanges included.
	Timeout time.Duration

	// OnSessionExpired runs once per failed refresh exchange, after the
	// stored credentials have been cleared. The CLI uses it to point the
	// user back at login; there is no other navigation side effect.
	OnSessionExpired func()
}

// Client is the single chokepoint for all outbound calls. It attaches the
// bearer token when one is stored, recovers transparently from expired
// access tokens, and never retries a request more than once.
type Client struct {
	baseURL          string
	http             *http.Client
	tokens           TokenStore
	log              logger.Logger
	onSessionExpired func()

	refresh refreshGroup
}

// New builds a Client. tokens may start empty: requests without a stored
// access token simply go out unauthenticated, which some endpoints accept.
func New(cfg Config, tokens TokenStore, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		http:             &http.Client{Timeout: timeout},
		tokens:           tokens,
		log:              log,
		onSessionExpired: cfg.OnSessionExpired,
	}
}

// request is an immutable descriptor of one outbound call. Replays reuse
// the same descriptor; retry state is never stored on it.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	params      url.Values
}

// Get issues a GET and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.send(ctx, request{method: http.MethodGet, path: path, params: params})
}

// Post issues a POST with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.sendJSON(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE and returns the raw response body.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.send(ctx, request{method: http.MethodDelete, path: path})
}

// ForceRefresh exchanges the refresh token ahead of expiry, joining any
// exchange already in flight. A failure tears the session down exactly as
// a failed 401-triggered refresh would.
func (c *Client) ForceRefresh(ctx context.Context) error {
	_, err := c.refreshAccess(ctx)
	return err
}

// Upload issues a multipart POST: one file part plus flat metadata fields.
// The multipart body is buffered up front so a post-refresh replay can
// resend identical bytes.
func (c *Client) Upload(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("create multipart file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write multipart field %s: %w", key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	return c.send(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	})
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any) ([]byte, error) {
	req := request{method: method, path: path}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		req.body = payload
		req.contentType = "application/json"
	}
	return c.send(ctx, req)
}

// send performs one request with at most one 401-triggered replay.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	creds, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	body, status, err := c.roundTrip(ctx, req, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && c.refreshable(req, creds) {
		access, refreshErr := c.refreshAccess(ctx)
		if refreshErr != nil {
			return nil, refreshErr
		}
		// Single replay with the new token. A second 401 falls through
		// to the caller: no refresh loops.
		body, status, err = c.roundTrip(ctx, req, access)
		if err != nil {
			return nil, err
		}
	}

	if status >= 400 {
		return nil, newError(status, req.path, body)
	}
	return body, nil
}

// refreshable reports whether a 401 on this request should trigger the
// refresh flow. The refresh exchange itself is never refreshable, and
// without a stored refresh token there is nothing to exchange.
func (c *Client) refreshable(req request, creds Credentials) bool {
	return creds.RefreshToken != "" && req.path != refreshPath
}

func (c *Client) roundTrip(ctx context.Context, req request, accessToken string) ([]byte, int, error) {
	endpoint := c.baseURL + req.path
	if len(req.params) > 0 {
		endpoint += "?" + req.params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bytes.NewReader(req.body))
	if err != nil {
		return nil, 0, fmt.Errorf("build request %s %s: %w", req.method, req.path, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("request failed",
			logger.String("method", req.method),
			logger.String("path", req.path),
			logger.String("request_id", requestID),
			logger.Error(err))
		return nil, 0, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response %s %s: %w", req.method, req.path, err)
	}

	c.log.Debug("api_request",
		logger.String("method", req.method),
		logger.String("path", req.path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
		logger.String("request_id", requestID))

	return body, resp.StatusCode, nil
}
