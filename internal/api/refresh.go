package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MasCreaThor/plataforma/internal/logger"
)

// refreshGroup serializes the token refresh exchange. Exactly one exchange
// may be in flight process-wide; requests that hit a 401 in the meantime
// park here and are released in arrival order with the shared outcome.
type refreshGroup struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []chan refreshOutcome
}

type refreshOutcome struct {
	access string
	err    error
}

// refreshAccess returns a fresh access token, joining the in-flight
// exchange if one exists. Callers replay their own request with the
// returned token; on error the session is already torn down.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	c.refresh.mu.Lock()
	if c.refresh.inFlight {
		ch := make(chan refreshOutcome, 1)
		c.refresh.waiters = append(c.refresh.waiters, ch)
		c.refresh.mu.Unlock()

		select {
		case out := <-ch:
			return out.access, out.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.refresh.inFlight = true
	c.refresh.mu.Unlock()

	access, err := c.exchangeRefreshToken(ctx)

	c.refresh.mu.Lock()
	waiters := c.refresh.waiters
	c.refresh.waiters = nil
	c.refresh.inFlight = false
	c.refresh.mu.Unlock()

	// FIFO release so queued requests replay in arrival order.
	for _, ch := range waiters {
		ch <- refreshOutcome{access: access, err: err}
	}

	if err != nil && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return access, err
}

// refreshResponse is the token pair returned by the refresh endpoint.
type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// exchangeRefreshToken swaps the stored refresh token for a new pair and
// persists it. Any failure is terminal for the session: the stored
// credentials are cleared before the error is returned.
func (c *Client) exchangeRefreshToken(ctx context.Context) (string, error) {
	creds, err := c.tokens.Load()
	if err != nil {
		return "", fmt.Errorf("load credentials: %w", err)
	}
	if creds.RefreshToken == "" {
		return "", ErrSessionExpired
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": creds.RefreshToken})
	if err != nil {
		return "", fmt.Errorf("marshal refresh payload: %w", err)
	}

	body, status, err := c.roundTrip(ctx, request{
		method:      "POST",
		path:        refreshPath,
		body:        payload,
		contentType: "application/json",
	}, "")
	if err != nil {
		return "", fmt.Errorf("refresh exchange: %w", err)
	}
	if status >= 400 {
		c.clearSession()
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, newError(status, refreshPath, body))
	}

	var tokens refreshResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		c.clearSession()
		return "", fmt.Errorf("%w: malformed refresh response: %v", ErrSessionExpired, err)
	}
	if tokens.AccessToken == "" {
		c.clearSession()
		return "", fmt.Errorf("%w: refresh response missing access token", ErrSessionExpired)
	}

	if err := c.tokens.Save(Credentials{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}
	return tokens.AccessToken, nil
}

func (c *Client) clearSession() {
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("failed to clear stored credentials", logger.Error(err))
	}
}
