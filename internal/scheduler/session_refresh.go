package scheduler

import (
	"context"
	"time"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/auth"
	"github.com/MasCreaThor/plataforma/internal/logger"
)

const (
	// DefaultRefreshLeeway is how long before access token expiry the
	// refresher acts.
	DefaultRefreshLeeway = time.Minute
)

// SessionRefresher exchanges the refresh token shortly before the access
// token expires, so long-lived watch commands never pay the 401-replay
// round trip.
type SessionRefresher struct {
	client   *api.Client
	tokens   api.TokenStore
	logger   logger.Logger
	interval time.Duration
	leeway   time.Duration
	stopCh   chan struct{}
}

// NewSessionRefresher creates a new session refresher
func NewSessionRefresher(
	client *api.Client,
	tokens api.TokenStore,
	log logger.Logger,
	interval time.Duration,
	leeway time.Duration,
) *SessionRefresher {
	if leeway == 0 {
		leeway = DefaultRefreshLeeway
	}

	return &SessionRefresher{
		client:   client,
		tokens:   tokens,
		logger:   log,
		interval: interval,
		leeway:   leeway,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh checks
func (sr *SessionRefresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.check(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (sr *SessionRefresher) Stop() {
	close(sr.stopCh)
}

// check refreshes the session if the access token is close to expiry.
// Without a refresh token there is no session to maintain; an unparseable
// access token is treated as expiring so the exchange decides.
func (sr *SessionRefresher) check(ctx context.Context) {
	creds, err := sr.tokens.Load()
	if err != nil {
		sr.logger.Warn("failed to load credentials", logger.Error(err))
		return
	}
	if creds.RefreshToken == "" {
		return
	}
	if !auth.ExpiresWithin(creds.AccessToken, sr.leeway) {
		return
	}

	sr.logger.Debug("access token near expiry, refreshing")
	if err := sr.client.ForceRefresh(ctx); err != nil {
		sr.logger.Warn("proactive session refresh failed", logger.Error(err))
		return
	}
	sr.logger.Debug("session refreshed")
}
