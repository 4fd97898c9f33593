package scheduler

import (
	"context"
	"time"

	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

// CachePurger periodically evicts expired entries from the in-memory query
// cache. Reads already treat expired entries as misses; purging just keeps
// a long-running watch session from accumulating dead entries.
type CachePurger struct {
	store    *query.MemoryStore
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCachePurger creates a new cache purger
func NewCachePurger(store *query.MemoryStore, log logger.Logger, interval time.Duration) *CachePurger {
	return &CachePurger{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic purge process
func (cp *CachePurger) Start(ctx context.Context) error {
	ticker := time.NewTicker(cp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cp.purge()
			case <-cp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the purger
func (cp *CachePurger) Stop() {
	close(cp.stopCh)
}

func (cp *CachePurger) purge() {
	removed := cp.store.Purge()
	if removed > 0 {
		cp.logger.Debug("purged expired cache entries",
			logger.Int("count", removed),
			logger.Int("remaining", cp.store.Len()))
	}
}
