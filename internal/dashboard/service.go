package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

const endpoint = "/dashboard"

// ItemSummary is the minimal shape shared by recent and most-used entries,
// whichever entity kind they come from.
type ItemSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	UsageCount int64     `json:"usageCount,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UpdateConfig is a partial patch of the dashboard configuration. Widgets
// move through the dedicated widget endpoints, not through this payload.
type UpdateConfig struct {
	Theme  *string        `json:"theme,omitempty"`
	Layout map[string]any `json:"layout,omitempty"`
}

// Service reads the aggregate dashboard views and manages the persisted
// layout.
type Service struct {
	client *api.Client
	cache  *query.Cache
	log    logger.Logger
}

func NewService(client *api.Client, cache *query.Cache, log logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// Stats returns the aggregate counters, tag leaderboard, and activity feed.
func (s *Service) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	key := query.KeyDashboardStats()

	var cached domain.DashboardStats
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	body, err := s.client.Get(ctx, endpoint+"/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats domain.DashboardStats
	if err := api.Decode(body, &stats); err != nil {
		return nil, fmt.Errorf("decode dashboard stats: %w", err)
	}
	s.cache.SetJSON(ctx, key, stats)
	return &stats, nil
}

// Config returns the caller's persisted dashboard layout.
func (s *Service) Config(ctx context.Context) (*domain.DashboardConfig, error) {
	key := query.KeyDashboardConfig()

	var cached domain.DashboardConfig
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	body, err := s.client.Get(ctx, endpoint+"/config", nil)
	if err != nil {
		return nil, err
	}
	var cfg domain.DashboardConfig
	if err := api.Decode(body, &cfg); err != nil {
		return nil, fmt.Errorf("decode dashboard config: %w", err)
	}
	s.cache.SetJSON(ctx, key, cfg)
	return &cfg, nil
}

// UpdateConfig patches the layout's top-level settings.
func (s *Service) UpdateConfig(ctx context.Context, patch UpdateConfig) (*domain.DashboardConfig, error) {
	body, err := s.client.Patch(ctx, endpoint+"/config", patch)
	if err != nil {
		return nil, err
	}
	return s.decodeConfig(ctx, body)
}

// AddWidget appends a widget to the layout. The server assigns the id.
func (s *Service) AddWidget(ctx context.Context, widget domain.DashboardWidget) (*domain.DashboardConfig, error) {
	body, err := s.client.Post(ctx, endpoint+"/widgets", widget)
	if err != nil {
		return nil, err
	}
	return s.decodeConfig(ctx, body)
}

// UpdateWidget patches one widget of the layout.
func (s *Service) UpdateWidget(ctx context.Context, widgetID string, widget domain.DashboardWidget) (*domain.DashboardConfig, error) {
	body, err := s.client.Patch(ctx, endpoint+"/widgets/"+widgetID, widget)
	if err != nil {
		return nil, err
	}
	return s.decodeConfig(ctx, body)
}

// RemoveWidget drops one widget from the layout.
func (s *Service) RemoveWidget(ctx context.Context, widgetID string) (*domain.DashboardConfig, error) {
	body, err := s.client.Delete(ctx, endpoint+"/widgets/"+widgetID)
	if err != nil {
		return nil, err
	}
	return s.decodeConfig(ctx, body)
}

// Recent lists the latest items of one entity kind, "knowledge" or
// "resources". limit <= 0 defers to the server default.
func (s *Service) Recent(ctx context.Context, kind string, limit int) ([]ItemSummary, error) {
	return s.summaries(ctx, endpoint+"/recent/"+kind, "dashboard:recent:"+kind+":", limit)
}

// MostUsed lists the most used items of one entity kind.
func (s *Service) MostUsed(ctx context.Context, kind string, limit int) ([]ItemSummary, error) {
	return s.summaries(ctx, endpoint+"/most-used/"+kind, "dashboard:most-used:"+kind+":", limit)
}

func (s *Service) summaries(ctx context.Context, path, keyPrefix string, limit int) ([]ItemSummary, error) {
	var params url.Values
	if limit > 0 {
		params = url.Values{}
		params.Set("limit", strconv.Itoa(limit))
	}
	key := keyPrefix + params.Encode()

	var cached []ItemSummary
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[ItemSummary](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

func (s *Service) decodeConfig(ctx context.Context, body []byte) (*domain.DashboardConfig, error) {
	var cfg domain.DashboardConfig
	if err := api.Decode(body, &cfg); err != nil {
		return nil, fmt.Errorf("decode dashboard config: %w", err)
	}
	s.cache.SetJSON(ctx, query.KeyDashboardConfig(), cfg)
	return &cfg, nil
}
