package tag

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

const endpoint = "/tags"

// Service lists the aggregated tag view. Tags have no create or delete
// here: they come and go with the items that carry them.
type Service struct {
	client *api.Client
	cache  *query.Cache
	log    logger.Logger
}

func NewService(client *api.Client, cache *query.Cache, log logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// List returns tags matching the filter, most used first when the backend
// orders them. The zero filter lists every tag.
func (s *Service) List(ctx context.Context, filter domain.TagFilter) ([]domain.Tag, error) {
	params := encodeFilter(filter)
	key := query.KeyTagList(params.Encode())

	var cached []domain.Tag
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	tags := api.DecodeList[domain.Tag](s.log, endpoint, body)
	s.cache.SetJSON(ctx, key, tags)
	return tags, nil
}

func encodeFilter(f domain.TagFilter) url.Values {
	v := url.Values{}
	if search := strings.TrimSpace(f.Search); search != "" {
		v.Set("search", search)
	}
	if f.MinUsageCount > 0 {
		v.Set("minUsageCount", strconv.Itoa(f.MinUsageCount))
	}
	if f.Popular {
		v.Set("popular", "true")
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(v) == 0 {
		return nil
	}
	return v
}
