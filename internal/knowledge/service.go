package knowledge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

const endpoint = "/knowledge"

// Service is the typed access layer for knowledge items.
type Service struct {
	client *api.Client
	cache  *query.Cache
	log    logger.Logger
}

func NewService(client *api.Client, cache *query.Cache, log logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// List returns knowledge items matching the filter. The zero filter lists
// everything the caller may see.
func (s *Service) List(ctx context.Context, filter domain.KnowledgeFilter) ([]domain.KnowledgeItem, error) {
	params := encodeFilter(filter)
	key := query.KeyKnowledgeList(params.Encode())

	var cached []domain.KnowledgeItem
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.KnowledgeItem](s.log, endpoint, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// GetByID resolves one knowledge item.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.KnowledgeItem, error) {
	key := query.KeyKnowledge(id)

	var cached domain.KnowledgeItem
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	body, err := s.client.Get(ctx, endpoint+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	var item domain.KnowledgeItem
	if err := api.Decode(body, &item); err != nil {
		return nil, fmt.Errorf("decode knowledge item: %w", err)
	}
	s.cache.SetJSON(ctx, key, item)
	return &item, nil
}

// ByCategory lists the knowledge items filed under one category.
func (s *Service) ByCategory(ctx context.Context, categoryID string) ([]domain.KnowledgeItem, error) {
	key := query.KeyKnowledgeByCategory(categoryID)

	var cached []domain.KnowledgeItem
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	path := endpoint + "/by-category/" + categoryID
	body, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.KnowledgeItem](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// ByTags lists knowledge items carrying any of the given tags. Empty tags
// are dropped; calling with none is equivalent to an unfiltered listing.
func (s *Service) ByTags(ctx context.Context, tags []string) ([]domain.KnowledgeItem, error) {
	joined := joinNonEmpty(tags)
	if joined == "" {
		return s.List(ctx, domain.KnowledgeFilter{})
	}
	key := query.KeyKnowledgeByTags(joined)

	var cached []domain.KnowledgeItem
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	params := url.Values{}
	params.Set("tags", joined)
	path := endpoint + "/by-tags"
	body, err := s.client.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.KnowledgeItem](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// Related lists the items linked to one knowledge item.
func (s *Service) Related(ctx context.Context, id string) ([]domain.KnowledgeItem, error) {
	key := query.KeyKnowledgeRelated(id)

	var cached []domain.KnowledgeItem
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	path := endpoint + "/" + id + "/related"
	body, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.KnowledgeItem](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// Create stores a new knowledge item.
func (s *Service) Create(ctx context.Context, payload domain.CreateKnowledge) (*domain.KnowledgeItem, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Post(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	var created domain.KnowledgeItem
	if err := api.Decode(body, &created); err != nil {
		return nil, fmt.Errorf("decode created knowledge item: %w", err)
	}

	s.invalidateListings(ctx)
	return &created, nil
}

// Update applies a partial patch to one knowledge item.
func (s *Service) Update(ctx context.Context, id string, patch domain.UpdateKnowledge) (*domain.KnowledgeItem, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Patch(ctx, endpoint+"/"+id, patch)
	if err != nil {
		return nil, err
	}
	var updated domain.KnowledgeItem
	if err := api.Decode(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated knowledge item: %w", err)
	}

	s.cache.Invalidate(ctx, query.KeyKnowledge(id))
	s.invalidateListings(ctx)
	return &updated, nil
}

// Delete removes one knowledge item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, endpoint+"/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, query.KeyKnowledge(id), query.KeyKnowledgeRelated(id))
	s.invalidateListings(ctx)
	return nil
}

// IncrementUsage bumps the item's usage counter server-side. The counter is
// never written through Update.
func (s *Service) IncrementUsage(ctx context.Context, id string) error {
	if _, err := s.client.Post(ctx, endpoint+"/"+id+"/increment-usage", nil); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, query.KeyKnowledge(id))
	return nil
}

// AddRelated links two knowledge items.
func (s *Service) AddRelated(ctx context.Context, id, relatedID string) error {
	if _, err := s.client.Post(ctx, endpoint+"/"+id+"/related/"+relatedID, nil); err != nil {
		return err
	}
	s.invalidateRelated(ctx, id, relatedID)
	return nil
}

// RemoveRelated unlinks two knowledge items.
func (s *Service) RemoveRelated(ctx context.Context, id, relatedID string) error {
	if _, err := s.client.Delete(ctx, endpoint+"/"+id+"/related/"+relatedID); err != nil {
		return err
	}
	s.invalidateRelated(ctx, id, relatedID)
	return nil
}

func (s *Service) invalidateRelated(ctx context.Context, id, relatedID string) {
	s.cache.Invalidate(ctx,
		query.KeyKnowledge(id),
		query.KeyKnowledge(relatedID),
		query.KeyKnowledgeRelated(id),
		query.KeyKnowledgeRelated(relatedID))
}

// invalidateListings drops every cached listing view. Dashboard views
// aggregate over the same data, so they go too.
func (s *Service) invalidateListings(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, "knowledge:list:", "knowledge:by-category:", "knowledge:by-tags:")
	s.cache.InvalidatePrefix(ctx, query.PrefixDashboardViews)
}

// encodeFilter canonicalizes a filter into query parameters. Zero values
// are absent, empty elements inside slices are dropped, and multi-value
// filters travel comma-joined. A fully empty filter yields nil so the
// request carries no query string at all.
func encodeFilter(f domain.KnowledgeFilter) url.Values {
	v := url.Values{}
	if search := strings.TrimSpace(f.Search); search != "" {
		v.Set("search", search)
	}
	if types := joinTypes(f.Types); types != "" {
		v.Set("types", types)
	}
	if f.CategoryID != "" {
		v.Set("categoryId", f.CategoryID)
	}
	if tags := joinNonEmpty(f.Tags); tags != "" {
		v.Set("tags", tags)
	}
	if f.IsPublic != nil {
		v.Set("isPublic", strconv.FormatBool(*f.IsPublic))
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func joinTypes(types []domain.KnowledgeType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		if t != "" {
			parts = append(parts, string(t))
		}
	}
	return strings.Join(parts, ",")
}

func joinNonEmpty(values []string) string {
	parts := make([]string, 0, len(values))
	for _, val := range values {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ",")
}
