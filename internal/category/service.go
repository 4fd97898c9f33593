package category

import (
	"context"
	"fmt"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

const endpoint = "/categories"

// Service exposes the category forest. Persistence lives server-side; this
// layer adds advisory validation, lazy child resolution, and cache-coherent
// reads on top of the API.
type Service struct {
	client *api.Client
	cache  *query.Cache
	log    logger.Logger
}

func NewService(client *api.Client, cache *query.Cache, log logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// ListAll returns the flat list of every visible category, system and user
// owned alike. Visibility is resolved server-side from the caller's auth
// state, never filtered here.
func (s *Service) ListAll(ctx context.Context) ([]domain.Category, error) {
	return s.list(ctx, endpoint, query.KeyCategories())
}

// ListRoots returns categories without a parent.
func (s *Service) ListRoots(ctx context.Context) ([]domain.Category, error) {
	return s.list(ctx, endpoint+"/root", query.KeyRootCategories())
}

// ListSystem returns the platform-provided categories.
func (s *Service) ListSystem(ctx context.Context) ([]domain.Category, error) {
	return s.list(ctx, endpoint+"/system", query.KeySystemCategories())
}

// ListChildren returns the direct children of a category. Callers recurse
// lazily, one call per expansion, so deep hierarchies are never fetched
// wholesale.
func (s *Service) ListChildren(ctx context.Context, id string) ([]domain.Category, error) {
	return s.list(ctx, endpoint+"/"+id+"/children", query.KeyCategoryChildren(id))
}

// GetByID resolves one category; a dangling id surfaces the server's 404.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	key := query.KeyCategory(id)

	var cached domain.Category
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	body, err := s.client.Get(ctx, endpoint+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	var cat domain.Category
	if err := api.Decode(body, &cat); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	s.cache.SetJSON(ctx, key, cat)
	return &cat, nil
}

// Create submits a new subcategory. The payload is validated (trimmed
// non-empty name, required well-formed parent reference) before any
// network traffic happens.
func (s *Service) Create(ctx context.Context, payload domain.CreateCategory) (*domain.Category, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Post(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	var created domain.Category
	if err := api.Decode(body, &created); err != nil {
		return nil, fmt.Errorf("decode created category: %w", err)
	}

	s.invalidateListings(ctx)
	return &created, nil
}

// Update applies a partial patch. System categories are guarded at the
// command layer; this core only does the advisory format checks.
func (s *Service) Update(ctx context.Context, id string, patch domain.UpdateCategory) (*domain.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Patch(ctx, endpoint+"/"+id, patch)
	if err != nil {
		return nil, err
	}
	var updated domain.Category
	if err := api.Decode(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated category: %w", err)
	}

	s.cache.Invalidate(ctx, query.KeyCategory(id))
	s.invalidateListings(ctx)
	return &updated, nil
}

// Delete removes a category. Deleting one that still has dependent
// knowledge items or resources fails server-side; the error is surfaced
// as-is and nothing is retried.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, endpoint+"/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, query.KeyCategory(id))
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) list(ctx context.Context, path, cacheKey string) ([]domain.Category, error) {
	var cached []domain.Category
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.Category](s.log, path, body)
	s.cache.SetJSON(ctx, cacheKey, items)
	return items, nil
}

// invalidateListings drops every cached category view so the next read of
// any listing reflects the latest write.
func (s *Service) invalidateListings(ctx context.Context) {
	s.cache.Invalidate(ctx,
		query.KeyCategories(),
		query.KeyRootCategories(),
		query.KeySystemCategories())
	s.cache.InvalidatePrefix(ctx, query.PrefixCategoryChildren)
}
