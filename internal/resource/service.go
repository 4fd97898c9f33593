package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

const endpoint = "/resources"

// Service is the typed access layer for resources.
type Service struct {
	client *api.Client
	cache  *query.Cache
	log    logger.Logger
}

func NewService(client *api.Client, cache *query.Cache, log logger.Logger) *Service {
	return &Service{client: client, cache: cache, log: log}
}

// List returns resources matching the filter. The zero filter lists
// everything the caller may see.
func (s *Service) List(ctx context.Context, filter domain.ResourceFilter) ([]domain.Resource, error) {
	params := encodeFilter(filter)
	key := query.KeyResourceList(params.Encode())

	var cached []domain.Resource
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	body, err := s.client.Get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.Resource](s.log, endpoint, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// GetByID resolves one resource.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	key := query.KeyResource(id)

	var cached domain.Resource
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	body, err := s.client.Get(ctx, endpoint+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	var res domain.Resource
	if err := api.Decode(body, &res); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	s.cache.SetJSON(ctx, key, res)
	return &res, nil
}

// ByCategory lists the resources filed under one category.
func (s *Service) ByCategory(ctx context.Context, categoryID string) ([]domain.Resource, error) {
	key := query.KeyResourceByCategory(categoryID)

	var cached []domain.Resource
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	path := endpoint + "/by-category/" + categoryID
	body, err := s.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	items := api.DecodeList[domain.Resource](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// ByTags lists resources carrying any of the given tags.
func (s *Service) ByTags(ctx context.Context, tags []string) ([]domain.Resource, error) {
	joined := joinNonEmpty(tags)
	if joined == "" {
		return s.List(ctx, domain.ResourceFilter{})
	}
	key := query.KeyResourceByTags(joined)

	var cached []domain.Resource
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
	items := api.DecodeList[domain.Resource](s.log, path, body)
	s.cache.SetJSON(ctx, key, items)
	return items, nil
}

// Create stores a new resource without a file attachment.
func (s *Service) Create(ctx context.Context, payload domain.CreateResource) (*domain.Resource, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Post(ctx, endpoint, payload)
	if err != nil {
		return nil, err
	}
	var created domain.Resource
	if err := api.Decode(body, &created); err != nil {
		return nil, fmt.Errorf("decode created resource: %w", err)
	}

	s.invalidateListings(ctx)
	return &created, nil
}

// Upload creates a file-backed resource: one multipart file part plus the
// metadata as form fields. Slice metadata travels as a JSON-encoded field,
// matching what the backend's multipart parser expects.
func (s *Service) Upload(ctx context.Context, fileName string, file io.Reader, meta domain.CreateResource) (*domain.Resource, error) {
	if meta.Type == "" {
		meta.Type = domain.ResourceFile
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":    meta.Title,
		"type":     string(meta.Type),
		"isPublic": strconv.FormatBool(meta.IsPublic),
	}
	if meta.Description != "" {
		fields["description"] = meta.Description
	}
	if meta.CategoryID != "" {
		fields["categoryId"] = meta.CategoryID
	}
	if len(meta.Tags) > 0 {
		tags, err := json.Marshal(meta.Tags)
		if err != nil {
			return nil, fmt.Errorf("marshal tags field: %w", err)
		}
		fields["tags"] = string(tags)
	}

	body, err := s.client.Upload(ctx, endpoint+"/upload", "file", fileName, file, fields)
	if err != nil {
		return nil, err
	}
	var created domain.Resource
	if err := api.Decode(body, &created); err != nil {
		return nil, fmt.Errorf("decode uploaded resource: %w", err)
	}

	s.invalidateListings(ctx)
	return &created, nil
}

// Update applies a partial patch to one resource.
func (s *Service) Update(ctx context.Context, id string, patch domain.UpdateResource) (*domain.Resource, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	body, err := s.client.Patch(ctx, endpoint+"/"+id, patch)
	if err != nil {
		return nil, err
	}
	var updated domain.Resource
	if err := api.Decode(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated resource: %w", err)
	}

	s.cache.Invalidate(ctx, query.KeyResource(id))
	s.invalidateListings(ctx)
	return &updated, nil
}

// Delete removes one resource. The server also discards any stored file.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.client.Delete(ctx, endpoint+"/"+id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, query.KeyResource(id))
	s.invalidateListings(ctx)
	return nil
}

// IncrementUsage bumps the resource's usage counter server-side.
func (s *Service) IncrementUsage(ctx context.Context, id string) error {
	if _, err := s.client.Post(ctx, endpoint+"/"+id+"/increment-usage", nil); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, query.KeyResource(id))
	return nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, "resources:list:", "resources:by-category:", "resources:by-tags:")
	s.cache.InvalidatePrefix(ctx, query.PrefixDashboardViews)
}

func encodeFilter(f domain.ResourceFilter) url.Values {
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

func joinTypes(types []domain.ResourceType) string {
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
