package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/auth"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

func boolPtr(b bool) *bool { return &b }

func TestEncodeFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.KnowledgeFilter
		want   url.Values
	}{
		{
			name:   "empty filter yields no params",
			filter: domain.KnowledgeFilter{},
			want:   nil,
		},
		{
			name: "empty strings and slices are absent",
			filter: domain.KnowledgeFilter{
				Search: "   ",
				Types:  []domain.KnowledgeType{},
				Tags:   []string{"", "  "},
			},
			want: nil,
		},
		{
			name: "multi-value filters are comma joined",
			filter: domain.KnowledgeFilter{
				Types: []domain.KnowledgeType{domain.KnowledgeNote, domain.KnowledgeSnippet},
				Tags:  []string{"go", "redis"},
			},
			want: url.Values{"types": {"note,snippet"}, "tags": {"go,redis"}},
		},
		{
			name: "empty elements inside slices are dropped",
			filter: domain.KnowledgeFilter{
				Tags: []string{"go", "", " redis "},
			},
			want: url.Values{"tags": {"go,redis"}},
		},
		{
			name: "explicit false is transmitted",
			filter: domain.KnowledgeFilter{
				IsPublic: boolPtr(false),
			},
			want: url.Values{"isPublic": {"false"}},
		},
		{
			name: "full filter",
			filter: domain.KnowledgeFilter{
				Search:     "docker",
				Types:      []domain.KnowledgeType{domain.KnowledgeCommand},
				CategoryID: "507f1f77bcf86cd799439011",
				Tags:       []string{"infra"},
				IsPublic:   boolPtr(true),
			},
			want: url.Values{
				"search":     {"docker"},
				"types":      {"command"},
				"categoryId": {"507f1f77bcf86cd799439011"},
				"tags":       {"infra"},
				"isPublic":   {"true"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeFilter(tt.filter)
			if got.Encode() != tt.want.Encode() {
				t.Errorf("encodeFilter() = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func newTestService(t *testing.T, handler http.Handler) (*Service, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	store := auth.NewMemoryStore(api.Credentials{AccessToken: "tok"})
	client := api.New(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, store, logger.Nop())
	cache := query.New(query.NewMemoryStore(), time.Minute, logger.Nop())
	return NewService(client, cache, logger.Nop()), srv.Close
}

func TestListSendsNoQueryStringForEmptyFilter(t *testing.T) {
	var gotQuery string
	svc, closeSrv := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer closeSrv()

	if _, err := svc.List(context.Background(), domain.KnowledgeFilter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query string = %q, want empty", gotQuery)
	}
}

func TestDistinctFiltersCacheSeparately(t *testing.T) {
	var hits atomic.Int32
	svc, closeSrv := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer closeSrv()

	ctx := context.Background()
	if _, err := svc.List(ctx, domain.KnowledgeFilter{Search: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, domain.KnowledgeFilter{Search: "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, domain.KnowledgeFilter{Search: "a"}); err != nil {
		t.Fatal(err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hit %d times, want 2 (per-filter cache keys)", got)
	}
}

func TestByTagsWithNoTagsFallsBackToList(t *testing.T) {
	var gotPath string
	svc, closeSrv := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer closeSrv()

	if _, err := svc.ByTags(context.Background(), []string{"", "  "}); err != nil {
		t.Fatalf("ByTags() error = %v", err)
	}
	if gotPath != "/knowledge" {
		t.Errorf("path = %q, want /knowledge", gotPath)
	}
}

func TestIncrementUsageInvalidatesItem(t *testing.T) {
	var itemHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /knowledge/1", func(w http.ResponseWriter, r *http.Request) {
		itemHits.Add(1)
		w.Write([]byte(`{"data":{"id":"1","title":"t","type":"note","usageCount":1}}`))
	})
	mux.HandleFunc("POST /knowledge/1/increment-usage", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	ctx := context.Background()
	if _, err := svc.GetByID(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.IncrementUsage(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetByID(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if got := itemHits.Load(); got != 2 {
		t.Errorf("item endpoint hit %d times, want 2 (cache dropped by increment)", got)
	}
}
