package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/auth"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	store := auth.NewMemoryStore(api.Credentials{AccessToken: "tok"})
	client := api.New(api.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, store, logger.Nop())
	cache := query.New(query.NewMemoryStore(), time.Minute, logger.Nop())
	return NewService(client, cache, logger.Nop()), srv.Close
}

func configBody(cfg domain.DashboardConfig) []byte {
	data, _ := json.Marshal(map[string]any{"data": cfg})
	return data
}

func TestConfigCached(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard/config", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1", Theme: "dark"}))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		cfg, err := svc.Config(ctx)
		if err != nil {
			t.Fatalf("Config() error = %v", err)
		}
		if cfg.Theme != "dark" {
			t.Errorf("Config().Theme = %q, want dark", cfg.Theme)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("config endpoint hit %d times, want 1", got)
	}
}

func TestUpdateConfigRecachesResult(t *testing.T) {
	var getHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard/config", func(w http.ResponseWriter, r *http.Request) {
		getHits.Add(1)
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1", Theme: "light"}))
	})
	mux.HandleFunc("PATCH /dashboard/config", func(w http.ResponseWriter, r *http.Request) {
		var patch UpdateConfig
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		if patch.Theme == nil || *patch.Theme != "dark" {
			t.Errorf("patch theme = %v, want dark", patch.Theme)
		}
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1", Theme: "dark"}))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	ctx := context.Background()
	theme := "dark"
	updated, err := svc.UpdateConfig(ctx, UpdateConfig{Theme: &theme})
	if err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	if updated.Theme != "dark" {
		t.Errorf("UpdateConfig().Theme = %q, want dark", updated.Theme)
	}

	// The patch response is the fresh config, so the next read must come
	// from the cache, not from the GET endpoint.
	cfg, err := svc.Config(ctx)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Config().Theme = %q, want dark (cached patch result)", cfg.Theme)
	}
	if got := getHits.Load(); got != 0 {
		t.Errorf("config GET hit %d times, want 0", got)
	}
}

func TestWidgetLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /dashboard/widgets", func(w http.ResponseWriter, r *http.Request) {
		var widget domain.DashboardWidget
		if err := json.NewDecoder(r.Body).Decode(&widget); err != nil {
			t.Errorf("decode widget: %v", err)
		}
		if widget.Type != "recent" || widget.Title != "Recent items" {
			t.Errorf("posted widget = %+v", widget)
		}
		widget.ID = "w1"
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1", Widgets: []domain.DashboardWidget{widget}}))
	})
	mux.HandleFunc("PATCH /dashboard/widgets/w1", func(w http.ResponseWriter, r *http.Request) {
		var widget domain.DashboardWidget
		if err := json.NewDecoder(r.Body).Decode(&widget); err != nil {
			t.Errorf("decode widget: %v", err)
		}
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1", Widgets: []domain.DashboardWidget{widget}}))
	})
	mux.HandleFunc("DELETE /dashboard/widgets/w1", func(w http.ResponseWriter, r *http.Request) {
		w.Write(configBody(domain.DashboardConfig{ID: "cfg1"}))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	ctx := context.Background()
	cfg, err := svc.AddWidget(ctx, domain.DashboardWidget{
		Type:     "recent",
		Title:    "Recent items",
		Position: domain.WidgetPosition{Width: 2, Height: 1},
	})
	if err != nil {
		t.Fatalf("AddWidget() error = %v", err)
	}
	if len(cfg.Widgets) != 1 || cfg.Widgets[0].ID != "w1" {
		t.Fatalf("AddWidget() widgets = %+v, want one with server id", cfg.Widgets)
	}

	cfg, err = svc.UpdateWidget(ctx, "w1", domain.DashboardWidget{ID: "w1", Title: "Latest"})
	if err != nil {
		t.Fatalf("UpdateWidget() error = %v", err)
	}
	if cfg.Widgets[0].Title != "Latest" {
		t.Errorf("UpdateWidget() title = %q, want Latest", cfg.Widgets[0].Title)
	}

	cfg, err = svc.RemoveWidget(ctx, "w1")
	if err != nil {
		t.Fatalf("RemoveWidget() error = %v", err)
	}
	if len(cfg.Widgets) != 0 {
		t.Errorf("RemoveWidget() widgets = %+v, want none", cfg.Widgets)
	}

	// Each mutation re-caches the returned config, so a read after the
	// removal must see the empty layout without another round trip.
	cached, err := svc.Config(ctx)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if len(cached.Widgets) != 0 {
		t.Errorf("Config() widgets = %+v, want none after removal", cached.Widgets)
	}
}

func TestRecentPassesLimit(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /dashboard/recent/knowledge", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[{"id":"k1","title":"t","type":"note"}]}`))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	items, err := svc.Recent(context.Background(), "knowledge", 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Recent() returned %d items, want 1", len(items))
	}
	if gotQuery != "limit=3" {
		t.Errorf("query string = %q, want limit=3", gotQuery)
	}
}
