package resource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
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
		filter domain.ResourceFilter
		want   url.Values
	}{
		{
			name:   "empty filter yields no params",
			filter: domain.ResourceFilter{},
			want:   nil,
		},
		{
			name: "empty strings and slices are absent",
			filter: domain.ResourceFilter{
				Search: "   ",
				Types:  []domain.ResourceType{},
				Tags:   []string{"", "  "},
			},
			want: nil,
		},
		{
			name: "multi-value filters are comma joined",
			filter: domain.ResourceFilter{
				Types: []domain.ResourceType{domain.ResourceDocumentation, domain.ResourceVideo},
				Tags:  []string{"go", "docker"},
			},
			want: url.Values{"types": {"documentation,video"}, "tags": {"go,docker"}},
		},
		{
			name: "explicit false is transmitted",
			filter: domain.ResourceFilter{
				IsPublic: boolPtr(false),
			},
			want: url.Values{"isPublic": {"false"}},
		},
		{
			name: "full filter",
			filter: domain.ResourceFilter{
				Search:     "compose",
				Types:      []domain.ResourceType{domain.ResourceTutorial},
				CategoryID: "507f1f77bcf86cd799439011",
				Tags:       []string{"infra"},
				IsPublic:   boolPtr(true),
			},
			want: url.Values{
				"search":     {"compose"},
				"types":      {"tutorial"},
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

func TestUploadMultipartEncoding(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /resources/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile(file) error = %v", err)
		}
		defer file.Close()
		if header.Filename != "runbook.pdf" {
			t.Errorf("file name = %q, want runbook.pdf", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "pdf-bytes" {
			t.Errorf("file content = %q, want pdf-bytes", content)
		}

		want := map[string]string{
			"title":       "Runbook",
			"type":        "file",
			"isPublic":    "true",
			"description": "ops runbook",
			"categoryId":  "507f1f77bcf86cd799439011",
			"tags":        `["ops","docs"]`,
		}
		for field, wantVal := range want {
			if got := r.FormValue(field); got != wantVal {
				t.Errorf("field %s = %q, want %q", field, got, wantVal)
			}
		}

		w.Write([]byte(`{"data":{"id":"r1","title":"Runbook","type":"file"}}`))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	created, err := svc.Upload(context.Background(), "runbook.pdf", strings.NewReader("pdf-bytes"), domain.CreateResource{
		Title:       "Runbook",
		Type:        domain.ResourceFile,
		Description: "ops runbook",
		CategoryID:  "507f1f77bcf86cd799439011",
		Tags:        []string{"ops", "docs"},
		IsPublic:    true,
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if created.ID != "r1" {
		t.Errorf("Upload().ID = %q, want r1", created.ID)
	}
}

func TestUploadDefaultsAndOmitsEmptyFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /resources/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		if got := r.FormValue("type"); got != "file" {
			t.Errorf("type = %q, want file (default for uploads)", got)
		}
		if got := r.FormValue("isPublic"); got != "false" {
			t.Errorf("isPublic = %q, want false", got)
		}
		for _, field := range []string{"description", "categoryId", "tags"} {
			if _, ok := r.MultipartForm.Value[field]; ok {
				t.Errorf("field %s present, want absent when empty", field)
			}
		}
		w.Write([]byte(`{"data":{"id":"r2","title":"Notes","type":"file"}}`))
	})
	svc, closeSrv := newTestService(t, mux)
	defer closeSrv()

	if _, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("x"), domain.CreateResource{
		Title: "Notes",
	}); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
}

func TestUploadRejectsInvalidMetadataBeforeNetwork(t *testing.T) {
	svc, closeSrv := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid metadata")
	}))
	defer closeSrv()

	_, err := svc.Upload(context.Background(), "x.txt", strings.NewReader("x"), domain.CreateResource{
		Title: "   ",
	})
	if err == nil {
		t.Fatal("Upload() error = nil, want title validation failure")
	}
}

func TestListSendsNoQueryStringForEmptyFilter(t *testing.T) {
	var gotQuery string
	svc, closeSrv := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer closeSrv()

	if _, err := svc.List(context.Background(), domain.ResourceFilter{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query string = %q, want empty", gotQuery)
	}
}
