package query

import (
	"context"
	"testing"
	"time"

	"github.com/MasCreaThor/plataforma/internal/logger"
)

func testLogger() logger.Logger { return logger.Nop() }

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Error("Get() hit on a missing key")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("Get() hit on an expired entry")
	}
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	keys := []string{"categories:all", "categories:children:1", "categories:children:2", "knowledge:item:1"}
	for _, k := range keys {
		_ = s.Set(ctx, k, []byte("x"), time.Minute)
	}

	if err := s.DeletePrefix(ctx, "categories:children:"); err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}

	if _, ok, _ := s.Get(ctx, "categories:children:1"); ok {
		t.Error("prefixed key survived DeletePrefix()")
	}
	if _, ok, _ := s.Get(ctx, "categories:all"); !ok {
		t.Error("unrelated key removed by DeletePrefix()")
	}
	if _, ok, _ := s.Get(ctx, "knowledge:item:1"); !ok {
		t.Error("unrelated key removed by DeletePrefix()")
	}
}

func TestMemoryStorePurge(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Set(ctx, "live", []byte("x"), time.Minute)
	_ = s.Set(ctx, "dead1", []byte("x"), -time.Second)
	_ = s.Set(ctx, "dead2", []byte("x"), -time.Second)

	if removed := s.Purge(); removed != 2 {
		t.Errorf("Purge() = %d, want 2", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	cache := New(s, time.Minute, testLogger())

	_ = s.Set(ctx, "k", []byte("{not json"), time.Minute)

	var out map[string]string
	if cache.GetJSON(ctx, "k", &out) {
		t.Error("GetJSON() hit on a corrupt entry")
	}
	// Corrupt entries are dropped so the next write starts clean.
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("corrupt entry not evicted")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := New(NewMemoryStore(), time.Minute, testLogger())

	type payload struct {
		Name string `json:"name"`
	}
	cache.SetJSON(ctx, "k", payload{Name: "a"})

	var got payload
	if !cache.GetJSON(ctx, "k", &got) {
		t.Fatal("GetJSON() missed a fresh entry")
	}
	if got.Name != "a" {
		t.Errorf("GetJSON() = %+v", got)
	}

	cache.Invalidate(ctx, "k")
	if cache.GetJSON(ctx, "k", &got) {
		t.Error("GetJSON() hit after Invalidate()")
	}
}
