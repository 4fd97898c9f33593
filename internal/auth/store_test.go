package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MasCreaThor/plataforma/internal/api"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewFileStore(path)

	want := api.Credentials{AccessToken: "acc", RefreshToken: "ref"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileStoreSaveReplacesWithoutLeftovers(t *testing.T) {
	// Save goes through a temp file and a rename, so overwriting an
	// existing pair must leave exactly the credentials file behind and
	// a reader must never see a half-written state.
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	store := NewFileStore(path)

	if err := store.Save(api.Credentials{AccessToken: "old", RefreshToken: "old-r"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	want := api.Credentials{AccessToken: "new", RefreshToken: "new-r"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "credentials.json" {
		t.Errorf("directory entries = %v, want only credentials.json", entries)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestFileStoreKeyNames(t *testing.T) {
	// The on-disk key names are a compatibility contract and must not
	// drift with Go field naming.
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	if err := store.Save(api.Credentials{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["token"] != "a" || raw["refreshToken"] != "r" {
		t.Errorf("stored keys = %v, want token/refreshToken", raw)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	creds, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, missing file must not fail", err)
	}
	if !creds.Empty() {
		t.Errorf("Load() = %+v, want empty", creds)
	}

	if err := store.Clear(); err != nil {
		t.Errorf("Clear() error = %v, clearing an absent file must not fail", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)
	if err := store.Save(api.Credentials{AccessToken: "a"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("credentials file still present after Clear()")
	}
}
