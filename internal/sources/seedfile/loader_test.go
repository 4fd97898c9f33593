package seedfile

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSeed = `
categories:
  - name: Kubernetes
    parent: DevOps
    children:
      - name: Helm
knowledge:
  - title: restart traefik
    type: command
    category: Kubernetes
    tags: [infra, docker]
resources:
  - title: Helm docs
    type: documentation
    url: https://helm.sh/docs
    category: Helm
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoaderParsesSeed(t *testing.T) {
	seed, err := NewLoader(writeSeed(t, sampleSeed)).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(seed.Categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(seed.Categories))
	}
	root := seed.Categories[0]
	if root.Name != "Kubernetes" || root.Parent != "DevOps" {
		t.Errorf("root category = %+v", root)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "Helm" {
		t.Errorf("children = %+v", root.Children)
	}

	if len(seed.Knowledge) != 1 {
		t.Fatalf("knowledge = %d, want 1", len(seed.Knowledge))
	}
	if got := seed.Knowledge[0].Tags; len(got) != 2 || got[0] != "infra" {
		t.Errorf("tags = %v", got)
	}

	if len(seed.Resources) != 1 || seed.Resources[0].URL != "https://helm.sh/docs" {
		t.Errorf("resources = %+v", seed.Resources)
	}
}

func TestLoaderExpandsEnvVars(t *testing.T) {
	t.Setenv("SEED_DOCS_URL", "https://internal.example/docs")
	seed, err := NewLoader(writeSeed(t, `
resources:
  - title: Internal docs
    type: link
    url: ${SEED_DOCS_URL}
`)).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if seed.Resources[0].URL != "https://internal.example/docs" {
		t.Errorf("url = %q, env var not expanded", seed.Resources[0].URL)
	}
}

func TestLoaderRejectsEmptySeed(t *testing.T) {
	if _, err := NewLoader(writeSeed(t, "categories: []\n")).Load(); err == nil {
		t.Error("Load() accepted a seed with nothing to import")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load(); err == nil {
		t.Error("Load() accepted a missing file")
	}
}
