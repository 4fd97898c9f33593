package category

import (
	"testing"

	"github.com/MasCreaThor/plataforma/internal/domain"
)

func cat(id, name string, parent string) domain.Category {
	c := domain.Category{ID: id, Name: name}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func TestBuildForest(t *testing.T) {
	items := []domain.Category{
		cat("1", "DevOps", ""),
		cat("2", "Backend", ""),
		cat("3", "Kubernetes", "1"),
		cat("4", "Ansible", "1"),
		cat("5", "Helm", "3"),
	}

	forest := BuildForest(items)
	if len(forest) != 2 {
		t.Fatalf("len(forest) = %d, want 2", len(forest))
	}

	// Roots sorted by name: Backend before DevOps.
	if forest[0].Category.Name != "Backend" || forest[1].Category.Name != "DevOps" {
		t.Errorf("root order = %q, %q", forest[0].Category.Name, forest[1].Category.Name)
	}

	devops := forest[1]
	if len(devops.Children) != 2 {
		t.Fatalf("DevOps children = %d, want 2", len(devops.Children))
	}
	if devops.Children[0].Category.Name != "Ansible" || devops.Children[1].Category.Name != "Kubernetes" {
		t.Errorf("child order = %q, %q", devops.Children[0].Category.Name, devops.Children[1].Category.Name)
	}
	k8s := devops.Children[1]
	if len(k8s.Children) != 1 || k8s.Children[0].Category.Name != "Helm" {
		t.Errorf("Kubernetes children = %+v", k8s.Children)
	}
}

func TestBuildForestPromotesOrphans(t *testing.T) {
	items := []domain.Category{
		cat("1", "Root", ""),
		cat("2", "Orphan", "missing-parent"),
	}

	forest := BuildForest(items)
	if len(forest) != 2 {
		t.Fatalf("len(forest) = %d, want 2 (orphan promoted to root)", len(forest))
	}
}

func TestBuildForestSelfReference(t *testing.T) {
	self := "1"
	items := []domain.Category{
		{ID: "1", Name: "Loop", ParentID: &self},
	}

	forest := BuildForest(items)
	if len(forest) != 1 {
		t.Fatalf("len(forest) = %d, want 1", len(forest))
	}
	if len(forest[0].Children) != 0 {
		t.Error("self-referencing node attached to itself")
	}
}

func TestWalkDepths(t *testing.T) {
	items := []domain.Category{
		cat("1", "A", ""),
		cat("2", "B", "1"),
		cat("3", "C", "2"),
	}

	var visited []string
	var depths []int
	Walk(BuildForest(items), func(depth int, n *Node) {
		visited = append(visited, n.Category.Name)
		depths = append(depths, depth)
	})

	wantNames := []string{"A", "B", "C"}
	wantDepths := []int{0, 1, 2}
	for i := range wantNames {
		if visited[i] != wantNames[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = (%s, %d), want (%s, %d)", i, visited[i], depths[i], wantNames[i], wantDepths[i])
		}
	}
}
