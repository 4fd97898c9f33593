package category

import (
	"sort"

	"github.com/MasCreaThor/plataforma/internal/domain"
)

// Node is one resolved node of the category forest.
type Node struct {
	Category domain.Category
	Children []*Node
}

// BuildForest assembles a forest out of a flat listing. Children are sorted
// by name at every level. A node whose parent is missing from the listing is
// promoted to root so a partial listing still renders instead of losing
// subtrees.
func BuildForest(categories []domain.Category) []*Node {
	nodes := make(map[string]*Node, len(categories))
	for _, cat := range categories {
		nodes[cat.ID] = &Node{Category: cat}
	}

	var roots []*Node
	for _, cat := range categories {
		node := nodes[cat.ID]
		if cat.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*cat.ParentID]
		if !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortForest(roots)
	return roots
}

// Walk visits every node depth-first, parents before children, with the
// node's depth (roots are depth zero).
func Walk(forest []*Node, fn func(depth int, n *Node)) {
	for _, root := range forest {
		walkNode(root, 0, fn)
	}
}

func walkNode(n *Node, depth int, fn func(depth int, n *Node)) {
	fn(depth, n)
	for _, child := range n.Children {
		walkNode(child, depth+1, fn)
	}
}

func sortForest(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Category.Name < nodes[j].Category.Name
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}
