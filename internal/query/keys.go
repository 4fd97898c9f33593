package query

// Cache keys mirror the query keys the dashboard UI always used, so the
// invalidation sets after each mutation stay recognizable: a category
// mutation touches the category views, a knowledge mutation touches the
// knowledge views, and nothing else.

const (
	// Prefixes for whole-family invalidation.
	PrefixCategoryChildren = "categories:children:"
	PrefixKnowledgeViews   = "knowledge:"
	PrefixResourceViews    = "resources:"
	PrefixTagViews         = "tags:"
	PrefixDashboardViews   = "dashboard:"
)

func KeyCategories() string       { return "categories:all" }
func KeyRootCategories() string   { return "categories:root" }
func KeySystemCategories() string { return "categories:system" }

func KeyCategory(id string) string         { return "categories:item:" + id }
func KeyCategoryChildren(id string) string { return PrefixCategoryChildren + id }

// KeyKnowledgeList keys a filtered listing by the canonical encoded form
// of its filters; an unfiltered listing uses the empty canonical form.
func KeyKnowledgeList(canonicalFilter string) string { return "knowledge:list:" + canonicalFilter }

func KeyKnowledge(id string) string           { return "knowledge:item:" + id }
func KeyKnowledgeRelated(id string) string    { return "knowledge:related:" + id }
func KeyKnowledgeByCategory(id string) string { return "knowledge:by-category:" + id }
func KeyKnowledgeByTags(tags string) string   { return "knowledge:by-tags:" + tags }

func KeyResourceList(canonicalFilter string) string { return "resources:list:" + canonicalFilter }
func KeyResource(id string) string                  { return "resources:item:" + id }
func KeyResourceByCategory(id string) string        { return "resources:by-category:" + id }
func KeyResourceByTags(tags string) string          { return "resources:by-tags:" + tags }

func KeyTagList(canonicalFilter string) string { return "tags:list:" + canonicalFilter }

func KeyDashboardStats() string  { return "dashboard:stats" }
func KeyDashboardConfig() string { return "dashboard:config" }
