package seedfile

// Seed is the top-level structure of a seed YAML file. Categories import
// first so knowledge items and resources can reference them by path.
type Seed struct {
	Categories []SeedCategory  `yaml:"categories,omitempty"`
	Knowledge  []SeedKnowledge `yaml:"knowledge,omitempty"`
	Resources  []SeedResource  `yaml:"resources,omitempty"`
}

// SeedCategory declares a category subtree. A top-level entry attaches
// under Parent, an existing category referenced by name or id; nested
// Children attach under the entry that declares them.
type SeedCategory struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Icon        string         `yaml:"icon,omitempty"`
	Color       string         `yaml:"color,omitempty"`
	Parent      string         `yaml:"parent,omitempty"`
	Children    []SeedCategory `yaml:"children,omitempty"`
}

// SeedKnowledge declares one knowledge item. Category references an
// imported or existing category by name or id.
type SeedKnowledge struct {
	Title        string   `yaml:"title"`
	Type         string   `yaml:"type"`
	Category     string   `yaml:"category,omitempty"`
	Content      string   `yaml:"content,omitempty"`
	CodeContent  string   `yaml:"codeContent,omitempty"`
	CodeLanguage string   `yaml:"codeLanguage,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
	Public       bool     `yaml:"public,omitempty"`
}

// SeedResource declares one resource. File uploads are out of scope for
// seed files; file-backed resources go through the upload command.
type SeedResource struct {
	Title       string   `yaml:"title"`
	Type        string   `yaml:"type"`
	URL         string   `yaml:"url,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Content     string   `yaml:"content,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Public      bool     `yaml:"public,omitempty"`
}
