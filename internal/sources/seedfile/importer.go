package seedfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/category"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/knowledge"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/resource"
)

// Result counts what an import run did. Failed entries are logged and
// skipped; one bad entry never aborts the rest of the file.
type Result struct {
	Categories int
	Knowledge  int
	Resources  int
	Skipped    int
}

// Importer replays a parsed seed against the API, parents before children
// so every child reference resolves.
type Importer struct {
	categories *category.Service
	knowledge  *knowledge.Service
	resources  *resource.Service
	log        logger.Logger
}

func NewImporter(categories *category.Service, knowledge *knowledge.Service, resources *resource.Service, log logger.Logger) *Importer {
	return &Importer{
		categories: categories,
		knowledge:  knowledge,
		resources:  resources,
		log:        log,
	}
}

// Run imports the seed. Category references in knowledge and resource
// entries resolve against both pre-existing categories and the ones this
// run just created.
func (i *Importer) Run(ctx context.Context, seed *Seed) (*Result, error) {
	index, err := i.buildIndex(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, cat := range seed.Categories {
		i.importCategory(ctx, cat, cat.Parent, index, res)
	}
	for _, item := range seed.Knowledge {
		i.importKnowledge(ctx, item, index, res)
	}
	for _, item := range seed.Resources {
		i.importResource(ctx, item, index, res)
	}
	return res, nil
}

// buildIndex maps existing category names and ids to their ids.
func (i *Importer) buildIndex(ctx context.Context) (map[string]string, error) {
	existing, err := i.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories before import: %w", err)
	}
	index := make(map[string]string, len(existing)*2)
	for _, cat := range existing {
		index[strings.ToLower(cat.Name)] = cat.ID
		index[cat.ID] = cat.ID
	}
	return index, nil
}

func (i *Importer) importCategory(ctx context.Context, seed SeedCategory, parentRef string, index map[string]string, res *Result) {
	parentID, ok := resolve(index, parentRef)
	if !ok {
		i.log.Warn("seed category skipped, parent not found",
			logger.String("name", seed.Name),
			logger.String("parent", parentRef))
		res.Skipped++
		return
	}

	created, err := i.categories.Create(ctx, domain.CreateCategory{
		Name:        seed.Name,
		Description: seed.Description,
		Icon:        seed.Icon,
		Color:       seed.Color,
		ParentID:    parentID,
	})
	if err != nil {
		i.log.Warn("seed category skipped",
			logger.String("name", seed.Name),
			logger.Error(err))
		res.Skipped++
		return
	}
	res.Categories++
	index[strings.ToLower(created.Name)] = created.ID
	index[created.ID] = created.ID

	for _, child := range seed.Children {
		i.importCategory(ctx, child, created.ID, index, res)
	}
}

func (i *Importer) importKnowledge(ctx context.Context, seed SeedKnowledge, index map[string]string, res *Result) {
	var categoryID string
	if strings.TrimSpace(seed.Category) != "" {
		id, ok := resolve(index, seed.Category)
		if !ok {
			i.log.Warn("seed knowledge skipped, category not found",
				logger.String("title", seed.Title),
				logger.String("category", seed.Category))
			res.Skipped++
			return
		}
		categoryID = id
	}

	_, err := i.knowledge.Create(ctx, domain.CreateKnowledge{
		Title:        seed.Title,
		Type:         domain.KnowledgeType(seed.Type),
		CategoryID:   categoryID,
		Content:      seed.Content,
		CodeContent:  seed.CodeContent,
		CodeLanguage: seed.CodeLanguage,
		Tags:         seed.Tags,
		IsPublic:     seed.Public,
	})
	if err != nil {
		i.log.Warn("seed knowledge skipped",
			logger.String("title", seed.Title),
			logger.Error(err))
		res.Skipped++
		return
	}
	res.Knowledge++
}

func (i *Importer) importResource(ctx context.Context, seed SeedResource, index map[string]string, res *Result) {
	var categoryID string
	if strings.TrimSpace(seed.Category) != "" {
		id, ok := resolve(index, seed.Category)
		if !ok {
			i.log.Warn("seed resource skipped, category not found",
				logger.String("title", seed.Title),
				logger.String("category", seed.Category))
			res.Skipped++
			return
		}
		categoryID = id
	}

	_, err := i.resources.Create(ctx, domain.CreateResource{
		Title:       seed.Title,
		Type:        domain.ResourceType(seed.Type),
		URL:         seed.URL,
		Description: seed.Description,
		Content:     seed.Content,
		CategoryID:  categoryID,
		Tags:        seed.Tags,
		IsPublic:    seed.Public,
	})
	if err != nil {
		i.log.Warn("seed resource skipped",
			logger.String("title", seed.Title),
			logger.Error(err))
		res.Skipped++
		return
	}
	res.Resources++
}

// resolve maps a name or id reference to a category id. The empty
// reference resolves to no category.
func resolve(index map[string]string, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if id, ok := index[ref]; ok {
		return id, true
	}
	id, ok := index[strings.ToLower(ref)]
	return id, ok
}
