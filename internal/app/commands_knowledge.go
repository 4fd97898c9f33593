package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/domain"
)

func (a *App) cmdKnowledge(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: plataforma knowledge <list|get|create|update|delete|use|related|link|unlink>")
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return a.knowledgeList(ctx, args[1:])
	case "get":
		return a.knowledgeGet(ctx, args[1:])
	case "create":
		return a.knowledgeCreate(ctx, args[1:])
	case "update":
		return a.knowledgeUpdate(ctx, args[1:])
	case "delete":
		return a.knowledgeDelete(ctx, args[1:])
	case "use":
		return a.knowledgeUse(ctx, args[1:])
	case "related":
		return a.knowledgeRelated(ctx, args[1:])
	case "link":
		return a.knowledgeLink(ctx, args[1:])
	case "unlink":
		return a.knowledgeUnlink(ctx, args[1:])
	default:
		return fmt.Errorf("unknown knowledge subcommand %q", args[0])
	}
}

func (a *App) knowledgeList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("knowledge list", flag.ContinueOnError)
	search := fs.String("search", "", "full-text search")
	types := fs.String("types", "", "comma-separated types (wiki,note,snippet,command,solution)")
	categoryID := fs.String("category", "", "filter by category id")
	tags := fs.String("tags", "", "comma-separated tags")
	public := fs.String("public", "", "filter by visibility (true|false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := domain.KnowledgeFilter{
		Search:     *search,
		CategoryID: *categoryID,
		Tags:       splitList(*tags),
	}
	for _, t := range splitList(*types) {
		filter.Types = append(filter.Types, domain.KnowledgeType(t))
	}
	if *public != "" {
		val := *public == "true"
		filter.IsPublic = &val
	}

	// By-category and by-tags listings ride the dedicated endpoints when
	// they are the only filter in play.
	switch {
	case *categoryID != "" && *search == "" && *types == "" && *tags == "" && *public == "":
		items, err := a.knowledge.ByCategory(ctx, *categoryID)
		if err != nil {
			return err
		}
		printKnowledge(items)
		return nil
	case *tags != "" && *search == "" && *types == "" && *categoryID == "" && *public == "":
		items, err := a.knowledge.ByTags(ctx, splitList(*tags))
		if err != nil {
			return err
		}
		printKnowledge(items)
		return nil
	}

	items, err := a.knowledge.List(ctx, filter)
	if err != nil {
		return err
	}
	printKnowledge(items)
	return nil
}

func (a *App) knowledgeGet(ctx context.Context, args []string) error {
	id, err := oneArg(args, "knowledge get <id>")
	if err != nil {
		return err
	}
	item, err := a.knowledge.GetByID(ctx, id)
	if err != nil {
		return err
	}
	printKnowledgeItem(item)
	return nil
}

func (a *App) knowledgeCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("knowledge create", flag.ContinueOnError)
	title := fs.String("title", "", "item title")
	itemType := fs.String("type", "note", "item type (wiki,note,snippet,command,solution)")
	categoryID := fs.String("category", "", "category id")
	content := fs.String("content", "", "markdown content")
	code := fs.String("code", "", "code content (snippet/command)")
	language := fs.String("language", "", "code language")
	tags := fs.String("tags", "", "comma-separated tags")
	public := fs.Bool("public", false, "publicly visible")
	problem := fs.String("problem", "", "problem statement (solution)")
	solution := fs.String("solution", "", "solution text (solution)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := domain.CreateKnowledge{
		Title:        *title,
		Type:         domain.KnowledgeType(*itemType),
		CategoryID:   *categoryID,
		Content:      *content,
		CodeContent:  *code,
		CodeLanguage: *language,
		Tags:         splitList(*tags),
		IsPublic:     *public,
	}
	if *problem != "" || *solution != "" {
		payload.SolutionDetails = &domain.SolutionDetails{
			Problem:  *problem,
			Solution: *solution,
		}
	}

	created, err := a.knowledge.Create(ctx, payload)
	if err != nil {
		return err
	}
	fmt.Printf("created %s %q (%s)\n", created.Type, created.Title, created.ID)
	return nil
}

func (a *App) knowledgeUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: plataforma knowledge update <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("knowledge update", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	itemType := fs.String("type", "", "new type")
	categoryID := fs.String("category", "", "new category id")
	content := fs.String("content", "", "new content")
	code := fs.String("code", "", "new code content")
	language := fs.String("language", "", "new code language")
	tags := fs.String("tags", "", "replacement tags, comma-separated")
	public := fs.String("public", "", "publicly visible (true|false)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	patch := domain.UpdateKnowledge{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "type":
			t := domain.KnowledgeType(*itemType)
			patch.Type = &t
		case "category":
			patch.CategoryID = categoryID
		case "content":
			patch.Content = content
		case "code":
			patch.CodeContent = code
		case "language":
			patch.CodeLanguage = language
		case "tags":
			patch.Tags = splitList(*tags)
		}
	})
	if *public != "" {
		val := *public == "true"
		patch.IsPublic = &val
	}

	updated, err := a.knowledge.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated %q\n", updated.Title)
	return nil
}

func (a *App) knowledgeDelete(ctx context.Context, args []string) error {
	id, err := oneArg(args, "knowledge delete <id>")
	if err != nil {
		return err
	}
	if err := a.knowledge.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("knowledge item deleted")
	return nil
}

func (a *App) knowledgeUse(ctx context.Context, args []string) error {
	id, err := oneArg(args, "knowledge use <id>")
	if err != nil {
		return err
	}
	return a.knowledge.IncrementUsage(ctx, id)
}

func (a *App) knowledgeRelated(ctx context.Context, args []string) error {
	id, err := oneArg(args, "knowledge related <id>")
	if err != nil {
		return err
	}
	items, err := a.knowledge.Related(ctx, id)
	if err != nil {
		return err
	}
	printKnowledge(items)
	return nil
}

func (a *App) knowledgeLink(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: plataforma knowledge link <id> <related-id>")
	}
	if err := a.knowledge.AddRelated(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("items linked")
	return nil
}

func (a *App) knowledgeUnlink(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: plataforma knowledge unlink <id> <related-id>")
	}
	if err := a.knowledge.RemoveRelated(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("items unlinked")
	return nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
