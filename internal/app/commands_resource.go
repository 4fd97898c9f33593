package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/utils"
)

func (a *App) cmdResources(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: plataforma resources <list|get|create|upload|update|delete|use>")
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return a.resourcesList(ctx, args[1:])
	case "get":
		return a.resourcesGet(ctx, args[1:])
	case "create":
		return a.resourcesCreate(ctx, args[1:])
	case "upload":
		return a.resourcesUpload(ctx, args[1:])
	case "update":
		return a.resourcesUpdate(ctx, args[1:])
	case "delete":
		return a.resourcesDelete(ctx, args[1:])
	case "use":
		return a.resourcesUse(ctx, args[1:])
	default:
		return fmt.Errorf("unknown resources subcommand %q", args[0])
	}
}

func (a *App) resourcesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resources list", flag.ContinueOnError)
	search := fs.String("search", "", "full-text search")
	types := fs.String("types", "", "comma-separated types (documentation,tutorial,link,file,video)")
	categoryID := fs.String("category", "", "filter by category id")
	tags := fs.String("tags", "", "comma-separated tags")
	public := fs.String("public", "", "filter by visibility (true|false)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := domain.ResourceFilter{
		Search:     *search,
		CategoryID: *categoryID,
		Tags:       splitList(*tags),
	}
	for _, t := range splitList(*types) {
		filter.Types = append(filter.Types, domain.ResourceType(t))
	}
	if *public != "" {
		val := *public == "true"
		filter.IsPublic = &val
	}

	items, err := a.resources.List(ctx, filter)
	if err != nil {
		return err
	}
	printResources(items)
	return nil
}

func (a *App) resourcesGet(ctx context.Context, args []string) error {
	id, err := oneArg(args, "resources get <id>")
	if err != nil {
		return err
	}
	res, err := a.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}
	printResource(res)
	return nil
}

func (a *App) resourcesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resources create", flag.ContinueOnError)
	title := fs.String("title", "", "resource title")
	resType := fs.String("type", "link", "resource type (documentation,tutorial,link,video)")
	rawURL := fs.String("url", "", "resource url")
	description := fs.String("description", "", "description")
	content := fs.String("content", "", "inline content")
	categoryID := fs.String("category", "", "category id")
	tags := fs.String("tags", "", "comma-separated tags")
	public := fs.Bool("public", false, "publicly visible")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.resources.Create(ctx, domain.CreateResource{
		Title:       *title,
		Type:        domain.ResourceType(*resType),
		URL:         *rawURL,
		Description: *description,
		Content:     *content,
		CategoryID:  *categoryID,
		Tags:        splitList(*tags),
		IsPublic:    *public,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %s %q (%s)\n", created.Type, created.Title, created.ID)
	return nil
}

func (a *App) resourcesUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resources upload", flag.ContinueOnError)
	title := fs.String("title", "", "resource title (defaults to the file name)")
	description := fs.String("description", "", "description")
	categoryID := fs.String("category", "", "category id")
	tags := fs.String("tags", "", "comma-separated tags")
	public := fs.Bool("public", false, "publicly visible")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := oneArg(fs.Args(), "resources upload [flags] <file>")
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer utils.Close(file)

	name := filepath.Base(path)
	if *title == "" {
		*title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	created, err := a.resources.Upload(ctx, name, file, domain.CreateResource{
		Title:       *title,
		Type:        domain.ResourceFile,
		Description: *description,
		CategoryID:  *categoryID,
		Tags:        splitList(*tags),
		IsPublic:    *public,
	})
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %q (%s)\n", created.Title, created.ID)
	return nil
}

func (a *App) resourcesUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: plataforma resources update <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("resources update", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	resType := fs.String("type", "", "new type")
	rawURL := fs.String("url", "", "new url")
	description := fs.String("description", "", "new description")
	content := fs.String("content", "", "new content")
	categoryID := fs.String("category", "", "new category id")
	tags := fs.String("tags", "", "replacement tags, comma-separated")
	public := fs.String("public", "", "publicly visible (true|false)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	patch := domain.UpdateResource{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "type":
			t := domain.ResourceType(*resType)
			patch.Type = &t
		case "url":
			patch.URL = rawURL
		case "description":
			patch.Description = description
		case "content":
			patch.Content = content
		case "category":
			patch.CategoryID = categoryID
		case "tags":
			patch.Tags = splitList(*tags)
		}
	})
	if *public != "" {
		val := *public == "true"
		patch.IsPublic = &val
	}

	updated, err := a.resources.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated %q\n", updated.Title)
	return nil
}

func (a *App) resourcesDelete(ctx context.Context, args []string) error {
	id, err := oneArg(args, "resources delete <id>")
	if err != nil {
		return err
	}
	if err := a.resources.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("resource deleted")
	return nil
}

func (a *App) resourcesUse(ctx context.Context, args []string) error {
	id, err := oneArg(args, "resources use <id>")
	if err != nil {
		return err
	}
	return a.resources.IncrementUsage(ctx, id)
}
