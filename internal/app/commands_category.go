package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/MasCreaThor/plataforma/internal/category"
	"github.com/MasCreaThor/plataforma/internal/domain"
)

func (a *App) cmdCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: plataforma categories <list|tree|get|children|create|update|delete>")
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return a.categoriesList(ctx, args[1:])
	case "tree":
		return a.categoriesTree(ctx)
	case "get":
		return a.categoriesGet(ctx, args[1:])
	case "children":
		return a.categoriesChildren(ctx, args[1:])
	case "create":
		return a.categoriesCreate(ctx, args[1:])
	case "update":
		return a.categoriesUpdate(ctx, args[1:])
	case "delete":
		return a.categoriesDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown categories subcommand %q", args[0])
	}
}

func (a *App) categoriesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories list", flag.ContinueOnError)
	rootsOnly := fs.Bool("roots", false, "only root categories")
	systemOnly := fs.Bool("system", false, "only system categories")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		items []domain.Category
		err   error
	)
	switch {
	case *rootsOnly:
		items, err = a.categories.ListRoots(ctx)
	case *systemOnly:
		items, err = a.categories.ListSystem(ctx)
	default:
		items, err = a.categories.ListAll(ctx)
	}
	if err != nil {
		return err
	}
	printCategories(items)
	return nil
}

func (a *App) categoriesTree(ctx context.Context) error {
	items, err := a.categories.ListAll(ctx)
	if err != nil {
		return err
	}
	forest := category.BuildForest(items)
	category.Walk(forest, func(depth int, n *category.Node) {
		marker := ""
		if n.Category.IsSystem {
			marker = " [system]"
		}
		fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), n.Category.Name, marker)
	})
	return nil
}

func (a *App) categoriesGet(ctx context.Context, args []string) error {
	id, err := oneArg(args, "categories get <id>")
	if err != nil {
		return err
	}
	cat, err := a.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	printCategory(cat)
	return nil
}

func (a *App) categoriesChildren(ctx context.Context, args []string) error {
	id, err := oneArg(args, "categories children <id>")
	if err != nil {
		return err
	}
	items, err := a.categories.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	printCategories(items)
	return nil
}

func (a *App) categoriesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories create", flag.ContinueOnError)
	name := fs.String("name", "", "category name")
	parent := fs.String("parent", "", "parent category id")
	description := fs.String("description", "", "description")
	icon := fs.String("icon", "", "icon name")
	color := fs.String("color", "", "display color")
	public := fs.Bool("public", false, "publicly visible")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.categories.Create(ctx, domain.CreateCategory{
		Name:        *name,
		Description: *description,
		ParentID:    *parent,
		Icon:        *icon,
		Color:       *color,
		IsPublic:    *public,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created category %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *App) categoriesUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: plataforma categories update <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("categories update", flag.ContinueOnError)
	name := fs.String("name", "", "new name")
	description := fs.String("description", "", "new description")
	parent := fs.String("parent", "", "new parent category id")
	icon := fs.String("icon", "", "new icon")
	color := fs.String("color", "", "new color")
	public := fs.String("public", "", "publicly visible (true|false)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if err := a.guardSystemCategory(ctx, id, "update"); err != nil {
		return err
	}

	patch := domain.UpdateCategory{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "description":
			patch.Description = description
		case "parent":
			patch.ParentID = parent
		case "icon":
			patch.Icon = icon
		case "color":
			patch.Color = color
		}
	})
	if *public != "" {
		val := *public == "true"
		patch.IsPublic = &val
	}

	updated, err := a.categories.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated category %s\n", updated.Name)
	return nil
}

func (a *App) categoriesDelete(ctx context.Context, args []string) error {
	id, err := oneArg(args, "categories delete <id>")
	if err != nil {
		return err
	}
	if err := a.guardSystemCategory(ctx, id, "delete"); err != nil {
		return err
	}
	if err := a.categories.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("category deleted")
	return nil
}

// guardSystemCategory refuses mutations of platform-provided categories
// before any write goes out. The server enforces this too; the guard just
// gives a clearer message.
func (a *App) guardSystemCategory(ctx context.Context, id, op string) error {
	cat, err := a.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat.IsSystem {
		return fmt.Errorf("cannot %s system category %q", op, cat.Name)
	}
	return nil
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("usage: plataforma %s", usage)
	}
	return args[0], nil
}
