package app

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/MasCreaThor/plataforma/internal/dashboard"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
	"github.com/MasCreaThor/plataforma/internal/query"
	"github.com/MasCreaThor/plataforma/internal/scheduler"
	"github.com/MasCreaThor/plataforma/internal/sources/seedfile"
)

func (a *App) cmdDashboard(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "config":
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			return a.dashboardConfig(ctx, args[1:])
		case "widget":
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			return a.dashboardWidget(ctx, args[1:])
		}
	}

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	recent := fs.String("recent", "", "also list recent items of a kind (knowledge|resources)")
	mostUsed := fs.String("most-used", "", "also list most used items of a kind (knowledge|resources)")
	limit := fs.Int("limit", 5, "entry limit for recent/most-used listings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	render := func() error {
		stats, err := a.dashboard.Stats(ctx)
		if err != nil {
			return err
		}
		printStats(stats)

		if *recent != "" {
			items, err := a.dashboard.Recent(ctx, *recent, *limit)
			if err != nil {
				return err
			}
			fmt.Printf("\nrecent %s:\n", *recent)
			printSummaries(items)
		}
		if *mostUsed != "" {
			items, err := a.dashboard.MostUsed(ctx, *mostUsed, *limit)
			if err != nil {
				return err
			}
			fmt.Printf("\nmost used %s:\n", *mostUsed)
			printSummaries(items)
		}
		return nil
	}

	if !*watch {
		return render()
	}
	return a.watchDashboard(ctx, render)
}

// watchDashboard re-renders on an interval until the context is canceled.
// Watch mode is the one long-lived path, so it also runs the background
// session refresher and, for the in-memory backend, the cache purger.
func (a *App) watchDashboard(ctx context.Context, render func() error) error {
	refresher := scheduler.NewSessionRefresher(
		a.client,
		a.tokens,
		a.logger,
		a.cfg.WatchInterval,
		a.cfg.SessionRefreshLeeway,
	)
	if err := refresher.Start(ctx); err != nil {
		return err
	}
	defer refresher.Stop()

	if a.memStore != nil {
		purger := scheduler.NewCachePurger(a.memStore, a.logger, a.cfg.CachePurgeInterval)
		if err := purger.Start(ctx); err != nil {
			return err
		}
		defer purger.Stop()
	}

	ticker := time.NewTicker(a.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		// Every dashboard view must be fresh on each cycle, stats and
		// the recent/most-used listings alike.
		a.cache.InvalidatePrefix(ctx, query.PrefixDashboardViews)
		if err := render(); err != nil {
			a.logger.Error("dashboard refresh failed", logger.Error(err))
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) dashboardConfig(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard config", flag.ContinueOnError)
	theme := fs.String("theme", "", "switch the dashboard theme")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *theme != "" {
		cfg, err := a.dashboard.UpdateConfig(ctx, dashboard.UpdateConfig{Theme: theme})
		if err != nil {
			return err
		}
		printConfig(cfg)
		return nil
	}

	cfg, err := a.dashboard.Config(ctx)
	if err != nil {
		return err
	}
	printConfig(cfg)
	return nil
}

func (a *App) dashboardWidget(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: plataforma dashboard widget <add|update|remove>")
	}
	switch args[0] {
	case "add":
		return a.dashboardWidgetAdd(ctx, args[1:])
	case "update":
		return a.dashboardWidgetUpdate(ctx, args[1:])
	case "remove":
		return a.dashboardWidgetRemove(ctx, args[1:])
	default:
		return fmt.Errorf("unknown widget action %q", args[0])
	}
}

func (a *App) dashboardWidgetAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard widget add", flag.ContinueOnError)
	widgetType := fs.String("type", "", "widget kind (stats|recent|most-used|...)")
	title := fs.String("title", "", "widget title")
	x := fs.Int("x", 0, "grid column")
	y := fs.Int("y", 0, "grid row")
	width := fs.Int("width", 1, "grid width")
	height := fs.Int("height", 1, "grid height")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *widgetType == "" || *title == "" {
		return fmt.Errorf("usage: plataforma dashboard widget add -type <type> -title <title> [position flags]")
	}

	cfg, err := a.dashboard.AddWidget(ctx, domain.DashboardWidget{
		Type:  *widgetType,
		Title: *title,
		Position: domain.WidgetPosition{
			X: *x, Y: *y, Width: *width, Height: *height,
		},
	})
	if err != nil {
		return err
	}
	printConfig(cfg)
	return nil
}

func (a *App) dashboardWidgetUpdate(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: plataforma dashboard widget update <id> [flags]")
	}
	id := args[0]

	fs := flag.NewFlagSet("dashboard widget update", flag.ContinueOnError)
	title := fs.String("title", "", "new widget title")
	x := fs.Int("x", 0, "grid column")
	y := fs.Int("y", 0, "grid row")
	width := fs.Int("width", 0, "grid width")
	height := fs.Int("height", 0, "grid height")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	widget := domain.DashboardWidget{ID: id, Title: *title}
	widget.Position = domain.WidgetPosition{X: *x, Y: *y, Width: *width, Height: *height}

	cfg, err := a.dashboard.UpdateWidget(ctx, id, widget)
	if err != nil {
		return err
	}
	printConfig(cfg)
	return nil
}

func (a *App) dashboardWidgetRemove(ctx context.Context, args []string) error {
	id, err := oneArg(args, "dashboard widget remove <id>")
	if err != nil {
		return err
	}
	cfg, err := a.dashboard.RemoveWidget(ctx, id)
	if err != nil {
		return err
	}
	printConfig(cfg)
	return nil
}

func (a *App) cmdTags(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	search := fs.String("search", "", "substring search")
	minUsage := fs.Int("min-usage", 0, "minimum usage count")
	popular := fs.Bool("popular", false, "only popular tags")
	limit := fs.Int("limit", 0, "entry limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	tags, err := a.tags.List(ctx, domain.TagFilter{
		Search:        *search,
		MinUsageCount: *minUsage,
		Popular:       *popular,
		Limit:         *limit,
	})
	if err != nil {
		return err
	}
	printTags(tags)
	return nil
}

func (a *App) cmdImport(ctx context.Context, args []string) error {
	path, err := oneArg(args, "import <seed-file.yaml>")
	if err != nil {
		return err
	}
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	seed, err := seedfile.NewLoader(path).Load()
	if err != nil {
		return err
	}

	importer := seedfile.NewImporter(a.categories, a.knowledge, a.resources, a.logger)
	result, err := importer.Run(ctx, seed)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d categories, %d knowledge items, %d resources (%d skipped)\n",
		result.Categories, result.Knowledge, result.Resources, result.Skipped)
	return nil
}
