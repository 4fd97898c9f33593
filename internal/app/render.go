package app

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/MasCreaThor/plataforma/internal/dashboard"
	"github.com/MasCreaThor/plataforma/internal/domain"
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printCategories(items []domain.Category) {
	if len(items) == 0 {
		fmt.Println("no categories")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tPARENT\tSYSTEM\tPUBLIC")
	for _, cat := range items {
		parent := "-"
		if cat.ParentID != nil {
			parent = *cat.ParentID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n", cat.ID, cat.Name, parent, cat.IsSystem, cat.IsPublic)
	}
	_ = w.Flush()
}

func printCategory(cat *domain.Category) {
	fmt.Printf("%s (%s)\n", cat.Name, cat.ID)
	if cat.Description != "" {
		fmt.Println(cat.Description)
	}
	if cat.ParentID != nil {
		fmt.Printf("parent: %s\n", *cat.ParentID)
	}
	if cat.IsSystem {
		fmt.Println("system category")
	}
}

func printKnowledge(items []domain.KnowledgeItem) {
	if len(items) == 0 {
		fmt.Println("no knowledge items")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tTAGS\tUSED")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			item.ID, item.Type, item.Title, strings.Join(item.Tags, ","), item.UsageCount)
	}
	_ = w.Flush()
}

func printKnowledgeItem(item *domain.KnowledgeItem) {
	fmt.Printf("%s [%s] (%s)\n", item.Title, item.Type, item.ID)
	if len(item.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(item.Tags, ", "))
	}
	if item.CategoryID != "" {
		fmt.Printf("category: %s\n", item.CategoryID)
	}
	if item.Content != "" {
		fmt.Printf("\n%s\n", item.Content)
	}
	if item.CodeContent != "" {
		if item.CodeLanguage != "" {
			fmt.Printf("\n[%s]\n", item.CodeLanguage)
		}
		fmt.Println(item.CodeContent)
	}
	if item.SolutionDetails != nil {
		if item.SolutionDetails.Problem != "" {
			fmt.Printf("\nproblem: %s\n", item.SolutionDetails.Problem)
		}
		if item.SolutionDetails.Solution != "" {
			fmt.Printf("solution: %s\n", item.SolutionDetails.Solution)
		}
	}
}

func printResources(items []domain.Resource) {
	if len(items) == 0 {
		fmt.Println("no resources")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tURL\tUSED")
	for _, res := range items {
		url := res.URL
		if url == "" && res.FilePath != "" {
			url = res.FilePath
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", res.ID, res.Type, res.Title, url, res.UsageCount)
	}
	_ = w.Flush()
}

func printResource(res *domain.Resource) {
	fmt.Printf("%s [%s] (%s)\n", res.Title, res.Type, res.ID)
	if res.Description != "" {
		fmt.Println(res.Description)
	}
	if res.URL != "" {
		fmt.Printf("url: %s\n", res.URL)
	}
	if res.FilePath != "" {
		fmt.Printf("file: %s (%d bytes, %s)\n", res.FilePath, res.FileSize, res.FileType)
	}
	if len(res.Tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(res.Tags, ", "))
	}
}

func printTags(tags []domain.Tag) {
	if len(tags) == 0 {
		fmt.Println("no tags")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "NAME\tUSED")
	for _, t := range tags {
		fmt.Fprintf(w, "%s\t%d\n", t.Name, t.UsageCount)
	}
	_ = w.Flush()
}

func printSummaries(items []dashboard.ItemSummary) {
	if len(items) == 0 {
		fmt.Println("  none")
		return
	}
	w := newTable()
	for _, item := range items {
		fmt.Fprintf(w, "  %s\t%s\t%s\tused %d\n", item.ID, item.Type, item.Title, item.UsageCount)
	}
	_ = w.Flush()
}

func printConfig(cfg *domain.DashboardConfig) {
	theme := cfg.Theme
	if theme == "" {
		theme = "default"
	}
	fmt.Printf("theme: %s\n", theme)

	if len(cfg.Widgets) == 0 {
		fmt.Println("no widgets")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tPOSITION")
	for _, widget := range cfg.Widgets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d,%d %dx%d\n",
			widget.ID, widget.Type, widget.Title,
			widget.Position.X, widget.Position.Y,
			widget.Position.Width, widget.Position.Height)
	}
	_ = w.Flush()
}

func printStats(stats *domain.DashboardStats) {
	fmt.Printf("resources: %d (documentation %d, tutorial %d, link %d, file %d, video %d)\n",
		stats.Resources.Total, stats.Resources.Documentation, stats.Resources.Tutorial,
		stats.Resources.Link, stats.Resources.File, stats.Resources.Video)
	fmt.Printf("knowledge: %d (wiki %d, note %d, snippet %d, command %d, solution %d)\n",
		stats.Knowledge.Total, stats.Knowledge.Wiki, stats.Knowledge.Note,
		stats.Knowledge.Snippet, stats.Knowledge.Command, stats.Knowledge.Solution)
	fmt.Printf("tags: %d\n", stats.TotalTags)

	if len(stats.PopularTags) > 0 {
		parts := make([]string, 0, len(stats.PopularTags))
		for _, t := range stats.PopularTags {
			parts = append(parts, fmt.Sprintf("%s (%d)", t.Name, t.Count))
		}
		fmt.Printf("popular: %s\n", strings.Join(parts, ", "))
	}

	if len(stats.RecentActivity) > 0 {
		fmt.Println("\nrecent activity:")
		w := newTable()
		for _, entry := range stats.RecentActivity {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
				entry.Date.Format("2006-01-02 15:04"), entry.Type, entry.Title, entry.ID)
		}
		_ = w.Flush()
	}
}
