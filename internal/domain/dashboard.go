package domain

import "time"

// ResourceStats aggregates resource counts by type.
type ResourceStats struct {
	Total         int64 `json:"total"`
	Documentation int64 `json:"documentation"`
	Tutorial      int64 `json:"tutorial"`
	Link          int64 `json:"link"`
	File          int64 `json:"file"`
	Video         int64 `json:"video"`
}

// KnowledgeStats aggregates knowledge item counts by type.
type KnowledgeStats struct {
	Total    int64 `json:"total"`
	Wiki     int64 `json:"wiki"`
	Note     int64 `json:"note"`
	Snippet  int64 `json:"snippet"`
	Command  int64 `json:"command"`
	Solution int64 `json:"solution"`
}

// PopularTag is one entry of the tag leaderboard.
type PopularTag struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TimeSeriesPoint is one bucket of the activity timeline.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
}

// DashboardStats is the aggregate view rendered by the dashboard command.
type DashboardStats struct {
	Resources        ResourceStats     `json:"resources"`
	Knowledge        KnowledgeStats    `json:"knowledge"`
	TotalTags        int64             `json:"totalTags"`
	PopularTags      []PopularTag      `json:"popularTags"`
	ActivityTimeline []TimeSeriesPoint `json:"activityTimeline"`
	RecentActivity   []ActivityEntry   `json:"recentActivity"`
}

// WidgetPosition places a widget on the dashboard grid.
type WidgetPosition struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DashboardWidget is one configurable widget of the dashboard layout.
type DashboardWidget struct {
	ID            string         `json:"id,omitempty"`
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      WidgetPosition `json:"position"`
}

// DashboardConfig is the server-persisted dashboard layout.
type DashboardConfig struct {
	ID       string            `json:"id"`
	PeopleID string            `json:"peopleId,omitempty"`
	Widgets  []DashboardWidget `json:"widgets"`
	Layout   map[string]any    `json:"layout,omitempty"`
	Theme    string            `json:"theme,omitempty"`
}
