package domain

import "time"

// Tag is the aggregated view of a tag string as reported by the backend.
// Tags have no standalone lifecycle on the client: they exist as opaque,
// case-sensitive strings attached to knowledge items and resources, and
// this record only serves the filter UI.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	UsageCount  int64     `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TagFilter narrows the tag listing.
type TagFilter struct {
	Search        string
	MinUsageCount int
	Popular       bool
	Limit         int
}
