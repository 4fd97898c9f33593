package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ResourceType discriminates stored references to external or uploaded
// material.
type ResourceType string

const (
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceLink          ResourceType = "link"
	ResourceFile          ResourceType = "file"
	ResourceVideo         ResourceType = "video"
)

// ResourceTypes lists every valid resource type.
var ResourceTypes = []ResourceType{
	ResourceDocumentation,
	ResourceTutorial,
	ResourceLink,
	ResourceFile,
	ResourceVideo,
}

var ErrMissingURL = errors.New("url is required for link resources")

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	for _, known := range ResourceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Resource is a stored reference to external or uploaded material.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        ResourceType `json:"type"`

	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`

	// File metadata, populated by the upload endpoint.
	FilePath     string `json:"filePath,omitempty"`
	FileSize     int64  `json:"fileSize,omitempty"`
	FileType     string `json:"fileType,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	CategoryID string   `json:"categoryId,omitempty"`
	Tags       []string `json:"tags,omitempty"`

	IsPublic bool `json:"isPublic"`

	// UsageCount only moves through the dedicated increment endpoint.
	UsageCount int64 `json:"usageCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateResource is the payload for creating a resource.
type CreateResource struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        ResourceType `json:"type"`
	Content     string       `json:"content,omitempty"`
	URL         string       `json:"url,omitempty"`
	CategoryID  string       `json:"categoryId,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	IsPublic    bool         `json:"isPublic"`
}

// Validate trims the title and enforces the conditional URL requirement:
// a link resource without a URL points at nothing.
func (c *CreateResource) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return ErrEmptyTitle
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown resource type %q", c.Type)
	}
	if c.Type == ResourceLink && strings.TrimSpace(c.URL) == "" {
		return ErrMissingURL
	}
	if c.CategoryID != "" && !IsObjectID(c.CategoryID) {
		return ErrInvalidParentID
	}
	return nil
}

// UpdateResource is a partial patch of a resource.
type UpdateResource struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Type        *ResourceType `json:"type,omitempty"`
	Content     *string       `json:"content,omitempty"`
	URL         *string       `json:"url,omitempty"`
	CategoryID  *string       `json:"categoryId,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	IsPublic    *bool         `json:"isPublic,omitempty"`
}

func (u *UpdateResource) Validate() error {
	if u.Title != nil {
		trimmed := strings.TrimSpace(*u.Title)
		if trimmed == "" {
			return ErrEmptyTitle
		}
		*u.Title = trimmed
	}
	if u.Type != nil && !u.Type.Valid() {
		return fmt.Errorf("unknown resource type %q", *u.Type)
	}
	if u.CategoryID != nil && *u.CategoryID != "" && !IsObjectID(*u.CategoryID) {
		return ErrInvalidParentID
	}
	return nil
}

// ResourceFilter narrows a resource listing, with the same absent-vs-empty
// rules as KnowledgeFilter.
type ResourceFilter struct {
	Search     string
	Types      []ResourceType
	CategoryID string
	Tags       []string
	IsPublic   *bool
}
