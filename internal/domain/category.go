package domain

import (
	"errors"
	"strings"
	"time"
)

// Category validation errors.
var (
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrMissingParent     = errors.New("parent category is required")
	ErrInvalidParentID   = errors.New("parent category id is not a valid object id")
)

// Category represents one node of the category forest.
//
// Categories come in two flavors: system categories are platform-provided
// root anchors the client must treat as immutable; user categories hang
// below them. Visibility (public/private) is resolved server-side based on
// the caller's auth state, never filtered client-side.
type Category struct {
	// ID is the canonical unique identifier, stable once created.
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// ParentID references the parent category, nil for roots.
	// Children are resolved lazily, one fetch per expansion.
	ParentID *string `json:"parentId,omitempty"`

	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`

	IsPublic bool `json:"isPublic"`

	// IsSystem marks platform-provided categories. The client never
	// edits or deletes them; this is a UI guard, not a security boundary.
	IsSystem bool `json:"isSystem"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategory is the payload for creating a category.
// ParentID is required: end users can no longer create new roots, only
// subcategories of existing (typically system) categories.
type CreateCategory struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parentId"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsPublic    bool   `json:"isPublic"`
}

// Validate normalizes and checks the payload before it goes anywhere
// near the network. Name is trimmed in place.
func (c *CreateCategory) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if c.ParentID == "" {
		return ErrMissingParent
	}
	if !IsObjectID(c.ParentID) {
		return ErrInvalidParentID
	}
	return nil
}

// UpdateCategory is a partial patch: nil fields are left untouched
// by the server.
type UpdateCategory struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// Validate applies the same advisory checks as CreateCategory, but only
// to the fields actually present in the patch.
func (u *UpdateCategory) Validate() error {
	if u.Name != nil {
		trimmed := strings.TrimSpace(*u.Name)
		if trimmed == "" {
			return ErrEmptyCategoryName
		}
		*u.Name = trimmed
	}
	if u.ParentID != nil && !IsObjectID(*u.ParentID) {
		return ErrInvalidParentID
	}
	return nil
}
