package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// KnowledgeType discriminates which content fields of a KnowledgeItem are
// semantically meaningful. Other fields may still be stored server-side;
// presentation simply ignores them.
type KnowledgeType string

const (
	KnowledgeWiki     KnowledgeType = "wiki"
	KnowledgeNote     KnowledgeType = "note"
	KnowledgeSnippet  KnowledgeType = "snippet"
	KnowledgeCommand  KnowledgeType = "command"
	KnowledgeSolution KnowledgeType = "solution"
)

// KnowledgeTypes lists every valid knowledge item type.
var KnowledgeTypes = []KnowledgeType{
	KnowledgeWiki,
	KnowledgeNote,
	KnowledgeSnippet,
	KnowledgeCommand,
	KnowledgeSolution,
}

var ErrEmptyTitle = errors.New("title must not be empty")

// Valid reports whether t is a known knowledge item type.
func (t KnowledgeType) Valid() bool {
	for _, known := range KnowledgeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SolutionDetails holds the structured fields of a "solution" item.
type SolutionDetails struct {
	Problem  string `json:"problem,omitempty"`
	Solution string `json:"solution,omitempty"`
	Context  string `json:"context,omitempty"`
}

// KnowledgeItem is a stored unit of personal knowledge.
type KnowledgeItem struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Type  KnowledgeType `json:"type"`

	CategoryID string `json:"categoryId,omitempty"`

	Content         string           `json:"content,omitempty"`
	CodeContent     string           `json:"codeContent,omitempty"`
	CodeLanguage    string           `json:"codeLanguage,omitempty"`
	SolutionDetails *SolutionDetails `json:"solutionDetails,omitempty"`

	Tags []string `json:"tags,omitempty"`

	// RelatedItems is a many-to-many edge set manipulated through
	// dedicated add/remove endpoints, never through the update payload.
	RelatedItems []string `json:"relatedItems,omitempty"`

	IsPublic bool `json:"isPublic"`

	// UsageCount only moves through the dedicated increment endpoint.
	UsageCount int64 `json:"usageCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateKnowledge is the payload for creating a knowledge item.
// An empty CategoryID is omitted from the payload, matching the backend's
// absent-vs-empty distinction.
type CreateKnowledge struct {
	Title           string           `json:"title"`
	Type            KnowledgeType    `json:"type"`
	CategoryID      string           `json:"categoryId,omitempty"`
	Content         string           `json:"content,omitempty"`
	CodeContent     string           `json:"codeContent,omitempty"`
	CodeLanguage    string           `json:"codeLanguage,omitempty"`
	SolutionDetails *SolutionDetails `json:"solutionDetails,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	IsPublic        bool             `json:"isPublic"`
}

func (c *CreateKnowledge) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return ErrEmptyTitle
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown knowledge type %q", c.Type)
	}
	if c.CategoryID != "" && !IsObjectID(c.CategoryID) {
		return ErrInvalidParentID
	}
	return nil
}

// UpdateKnowledge is a partial patch of a knowledge item.
type UpdateKnowledge struct {
	Title           *string          `json:"title,omitempty"`
	Type            *KnowledgeType   `json:"type,omitempty"`
	CategoryID      *string          `json:"categoryId,omitempty"`
	Content         *string          `json:"content,omitempty"`
	CodeContent     *string          `json:"codeContent,omitempty"`
	CodeLanguage    *string          `json:"codeLanguage,omitempty"`
	SolutionDetails *SolutionDetails `json:"solutionDetails,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	IsPublic        *bool            `json:"isPublic,omitempty"`
}

func (u *UpdateKnowledge) Validate() error {
	if u.Title != nil {
		trimmed := strings.TrimSpace(*u.Title)
		if trimmed == "" {
			return ErrEmptyTitle
		}
		*u.Title = trimmed
	}
	if u.Type != nil && !u.Type.Valid() {
		return fmt.Errorf("unknown knowledge type %q", *u.Type)
	}
	if u.CategoryID != nil && *u.CategoryID != "" && !IsObjectID(*u.CategoryID) {
		return ErrInvalidParentID
	}
	return nil
}

// KnowledgeFilter narrows a knowledge listing. Zero values mean "absent":
// the backend treats a missing filter differently from an empty one, so
// empty strings and empty slices are never transmitted.
type KnowledgeFilter struct {
	Search     string
	Types      []KnowledgeType
	CategoryID string
	Tags       []string
	IsPublic   *bool
}
