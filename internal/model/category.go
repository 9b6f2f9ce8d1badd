package model

import (
	"strings"

	"github.com/google/uuid"
)

// ArticleCategory groups articles for browsing.  Categories are ordered by
// SortOrder ascending with nulls last, then Title ascending.  Articles map
// to categories through article_category_map rows.
type ArticleCategory struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

// NewArticleCategory validates input and assigns a fresh UUID.  The slug is
// expected to be already normalized by the caller (content.Slugify); it is
// only checked for presence here since uniqueness is a repository concern.
func NewArticleCategory(slug, title, description string, sortOrder *int) (*ArticleCategory, error) {
	slug = strings.TrimSpace(slug)
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "title is required")
	}
	if slug == "" {
		return nil, invalid("slug", "slug is required")
	}
	c := &ArticleCategory{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     title,
		SortOrder: sortOrder,
		IsActive:  true,
	}
	if d := strings.TrimSpace(description); d != "" {
		c.Description = &d
	}
	return c, nil
}
