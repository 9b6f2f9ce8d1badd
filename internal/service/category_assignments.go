package service

import (
	"context"
	"fmt"
)

// categoryMapStore is the slice of the map repository this service needs.
type categoryMapStore interface {
	DeleteByArticle(ctx context.Context, articleID string) error
	Insert(ctx context.Context, articleID, categoryID string) error
	ActiveCategoryIDs(ctx context.Context, articleID string) ([]string, error)
}

// CategoryAssignments maintains the article↔category many-to-many mapping.
// Assignment is a full replace, not a diff: every existing row for the
// article is deleted, then one row per requested category is inserted.  The
// two phases are independent store calls, so a failure between them leaves
// the article with fewer categories than intended; that state is reported
// as a PartialFailureError and is correctable by saving the article again.
//
// Replace is not safe to call concurrently for the same article; the admin
// UI serializes saves per editor and concurrent editors are last-write-wins
// like every other update in the system.
type CategoryAssignments struct {
	maps categoryMapStore
}

func NewCategoryAssignments(maps categoryMapStore) *CategoryAssignments {
	return &CategoryAssignments{maps: maps}
}

// Replace sets the article's category set to exactly categoryIDs.  An empty
// or nil set clears all assignments.
func (s *CategoryAssignments) Replace(ctx context.Context, articleID string, categoryIDs []string) error {
	if err := s.maps.DeleteByArticle(ctx, articleID); err != nil {
		// Nothing was applied yet; this is a clean failure.
		return fmt.Errorf("delete existing category assignments: %w", err)
	}
	for i, categoryID := range categoryIDs {
		if err := s.maps.Insert(ctx, articleID, categoryID); err != nil {
			return &PartialFailureError{
				Op:   "replace article categories",
				Step: fmt.Sprintf("insert category %d of %d", i+1, len(categoryIDs)),
				Err:  err,
			}
		}
	}
	return nil
}

// CategoriesOf resolves the article's category ids restricted to active
// categories.  References to inactive categories stay in storage but are
// not part of the resolved set.
func (s *CategoryAssignments) CategoriesOf(ctx context.Context, articleID string) ([]string, error) {
	return s.maps.ActiveCategoryIDs(ctx, articleID)
}
