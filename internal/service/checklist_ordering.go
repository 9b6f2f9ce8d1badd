package service

import (
	"context"
	"fmt"

	"github.com/visapath/content-service/internal/model"
)

// Move directions accepted by MoveItem.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

type checklistStore interface {
	GetByID(ctx context.Context, id string) (*model.Checklist, error)
	CountByVisaType(ctx context.Context, visaType string) (int, error)
	Create(ctx context.Context, cl *model.Checklist) error
	Delete(ctx context.Context, id string) error
}

type checklistItemStore interface {
	GetByID(ctx context.Context, id string) (*model.ChecklistItem, error)
	ListByChecklist(ctx context.Context, checklistID string) ([]*model.ChecklistItem, error)
	CountByChecklist(ctx context.Context, checklistID string) (int, error)
	Create(ctx context.Context, it *model.ChecklistItem) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) error
	Delete(ctx context.Context, id string) error
	DeleteByChecklist(ctx context.Context, checklistID string) error
}

// ChecklistOrdering owns the sort_order bookkeeping for checklists and their
// items.  Values are comparison keys, not dense indexes; removal leaves gaps
// and appending counts rows, not max+1, so keys are usually but not strictly
// unique within a scope (see AppendItem).
type ChecklistOrdering struct {
	lists checklistStore
	items checklistItemStore
}

func NewChecklistOrdering(lists checklistStore, items checklistItemStore) *ChecklistOrdering {
	return &ChecklistOrdering{lists: lists, items: items}
}

// CreateChecklist assigns the next per-visa-type sort order and stores the
// checklist.
func (s *ChecklistOrdering) CreateChecklist(ctx context.Context, cl *model.Checklist) error {
	n, err := s.lists.CountByVisaType(ctx, cl.VisaType)
	if err != nil {
		return fmt.Errorf("count checklists for visa type %s: %w", cl.VisaType, err)
	}
	cl.SortOrder = n + 1
	return s.lists.Create(ctx, cl)
}

// AppendItem places the item at the end of the checklist: sort_order is the
// current item count plus one, regardless of gaps left by removals.  Because
// RemoveItem does not renumber, count+1 can equal a surviving key when a gap
// sits below the count, and the new item then ties with that survivor; the
// database decides the order within the tie.  Renumbering on removal would
// avoid this, but the gap-tolerant scheme is kept on purpose.
func (s *ChecklistOrdering) AppendItem(ctx context.Context, checklistID string, it *model.ChecklistItem) error {
	if _, err := s.lists.GetByID(ctx, checklistID); err != nil {
		return err
	}
	n, err := s.items.CountByChecklist(ctx, checklistID)
	if err != nil {
		return fmt.Errorf("count checklist items: %w", err)
	}
	it.ChecklistID = &checklistID
	it.SortOrder = n + 1
	return s.items.Create(ctx, it)
}

// MoveItem swaps the item's sort key with its neighbor above (up) or below
// (down) in the ordering.  Moving the first item up or the last item down is
// a no-op.  The swap is two independent updates; if the second fails the two
// items momentarily share a sort value, which is reported as a partial
// failure and fixed by retrying the move.
func (s *ChecklistOrdering) MoveItem(ctx context.Context, checklistID, itemID, direction string) error {
	if direction != MoveUp && direction != MoveDown {
		return ErrInvalidDirection
	}
	items, err := s.items.ListByChecklist(ctx, checklistID)
	if err != nil {
		return err
	}
	pos := -1
	for i, it := range items {
		if it.ID == itemID {
			pos = i
			break
		}
	}
	if pos == -1 {
		return fmt.Errorf("item %s not in checklist %s", itemID, checklistID)
	}

	neighbor := pos - 1
	if direction == MoveDown {
		neighbor = pos + 1
	}
	if neighbor < 0 || neighbor >= len(items) {
		return nil // already at the edge
	}

	a, b := items[pos], items[neighbor]
	if err := s.items.UpdateSortOrder(ctx, a.ID, b.SortOrder); err != nil {
		return fmt.Errorf("move item: %w", err)
	}
	if err := s.items.UpdateSortOrder(ctx, b.ID, a.SortOrder); err != nil {
		return &PartialFailureError{
			Op:   "reorder checklist items",
			Step: fmt.Sprintf("update neighbor %s after moving %s", b.ID, a.ID),
			Err:  err,
		}
	}
	return nil
}

// RemoveItem deletes the item.  Remaining items are not renumbered; the gap
// is harmless because ordering only ever compares sort values.
func (s *ChecklistOrdering) RemoveItem(ctx context.Context, itemID string) error {
	return s.items.Delete(ctx, itemID)
}

// DeleteChecklist removes the checklist and its items.  The cascade is
// application-enforced: items go first, then the parent.  A failure after
// the item delete leaves an empty checklist behind, surfaced as a partial
// failure so it can be deleted again.
func (s *ChecklistOrdering) DeleteChecklist(ctx context.Context, id string) error {
	if _, err := s.lists.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.items.DeleteByChecklist(ctx, id); err != nil {
		return fmt.Errorf("delete checklist items: %w", err)
	}
	if err := s.lists.Delete(ctx, id); err != nil {
		return &PartialFailureError{
			Op:   "delete checklist",
			Step: "delete checklist row after removing items",
			Err:  err,
		}
	}
	return nil
}
