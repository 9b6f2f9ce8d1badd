package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/repository"
)

// fakeChecklistStore and fakeItemStore are in-memory stands-ins for the
// repositories, with per-item failure injection for the swap tests.
type fakeChecklistStore struct {
	lists map[string]*model.Checklist
}

func (f *fakeChecklistStore) GetByID(_ context.Context, id string) (*model.Checklist, error) {
	if cl, ok := f.lists[id]; ok {
		return cl, nil
	}
	return nil, repository.ErrChecklistNotFound
}

func (f *fakeChecklistStore) CountByVisaType(_ context.Context, visaType string) (int, error) {
	n := 0
	for _, cl := range f.lists {
		if cl.VisaType == visaType {
			n++
		}
	}
	return n, nil
}

func (f *fakeChecklistStore) Create(_ context.Context, cl *model.Checklist) error {
	f.lists[cl.ID] = cl
	return nil
}

func (f *fakeChecklistStore) Delete(_ context.Context, id string) error {
	if _, ok := f.lists[id]; !ok {
		return repository.ErrChecklistNotFound
	}
	delete(f.lists, id)
	return nil
}

type fakeItemStore struct {
	items          map[string]*model.ChecklistItem
	failSortUpdate map[string]error // item id -> injected error
}

func (f *fakeItemStore) GetByID(_ context.Context, id string) (*model.ChecklistItem, error) {
	if it, ok := f.items[id]; ok {
		return it, nil
	}
	return nil, repository.ErrItemNotFound
}

func (f *fakeItemStore) ListByChecklist(_ context.Context, checklistID string) ([]*model.ChecklistItem, error) {
	var out []*model.ChecklistItem
	for _, it := range f.items {
		if it.ChecklistID != nil && *it.ChecklistID == checklistID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeItemStore) CountByChecklist(ctx context.Context, checklistID string) (int, error) {
	items, _ := f.ListByChecklist(ctx, checklistID)
	return len(items), nil
}

func (f *fakeItemStore) Create(_ context.Context, it *model.ChecklistItem) error {
	f.items[it.ID] = it
	return nil
}

func (f *fakeItemStore) UpdateSortOrder(_ context.Context, id string, sortOrder int) error {
	if err := f.failSortUpdate[id]; err != nil {
		return err
	}
	it, ok := f.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	it.SortOrder = sortOrder
	return nil
}

func (f *fakeItemStore) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemStore) DeleteByChecklist(_ context.Context, checklistID string) error {
	for id, it := range f.items {
		if it.ChecklistID != nil && *it.ChecklistID == checklistID {
			delete(f.items, id)
		}
	}
	return nil
}

func fixture() (*ChecklistOrdering, *fakeChecklistStore, *fakeItemStore) {
	lists := &fakeChecklistStore{lists: map[string]*model.Checklist{
		"cl-1": {ID: "cl-1", CountryCode: "US", VisaType: "F1", Title: "F1 documents", SubscriptionTier: model.SubTierFree, SortOrder: 1},
	}}
	items := &fakeItemStore{items: map[string]*model.ChecklistItem{}, failSortUpdate: map[string]error{}}
	clID := "cl-1"
	for i, id := range []string{"i1", "i2", "i3"} {
		items.items[id] = &model.ChecklistItem{
			ID: id, ChecklistID: &clID, Label: "step", FieldType: model.FieldCheckbox,
			SortOrder: i + 1, Metadata: map[string]any{},
		}
	}
	return NewChecklistOrdering(lists, items), lists, items
}

func orderOf(t *testing.T, items *fakeItemStore, checklistID string) []string {
	t.Helper()
	sorted, err := items.ListByChecklist(context.Background(), checklistID)
	require.NoError(t, err)
	ids := make([]string, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ID
	}
	return ids
}

func TestMoveItemUpSwapsWithNeighbor(t *testing.T) {
	svc, _, items := fixture()
	require.NoError(t, svc.MoveItem(context.Background(), "cl-1", "i2", MoveUp))

	assert.Equal(t, []string{"i2", "i1", "i3"}, orderOf(t, items, "cl-1"))
	// Exactly the two neighbors swapped keys; the third is untouched.
	assert.Equal(t, 1, items.items["i2"].SortOrder)
	assert.Equal(t, 2, items.items["i1"].SortOrder)
	assert.Equal(t, 3, items.items["i3"].SortOrder)
}

func TestMoveItemEdgesAreNoOps(t *testing.T) {
	svc, _, items := fixture()
	require.NoError(t, svc.MoveItem(context.Background(), "cl-1", "i1", MoveUp))
	assert.Equal(t, []string{"i1", "i2", "i3"}, orderOf(t, items, "cl-1"))

	require.NoError(t, svc.MoveItem(context.Background(), "cl-1", "i3", MoveDown))
	assert.Equal(t, []string{"i1", "i2", "i3"}, orderOf(t, items, "cl-1"))
}

func TestMoveItemInvalidDirection(t *testing.T) {
	svc, _, _ := fixture()
	err := svc.MoveItem(context.Background(), "cl-1", "i2", "sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestMoveItemSecondUpdateFailureIsPartial(t *testing.T) {
	svc, _, items := fixture()
	items.failSortUpdate["i1"] = errors.New("connection reset")

	err := svc.MoveItem(context.Background(), "cl-1", "i2", MoveUp)
	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "reorder checklist items", pf.Op)

	// First update applied: i2 took i1's key, i1 still holds it too.  The
	// intermediate state is observable, not hidden.
	assert.Equal(t, 1, items.items["i2"].SortOrder)
	assert.Equal(t, 1, items.items["i1"].SortOrder)
}

func TestAppendItemCountsRowsNotMax(t *testing.T) {
	svc, _, items := fixture()
	ctx := context.Background()

	// Remove the middle item to leave a gap: orders are now [1, 3].
	require.NoError(t, svc.RemoveItem(ctx, "i2"))

	it, err := model.NewChecklistItem("", "Book appointment", "date", "")
	require.NoError(t, err)
	require.NoError(t, svc.AppendItem(ctx, "cl-1", it))

	// Two existing items, so the new one gets 3 regardless of the gap.
	assert.Equal(t, 3, it.SortOrder)
	require.NotNil(t, it.ChecklistID)
	assert.Equal(t, "cl-1", *it.ChecklistID)
	_ = items
}

func TestAppendItemUnknownChecklist(t *testing.T) {
	svc, _, _ := fixture()
	it, err := model.NewChecklistItem("", "x", "text", "")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.AppendItem(context.Background(), "nope", it), repository.ErrChecklistNotFound)
}

func TestCreateChecklistAssignsPerVisaTypeOrder(t *testing.T) {
	svc, lists, _ := fixture()
	ctx := context.Background()

	second, err := model.NewChecklist("US", "F1", "Interview prep", "basic")
	require.NoError(t, err)
	require.NoError(t, svc.CreateChecklist(ctx, second))
	assert.Equal(t, 2, second.SortOrder)

	otherVisa, err := model.NewChecklist("UK", "TIER4", "Tier 4 basics", "free")
	require.NoError(t, err)
	require.NoError(t, svc.CreateChecklist(ctx, otherVisa))
	assert.Equal(t, 1, otherVisa.SortOrder, "sort order is scoped per visa type")
	_ = lists
}

func TestDeleteChecklistCascadesItems(t *testing.T) {
	svc, lists, items := fixture()
	require.NoError(t, svc.DeleteChecklist(context.Background(), "cl-1"))

	assert.Empty(t, lists.lists)
	assert.Empty(t, items.items)
}

func TestRemoveItemLeavesGaps(t *testing.T) {
	svc, _, items := fixture()
	require.NoError(t, svc.RemoveItem(context.Background(), "i2"))

	assert.Equal(t, []string{"i1", "i3"}, orderOf(t, items, "cl-1"))
	assert.Equal(t, 1, items.items["i1"].SortOrder)
	assert.Equal(t, 3, items.items["i3"].SortOrder, "no renumbering after removal")
}
