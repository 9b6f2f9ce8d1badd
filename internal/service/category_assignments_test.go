package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMapStore is an in-memory categoryMapStore with failure injection.
type fakeMapStore struct {
	rows       map[string][]string // article id -> category ids, insertion order
	active     map[string]bool     // category id -> active flag (default true)
	failDelete error
	failInsert map[string]error // category id -> error to return
}

func newFakeMapStore() *fakeMapStore {
	return &fakeMapStore{
		rows:       map[string][]string{},
		active:     map[string]bool{},
		failInsert: map[string]error{},
	}
}

func (f *fakeMapStore) DeleteByArticle(_ context.Context, articleID string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.rows, articleID)
	return nil
}

func (f *fakeMapStore) Insert(_ context.Context, articleID, categoryID string) error {
	if err := f.failInsert[categoryID]; err != nil {
		return err
	}
	f.rows[articleID] = append(f.rows[articleID], categoryID)
	return nil
}

func (f *fakeMapStore) ActiveCategoryIDs(_ context.Context, articleID string) ([]string, error) {
	var out []string
	for _, id := range f.rows[articleID] {
		if act, known := f.active[id]; !known || act {
			out = append(out, id)
		}
	}
	return out, nil
}

func TestReplaceThenClearLeavesNoRows(t *testing.T) {
	store := newFakeMapStore()
	store.rows["other"] = []string{"c9"}
	svc := NewCategoryAssignments(store)
	ctx := context.Background()

	require.NoError(t, svc.Replace(ctx, "a1", []string{"c1", "c2"}))
	got, err := svc.CategoriesOf(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, got)

	require.NoError(t, svc.Replace(ctx, "a1", nil))
	got, err = svc.CategoriesOf(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Other articles' mappings are untouched.
	other, err := svc.CategoriesOf(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"c9"}, other)
}

func TestReplaceIsFullReplaceNotDiff(t *testing.T) {
	store := newFakeMapStore()
	svc := NewCategoryAssignments(store)
	ctx := context.Background()

	require.NoError(t, svc.Replace(ctx, "a1", []string{"c1", "c2"}))
	require.NoError(t, svc.Replace(ctx, "a1", []string{"c3"}))

	got, err := svc.CategoriesOf(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c3"}, got)
}

func TestReplacePartialFailureShape(t *testing.T) {
	store := newFakeMapStore()
	store.failInsert["c2"] = errors.New("connection reset")
	svc := NewCategoryAssignments(store)
	ctx := context.Background()

	err := svc.Replace(ctx, "a1", []string{"c1", "c2", "c3"})
	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "replace article categories", pf.Op)
	assert.Equal(t, "insert category 2 of 3", pf.Step)

	// The first insert was applied and stays applied.
	got, gerr := svc.CategoriesOf(ctx, "a1")
	require.NoError(t, gerr)
	assert.Equal(t, []string{"c1"}, got)
}

func TestReplaceDeleteFailureIsClean(t *testing.T) {
	store := newFakeMapStore()
	store.rows["a1"] = []string{"c1"}
	store.failDelete = errors.New("timeout")
	svc := NewCategoryAssignments(store)

	err := svc.Replace(context.Background(), "a1", []string{"c2"})
	require.Error(t, err)
	var pf *PartialFailureError
	assert.False(t, errors.As(err, &pf), "nothing was applied, so the failure is clean")

	// Existing mappings survive an up-front delete failure.
	got, gerr := svc.CategoriesOf(context.Background(), "a1")
	require.NoError(t, gerr)
	assert.Equal(t, []string{"c1"}, got)
}

func TestCategoriesOfHidesInactive(t *testing.T) {
	store := newFakeMapStore()
	store.rows["a1"] = []string{"c1", "c2"}
	store.active["c2"] = false
	svc := NewCategoryAssignments(store)

	got, err := svc.CategoriesOf(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, got)
}
