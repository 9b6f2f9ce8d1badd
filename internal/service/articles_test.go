package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visapath/content-service/internal/content"
	"github.com/visapath/content-service/internal/model"
	"github.com/visapath/content-service/internal/queue"
	"github.com/visapath/content-service/internal/repository"
)

type fakeArticleStore struct {
	rows       map[string]*model.Article
	failDelete error
}

func (f *fakeArticleStore) SlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	for _, a := range f.rows {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticleStore) Create(_ context.Context, a *model.Article) error {
	f.rows[a.ID] = a
	return nil
}

func (f *fakeArticleStore) Update(_ context.Context, a *model.Article) error {
	if _, ok := f.rows[a.ID]; !ok {
		return repository.ErrArticleNotFound
	}
	f.rows[a.ID] = a
	return nil
}

func (f *fakeArticleStore) Delete(_ context.Context, id string) error {
	if f.failDelete != nil {
		return f.failDelete
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrArticleNotFound
	}
	delete(f.rows, id)
	return nil
}

type recordingPublisher struct {
	events []queue.ArticlePublishedEvent
}

func (r *recordingPublisher) PublishArticlePublished(_ context.Context, ev queue.ArticlePublishedEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func newArticleFixture() (*Articles, *fakeArticleStore, *fakeMapStore, *recordingPublisher) {
	store := &fakeArticleStore{rows: map[string]*model.Article{}}
	maps := newFakeMapStore()
	pub := &recordingPublisher{}
	return NewArticles(store, NewCategoryAssignments(maps), pub), store, maps, pub
}

func draftArticle(t *testing.T, slug string) *model.Article {
	t.Helper()
	a, err := model.NewArticle(model.ArticleInput{
		Title:                  "Visa Interview Tips",
		Slug:                   slug,
		Content:                "Arrive early and bring every document twice.",
		DestinationCountryCode: "US",
		AccessTier:             "free",
	}, time.Now().UTC())
	require.NoError(t, err)
	return a
}

func TestSaveNewArticleWithCategories(t *testing.T) {
	svc, store, maps, pub := newArticleFixture()
	ctx := context.Background()

	a := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, a, []string{"c1", "c2"}, true, false))

	assert.Contains(t, store.rows, a.ID)
	got, err := maps.ActiveCategoryIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, got)
	assert.Empty(t, pub.events, "draft saves publish nothing")
}

func TestSaveDuplicateSlugConflicts(t *testing.T) {
	svc, _, _, _ := newArticleFixture()
	ctx := context.Background()

	first := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, first, nil, true, false))

	second := draftArticle(t, "visa-interview-tips")
	err := svc.Save(ctx, second, nil, true, false)
	assert.ErrorIs(t, err, repository.ErrSlugExists)
}

func TestSaveOwnSlugIsNotAConflict(t *testing.T) {
	svc, _, _, _ := newArticleFixture()
	ctx := context.Background()

	a := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, a, nil, true, false))
	require.NoError(t, svc.Save(ctx, a, nil, false, false), "re-saving under the same slug must pass")
}

func TestPublishEventFiresOnTransitionOnly(t *testing.T) {
	svc, _, _, pub := newArticleFixture()
	ctx := context.Background()

	a := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, a, nil, true, false))
	assert.Empty(t, pub.events)

	a.Published = true
	require.NoError(t, svc.Save(ctx, a, nil, false, false))
	require.Len(t, pub.events, 1)
	assert.Equal(t, a.ID, pub.events[0].ArticleID)
	assert.Equal(t, "visa-interview-tips", pub.events[0].Slug)
	assert.Equal(t, "US", pub.events[0].DestinationCode)

	// Saving an already-published article again does not re-announce it.
	require.NoError(t, svc.Save(ctx, a, nil, false, true))
	assert.Len(t, pub.events, 1)
}

func TestSaveCategoryFailureIsPartial(t *testing.T) {
	svc, store, maps, _ := newArticleFixture()
	ctx := context.Background()
	maps.failInsert["c2"] = errors.New("connection reset")

	a := draftArticle(t, "visa-interview-tips")
	err := svc.Save(ctx, a, []string{"c1", "c2"}, true, false)
	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)

	// The article row itself was written.
	assert.Contains(t, store.rows, a.ID)
}

func TestDeleteCascadesMappingsFirst(t *testing.T) {
	svc, store, maps, _ := newArticleFixture()
	ctx := context.Background()

	a := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, a, []string{"c1"}, true, false))

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.NotContains(t, store.rows, a.ID)
	got, err := maps.ActiveCategoryIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteRowFailureIsPartial(t *testing.T) {
	svc, store, _, _ := newArticleFixture()
	ctx := context.Background()

	a := draftArticle(t, "visa-interview-tips")
	require.NoError(t, svc.Save(ctx, a, []string{"c1"}, true, false))

	store.failDelete = errors.New("timeout")
	err := svc.Delete(ctx, a.ID)
	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "delete article", pf.Op)
}

func TestDraftCreationThroughFeedVisibility(t *testing.T) {
	svc, store, _, _ := newArticleFixture()
	ctx := context.Background()

	slug := content.Slugify("Visa Interview Tips")
	require.Equal(t, "visa-interview-tips", slug)

	a := draftArticle(t, slug)
	require.NoError(t, svc.Save(ctx, a, nil, true, false))
	require.Contains(t, store.rows, a.ID)

	all := []*model.Article{store.rows[a.ID]}
	byArticle := map[string][]string{}

	public := content.FilterArticles(all, content.Filter{Published: content.PublishedOnly}, byArticle)
	assert.Empty(t, public, "drafts stay off the public feed")

	admin := content.FilterArticles(all, content.Filter{Published: content.PublishedAll}, byArticle)
	assert.Len(t, admin, 1)
}
