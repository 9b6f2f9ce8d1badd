package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/visapath/content-service/internal/model"
)

func strPtr(s string) *string { return &s }

func globalArticle() *model.Article {
	return &model.Article{
		ID:        "a-global",
		Title:     "Applying from anywhere",
		IsGlobal:  true,
		VisaTypes: nil,
		Published: true,
	}
}

func usArticle() *model.Article {
	return &model.Article{
		ID:                     "a-us",
		Title:                  "US student visa interview",
		Summary:                strPtr("What to expect at the embassy"),
		DestinationCountryCode: strPtr("US"),
		VisaTypes:              []string{"F1", "J1"},
		AccessTier:             model.TierFree,
		Published:              true,
	}
}

func TestGlobalArticleMatchesEveryAxisCombination(t *testing.T) {
	a := globalArticle()
	dests := []string{"", "all", "US", "UK", "DE"}
	origins := []string{"", "all", "IN", "NG"}
	visas := []string{"", "all", "F1", "TIER4"}
	for _, d := range dests {
		for _, o := range origins {
			for _, v := range visas {
				f := Filter{Destination: d, Origin: o, Visa: v}
				assert.True(t, f.MatchesArticle(a, nil),
					"global article must match dest=%q origin=%q visa=%q", d, o, v)
			}
		}
	}
}

func TestDestinationAndVisaFiltering(t *testing.T) {
	a := usArticle()

	assert.False(t, Filter{Destination: "UK"}.MatchesArticle(a, nil))
	assert.True(t, Filter{Destination: "US", Visa: "J1"}.MatchesArticle(a, nil))
	assert.False(t, Filter{Visa: "TIER4"}.MatchesArticle(a, nil))
}

func TestEmptyVisaListMeansNoRestriction(t *testing.T) {
	a := usArticle()
	a.VisaTypes = []string{}
	assert.True(t, Filter{Visa: "TIER4"}.MatchesArticle(a, nil))

	a.VisaTypes = nil
	assert.True(t, Filter{Visa: "TIER4"}.MatchesArticle(a, nil))
}

func TestOriginFiltering(t *testing.T) {
	a := usArticle()
	// nil origin means all origins
	assert.True(t, Filter{Origin: "IN"}.MatchesArticle(a, nil))

	a.OriginCountryCode = strPtr("IN")
	assert.True(t, Filter{Origin: "IN"}.MatchesArticle(a, nil))
	assert.False(t, Filter{Origin: "NG"}.MatchesArticle(a, nil))
}

func TestCategoryFiltering(t *testing.T) {
	a := usArticle()
	assert.True(t, Filter{Category: "all"}.MatchesArticle(a, nil))
	assert.False(t, Filter{Category: "cat-1"}.MatchesArticle(a, nil))
	assert.True(t, Filter{Category: "cat-1"}.MatchesArticle(a, []string{"cat-1", "cat-2"}))
}

func TestPublishedFiltering(t *testing.T) {
	draft := usArticle()
	draft.Published = false

	assert.True(t, Filter{Published: PublishedAll}.MatchesArticle(draft, nil))
	assert.False(t, Filter{Published: PublishedOnly}.MatchesArticle(draft, nil))
	assert.True(t, Filter{Published: PublishedDraft}.MatchesArticle(draft, nil))

	live := usArticle()
	assert.True(t, Filter{Published: PublishedOnly}.MatchesArticle(live, nil))
	assert.False(t, Filter{Published: PublishedDraft}.MatchesArticle(live, nil))
}

func TestQuerySearchesTitleAndSummary(t *testing.T) {
	a := usArticle()
	assert.True(t, Filter{Query: "INTERVIEW"}.MatchesArticle(a, nil))
	assert.True(t, Filter{Query: "embassy"}.MatchesArticle(a, nil))
	assert.False(t, Filter{Query: "scholarship"}.MatchesArticle(a, nil))
}

func TestTierFiltering(t *testing.T) {
	a := usArticle()
	assert.True(t, Filter{Tier: "free"}.MatchesArticle(a, nil))
	assert.False(t, Filter{Tier: "premium"}.MatchesArticle(a, nil))
}

func TestFilterArticlesPreservesOrder(t *testing.T) {
	first := usArticle()
	second := globalArticle()
	third := usArticle()
	third.ID = "a-us-2"
	third.Title = "Proof of funds for the US"

	got := FilterArticles([]*model.Article{first, second, third}, Filter{Destination: "US"}, nil)
	// The global article matches any destination, so all three survive in order.
	if assert.Len(t, got, 3) {
		assert.Equal(t, "a-us", got[0].ID)
		assert.Equal(t, "a-global", got[1].ID)
		assert.Equal(t, "a-us-2", got[2].ID)
	}

	got = FilterArticles([]*model.Article{first, second, third}, Filter{Query: "funds"}, nil)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "a-us-2", got[0].ID)
	}
}

func TestMatchesChecklist(t *testing.T) {
	cl := &model.Checklist{
		ID:               "cl-1",
		CountryCode:      "US",
		VisaType:         "F1",
		Title:            "F1 document checklist",
		SubscriptionTier: model.SubTierBasic,
		SortOrder:        1,
	}

	assert.True(t, Filter{}.MatchesChecklist(cl))
	assert.True(t, Filter{Destination: "US", Visa: "F1"}.MatchesChecklist(cl))
	assert.False(t, Filter{Destination: "UK"}.MatchesChecklist(cl))
	assert.False(t, Filter{Visa: "J1"}.MatchesChecklist(cl))
	assert.True(t, Filter{Tier: "basic"}.MatchesChecklist(cl))
	assert.False(t, Filter{Tier: "premium"}.MatchesChecklist(cl))
	assert.True(t, Filter{Query: "document"}.MatchesChecklist(cl))
	assert.False(t, Filter{Query: "interview"}.MatchesChecklist(cl))
}
