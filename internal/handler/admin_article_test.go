package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visapath/content-service/internal/model"
)

func str(s string) *string       { return &s }
func boolp(b bool) *bool         { return &b }
func strs(s ...string) *[]string { return &s }

func publishedArticle(t *testing.T) *model.Article {
	t.Helper()
	a, err := model.NewArticle(model.ArticleInput{
		Title:                  "Student Visa Basics",
		Slug:                   "student-visa-basics",
		Summary:                "What to file and when.",
		Content:                "Start with the I-20 form.",
		DestinationCountryCode: "US",
		OriginCountryCode:      "IN",
		VisaTypes:              []string{"F1", "J1"},
		AccessTier:             "premium",
		Published:              true,
	}, time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return a
}

func TestPatchTitleOnlyKeepsEverythingElse(t *testing.T) {
	a := publishedArticle(t)
	req := articlePatchReq{Title: str("Student Visa Basics, 2026 Edition")}

	require.NoError(t, a.Apply(req.merge(a), time.Now().UTC()))

	assert.Equal(t, "Student Visa Basics, 2026 Edition", a.Title)
	assert.True(t, a.Published, "omitted published must not reset to draft")
	assert.Equal(t, "student-visa-basics", a.Slug)
	assert.Equal(t, []string{"F1", "J1"}, a.VisaTypes)
	assert.Equal(t, model.TierPremium, a.AccessTier)
	require.NotNil(t, a.Summary)
	assert.Equal(t, "What to file and when.", *a.Summary)
	require.NotNil(t, a.OriginCountryCode)
	assert.Equal(t, "IN", *a.OriginCountryCode)
}

func TestPatchExplicitFieldsOverride(t *testing.T) {
	a := publishedArticle(t)
	req := articlePatchReq{
		Published: boolp(false),
		Summary:   str(""),
		VisaTypes: strs("F1"),
	}

	require.NoError(t, a.Apply(req.merge(a), time.Now().UTC()))

	assert.False(t, a.Published)
	assert.Nil(t, a.Summary, "an explicit empty summary clears it")
	assert.Equal(t, []string{"F1"}, a.VisaTypes)
	assert.Equal(t, "Student Visa Basics", a.Title, "untouched fields survive")
}

func TestPatchGlobalSentinelDropsDestination(t *testing.T) {
	a := publishedArticle(t)
	req := articlePatchReq{DestinationCountryCode: str("global")}

	require.NoError(t, a.Apply(req.merge(a), time.Now().UTC()))

	assert.True(t, a.IsGlobal)
	assert.Nil(t, a.DestinationCountryCode)
}

func TestPatchSlugIsNormalized(t *testing.T) {
	a := publishedArticle(t)
	req := articlePatchReq{Slug: str("Student Visa BASICS!")}

	require.NoError(t, a.Apply(req.merge(a), time.Now().UTC()))

	assert.Equal(t, "student-visa-basics", a.Slug)
}
