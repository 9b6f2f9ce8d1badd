package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ArticleInput {
	return ArticleInput{
		Title:                  "Visa Interview Tips",
		Slug:                   "visa-interview-tips",
		Content:                "Arrive early.",
		DestinationCountryCode: "us",
		AccessTier:             "free",
	}
}

func TestNewArticleNormalizes(t *testing.T) {
	now := time.Now().UTC()
	a, err := NewArticle(validInput(), now)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "visa-interview-tips", a.Slug)
	require.NotNil(t, a.DestinationCountryCode)
	assert.Equal(t, "US", *a.DestinationCountryCode)
	assert.Nil(t, a.OriginCountryCode)
	assert.Nil(t, a.VisaTypes)
	assert.Equal(t, TierFree, a.AccessTier)
	assert.Equal(t, now, a.CreatedAt)
}

func TestGlobalArticleRejectsDestination(t *testing.T) {
	in := validInput()
	in.IsGlobal = true
	_, err := NewArticle(in, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "destination_country_code", verr.Field)
}

func TestNonGlobalArticleRequiresDestination(t *testing.T) {
	in := validInput()
	in.DestinationCountryCode = ""
	_, err := NewArticle(in, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestVisaTypesDedupedAndUppercased(t *testing.T) {
	in := validInput()
	in.VisaTypes = []string{"f1", "F1", " j1 ", ""}
	a, err := NewArticle(in, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"F1", "J1"}, a.VisaTypes)
}

func TestUnknownAccessTierRejected(t *testing.T) {
	in := validInput()
	in.AccessTier = "gold"
	_, err := NewArticle(in, time.Now())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "access_tier", verr.Field)
}

func TestApplyPreservesIdentity(t *testing.T) {
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	a, err := NewArticle(validInput(), created)
	require.NoError(t, err)
	id := a.ID

	later := created.Add(48 * time.Hour)
	in := validInput()
	in.Title = "Visa Interview Tips, Updated"
	in.Published = true
	require.NoError(t, a.Apply(in, later))

	assert.Equal(t, id, a.ID)
	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, later, a.UpdatedAt)
	assert.True(t, a.Published)
}

func TestRestrictVisaTypes(t *testing.T) {
	in := validInput()
	in.VisaTypes = []string{"F1", "J1", "TIER4"}
	a, err := NewArticle(in, time.Now())
	require.NoError(t, err)

	a.RestrictVisaTypes(map[string]bool{"F1": true, "J1": true})
	assert.Equal(t, []string{"F1", "J1"}, a.VisaTypes)

	a.RestrictVisaTypes(map[string]bool{})
	assert.Nil(t, a.VisaTypes, "no surviving codes collapses back to nil")
}

func TestChecklistItemMetadataValidation(t *testing.T) {
	_, err := NewChecklistItem("cl-1", "Passport copy", "file", "not-json")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "metadata", verr.Field)

	item, err := NewChecklistItem("cl-1", "Passport copy", "file", `{"max_mb": 5}`)
	require.NoError(t, err)
	assert.Equal(t, FieldFile, item.FieldType)
	assert.Equal(t, float64(5), item.Metadata["max_mb"])

	item, err = NewChecklistItem("cl-1", "Done?", "", "")
	require.NoError(t, err)
	assert.Equal(t, FieldCheckbox, item.FieldType)
	assert.Empty(t, item.Metadata)
}
