package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article is a guidance article shown on the public feed and managed through
// the admin back office.
//
// Applicability invariants enforced at construction:
//   - IsGlobal and DestinationCountryCode are mutually exclusive: a global
//     article has no destination, a non-global one must have exactly one.
//   - VisaTypes is nil when no restriction applies.  An explicitly empty list
//     is normalized to nil: both mean "applies to every visa type".
//
// ReadingTimeMinutes is derived from Content at save time and is nil when
// the article has no body yet.
type Article struct {
	ID                     string     `json:"id"`
	Slug                   string     `json:"slug"`
	Title                  string     `json:"title"`
	Summary                *string    `json:"summary"`
	Content                string     `json:"content"`
	CoverImageURL          *string    `json:"cover_image_url"`
	DestinationCountryCode *string    `json:"destination_country_code"`
	OriginCountryCode      *string    `json:"origin_country_code"`
	VisaTypes              []string   `json:"visa_types"`
	IsGlobal               bool       `json:"is_global"`
	AccessTier             AccessTier `json:"access_tier"`
	Published              bool       `json:"published"`
	ReadingTimeMinutes     *int       `json:"reading_time_minutes"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ArticleInput carries the raw field set accepted from the admin form.  An
// empty DestinationCountryCode together with IsGlobal=false is a validation
// error; the form sends a sentinel "global" choice which handlers translate
// into IsGlobal=true before calling NewArticle.
type ArticleInput struct {
	Title                  string
	Slug                   string
	Summary                string
	Content                string
	CoverImageURL          string
	DestinationCountryCode string
	OriginCountryCode      string
	VisaTypes              []string
	IsGlobal               bool
	AccessTier             string
	Published              bool
}

// NewArticle validates the input and builds an Article with a fresh UUID and
// timestamps.  The slug must already be normalized and uniqueness-checked by
// the caller.
func NewArticle(in ArticleInput, now time.Time) (*Article, error) {
	a := &Article{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.apply(in, now); err != nil {
		return nil, err
	}
	return a, nil
}

// Apply overwrites the mutable field set of an existing article from the
// given input, bumping UpdatedAt.  CreatedAt and ID are preserved.
func (a *Article) Apply(in ArticleInput, now time.Time) error {
	return a.apply(in, now)
}

func (a *Article) apply(in ArticleInput, now time.Time) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return invalid("title", "title is required")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		return invalid("slug", "slug is required")
	}
	dest := strings.ToUpper(strings.TrimSpace(in.DestinationCountryCode))
	if in.IsGlobal && dest != "" {
		return invalid("destination_country_code", "global articles cannot have a destination country")
	}
	if !in.IsGlobal && dest == "" {
		return invalid("destination_country_code", "destination country is required")
	}
	tier, err := ParseAccessTier(in.AccessTier)
	if err != nil {
		return err
	}

	a.Title = title
	a.Slug = strings.ToLower(slug)
	a.Content = in.Content
	a.IsGlobal = in.IsGlobal
	a.AccessTier = tier
	a.Published = in.Published
	a.UpdatedAt = now

	a.Summary = nil
	if s := strings.TrimSpace(in.Summary); s != "" {
		a.Summary = &s
	}
	a.CoverImageURL = nil
	if u := strings.TrimSpace(in.CoverImageURL); u != "" {
		a.CoverImageURL = &u
	}
	a.DestinationCountryCode = nil
	if dest != "" {
		a.DestinationCountryCode = &dest
	}
	a.OriginCountryCode = nil
	if o := strings.ToUpper(strings.TrimSpace(in.OriginCountryCode)); o != "" {
		a.OriginCountryCode = &o
	}
	// Empty and nil visa lists are equivalent: no restriction.  Keeping the
	// stored form as nil avoids two representations of the same meaning.
	a.VisaTypes = nil
	if len(in.VisaTypes) > 0 {
		seen := make(map[string]bool, len(in.VisaTypes))
		for _, code := range in.VisaTypes {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			a.VisaTypes = append(a.VisaTypes, code)
		}
	}
	return nil
}

// RestrictVisaTypes drops visa codes that are not in the allowed set.  It is
// called at edit time with the codes valid for the article's destination
// (or every active code for global articles); stored rows are never touched
// retroactively.
func (a *Article) RestrictVisaTypes(allowed map[string]bool) {
	if len(a.VisaTypes) == 0 {
		return
	}
	kept := a.VisaTypes[:0]
	for _, code := range a.VisaTypes {
		if allowed[code] {
			kept = append(kept, code)
		}
	}
	if len(kept) == 0 {
		a.VisaTypes = nil
		return
	}
	a.VisaTypes = kept
}
