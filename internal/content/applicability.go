package content

import (
	"strings"

	"github.com/visapath/content-service/internal/model"
)

// Published filter states accepted by list endpoints.
const (
	PublishedAll   = "all"
	PublishedOnly  = "published"
	PublishedDraft = "draft"
)

// Filter is the applicability context a list view is evaluated against.
// Every field is optional; the zero value matches everything.  The literal
// "all" is accepted wherever a field is unset so that query parameters can
// be passed through untouched.
type Filter struct {
	Destination string // destination country code
	Origin      string // origin country code
	Visa        string // visa type code
	Category    string // category id ("" / "all" = any)
	Tier        string // access tier (articles) or subscription tier (checklists)
	Published   string // "", "all", "published" or "draft"; articles only
	Query       string // case-insensitive substring over title/summary
}

func unset(v string) bool {
	return v == "" || v == "all"
}

// MatchesArticle reports whether the article passes every axis of the
// filter.  categoryIDs is the article's resolved set of active category ids
// (from article_category_map); the caller derives it so the predicate stays
// pure.
//
// Axis semantics, each independently AND-combined:
//   - destination: global articles match any destination filter;
//   - origin: a nil origin means "all origins";
//   - visa: a nil or empty visa list means "all visa types".  Empty and nil
//     are deliberately equivalent (flagged upstream as a possible product
//     bug, kept here as observed behavior);
//   - category: membership in the resolved active-category set;
//   - tier: exact access tier match;
//   - published: tri-state all/published/draft;
//   - query: substring over title and summary, case-insensitive.
func (f Filter) MatchesArticle(a *model.Article, categoryIDs []string) bool {
	if !unset(f.Destination) && !a.IsGlobal {
		if a.DestinationCountryCode == nil || *a.DestinationCountryCode != f.Destination {
			return false
		}
	}
	if !unset(f.Origin) && a.OriginCountryCode != nil && *a.OriginCountryCode != f.Origin {
		return false
	}
	if !unset(f.Visa) && len(a.VisaTypes) > 0 && !contains(a.VisaTypes, f.Visa) {
		return false
	}
	if !unset(f.Category) && !contains(categoryIDs, f.Category) {
		return false
	}
	if !unset(f.Tier) && string(a.AccessTier) != f.Tier {
		return false
	}
	switch f.Published {
	case PublishedOnly:
		if !a.Published {
			return false
		}
	case PublishedDraft:
		if a.Published {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		summary := ""
		if a.Summary != nil {
			summary = *a.Summary
		}
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(summary), q) {
			return false
		}
	}
	return true
}

// FilterArticles applies the predicate to every article, preserving input
// order.  categoriesByArticle maps article id to its active category ids.
func FilterArticles(items []*model.Article, f Filter, categoriesByArticle map[string][]string) []*model.Article {
	out := make([]*model.Article, 0, len(items))
	for _, a := range items {
		if f.MatchesArticle(a, categoriesByArticle[a.ID]) {
			out = append(out, a)
		}
	}
	return out
}

// MatchesChecklist evaluates the axes that apply to checklists.  Checklists
// always have a concrete country and visa type, so there is no "global"
// escape hatch; category and published do not apply.
func (f Filter) MatchesChecklist(cl *model.Checklist) bool {
	if !unset(f.Destination) && cl.CountryCode != f.Destination {
		return false
	}
	if !unset(f.Visa) && cl.VisaType != f.Visa {
		return false
	}
	if !unset(f.Tier) && string(cl.SubscriptionTier) != f.Tier {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(cl.Title), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// FilterChecklists applies MatchesChecklist over a slice, preserving order.
func FilterChecklists(items []*model.Checklist, f Filter) []*model.Checklist {
	out := make([]*model.Checklist, 0, len(items))
	for _, cl := range items {
		if f.MatchesChecklist(cl) {
			out = append(out, cl)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
