// Package content holds the pure content logic: slug derivation, reading
// time estimation, and the applicability predicates used by both the admin
// list views and the public feed.  Nothing in this package performs I/O.
package content

import (
	"math"
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a URL-safe slug candidate: lowercase, trim,
// drop everything that is not a word character, whitespace or hyphen, then
// collapse whitespace runs and hyphen runs to single hyphens.  It is total
// and idempotent; callers still have to resolve uniqueness against the
// target collection before persisting.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}

// ReadingTime estimates reading time in minutes at 200 words per minute,
// never less than one minute for non-empty content.  Empty content returns
// nil so the column stays NULL until the article has a body.
func ReadingTime(body string) *int {
	words := len(strings.Fields(body))
	if words == 0 {
		return nil
	}
	minutes := int(math.Ceil(float64(words) / 200))
	if minutes < 1 {
		minutes = 1
	}
	return &minutes
}
