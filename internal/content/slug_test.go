package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Hello, World!  ", "hello-world"},
		{"Visa Interview Tips", "visa-interview-tips"},
		{"F1   Visa  --  Checklist", "f1-visa-checklist"},
		{"Déjà vu", "dj-vu"}, // non-word runes are dropped, not transliterated
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"!!!", ""},
		{"UPPER_case_ok", "upper_case_ok"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"  Hello, World!  ",
		"Visa Interview Tips",
		"a  b   c",
		"--- x ---",
		"",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "Slugify not idempotent for %q", in)
	}
}

func TestReadingTime(t *testing.T) {
	assert.Nil(t, ReadingTime(""))
	assert.Nil(t, ReadingTime("   \n\t "))

	one := ReadingTime("just a few words")
	if assert.NotNil(t, one) {
		assert.Equal(t, 1, *one)
	}

	// 450 words should round up to 3 minutes at 200 wpm.
	long := ""
	for i := 0; i < 450; i++ {
		long += "word "
	}
	three := ReadingTime(long)
	if assert.NotNil(t, three) {
		assert.Equal(t, 3, *three)
	}
}
