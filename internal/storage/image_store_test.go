package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveArticleCoverWritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	s := NewImageStore(root, "/media")
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	url, err := s.SaveArticleCover("uk-student-visa", "cover.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/articles/uk-student-visa-1700000000.png", url)

	data, err := os.ReadFile(filepath.Join(root, "articles", "uk-student-visa-1700000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveArticleCoverMissingExtension(t *testing.T) {
	s := NewImageStore(t.TempDir(), "/media/")
	s.now = func() time.Time { return time.Unix(42, 0) }

	url, err := s.SaveArticleCover("slug", "upload", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/media/articles/slug-42.bin", url)
}

func TestSaveArticleCoverTimestampedNamesDoNotCollide(t *testing.T) {
	root := t.TempDir()
	s := NewImageStore(root, "/media")

	ts := int64(100)
	s.now = func() time.Time { ts++; return time.Unix(ts, 0) }

	first, err := s.SaveArticleCover("slug", "a.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.SaveArticleCover("slug", "a.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
