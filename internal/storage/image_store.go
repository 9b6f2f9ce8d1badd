// Package storage persists uploaded media on the local filesystem and maps
// stored files to public URLs.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore writes article cover images under a root directory. Files are
// served back by the HTTP layer from the same root, so the returned URL is
// always baseURL-relative.
type ImageStore struct {
	root    string
	baseURL string
	now     func() time.Time
}

// NewImageStore builds a store rooted at root. URLs are joined onto baseURL.
func NewImageStore(root, baseURL string) *ImageStore {
	return &ImageStore{root: root, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// SaveArticleCover stores an uploaded cover image and returns its public URL.
// The stored name is derived from the article slug plus a timestamp so that
// re-uploads never overwrite a previous file.
func (s *ImageStore) SaveArticleCover(slug, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	name := fmt.Sprintf("%s-%d%s", slug, s.now().Unix(), ext)

	dir := filepath.Join(s.root, "articles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write media file: %w", err)
	}

	return s.baseURL + "/" + path.Join("articles", name), nil
}
