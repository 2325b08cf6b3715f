// Package book loads e-books from disk into models.Book.
package book

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/justyntemme/folio/pkg/models"
)

// ErrNoPages is returned for a source that contains no pages
var ErrNoPages = errors.New("book has no pages")

// indexFiles are tried in order when a directory is opened
var indexFiles = []string{"index.html", "index.htm", "book.yaml", "book.yml"}

// Open loads the book at path. A directory is searched for an index file.
func Open(path string, log *zap.Logger) (*models.Book, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		found := ""
		for _, name := range indexFiles {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				found = candidate
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("no book index (%s) in %s", strings.Join(indexFiles, ", "), path)
		}
		path = found
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var b *models.Book
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		b, err = ParseHTML(f)
	case ".yaml", ".yml":
		b, err = ParseManifest(f)
	default:
		return nil, fmt.Errorf("unsupported book format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	b.Source = path
	if b.Title == "" {
		b.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	resolveIllustrations(b, filepath.Dir(path))

	if err := Normalize(b, log); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug("Book loaded", zap.String("path", path), zap.Int("pages", b.PageCount()), zap.Int("toc", len(b.TOC)))
	return b, nil
}

// Normalize drops links that point outside the book and derives a table of
// contents from page titles when the source has none.
func Normalize(b *models.Book, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(b.Pages) == 0 {
		return ErrNoPages
	}

	n := len(b.Pages)
	toc := b.TOC[:0]
	for _, e := range b.TOC {
		if e.Page < 0 || e.Page >= n {
			log.Warn("Dropping table of contents entry with bad page", zap.String("title", e.Title), zap.Int("page", e.Page))
			continue
		}
		toc = append(toc, e)
	}
	b.TOC = toc

	for i := range b.Pages {
		refs := b.Pages[i].Refs[:0]
		for _, r := range b.Pages[i].Refs {
			if r.Page < 0 || r.Page >= n {
				log.Warn("Dropping page link with bad target", zap.Int("page", i), zap.String("text", r.Text), zap.Int("target", r.Page))
				continue
			}
			refs = append(refs, r)
		}
		b.Pages[i].Refs = refs
	}

	if len(b.TOC) == 0 {
		for i, p := range b.Pages {
			if p.Title != "" {
				b.TOC = append(b.TOC, models.TOCEntry{Title: p.Title, Page: i})
			}
		}
	}
	return nil
}

func resolveIllustrations(b *models.Book, dir string) {
	for i := range b.Pages {
		src := b.Pages[i].Illustration
		if src == "" || filepath.IsAbs(src) || strings.Contains(src, "://") {
			continue
		}
		b.Pages[i].Illustration = filepath.Join(dir, filepath.FromSlash(src))
	}
}
