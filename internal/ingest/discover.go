package ingest

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
)

type SourceFile struct {
	Path string
}

// DiscoverText lists the Big Book XHTML pages under root, toc.xhtml excluded.
func DiscoverText(root string) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if name == "toc.xhtml" {
			return nil
		}
		if strings.HasSuffix(name, ".xhtml") {
			out = append(out, SourceFile{Path: path})
		}
		return nil
	})
	return out, err
}

// Orphans lists the Big Book pages under textDir that no article was read
// from, sorted by path.
func Orphans(textDir string, articles []content.Article) ([]string, error) {
	files, err := DiscoverText(textDir)
	if err != nil {
		return nil, err
	}
	listed := make(map[string]bool, len(articles))
	for _, a := range articles {
		listed[filepath.Clean(a.File)] = true
	}
	var out []string
	for _, f := range files {
		if !listed[filepath.Clean(f.Path)] {
			out = append(out, f.Path)
		}
	}
	slices.Sort(out)
	return out, nil
}
