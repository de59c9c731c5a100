package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/HootingYard/ubercoordinator/internal/catalog"
	fp "github.com/HootingYard/ubercoordinator/internal/domain/build"
	"github.com/HootingYard/ubercoordinator/internal/domain/config"
)

// pageWriter writes website files, skipping those whose fingerprint is
// unchanged since the last build. Safe for concurrent use.
type pageWriter struct {
	root       string
	st         *catalog.Store
	themeHash  string
	configHash string
	generator  string

	written   atomic.Int64
	unchanged atomic.Int64
}

func newPageWriter(root string, st *catalog.Store, themeHash string, cfg config.Config) *pageWriter {
	s := cfg.Site
	return &pageWriter{
		root:       root,
		st:         st,
		themeHash:  themeHash,
		configHash: fp.HashStrings(s.Title, s.Author, s.Language, s.Generator, s.PrefaceDir),
		generator:  fp.HashStrings(s.Generator),
	}
}

// write stores data at rel, a slash separated path below root.
func (w *pageWriter) write(rel string, data []byte) error {
	f := fp.Fingerprint{
		ContentHash:   fp.HashBytes(data),
		ThemeHash:     w.themeHash,
		ConfigHash:    w.configHash,
		GeneratorHash: w.generator,
	}
	f.ComputeRenderHash()

	full := filepath.Join(w.root, filepath.FromSlash(rel))
	prev, err := w.st.PageHash(rel)
	if err != nil {
		return fmt.Errorf("page hash(%s): %w", rel, err)
	}
	if prev == f.RenderHash {
		if _, err := os.Stat(full); err == nil {
			w.unchanged.Add(1)
			return nil
		}
	}

	if err := writeFile(full, data); err != nil {
		return err
	}
	w.written.Add(1)
	return w.st.PutPageHash(rel, f.RenderHash)
}

func writeFile(full string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
