package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/catalog"
	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/index"
	"github.com/HootingYard/ubercoordinator/internal/logging"
	"github.com/HootingYard/ubercoordinator/internal/render"
)

// websiteDirs are created in the website directory on every build.
var websiteDirs = []string{"Text", "Images", "Media", "Fonts", "Styles"}

type Builder struct {
	Cfg    config.Config
	Logger *slog.Logger

	// Now is read once per Run for page footers. Nil means time.Now.
	Now func() time.Time
}

// Warning is a problem that did not stop the build.
type Warning struct {
	Path string
	Msg  string
}

type Result struct {
	Articles   int
	Shows      int
	Narrations int
	Written    int
	Unchanged  int
	Warnings   []Warning
}

type warnings struct {
	mu   sync.Mutex
	list []Warning
}

func (w *warnings) add(path, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = append(w.list, Warning{Path: path, Msg: msg})
}

// Run loads the index, refreshes the catalog and writes the website.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := logging.Component(b.Logger, "build")

	ix, err := index.LoadConfig(b.Cfg)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	log.Info("index loaded",
		"articles", ix.Len(),
		"shows", len(ix.Shows()),
		"narrations", ix.NarrationCount(),
	)

	st, err := catalog.Open(catalog.OpenOptions{Path: b.Cfg.Paths.CacheFile})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer st.Close()

	if b.Cfg.Build.Force {
		if err := st.ForgetPages(); err != nil {
			return nil, fmt.Errorf("reset page cache: %w", err)
		}
	}
	if err := st.Rebuild(ix); err != nil {
		return nil, fmt.Errorf("failed to rebuild catalog: %w", err)
	}

	md := render.NewMarkdownRenderer()
	tpl, err := render.NewTemplateRenderer(b.Cfg.Paths.ThemeDir)
	if err != nil {
		return nil, fmt.Errorf("load templates(%s): %w", b.Cfg.Paths.ThemeDir, err)
	}

	outDir := b.Cfg.Paths.WebsiteDir
	for _, dir := range websiteDirs {
		if err := os.MkdirAll(filepath.Join(outDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	out := newPageWriter(outDir, st, tpl.Hash(), b.Cfg)
	warns := &warnings{}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	s := &website{
		cfg:   b.Cfg,
		now:   now(),
		ix:    ix,
		md:    md,
		tpl:   tpl,
		out:   out,
		warns: warns,
		log:   log,
	}
	if err := s.buildAll(ctx); err != nil {
		return nil, err
	}

	res := &Result{
		Articles:   ix.Len(),
		Shows:      len(ix.Shows()),
		Narrations: ix.NarrationCount(),
		Written:    int(out.written.Load()),
		Unchanged:  int(out.unchanged.Load()),
		Warnings:   warns.list,
	}
	log.Info("website built",
		"dir", outDir,
		"written", res.Written,
		"unchanged", res.Unchanged,
		"warnings", len(res.Warnings),
	)
	return res, nil
}
