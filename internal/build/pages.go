package build

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/app"
	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/domain/site"
	"github.com/HootingYard/ubercoordinator/internal/index"
	"github.com/HootingYard/ubercoordinator/internal/ingest"
	"github.com/HootingYard/ubercoordinator/internal/render"
)

var eraTitles = map[content.Era]string{
	content.EraWebPage:    "Index by Date, 1992–2003",
	content.EraFirstBlog:  "Index by Date, 2003–2006",
	content.EraSecondBlog: "Index by Date, 2006–2019",
}

// website is the state of one website build.
type website struct {
	cfg   config.Config
	now   time.Time
	ix    *index.Index
	md    *render.MarkdownRenderer
	tpl   render.Renderer
	out   *pageWriter
	warns *warnings
	log   *slog.Logger
}

func (s *website) buildAll(ctx context.Context) error {
	rb := &app.RouteBuilder{Index: s.ix}

	for _, r := range rb.BuildIndexRoutes() {
		var err error
		switch r.Kind {
		case site.RouteTitleIndex:
			err = s.buildTitleIndex(ctx, r)
		case site.RouteDateIndex:
			err = s.buildDateIndex(ctx, r)
		}
		if err != nil {
			return fmt.Errorf("build %s: %w", r, err)
		}
	}

	if err := s.buildArticles(ctx, rb.BuildArticleRoutes()); err != nil {
		return fmt.Errorf("build articles: %w", err)
	}

	if err := s.copyAssets(); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	return nil
}

// generated is the build date shown in page footers. It is truncated to
// the day so pages rebuilt on the same day keep their fingerprint.
func (s *website) generated() time.Time {
	return s.now.UTC().Truncate(24 * time.Hour)
}

func (s *website) preface(page string) (template.HTML, error) {
	return s.md.Preface(s.cfg.Site.PrefaceDir, strings.TrimSuffix(page, ".html"))
}

func (s *website) buildTitleIndex(ctx context.Context, r site.Route) error {
	preface, err := s.preface(site.TitleIndexPage)
	if err != nil {
		return err
	}
	page := render.TitleIndexPage{
		Site:      s.cfg.Site,
		Title:     "Index by Title",
		Preface:   preface,
		Letters:   s.ix.ArticlesByLetter(),
		Total:     s.ix.Len(),
		Generated: s.generated(),
	}
	htmlBytes, err := s.tpl.RenderTitleIndex(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(r.OutPath, htmlBytes)
}

func (s *website) buildDateIndex(ctx context.Context, r site.Route) error {
	preface, err := s.preface(site.DateIndexPage(r.Era))
	if err != nil {
		return err
	}
	page := render.DateIndexPage{
		Site:      s.cfg.Site,
		Title:     eraTitles[r.Era],
		Era:       r.Era,
		Preface:   preface,
		Total:     len(s.ix.Articles(r.Era)),
		Generated: s.generated(),
	}
	if r.Era == content.EraFirstBlog {
		page.Months, err = s.ix.ArrangeFirstBlog(s.loadIntro)
		if err != nil {
			return err
		}
	} else {
		page.Years = s.ix.ArticlesByYear(r.Era)
	}

	htmlBytes, err := s.tpl.RenderDateIndex(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(r.OutPath, htmlBytes)
}

func (s *website) loadIntro(a content.Article) (string, error) {
	html, err := ingest.ReadContent(a.File, false)
	if errors.Is(err, fs.ErrNotExist) {
		s.warns.add(a.File, "archive introduction missing")
		s.log.Warn("archive introduction missing", "id", a.ID, "file", a.File)
		return "", nil
	}
	return html, err
}

type articleResult struct {
	route site.Route
	err   error
}

// buildArticles renders one page per article with a pool of workers.
func (s *website) buildArticles(ctx context.Context, routes []site.Route) error {
	workers := s.cfg.Build.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan site.Route)
	results := make(chan articleResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				results <- articleResult{route: r, err: s.buildArticle(ctx, r)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, r := range routes {
			select {
			case jobs <- r:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var first error
	for res := range results {
		if res.err != nil && first == nil {
			first = fmt.Errorf("%s: %w", res.route.Slug, res.err)
			cancel()
		}
	}
	if first != nil {
		return first
	}
	return ctx.Err()
}

func (s *website) buildArticle(ctx context.Context, r site.Route) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a, ok := s.ix.Article(r.Slug)
	if !ok {
		return fmt.Errorf("article %s not in index", r.Slug)
	}

	body, err := ingest.ReadContent(a.File, false)
	if errors.Is(err, fs.ErrNotExist) {
		s.warns.add(a.File, "article file missing")
		s.log.Warn("article file missing", "id", a.ID, "file", a.File)
		return nil
	}
	if err != nil {
		return err
	}

	readings := make([]render.Reading, 0, len(a.Narrations))
	for _, n := range a.Narrations {
		show, ok := s.ix.Show(n.ShowID)
		if !ok {
			return fmt.Errorf("show %s not in index", n.ShowID)
		}
		readings = append(readings, render.Reading{Narration: n, Show: show})
	}

	page := render.ArticlePage{
		Site:      s.cfg.Site,
		Title:     a.Title,
		Article:   a,
		HTML:      template.HTML(body),
		Readings:  readings,
		Generated: s.generated(),
	}
	htmlBytes, err := s.tpl.RenderArticle(ctx, page)
	if err != nil {
		return err
	}
	return s.out.write(r.OutPath, htmlBytes)
}
