package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/build"
	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
	"github.com/HootingYard/ubercoordinator/internal/logging"
)

const tocXHTML = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><body>
<div class="contents">
<p><a href="2001-05-01-foo.xhtml">The Foo</a></p>
<p><a href="2004-01-01-intro.xhtml">Hooting Yard Archive, January 2004</a></p>
<p><a href="2004-01-05-dobson.xhtml"><em>Dobson</em> Again</a></p>
<p><a href="2010-02-03-missing.xhtml">Missing Piece</a></p>
</div>
</body></html>`

const showsYAML = `shows:
  - date: 2007-06-01
    title: Foo Show
    duration: 1700
    id: hy0_20070601
    internet_archive_url: https://archive.org/details/hy_20070601
    narrations:
      - story_id: 2004-01-05-dobson
        start_time: 194
        end_time: 400
        word_count: 500
      - story_id: external_poe
        start_time: 500
        end_time: 900
`

func page(title, body string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>` + title + `</title></head>
<body><h1>` + title + `</h1>` + body + `</body></html>`
}

func writeFixture(t *testing.T, root, rel, data string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	book := filepath.Join(dir, "bigbook")

	writeFixture(t, book, "Text/toc.xhtml", tocXHTML)
	writeFixture(t, book, "Text/2001-05-01-foo.xhtml", page("The Foo", `<p>See <a class="internal" href="2004-01-05-dobson.xhtml">Dobson</a>.</p>`))
	writeFixture(t, book, "Text/2004-01-01-intro.xhtml", page("Hooting Yard Archive, January 2004", `<p>A month of pamphlets.</p>`))
	writeFixture(t, book, "Text/2004-01-05-dobson.xhtml", page("Dobson Again", `<p>Out of print.</p>`))
	writeFixture(t, book, "Styles/hootingyard.css", "body { margin: 0 }\n")
	writeFixture(t, dir, "export.yaml", showsYAML)

	cfg := config.Default()
	cfg.Paths.BigBookDir = book
	cfg.Paths.ShowIndexFile = filepath.Join(dir, "export.yaml")
	cfg.Paths.WebsiteDir = filepath.Join(dir, "website")
	cfg.Paths.CacheFile = filepath.Join(dir, "cache", "catalog.db")
	cfg.Build.Workers = 2
	return cfg
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newBuilder(cfg config.Config) *build.Builder {
	return &build.Builder{
		Cfg:    cfg,
		Logger: logging.Discard(),
		Now:    fixedClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)),
	}
}

func readOutput(t *testing.T, cfg config.Config, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(cfg.Paths.WebsiteDir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(b)
}

func TestBuildWritesWebsite(t *testing.T) {
	cfg := fixtureConfig(t)
	b := newBuilder(cfg)

	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Articles != 4 || res.Shows != 1 || res.Narrations != 1 {
		t.Fatalf("unexpected counts %+v", res)
	}
	// title index, three date indexes, three article pages, one stylesheet
	if res.Written != 8 || res.Unchanged != 0 {
		t.Fatalf("unexpected write counts %+v", res)
	}
	if len(res.Warnings) != 1 || !strings.HasSuffix(res.Warnings[0].Path, "2010-02-03-missing.xhtml") {
		t.Fatalf("unexpected warnings %+v", res.Warnings)
	}

	title := readOutput(t, cfg, "Text/index-by-title.html")
	if strings.Index(title, `id="2004-01-05-dobson"`) > strings.Index(title, `id="2001-05-01-foo"`) {
		t.Fatal("expected Dobson Again to be listed before The Foo")
	}

	first := readOutput(t, cfg, "Text/index-by-date-2003-2006.html")
	if !strings.Contains(first, "A month of pamphlets.") || strings.Contains(first, `id="2004-01-01-intro"`) {
		t.Fatalf("expected introduction text instead of an entry:\n%s", first)
	}

	article := readOutput(t, cfg, "Text/2004-01-05-dobson.html")
	for _, want := range []string{
		"https://archive.org/download/hy_20070601/hy0_20070601.mp3#t=194,400",
		"<p>Out of print.</p>",
		`href="index-by-date-2003-2006.html#2004-01-05-dobson"`,
	} {
		if !strings.Contains(article, want) {
			t.Fatalf("expected %q in article page:\n%s", want, article)
		}
	}
	if strings.Contains(article, "<h1>Dobson Again</h1>") {
		t.Fatal("expected the Big Book heading to be replaced")
	}

	foo := readOutput(t, cfg, "Text/2001-05-01-foo.html")
	if !strings.Contains(foo, `href="2004-01-05-dobson.html"`) {
		t.Fatalf("expected internal link to point at the html page:\n%s", foo)
	}
	if got := readOutput(t, cfg, "Styles/hootingyard.css"); got != "body { margin: 0 }\n" {
		t.Fatalf("unexpected stylesheet %q", got)
	}
}

func TestBuildSkipsUnchangedPages(t *testing.T) {
	cfg := fixtureConfig(t)
	b := newBuilder(cfg)
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}

	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if res.Written != 0 || res.Unchanged != 8 {
		t.Fatalf("expected every page to be unchanged, got %+v", res)
	}

	if err := os.Remove(filepath.Join(cfg.Paths.WebsiteDir, "Text", "index-by-title.html")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	res, err = b.Run(context.Background())
	if err != nil {
		t.Fatalf("third Run returned error: %v", err)
	}
	if res.Written != 1 {
		t.Fatalf("expected the deleted page to be rewritten, got %+v", res)
	}

	b.Cfg.Build.Force = true
	res, err = b.Run(context.Background())
	if err != nil {
		t.Fatalf("forced Run returned error: %v", err)
	}
	if res.Written != 8 {
		t.Fatalf("expected a forced build to rewrite everything, got %+v", res)
	}
}

func TestBuildFailsOnDanglingNarration(t *testing.T) {
	cfg := fixtureConfig(t)
	writeFixture(t, filepath.Dir(cfg.Paths.ShowIndexFile), "export.yaml", strings.Replace(showsYAML, "2004-01-05-dobson", "2004-01-06-nobody", 1))

	_, err := newBuilder(cfg).Run(context.Background())
	if !errors.Is(err, domainerr.ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(cfg.Paths.WebsiteDir, "Text", "index-by-title.html")); statErr == nil {
		t.Fatal("expected no pages after a failed index build")
	}
}

func TestBuildDateIsReadOnEveryRun(t *testing.T) {
	cfg := fixtureConfig(t)
	b := newBuilder(cfg)
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if got := readOutput(t, cfg, "Text/index-by-title.html"); !strings.Contains(got, "17th\u00a0Oct\u00a02026") {
		t.Fatalf("expected the first build date in the footer:\n%s", got)
	}

	b.Now = fixedClock(time.Date(2026, 10, 18, 0, 5, 0, 0, time.UTC))
	res, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if res.Written != 7 {
		t.Fatalf("expected every page to be rewritten after midnight, got %+v", res)
	}
	if got := readOutput(t, cfg, "Text/index-by-title.html"); !strings.Contains(got, "18th\u00a0Oct\u00a02026") {
		t.Fatalf("expected the new build date in the footer:\n%s", got)
	}
}
