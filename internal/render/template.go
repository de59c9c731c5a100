package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/HootingYard/ubercoordinator/internal/app"
	"github.com/HootingYard/ubercoordinator/internal/dates"
	"github.com/HootingYard/ubercoordinator/internal/domain/build"
	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/domain/site"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

var requiredTemplates = []string{
	"index-by-title.tmpl",
	"index-by-date.tmpl",
	"article.tmpl",
}

type TemplateRenderer struct {
	tpl  *template.Template
	hash string
}

// NewTemplateRenderer parses the built-in templates, then any
// themeDir/templates/*.tmpl on top of them so a theme can replace single
// templates.
func NewTemplateRenderer(themeDir string) (*TemplateRenderer, error) {
	tpl := template.New("").Funcs(templateFuncs())
	var sources [][]byte

	tpl, err := parseFS(tpl, defaultTemplates, "templates/*.tmpl", &sources)
	if err != nil {
		return nil, err
	}
	if themeDir != "" {
		dir := filepath.Join(themeDir, "templates")
		if _, err := os.Stat(dir); err == nil {
			tpl, err = parseFS(tpl, os.DirFS(dir), "*.tmpl", &sources)
			if err != nil {
				return nil, fmt.Errorf("theme %s: %w", themeDir, err)
			}
		}
	}

	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, string(s))
	}
	return &TemplateRenderer{tpl: tpl, hash: build.HashStrings(parts...)}, nil
}

func parseFS(tpl *template.Template, fsys fs.FS, pattern string, sources *[][]byte) (*template.Template, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		if _, err := tpl.New(filepath.Base(name)).Parse(string(src)); err != nil {
			return nil, err
		}
		*sources = append(*sources, src)
	}
	return tpl, nil
}

// Hash identifies the template sources in use.
func (r *TemplateRenderer) Hash() string {
	return r.hash
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"writtenDate":     dates.WrittenDate,
		"fullWrittenDate": dates.FullWrittenDate,
		"briefDate":       dates.BriefDate,
		"monthAndYear":    dates.MonthAndYear,
		"monthID":         dates.MonthID,
		"minuteSecond":    dates.MinuteSecond,
		"dateBackLink":    app.DateBackLink,
		"titleBackLink":   app.TitleBackLink,
		"titlePage":       func() string { return site.TitleIndexPage },
		"datePage":        site.DateIndexPage,
		"articlePage":     site.ArticlePage,
		"mp3":             func(s content.Show) string { return s.MP3URL() },
		"markup": func(s string) template.HTML {
			return template.HTML(s)
		},
	}
}

func (r *TemplateRenderer) RenderTitleIndex(ctx context.Context, page TitleIndexPage) ([]byte, error) {
	return r.exec("index-by-title.tmpl", page)
}

func (r *TemplateRenderer) RenderDateIndex(ctx context.Context, page DateIndexPage) ([]byte, error) {
	return r.exec("index-by-date.tmpl", page)
}

func (r *TemplateRenderer) RenderArticle(ctx context.Context, page ArticlePage) ([]byte, error) {
	return r.exec("article.tmpl", page)
}

func (r *TemplateRenderer) exec(name string, data any) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CheckThemeTemplates reports the first page template a theme directory
// does not provide. Missing templates fall back to the built-in ones, so
// this is only a lint.
func CheckThemeTemplates(themeDir string) error {
	for _, name := range requiredTemplates {
		if _, err := os.Stat(filepath.Join(themeDir, "templates", name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
