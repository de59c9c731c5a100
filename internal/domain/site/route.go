package site

import (
	"fmt"
	"path"
	"strings"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
)

// TextDir is the website directory holding every generated page.
const TextDir = "Text"

type RouteKind string

const (
	RouteTitleIndex RouteKind = "index-by-title"
	RouteDateIndex  RouteKind = "index-by-date"
	RouteArticle    RouteKind = "article"
)

// TitleIndexPage is the file name of the index by title.
const TitleIndexPage = "index-by-title.html"

// DateIndexPage is the file name of the index by date of era.
func DateIndexPage(era content.Era) string {
	switch era {
	case content.EraWebPage:
		return "index-by-date-1992-2003.html"
	case content.EraFirstBlog:
		return "index-by-date-2003-2006.html"
	default:
		return "index-by-date-2006-2019.html"
	}
}

// ArticlePage is the file name of an article's page.
func ArticlePage(id string) string {
	return id + ".html"
}

type Route struct {
	Kind    RouteKind
	Slug    string      // article id
	Era     content.Era // date index routes only
	OutPath string      // slash separated, relative to the website directory
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Kind == RouteDateIndex {
		parts = append(parts, fmt.Sprintf("era=%s", r.Era))
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

// OutPath places a page file in TextDir.
func OutPath(page string) string {
	return path.Join(TextDir, page)
}
