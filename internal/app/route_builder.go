package app

import (
	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/domain/site"
	"github.com/HootingYard/ubercoordinator/internal/index"
)

type RouteBuilder struct {
	Index *index.Index
}

// BuildIndexRoutes returns the title index followed by one date index per
// era.
func (rb *RouteBuilder) BuildIndexRoutes() []site.Route {
	routes := []site.Route{{
		Kind:    site.RouteTitleIndex,
		OutPath: site.OutPath(site.TitleIndexPage),
	}}
	for _, era := range content.Eras {
		routes = append(routes, site.Route{
			Kind:    site.RouteDateIndex,
			Era:     era,
			OutPath: site.OutPath(site.DateIndexPage(era)),
		})
	}
	return routes
}

// BuildArticleRoutes returns one page per article in table of contents
// order.
func (rb *RouteBuilder) BuildArticleRoutes() []site.Route {
	articles := rb.Index.Articles(index.AnyEra)
	routes := make([]site.Route, 0, len(articles))
	for _, a := range articles {
		routes = append(routes, site.Route{
			Kind:    site.RouteArticle,
			Slug:    a.ID,
			Era:     a.Era(),
			OutPath: site.OutPath(site.ArticlePage(a.ID)),
		})
	}
	return routes
}

// DateBackLink points at the article's entry in its era's date index.
func DateBackLink(a content.Article) string {
	return site.DateIndexPage(a.Era()) + "#" + a.ID
}

// TitleBackLink points at the article's entry in the title index.
func TitleBackLink(a content.Article) string {
	return site.TitleIndexPage + "#" + a.ID
}
