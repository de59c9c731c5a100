package render

import (
	"html/template"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/index"
)

type TitleIndexPage struct {
	Site      config.SiteConfig
	Title     string
	Preface   template.HTML
	Letters   []index.Group[string]
	Total     int
	Generated time.Time
}

// DateIndexPage lists one era. The first blog is laid out by Months, the
// other eras by Years.
type DateIndexPage struct {
	Site      config.SiteConfig
	Title     string
	Era       content.Era
	Preface   template.HTML
	Years     []index.Group[int]
	Months    []index.Month
	Total     int
	Generated time.Time
}

// Reading is one narration of an article, with the show it was read on.
type Reading struct {
	Narration content.Narration
	Show      content.Show
}

type ArticlePage struct {
	Site      config.SiteConfig
	Title     string
	Article   content.Article
	HTML      template.HTML
	Readings  []Reading
	Generated time.Time
}
