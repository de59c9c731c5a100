package index

import (
	"fmt"
	"slices"

	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
	"github.com/HootingYard/ubercoordinator/internal/ingest"
)

// Builder assembles an Index. Articles must all be added before the shows
// that narrate them. Build hands the contents over to the Index and
// leaves the Builder empty. The zero Builder is ready to use.
type Builder struct {
	articles   []content.Article
	articlePos map[string]int
	shows      []content.Show
	showPos    map[string]int
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.reset()
	return b
}

func (b *Builder) reset() {
	*b = Builder{
		articlePos: make(map[string]int),
		showPos:    make(map[string]int),
	}
}

// AddArticle appends an article in table of contents order.
func (b *Builder) AddArticle(a content.Article) error {
	if b.articlePos == nil {
		b.reset()
	}
	if _, ok := b.articlePos[a.ID]; ok {
		return domainerr.Integrity("", a.ID, domainerr.ErrDuplicateID, "article listed twice")
	}
	a.Narrations = nil
	b.articlePos[a.ID] = len(b.articles)
	b.articles = append(b.articles, a)
	return nil
}

// AddShow appends a show and links its narrations to the articles they
// read. Narrations of external texts are skipped. On error nothing is
// changed.
func (b *Builder) AddShow(rec ingest.ShowRecord) error {
	show, err := rec.Show()
	if err != nil {
		return err
	}
	if b.showPos == nil {
		b.reset()
	}
	if _, ok := b.showPos[show.ID]; ok {
		return domainerr.Integrity("", show.ID, domainerr.ErrDuplicateID, "show listed twice")
	}

	type link struct {
		pos int
		n   content.Narration
	}
	links := make([]link, 0, len(rec.Narrations))
	for i, nr := range rec.Narrations {
		if nr.IsExternal() {
			continue
		}
		id := nr.Target()
		if id == "" {
			return domainerr.Integrity("", show.ID, domainerr.ErrMissingField, fmt.Sprintf("narration %d has no article id", i+1))
		}
		pos, ok := b.articlePos[id]
		if !ok {
			return domainerr.Integrity("", show.ID, domainerr.ErrDanglingReference, "article "+id)
		}
		links = append(links, link{pos: pos, n: content.Narration{
			ArticleID: id,
			ShowID:    show.ID,
			ShowDate:  show.Date,
			StartTime: nr.StartTime,
			EndTime:   nr.EndTime,
			WordCount: nr.WordCount,
		}})
	}

	for _, l := range links {
		b.articles[l.pos].Narrations = append(b.articles[l.pos].Narrations, l.n)
		show.Narrations = append(show.Narrations, l.n)
	}
	slices.SortStableFunc(show.Narrations, content.CompareNarrations)

	b.showPos[show.ID] = len(b.shows)
	b.shows = append(b.shows, show)
	return nil
}

// Build returns the finished Index.
func (b *Builder) Build() *Index {
	ix := &Index{
		articles:   b.articles,
		articlePos: b.articlePos,
		shows:      b.shows,
		showPos:    b.showPos,
	}
	b.reset()
	return ix
}

// Link builds an Index from unlinked sources.
func Link(src *ingest.Sources) (*Index, error) {
	b := NewBuilder()
	for _, a := range src.Articles {
		if err := b.AddArticle(a); err != nil {
			return nil, domainerr.WithSource(err, src.TOCFile)
		}
	}
	for _, rec := range src.Shows {
		if err := b.AddShow(rec); err != nil {
			return nil, domainerr.WithSource(err, src.ShowFile)
		}
	}
	return b.Build(), nil
}

// Load reads the table of contents and the show index and links them.
func Load(tocFile, textDir, showFile string) (*Index, error) {
	src, err := ingest.Read(tocFile, textDir, showFile)
	if err != nil {
		return nil, err
	}
	return Link(src)
}

// LoadConfig is Load with the paths of cfg.
func LoadConfig(cfg config.Config) (*Index, error) {
	return Load(cfg.TOCFile(), cfg.TextDir(), cfg.Paths.ShowIndexFile)
}
