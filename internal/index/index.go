// Package index is the cross-reference of Big Book articles and the
// Hooting Yard on the Air shows that narrate them.
//
// An Index is built once by a Builder and never changes afterwards, so it
// can be read from any number of goroutines. Slices returned by its
// methods are copies, but the articles and shows in them share their
// Narrations with the Index and must not be modified.
package index

import (
	"slices"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
)

// AnyEra disables the era filter of the article queries.
const AnyEra content.Era = -1

type Index struct {
	articles   []content.Article // table of contents order
	articlePos map[string]int
	shows      []content.Show // show index order
	showPos    map[string]int
}

// Articles returns the articles of era in table of contents order.
func (ix *Index) Articles(era content.Era) []content.Article {
	if era == AnyEra {
		return slices.Clone(ix.articles)
	}
	var out []content.Article
	for _, a := range ix.articles {
		if a.Era() == era {
			out = append(out, a)
		}
	}
	return out
}

func (ix *Index) Article(id string) (content.Article, bool) {
	pos, ok := ix.articlePos[id]
	if !ok {
		return content.Article{}, false
	}
	return ix.articles[pos], true
}

// Shows returns the shows in show index order.
func (ix *Index) Shows() []content.Show {
	return slices.Clone(ix.shows)
}

func (ix *Index) Show(id string) (content.Show, bool) {
	pos, ok := ix.showPos[id]
	if !ok {
		return content.Show{}, false
	}
	return ix.shows[pos], true
}

// Len is the number of articles.
func (ix *Index) Len() int {
	return len(ix.articles)
}

// NarrationCount is the number of linked narrations.
func (ix *Index) NarrationCount() int {
	n := 0
	for _, s := range ix.shows {
		n += len(s.Narrations)
	}
	return n
}
