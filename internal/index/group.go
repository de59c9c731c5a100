package index

import (
	"cmp"
	"slices"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
)

// Group is a maximal run of articles sharing a key.
type Group[K comparable] struct {
	Key      K
	Articles []content.Article
}

type YearMonth struct {
	Year  int
	Month time.Month
}

// Time is the first day of the month.
func (ym YearMonth) Time() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func yearMonthOf(a content.Article) YearMonth {
	return YearMonth{Year: a.Date.Year(), Month: a.Date.Month()}
}

func compareYearMonth(a, b YearMonth) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return cmp.Compare(a.Month, b.Month)
}

// GroupBy splits articles into runs of equal key without reordering them.
func GroupBy[K comparable](articles []content.Article, key func(content.Article) K) []Group[K] {
	var groups []Group[K]
	for _, a := range articles {
		k := key(a)
		if n := len(groups); n > 0 && groups[n-1].Key == k {
			groups[n-1].Articles = append(groups[n-1].Articles, a)
			continue
		}
		groups = append(groups, Group[K]{Key: k, Articles: []content.Article{a}})
	}
	return groups
}

// ArticlesByLetter groups every article by the first letter of its
// sorting key, in dictionary order.
func (ix *Index) ArticlesByLetter() []Group[string] {
	articles := ix.Articles(AnyEra)
	slices.SortStableFunc(articles, content.ByTitle)
	return GroupBy(articles, content.Article.FirstLetter)
}

// ArticlesByYear groups the articles of era by year of publication.
func (ix *Index) ArticlesByYear(era content.Era) []Group[int] {
	articles := ix.Articles(era)
	year := func(a content.Article) int { return a.Date.Year() }
	slices.SortStableFunc(articles, func(a, b content.Article) int {
		return cmp.Compare(year(a), year(b))
	})
	return GroupBy(articles, year)
}

// ArticlesByMonth groups the articles of era by month of publication.
func (ix *Index) ArticlesByMonth(era content.Era) []Group[YearMonth] {
	articles := ix.Articles(era)
	slices.SortStableFunc(articles, func(a, b content.Article) int {
		return compareYearMonth(yearMonthOf(a), yearMonthOf(b))
	})
	return GroupBy(articles, yearMonthOf)
}
