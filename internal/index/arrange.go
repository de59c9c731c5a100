package index

import (
	"fmt"
	"slices"
	"time"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

// Day is one day's entries in the first blog's date index.
type Day struct {
	Date     time.Time
	Articles []content.Article
}

// Month is one month of the first blog: the archive introduction, as HTML,
// and the month's days.
type Month struct {
	Date         time.Time
	Introduction string
	Days         []Day
}

// IntroLoader returns the HTML of a month's archive introduction.
type IntroLoader func(content.Article) (string, error)

// ArrangeFirstBlog arranges the articles of the first blog with Arrange.
func (ix *Index) ArrangeFirstBlog(intro IntroLoader) ([]Month, error) {
	return Arrange(ix.Articles(content.EraFirstBlog), intro)
}

// Arrange splits articles into months of days. Each month's archive
// introduction is taken out of the entries and loaded with intro; a nil
// intro leaves the introduction empty. Within a day the quotations of the
// day come first, otherwise the given order is kept.
func Arrange(articles []content.Article, intro IntroLoader) ([]Month, error) {
	articles = slices.Clone(articles)
	slices.SortStableFunc(articles, func(a, b content.Article) int {
		return a.Date.Compare(b.Date)
	})

	var months []Month
	for _, g := range GroupBy(articles, yearMonthOf) {
		intros, rest := sift(g.Articles, content.Article.IsIntro)
		if len(intros) > 1 {
			return nil, domainerr.Integrity("", intros[1].ID, domainerr.ErrDuplicateIntro,
				fmt.Sprintf("%d-%02d already introduced by %s", g.Key.Year, g.Key.Month, intros[0].ID))
		}

		month := Month{Date: g.Key.Time()}
		if len(intros) == 1 && intro != nil {
			text, err := intro(intros[0])
			if err != nil {
				return nil, fmt.Errorf("introduction %s: %w", intros[0].ID, err)
			}
			month.Introduction = text
		}

		for _, d := range GroupBy(rest, func(a content.Article) string { return a.Date.Format(time.DateOnly) }) {
			quotes, others := sift(d.Articles, content.Article.IsQuote)
			month.Days = append(month.Days, Day{
				Date:     d.Articles[0].Date,
				Articles: append(quotes, others...),
			})
		}
		months = append(months, month)
	}
	return months, nil
}

// sift splits items into those that satisfy cond and those that don't,
// keeping their order.
func sift[T any](items []T, cond func(T) bool) (gold, dross []T) {
	for _, it := range items {
		if cond(it) {
			gold = append(gold, it)
		} else {
			dross = append(dross, it)
		}
	}
	return gold, dross
}
