package ingest

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
	"github.com/HootingYard/ubercoordinator/internal/sortkey"
)

// contentsLinks selects the article links of the Big Book table of contents.
const contentsLinks = "div.contents a"

// TOCEntry is one link from the table of contents.
type TOCEntry struct {
	Href      string // as written, e.g. "2004-01-05-dobson.xhtml"
	Title     string // plain text, NFC, whitespace collapsed
	TitleHTML string // inner markup, <em> only
	Link      string // the <a> element, href pointing at the .html page
}

// ParseTOC returns the links of the contents region in document order.
func ParseTOC(r io.Reader) ([]TOCEntry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse table of contents: %w", err)
	}

	var (
		entries []TOCEntry
		bad     error
	)
	doc.Find(contentsLinks).EachWithBreak(func(i int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			bad = domainerr.Integrity("", fmt.Sprintf("link %d", i+1), domainerr.ErrMissingField, "href")
			return false
		}
		link, err := linkMarkup(a, href)
		if err != nil {
			bad = fmt.Errorf("render link %s: %w", href, err)
			return false
		}
		entries = append(entries, TOCEntry{
			Href:      href,
			Title:     plainTitle(a.Text()),
			TitleHTML: titleMarkup(a.Nodes[0]),
			Link:      link,
		})
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return entries, nil
}

// NewArticle derives an article from its TOC entry. textDir is the
// directory the hrefs are relative to.
func NewArticle(e TOCEntry, textDir string) (content.Article, error) {
	id := stem(e.Href)
	date, err := ParseArticleDate(id)
	if err != nil {
		return content.Article{}, domainerr.Integrity("", e.Href, err, "")
	}
	key := sortkey.Key(e.Title)
	if key == "" {
		return content.Article{}, domainerr.Integrity("", id, domainerr.ErrEmptySortingKey, fmt.Sprintf("%q", e.Title))
	}
	return content.Article{
		ID:         id,
		Title:      e.Title,
		TitleHTML:  e.TitleHTML,
		Link:       e.Link,
		Date:       date,
		File:       filepath.Join(textDir, filepath.FromSlash(stripFragment(e.Href))),
		SortingKey: key,
	}, nil
}

// ParseArticleDate reads the YYYY-MM-DD prefix of an article id.
func ParseArticleDate(id string) (time.Time, error) {
	if len(id) < len(time.DateOnly) {
		return time.Time{}, domainerr.ErrBadArticleID
	}
	d, err := time.ParseInLocation(time.DateOnly, id[:len(time.DateOnly)], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domainerr.ErrBadArticleID, err)
	}
	return d, nil
}

func plainTitle(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func stem(href string) string {
	base := path.Base(stripFragment(href))
	return strings.TrimSuffix(base, path.Ext(base))
}

func stripFragment(href string) string {
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		return href[:i]
	}
	return href
}

// HTMLHref points an internal .xhtml link at the generated .html page.
func HTMLHref(href string) string {
	p, rest := href, ""
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		p, rest = href[:i], href[i:]
	}
	if strings.HasSuffix(p, ".xhtml") {
		p = strings.TrimSuffix(p, ".xhtml") + ".html"
	}
	return p + rest
}
