package content

import (
	"strings"
	"time"
)

// Title prefixes with special meaning in the first blog's date index.
const (
	IntroPrefix = "Hooting Yard Archive, "
	QuotePrefix = "“"
)

// Article is a story, quotation, book chapter or blog post from one of
// Frank Key's websites, as listed in the Big Book table of contents.
type Article struct {
	ID        string    // file stem, "YYYY-MM-DD-slug"
	Title     string    // plain text
	TitleHTML string    // title markup, only <em> preserved
	Link      string    // TOC <a> element, pointing at the .html page
	Date      time.Time // publication date, from ID[:10]
	File      string    // Big Book XHTML file

	SortingKey string

	// Narrations in link order: shows in export order, records in show order.
	Narrations []Narration
}

func (a Article) Era() Era {
	return EraOf(a.Date)
}

// FirstLetter is the letter the article is filed under in the title index.
func (a Article) FirstLetter() string {
	if a.SortingKey == "" {
		return ""
	}
	return strings.ToUpper(a.SortingKey[:1])
}

func (a Article) IsIntro() bool {
	return strings.HasPrefix(a.Title, IntroPrefix)
}

func (a Article) IsQuote() bool {
	return strings.HasPrefix(a.Title, QuotePrefix)
}

// ByTitle orders articles by sorting key, then id.
func ByTitle(a, b Article) int {
	if c := strings.Compare(a.SortingKey, b.SortingKey); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
