package content

import "time"

// Era is the publishing platform an article first appeared on.
type Era int

const (
	// EraWebPage covers the NDDirect web page and pamphlets, up to 2003-01-01.
	EraWebPage Era = iota
	// EraFirstBlog is the BTOpenWorld blog, up to 2006-12-31.
	EraFirstBlog
	// EraSecondBlog is hootingyard.org from 2007 on.
	EraSecondBlog
)

var (
	websiteCutoff   = time.Date(2003, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstBlogCutoff = time.Date(2006, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Eras lists every era in chronological order.
var Eras = []Era{EraWebPage, EraFirstBlog, EraSecondBlog}

func EraOf(date time.Time) Era {
	d := calendarDay(date)
	switch {
	case !d.After(websiteCutoff):
		return EraWebPage
	case !d.After(firstBlogCutoff):
		return EraFirstBlog
	default:
		return EraSecondBlog
	}
}

// FromWebPage is true for the 'Hooting Yard Web Page' and earlier.
func FromWebPage(a Article) bool {
	return !calendarDay(a.Date).After(websiteCutoff)
}

// FromFirstBlog is true for the 'Hooting Yard Blog'.
func FromFirstBlog(a Article) bool {
	d := calendarDay(a.Date)
	return d.After(websiteCutoff) && !d.After(firstBlogCutoff)
}

// FromSecondBlog is true for the hootingyard.org blog.
func FromSecondBlog(a Article) bool {
	return calendarDay(a.Date).After(firstBlogCutoff)
}

func (e Era) String() string {
	switch e {
	case EraWebPage:
		return "web page"
	case EraFirstBlog:
		return "first blog"
	case EraSecondBlog:
		return "second blog"
	default:
		return "unknown"
	}
}

// calendarDay drops the clock and zone so comparisons are by date alone.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
