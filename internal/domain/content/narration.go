package content

import "time"

// Narration records that a show read an article aloud. It refers to both
// sides by id; the index resolves them.
type Narration struct {
	ArticleID string
	ShowID    string
	ShowDate  time.Time

	StartTime int // seconds from the start of the show
	EndTime   int // roughly where the next narration starts
	WordCount int
}

// Less orders narrations by show date, then start time.
func (n Narration) Less(o Narration) bool {
	if !n.ShowDate.Equal(o.ShowDate) {
		return n.ShowDate.Before(o.ShowDate)
	}
	return n.StartTime < o.StartTime
}

// CompareNarrations is Less in slices.SortStableFunc form.
func CompareNarrations(a, b Narration) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
