package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

// ExternalPrefix marks narrations of texts that are not in the Big Book.
const ExternalPrefix = "external_"

type showIndex struct {
	Shows []ShowRecord `yaml:"shows"`
}

// ShowRecord is one entry of the show index's 'shows' list.
type ShowRecord struct {
	Date               Date              `yaml:"date"`
	Title              string            `yaml:"title"`
	Duration           int               `yaml:"duration"`
	ID                 string            `yaml:"id"`
	InternetArchiveURL string            `yaml:"internet_archive_url"`
	Narrations         []NarrationRecord `yaml:"narrations"`
}

// NarrationRecord is one narration detected in a show. Older exports call
// the article reference story_id.
type NarrationRecord struct {
	StoryID   string `yaml:"story_id"`
	ArticleID string `yaml:"article_id"`
	StartTime int    `yaml:"start_time"`
	EndTime   int    `yaml:"end_time"`
	WordCount int    `yaml:"word_count"`
}

// Target is the id of the narrated article.
func (n NarrationRecord) Target() string {
	if id := strings.TrimSpace(n.ArticleID); id != "" {
		return id
	}
	return strings.TrimSpace(n.StoryID)
}

// IsExternal reports whether the narrated text lies outside the Big Book.
func (n NarrationRecord) IsExternal() bool {
	return strings.HasPrefix(n.Target(), ExternalPrefix)
}

// ParseShows decodes a show index, keeping the order of its records.
func ParseShows(r io.Reader) ([]ShowRecord, error) {
	var idx showIndex
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&idx); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse show index: %w", err)
	}
	return idx.Shows, nil
}

// Show converts the record, leaving Narrations empty for the linker.
func (r ShowRecord) Show() (content.Show, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return content.Show{}, domainerr.Integrity("", fmt.Sprintf("show %q", r.Title), domainerr.ErrMissingField, "id")
	}
	if r.Date.IsZero() {
		return content.Show{}, domainerr.Integrity("", id, domainerr.ErrMissingField, "date")
	}
	if err := content.ValidateArchiveURL(r.InternetArchiveURL); err != nil {
		return content.Show{}, domainerr.Integrity("", id, err, fmt.Sprintf("%q", r.InternetArchiveURL))
	}
	return content.Show{
		ID:         id,
		Date:       r.Date.Time,
		Title:      strings.TrimSpace(r.Title),
		Duration:   r.Duration,
		ArchiveURL: r.InternetArchiveURL,
	}, nil
}

// Date accepts the date forms found in show exports.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	t, ok := ParseTime(strings.TrimSpace(n.Value))
	if !ok {
		return fmt.Errorf("line %d: invalid date %q", n.Line, n.Value)
	}
	d.Time = t
	return nil
}

// ParseTime parses s as a calendar date in UTC, dropping any clock time.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.DateOnly,
		time.RFC3339,
		time.DateTime,
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
