package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/HootingYard/ubercoordinator/internal/sortkey"
)

var ErrNotFound = errors.New("not found")

// PageHash returns the render hash stored for outPath, or "" if the page
// has not been written yet.
func (s *Store) PageHash(outPath string) (string, error) {
	var hash string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bPages)
		if b == nil {
			return nil
		}
		hash = string(b.Get([]byte(outPath)))
		return nil
	})
	return hash, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 500 {
		return 500
	}
	return limit
}

// LookupTitles returns up to limit catalogued articles whose sorting key
// starts with the sorting key of words, in title index order. Empty words
// match nothing.
func (s *Store) LookupTitles(words string, limit int) ([]Entry, error) {
	prefix := []byte(sortkey.Key(words))
	if len(prefix) == 0 {
		return nil, nil
	}
	limit = normalizeLimit(limit)

	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bTitles)
		if b == nil {
			return nil
		}
		cur := b.Cursor()
		for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			out = append(out, e)
			if len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// GetArticle returns the catalogued article with the given id.
func (s *Store) GetArticle(id string) (Entry, error) {
	id = strings.TrimSpace(id)
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bTitles)
		if b == nil || id == "" {
			return ErrNotFound
		}
		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			if idFromTitleKey(k) == id {
				return json.Unmarshal(v, &e)
			}
		}
		return ErrNotFound
	})
	return e, err
}

// ArticlesOn returns the catalogued articles published on day, in id order.
func (s *Store) ArticlesOn(day time.Time) ([]Entry, error) {
	prefix := dayPrefix(day)
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		dayB := tx.Bucket(bIdxDay)
		titlesB := tx.Bucket(bTitles)
		if dayB == nil || titlesB == nil {
			return nil
		}
		ids := make(map[string]bool)
		cur := dayB.Cursor()
		for k, _ := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cur.Next() {
			if id := idFromDayKey(k); id != "" {
				ids[id] = true
			}
		}
		if len(ids) == 0 {
			return nil
		}
		tc := titlesB.Cursor()
		for k, v := tc.First(); k != nil; k, v = tc.Next() {
			if !ids[idFromTitleKey(k)] {
				continue
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	sortEntriesByID(out)
	return out, err
}

// GetShow returns the catalogued show with the given id.
func (s *Store) GetShow(id string) (ShowEntry, error) {
	var e ShowEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bShows)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(strings.TrimSpace(id)))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	return e, err
}

// Rebuilt reports when the catalog was last rebuilt.
func (s *Store) Rebuilt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(metaRebuilt)
		if v == nil {
			return ErrNotFound
		}
		var err error
		t, err = time.Parse(time.RFC3339, string(v))
		return err
	})
	return t, err
}

func sortEntriesByID(es []Entry) {
	slices.SortFunc(es, func(a, b Entry) int { return strings.Compare(a.ID, b.ID) })
}
