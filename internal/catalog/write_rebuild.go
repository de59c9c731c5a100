package catalog

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	"github.com/HootingYard/ubercoordinator/internal/index"
)

// Entry is the catalogued form of an article.
type Entry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SortingKey string    `json:"sorting_key"`
	Date       time.Time `json:"date"`
	Era        string    `json:"era"`
	Shows      []string  `json:"shows,omitempty"`
}

// ShowEntry is the catalogued form of a show.
type ShowEntry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	MP3URL   string    `json:"mp3_url"`
	Articles []string  `json:"articles,omitempty"`
}

func entryOf(a content.Article) Entry {
	e := Entry{
		ID:         a.ID,
		Title:      a.Title,
		SortingKey: a.SortingKey,
		Date:       a.Date,
		Era:        a.Era().String(),
	}
	for _, n := range a.Narrations {
		e.Shows = append(e.Shows, n.ShowID)
	}
	return e
}

func showEntryOf(s content.Show) ShowEntry {
	e := ShowEntry{
		ID:     s.ID,
		Title:  s.Title,
		Date:   s.Date,
		MP3URL: s.MP3URL(),
	}
	for _, n := range s.Narrations {
		e.Articles = append(e.Articles, n.ArticleID)
	}
	return e
}

// Rebuild replaces the title catalog with the contents of ix. Page
// fingerprints are kept.
func (s *Store) Rebuild(ix *index.Index) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bTitles, bIdxDay, bShows} {
			if tx.Bucket(name) == nil {
				continue
			}
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}

		titlesB, err := tx.CreateBucket(bTitles)
		if err != nil {
			return err
		}
		dayB, err := tx.CreateBucket(bIdxDay)
		if err != nil {
			return err
		}
		showsB, err := tx.CreateBucket(bShows)
		if err != nil {
			return err
		}
		metaB, err := tx.CreateBucketIfNotExists(bMeta)
		if err != nil {
			return err
		}

		for _, a := range ix.Articles(index.AnyEra) {
			eb, err := json.Marshal(entryOf(a))
			if err != nil {
				return err
			}
			if err := titlesB.Put(makeTitleKey(a.SortingKey, a.ID), eb); err != nil {
				return err
			}
			if err := dayB.Put(makeDayKey(a.Date, a.ID), []byte{1}); err != nil {
				return err
			}
		}

		for _, sh := range ix.Shows() {
			sb, err := json.Marshal(showEntryOf(sh))
			if err != nil {
				return err
			}
			if err := showsB.Put([]byte(sh.ID), sb); err != nil {
				return err
			}
		}

		return metaB.Put(metaRebuilt, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

// PutPageHash records the render hash of a written page.
func (s *Store) PutPageHash(outPath, hash string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bPages)
		if err != nil {
			return err
		}
		return b.Put([]byte(outPath), []byte(hash))
	})
}

// ForgetPages drops every page fingerprint so the next build rewrites all
// pages.
func (s *Store) ForgetPages() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bPages) == nil {
			return nil
		}
		return tx.DeleteBucket(bPages)
	})
}
