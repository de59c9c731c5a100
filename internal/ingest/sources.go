package ingest

import (
	"fmt"
	"os"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

// Sources is everything read from the two input files, not yet linked.
type Sources struct {
	TOCFile  string
	ShowFile string
	Articles []content.Article // table of contents order
	Shows    []ShowRecord      // show index order
}

// Read loads the table of contents and the show index. Integrity errors
// name the file they came from.
func Read(tocFile, textDir, showFile string) (*Sources, error) {
	articles, err := ReadArticles(tocFile, textDir)
	if err != nil {
		return nil, err
	}
	shows, err := ReadShows(showFile)
	if err != nil {
		return nil, err
	}
	return &Sources{
		TOCFile:  tocFile,
		ShowFile: showFile,
		Articles: articles,
		Shows:    shows,
	}, nil
}

func ReadArticles(tocFile, textDir string) ([]content.Article, error) {
	f, err := os.Open(tocFile)
	if err != nil {
		return nil, fmt.Errorf("open table of contents: %w", err)
	}
	defer f.Close()

	entries, err := ParseTOC(f)
	if err != nil {
		return nil, domainerr.WithSource(err, tocFile)
	}
	articles := make([]content.Article, 0, len(entries))
	for _, e := range entries {
		a, err := NewArticle(e, textDir)
		if err != nil {
			return nil, domainerr.WithSource(err, tocFile)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func ReadShows(showFile string) ([]ShowRecord, error) {
	f, err := os.Open(showFile)
	if err != nil {
		return nil, fmt.Errorf("open show index: %w", err)
	}
	defer f.Close()

	shows, err := ParseShows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", showFile, err)
	}
	return shows, nil
}
