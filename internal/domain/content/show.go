package content

import (
	"strings"
	"time"

	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

const archiveDownloadPrefix = "https://archive.org/download/"

// Show is one Hooting Yard on the Air broadcast.
type Show struct {
	ID         string    // stem of the audio file names
	Date       time.Time // first transmission
	Title      string
	Duration   int    // seconds
	ArchiveURL string // archive.org details page of the latest upload

	// Narrations sorted by start time.
	Narrations []Narration
}

// ValidateArchiveURL checks that url is an archive.org details page.
func ValidateArchiveURL(url string) error {
	if !strings.HasPrefix(url, domainerr.ArchiveDetailsPrefix) {
		return domainerr.ErrBadArchiveURL
	}
	if strings.TrimPrefix(url, domainerr.ArchiveDetailsPrefix) == "" {
		return domainerr.ErrBadArchiveURL
	}
	return nil
}

// MP3URL is the download link for the show's audio. The archive URL must
// already have passed ValidateArchiveURL.
func (s Show) MP3URL() string {
	upload := s.ArchiveURL[strings.LastIndex(s.ArchiveURL, "/")+1:]
	return archiveDownloadPrefix + upload + "/" + s.MP3File()
}

// MP3File is the file name part of MP3URL.
func (s Show) MP3File() string {
	return s.ID + ".mp3"
}
