package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// TrackRequest identifies the track the user wants fetched. Only Song is
// required.
type TrackRequest struct {
	Song   string
	Artist string
	Album  string
}

// Query builds the search string sent to the search provider: song, artist
// and album joined with spaces (empty parts omitted), suffixed with
// "official audio" to bias results toward studio uploads.
func (r TrackRequest) Query() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{r.Song, r.Artist, r.Album} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, "official audio")
	return strings.Join(parts, " ")
}

// ExpectedTitle builds the canonical title candidates are matched against:
// "song - artist", or the song alone when no artist is given.
func (r TrackRequest) ExpectedTitle() string {
	song := strings.TrimSpace(r.Song)
	artist := strings.TrimSpace(r.Artist)
	if artist == "" {
		return song
	}
	return song + " - " + artist
}

// SearchResult is one raw entry returned by the search provider. Entries
// missing an ID or title are discarded before scoring.
type SearchResult struct {
	Title    string
	ID       string
	Duration int // seconds
}

// Candidate is a search result with its computed confidence.
type Candidate struct {
	Title      string
	ID         string
	Duration   int // seconds
	Confidence int // 0-100; 0 means hard-excluded
	URL        string
}

// HistoryEntry is one recorded fetch outcome.
type HistoryEntry struct {
	TrackID    string
	Title      string
	Confidence int
	Duration   int // seconds
	FetchedAt  time.Time
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// FormatDuration renders a duration in seconds as m:ss for display.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SearchProvider returns raw candidates for a query. Implementations may
// fail or return nothing; the pipeline degrades either to an empty ranking.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// FetchProvider downloads a selected candidate and returns its track ID.
// It is invoked only after the resolver has produced a selection.
type FetchProvider interface {
	Fetch(ctx context.Context, candidate Candidate) (string, error)
}

// Console is the terminal used for the interactive selection step. Prompt
// blocks until the user answers or ctx is cancelled.
type Console interface {
	Say(text string)
	Prompt(ctx context.Context, text string) (string, error)
}

// DedupStore tracks the IDs of tracks already in the library.
type DedupStore interface {
	Has(trackID string) bool
	Add(trackID string)
	Load(trackIDs []string)
	Size() int
}

// HistoryStore persists fetch outcomes across runs.
type HistoryStore interface {
	Record(ctx context.Context, entry HistoryEntry) error
	TrackIDs(ctx context.Context) ([]string, error)
}
