package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tunegrab/internal/events"
	"tunegrab/internal/match"
)

// Downloader runs the full resolution pipeline for one request: search,
// score, rank, resolve, fetch, record. Each invocation is independent;
// the pipeline holds no per-request state and may run concurrently for
// different queries.
type Downloader struct {
	config   *Config
	search   SearchProvider
	fetch    FetchProvider
	resolver *Resolver
	dedup    DedupStore
	history  HistoryStore
	bus      *events.Bus
	logger   *zap.Logger
}

// NewDownloader wires the pipeline collaborators together.
func NewDownloader(
	config *Config,
	search SearchProvider,
	fetch FetchProvider,
	resolver *Resolver,
	dedup DedupStore,
	history HistoryStore,
	bus *events.Bus,
	logger *zap.Logger,
) *Downloader {
	return &Downloader{
		config:   config,
		search:   search,
		fetch:    fetch,
		resolver: resolver,
		dedup:    dedup,
		history:  history,
		bus:      bus,
		logger:   logger,
	}
}

// Start loads the recorded fetch history into the dedup store so tracks
// already in the library are not fetched again.
func (d *Downloader) Start(ctx context.Context) error {
	ids, err := d.history.TrackIDs(ctx)
	if err != nil {
		return err
	}
	d.dedup.Load(ids)
	d.logger.Info("Loaded fetch history", zap.Int("tracks", d.dedup.Size()))
	return nil
}

// SearchCandidates searches for a request and returns the ranked candidate
// list, at most MaxResults long. A search failure is logged and treated as
// zero candidates.
func (d *Downloader) SearchCandidates(ctx context.Context, req TrackRequest) []Candidate {
	query := req.Query()
	expected := req.ExpectedTitle()

	started := time.Now()
	// Ask for twice the cap so exclusions still leave a full page.
	results, err := d.search.Search(ctx, query, d.config.Search.MaxResults*2)
	if err != nil {
		d.logger.Warn("Search failed, treating as no candidates",
			zap.String("query", query),
			zap.Error(err))
		results = nil
	}

	ranked := Rank(d.scoreResults(expected, results), d.config.Search.MaxResults)

	d.bus.Publish(events.SearchCompleted, events.SearchEvent{
		Query:   query,
		Results: len(results),
		Ranked:  len(ranked),
		Elapsed: time.Since(started),
	})

	d.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("raw", len(results)),
		zap.Int("ranked", len(ranked)))
	return ranked
}

// scoreResults turns raw search results into scored candidates. Results
// missing an ID or title never produce a candidate.
func (d *Downloader) scoreResults(expected string, results []SearchResult) []Candidate {
	candidates := make([]Candidate, 0, len(results))
	for _, res := range results {
		if res.ID == "" || res.Title == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:      res.Title,
			ID:         res.ID,
			Duration:   res.Duration,
			Confidence: match.Confidence(d.config.Match, expected, res.Title, res.Duration),
			URL:        WatchURL(res.ID),
		})
	}
	return candidates
}

// DownloadByName resolves a request to a single track and fetches it.
// It returns the fetched track ID, or "" when no adequate match was found
// or the user cancelled; neither of those is an error.
func (d *Downloader) DownloadByName(ctx context.Context, req TrackRequest) (string, error) {
	if strings.TrimSpace(req.Song) == "" {
		return "", errors.New("song name is required")
	}

	ranked := d.SearchCandidates(ctx, req)

	resolution := d.resolver.Resolve(ctx, ranked)
	switch resolution.Outcome {
	case OutcomeNoResults:
		d.logger.Info("No adequate results", zap.String("query", req.Query()))
		d.bus.Publish(events.ResolveAbandoned, events.AbandonEvent{Query: req.Query(), Reason: events.ReasonNoResults})
		return "", nil
	case OutcomeCancelled:
		d.logger.Info("Selection cancelled", zap.String("query", req.Query()))
		d.bus.Publish(events.ResolveAbandoned, events.AbandonEvent{Query: req.Query(), Reason: events.ReasonCancelled})
		return "", nil
	}

	selected := resolution.Selected
	d.bus.Publish(events.TrackSelected, events.SelectEvent{
		TrackID:    selected.ID,
		Title:      selected.Title,
		Confidence: selected.Confidence,
		Auto:       resolution.Auto,
	})

	if d.dedup.Has(selected.ID) {
		d.logger.Info("Track already in library, skipping fetch",
			zap.String("trackID", selected.ID),
			zap.String("title", selected.Title))
		return selected.ID, nil
	}

	d.logger.Info("Fetching track",
		zap.String("trackID", selected.ID),
		zap.String("title", selected.Title),
		zap.Int("confidence", selected.Confidence))

	trackID, err := d.fetch.Fetch(ctx, *selected)
	if err != nil {
		d.bus.Publish(events.FetchFailed, events.FetchFailEvent{
			TrackID: selected.ID,
			Title:   selected.Title,
			Err:     err,
		})
		return "", err
	}

	d.dedup.Add(trackID)
	if err := d.history.Record(ctx, HistoryEntry{
		TrackID:    trackID,
		Title:      selected.Title,
		Confidence: selected.Confidence,
		Duration:   selected.Duration,
		FetchedAt:  time.Now().UTC(),
	}); err != nil {
		d.logger.Warn("Failed to record fetch history", zap.Error(err))
	}

	d.bus.Publish(events.TrackFetched, events.FetchEvent{
		TrackID:     trackID,
		Title:       selected.Title,
		LibrarySize: d.dedup.Size(),
	})
	return trackID, nil
}
