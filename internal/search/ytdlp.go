// Package search implements the YouTube search and fetch collaborators on
// top of the yt-dlp command line tool.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tunegrab/internal/core"
)

// Client drives yt-dlp subprocesses. It implements core.SearchProvider and
// core.FetchProvider.
type Client struct {
	binary   string
	songsDir string
	logger   *zap.Logger
}

// NewClient creates a client for the configured yt-dlp binary and songs
// directory.
func NewClient(cfg *core.SearchConfig, logger *zap.Logger) *Client {
	binary := cfg.YTDLPPath
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Client{
		binary:   binary,
		songsDir: cfg.SongsDir,
		logger:   logger,
	}
}

// entry is the subset of a yt-dlp flat-playlist entry we consume.
type entry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

type searchDump struct {
	Entries []json.RawMessage `json:"entries"`
}

// Search runs a flat ytsearch for maxResults entries. A yt-dlp failure is
// returned with its stderr attached so the caller can log it.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	target := fmt.Sprintf("ytsearch%d:%s", maxResults, query)
	cmd := exec.CommandContext(ctx, c.binary,
		"-J",
		"--flat-playlist",
		"--no-warnings",
		"--default-search", "ytsearch",
		target,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("Running yt-dlp search", zap.String("target", target))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp search: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	results, err := parseSearchDump(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return results, nil
}

// parseSearchDump decodes the playlist JSON, skipping entries that are
// malformed or missing an ID or title.
func parseSearchDump(data []byte) ([]core.SearchResult, error) {
	var dump searchDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}

	results := make([]core.SearchResult, 0, len(dump.Entries))
	for _, raw := range dump.Entries {
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		if e.ID == "" || e.Title == "" {
			continue
		}
		results = append(results, core.SearchResult{
			Title:    e.Title,
			ID:       e.ID,
			Duration: int(e.Duration),
		})
	}
	return results, nil
}

// Fetch downloads the candidate's best audio as mp3 into the songs
// directory, named by track ID, and returns the track ID.
func (c *Client) Fetch(ctx context.Context, candidate core.Candidate) (string, error) {
	if err := os.MkdirAll(c.songsDir, 0o755); err != nil {
		return "", fmt.Errorf("create songs dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.binary,
		"--no-warnings",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(c.songsDir, "%(id)s.%(ext)s"),
		candidate.URL,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debug("Running yt-dlp download",
		zap.String("trackID", candidate.ID),
		zap.String("url", candidate.URL))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return candidate.ID, nil
}
