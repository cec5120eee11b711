package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tunegrab/internal/core"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()

	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryRecordAndTrackIDs(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []core.HistoryEntry{
		{TrackID: "abc123", Title: "First Track", Confidence: 95, Duration: 210, FetchedAt: base},
		{TrackID: "def456", Title: "Second Track", Confidence: 80, Duration: 185, FetchedAt: base.Add(time.Minute)},
	}
	for _, entry := range entries {
		if err := h.Record(ctx, entry); err != nil {
			t.Fatalf("Record(%s) failed: %v", entry.TrackID, err)
		}
	}

	ids, err := h.TrackIDs(ctx)
	if err != nil {
		t.Fatalf("TrackIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 IDs, got %d", len(ids))
	}
	if ids[0] != "abc123" || ids[1] != "def456" {
		t.Errorf("expected IDs ordered oldest first, got %v", ids)
	}
}

func TestHistoryRecordUpsert(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	entry := core.HistoryEntry{TrackID: "abc123", Title: "Original", Confidence: 60, Duration: 200}
	if err := h.Record(ctx, entry); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entry.Title = "Updated"
	entry.Confidence = 90
	if err := h.Record(ctx, entry); err != nil {
		t.Fatalf("second Record failed: %v", err)
	}

	ids, err := h.TrackIDs(ctx)
	if err != nil {
		t.Fatalf("TrackIDs failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("upsert should not duplicate rows, got %d", len(ids))
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := openTestHistory(t)

	ids, err := h.TrackIDs(context.Background())
	if err != nil {
		t.Fatalf("TrackIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no IDs from a fresh database, got %v", ids)
	}
}

func TestHistoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	if err := h.Record(ctx, core.HistoryEntry{TrackID: "persist1", Title: "Kept", Confidence: 70, Duration: 150}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	h2, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer h2.Close()

	ids, err := h2.TrackIDs(ctx)
	if err != nil {
		t.Fatalf("TrackIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "persist1" {
		t.Errorf("expected persisted track ID, got %v", ids)
	}
}
