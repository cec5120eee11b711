package search

import (
	"testing"
)

func TestParseSearchDump(t *testing.T) {
	data := []byte(`{
		"entries": [
			{"id": "abc123", "title": "Song One", "duration": 215.0},
			{"id": "def456", "title": "Song Two", "duration": 184.7}
		]
	}`)

	results, err := parseSearchDump(data)
	if err != nil {
		t.Fatalf("parseSearchDump failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "abc123" || results[0].Title != "Song One" || results[0].Duration != 215 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Duration != 184 {
		t.Errorf("fractional durations should be truncated, got %d", results[1].Duration)
	}
}

func TestParseSearchDumpSkipsIncompleteEntries(t *testing.T) {
	data := []byte(`{
		"entries": [
			{"id": "", "title": "No ID", "duration": 100},
			{"id": "noTitle", "title": "", "duration": 100},
			{"id": "kept", "title": "Kept Track", "duration": 100}
		]
	}`)

	results, err := parseSearchDump(data)
	if err != nil {
		t.Fatalf("parseSearchDump failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "kept" {
		t.Errorf("expected only the complete entry, got %+v", results[0])
	}
}

func TestParseSearchDumpSkipsMalformedEntries(t *testing.T) {
	data := []byte(`{
		"entries": [
			{"id": 42, "title": "Numeric ID"},
			{"id": "ok1", "title": "Fine", "duration": 90}
		]
	}`)

	results, err := parseSearchDump(data)
	if err != nil {
		t.Fatalf("parseSearchDump failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "ok1" {
		t.Errorf("malformed entry should be skipped, got %+v", results)
	}
}

func TestParseSearchDumpInvalidJSON(t *testing.T) {
	if _, err := parseSearchDump([]byte("not json")); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestParseSearchDumpEmpty(t *testing.T) {
	results, err := parseSearchDump([]byte(`{"entries": []}`))
	if err != nil {
		t.Fatalf("parseSearchDump failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
