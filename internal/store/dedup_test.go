package store

import (
	"fmt"
	"testing"
)

func TestDedupStoreBasic(t *testing.T) {
	ds := NewDedupStore(100, 0.01)

	if ds.Has("track1") {
		t.Error("empty store should not contain track1")
	}

	ds.Add("track1")
	if !ds.Has("track1") {
		t.Error("store should contain track1 after Add")
	}

	ds.Add("track1")
	if ds.Size() != 1 {
		t.Errorf("duplicate Add should not grow store, got size %d", ds.Size())
	}

	ds.Add("track2")
	if ds.Size() != 2 {
		t.Errorf("expected size 2, got %d", ds.Size())
	}
}

func TestDedupStoreLoad(t *testing.T) {
	ds := NewDedupStore(100, 0.01)

	ds.Add("old1")
	ds.Add("old2")

	ds.Load([]string{"new1", "new2", "new3"})

	if ds.Has("old1") || ds.Has("old2") {
		t.Error("Load should replace previously added IDs")
	}
	for _, id := range []string{"new1", "new2", "new3"} {
		if !ds.Has(id) {
			t.Errorf("store should contain %s after Load", id)
		}
	}
	if ds.Size() != 3 {
		t.Errorf("expected size 3, got %d", ds.Size())
	}
}

func TestDedupStoreLoadWithEmptyStrings(t *testing.T) {
	ds := NewDedupStore(100, 0.01)

	ds.Load([]string{"track1", "", "track2", ""})

	if ds.Size() != 2 {
		t.Errorf("empty IDs should be skipped, got size %d", ds.Size())
	}
	if ds.Has("") {
		t.Error("store should not contain the empty ID")
	}
}

func TestDedupStoreClear(t *testing.T) {
	ds := NewDedupStore(100, 0.01)

	ds.Add("track1")
	ds.Add("track2")
	ds.Clear()

	if ds.Size() != 0 {
		t.Errorf("expected size 0 after Clear, got %d", ds.Size())
	}
	if ds.Has("track1") {
		t.Error("cleared store should not contain track1")
	}

	ds.Add("track3")
	if !ds.Has("track3") {
		t.Error("store should accept new IDs after Clear")
	}
}

func TestDedupStoreMaxCapacity(t *testing.T) {
	ds := NewDedupStore(3, 0.01)

	ds.Add("track1")
	ds.Add("track2")
	ds.Add("track3")
	ds.Add("track4")

	if ds.Size() != 3 {
		t.Errorf("store should be capped at 3, got %d", ds.Size())
	}
	if ds.Has("track1") {
		t.Error("oldest track should have been evicted")
	}
	if !ds.Has("track4") {
		t.Error("newest track should be present")
	}
}

func TestDedupStoreBloomFilterEffectiveness(t *testing.T) {
	ds := NewDedupStore(1000, 0.01)

	for i := 0; i < 500; i++ {
		ds.Add(fmt.Sprintf("track%d", i))
	}

	for i := 0; i < 500; i++ {
		if !ds.Has(fmt.Sprintf("track%d", i)) {
			t.Errorf("store should contain track%d", i)
		}
	}

	misses := 0
	for i := 1000; i < 1500; i++ {
		if !ds.Has(fmt.Sprintf("track%d", i)) {
			misses++
		}
	}
	if misses < 490 {
		t.Errorf("expected at least 490 misses for unknown IDs, got %d", misses)
	}
}

func BenchmarkDedupStoreHas(b *testing.B) {
	ds := NewDedupStore(10000, 0.01)
	for i := 0; i < 5000; i++ {
		ds.Add(fmt.Sprintf("track%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ds.Has(fmt.Sprintf("track%d", i%10000))
	}
}

func BenchmarkDedupStoreAdd(b *testing.B) {
	ds := NewDedupStore(10000, 0.01)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ds.Add(fmt.Sprintf("track%d", i))
	}
}
