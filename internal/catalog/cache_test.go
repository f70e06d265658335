package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheWriteAndLoadLatest(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, 3)

	ts := time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC)
	data := []byte(sampleCatalog())
	if err := cache.Write(data, ts); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	got, gotTS, err := cache.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest returned error: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("round-trip data mismatch: got %d bytes, want %d", len(got), len(data))
	}
	if !gotTS.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", gotTS, ts)
	}
}

func TestCacheLoadLatestPicksNewest(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, 5)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		data := []byte{byte('a' + i)}
		if err := cache.Write(data, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Write %d returned error: %v", i, err)
		}
	}

	got, _, err := cache.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest returned error: %v", err)
	}
	if string(got) != "c" {
		t.Errorf("LoadLatest returned %q, want newest file %q", got, "c")
	}
}

func TestCachePrune(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(dir, 2)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := cache.Write([]byte("x"), base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Write %d returned error: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	var count int
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".dat" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("cache holds %d files after prune, want 2", count)
	}
}

func TestCacheLoadLatestEmpty(t *testing.T) {
	cache := NewCache(t.TempDir(), 3)
	_, _, err := cache.LoadLatest()
	if err == nil {
		t.Fatal("LoadLatest on an empty cache should return an error")
	}
	if !errors.Is(err, ErrNoCache) {
		t.Fatalf("LoadLatest error = %v, want ErrNoCache", err)
	}
}

func TestCacheLoadLatestUnreadableDir(t *testing.T) {
	// A cache path that exists but is not a directory is a read failure,
	// not a cache miss.
	path := filepath.Join(t.TempDir(), "cache")
	if err := os.WriteFile(path, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(path, 3)
	_, _, err := cache.LoadLatest()
	if err == nil {
		t.Fatal("LoadLatest on a non-directory cache path should return an error")
	}
	if errors.Is(err, ErrNoCache) {
		t.Fatalf("LoadLatest error = %v, want a read failure, not ErrNoCache", err)
	}
}
