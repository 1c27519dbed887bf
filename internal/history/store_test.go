package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"converso/internal/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := history.Entry{
		URL:       "https://example.test/a",
		Title:     "First",
		Mode:      "merge",
		FormatID:  "137+140",
		Container: "mp4",
		FilePath:  "/media/First [a].mp4",
		FileSize:  "150.5 MB",
		Duration:  "10:30",
		Success:   true,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if _, err := store.Record(ctx, first); err != nil {
		t.Fatalf("record first: %v", err)
	}

	second := history.Entry{
		URL:       "https://example.test/b",
		Mode:      "audio",
		Success:   false,
		Error:     "ERROR: unable to download video data",
		CreatedAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
	}
	if _, err := store.Record(ctx, second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "https://example.test/b" {
		t.Fatalf("expected newest first, got %q", entries[0].URL)
	}
	if entries[0].Success || entries[0].Error == "" {
		t.Fatalf("expected failed entry, got %+v", entries[0])
	}
	if entries[1].Title != "First" || !entries[1].Success {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	if !entries[1].CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", entries[1].CreatedAt, first.CreatedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := history.Entry{
			URL:       "https://example.test/v",
			Success:   true,
			CreatedAt: time.Date(2026, 8, 1, 12, i, 0, 0, time.UTC),
		}
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(entries))
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, history.Entry{URL: "https://example.test/v", Success: true}); err != nil {
		t.Fatalf("record: %v", err)
	}
	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	store, err = history.OpenPath(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
