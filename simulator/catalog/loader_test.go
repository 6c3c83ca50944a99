package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewStore(StoreConfig{Source: path}, discard())

	table, err := store.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 4 {
		t.Errorf("got %d rows, want 4", table.Len())
	}

	// Unchanged mtime serves the cached table.
	again, err := store.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != table {
		t.Error("expected cached table instance for unchanged file")
	}
}

func TestStoreReloadsOnModTimeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := NewStore(StoreConfig{Source: path}, discard())
	first, err := store.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	smaller := "search_term,ranking_score\nalmonds,10\n"
	if err := os.WriteFile(path, []byte(smaller), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Force a distinct mtime; write granularity can be coarser than the test.
	newTime := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, newTime, newTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := store.Table()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == first {
		t.Fatal("expected reload after mtime change")
	}
	if second.Len() != 1 {
		t.Errorf("got %d rows, want 1", second.Len())
	}
}

func TestStoreMissingFile(t *testing.T) {
	store := NewStore(StoreConfig{Source: filepath.Join(t.TempDir(), "absent.csv")}, discard())
	if _, err := store.Table(); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
