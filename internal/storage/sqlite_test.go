package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	v, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion() = %d, expected 2", v)
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{StageID: "tower", MaxHeight: 900}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestHeight("tower")
	if err != nil {
		t.Fatalf("BestHeight() failed: %v", err)
	}
	if best != 900 {
		t.Errorf("BestHeight() = %v, expected 900", best)
	}
}

func TestStoreTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{StageID: "tower", Player: "a", MaxHeight: 1200, Duration: 40},
		{StageID: "tower", Player: "b", MaxHeight: 8000, Duration: 300, Cleared: true},
		{StageID: "tower", Player: "c", MaxHeight: 2500, Duration: 60},
		{StageID: "tower", Player: "d", MaxHeight: 8000, Duration: 250, Cleared: true, Falls: 3},
		{StageID: "debug", Player: "e", MaxHeight: 99999},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("tower", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	expected := []string{"d", "b", "c", "a"}
	if len(top) != len(expected) {
		t.Fatalf("TopRuns() returned %d runs, expected %d", len(top), len(expected))
	}
	for i, name := range expected {
		if top[i].Player != name {
			t.Errorf("TopRuns()[%d].Player = %q, expected %q", i, top[i].Player, name)
		}
	}
	if !top[0].Cleared || top[0].Falls != 3 || top[0].Difficulty != "normal" {
		t.Errorf("TopRuns()[0] = %+v, expected a cleared normal run with 3 falls", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	limited, err := store.TopRuns("tower", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopRuns(limit 2) returned %d runs", len(limited))
	}
}

func TestStoreSaveRunRequiresStage(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{MaxHeight: 10}); err == nil {
		t.Error("SaveRun() should reject a run without stage id")
	}
}

func TestStoreBestHeightEmpty(t *testing.T) {
	store := openTestStore(t)
	best, err := store.BestHeight("tower")
	if err != nil {
		t.Fatalf("BestHeight() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestHeight() = %v, expected 0", best)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []Run{
		{StageID: "tower", MaxHeight: 500, Duration: 20},
		{StageID: "tower", MaxHeight: 8000, Duration: 300, Cleared: true},
		{StageID: "tower", MaxHeight: 8000, Duration: 200, Cleared: true},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.Stats("tower")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Clears != 2 {
		t.Errorf("Stats() runs/clears = %d/%d, expected 3/2", stats.Runs, stats.Clears)
	}
	if stats.BestHeight != 8000 || stats.BestClear != 200 {
		t.Errorf("Stats() best height/clear = %v/%v, expected 8000/200", stats.BestHeight, stats.BestClear)
	}

	if err := store.ClearRuns("tower"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	stats, err = store.Stats("tower")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() after clear = %+v, expected empty", stats)
	}
}
