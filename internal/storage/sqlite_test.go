package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, run Run) string {
	t.Helper()
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsID(t *testing.T) {
	store := openTemp(t)

	id := mustSave(t, store, Run{LevelID: "01", Ticks: 4, Moves: 4, Solved: true})
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	given := mustSave(t, store, Run{ID: "fixed", LevelID: "01"})
	if given != "fixed" {
		t.Errorf("SaveRun() should keep a given id, got %q", given)
	}

	if _, err := store.SaveRun(Run{ID: "fixed", LevelID: "01"}); err == nil {
		t.Error("SaveRun() should reject a duplicate id")
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTemp(t)

	mustSave(t, store, Run{ID: "slow", LevelID: "01", Title: "First", Ticks: 30, Moves: 8, Solved: true, Player: "green"})
	mustSave(t, store, Run{ID: "fast", LevelID: "01", Title: "First", Ticks: 12, Moves: 8, Solved: true, Player: "green"})
	mustSave(t, store, Run{ID: "short", LevelID: "01", Title: "First", Ticks: 40, Moves: 5, Solved: true, Player: "green"})
	mustSave(t, store, Run{ID: "failed", LevelID: "01", Title: "First", Ticks: 2, Moves: 1})
	mustSave(t, store, Run{ID: "other", LevelID: "02", Ticks: 1, Moves: 1, Solved: true})

	runs, err := store.BestRuns("01", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}

	want := []string{"short", "fast", "slow"}
	if len(runs) != len(want) {
		t.Fatalf("Expected %d runs, got %d", len(want), len(runs))
	}
	for i, id := range want {
		if runs[i].ID != id {
			t.Errorf("runs[%d] = %q, expected %q", i, runs[i].ID, id)
		}
	}
	if !runs[0].Solved || runs[0].Player != "green" || runs[0].Title != "First" {
		t.Errorf("Fields not round-tripped: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	limited, err := store.BestRuns("01", 1)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "short" {
		t.Errorf("Limit not applied: %+v", limited)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTemp(t)

	mustSave(t, store, Run{ID: "a", LevelID: "01"})
	mustSave(t, store, Run{ID: "b", LevelID: "02"})
	mustSave(t, store, Run{ID: "c", LevelID: "01"})

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("RecentRuns() = %+v, expected c then b", runs)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTemp(t)

	mustSave(t, store, Run{LevelID: "01", Title: "First", Ticks: 9, Moves: 6, Solved: true})
	mustSave(t, store, Run{LevelID: "01", Title: "First", Ticks: 7, Moves: 6, Solved: true})
	mustSave(t, store, Run{LevelID: "01", Title: "First", Ticks: 3, Moves: 2})
	mustSave(t, store, Run{LevelID: "02", Title: "Second", Ticks: 5, Moves: 5})

	stats, err := store.LevelStats()
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(stats))
	}

	first := LevelStat{LevelID: "01", Title: "First", Attempts: 3, Solves: 2, BestMoves: 6, BestTicks: 7}
	if stats[0] != first {
		t.Errorf("stats[0] = %+v, expected %+v", stats[0], first)
	}
	second := LevelStat{LevelID: "02", Title: "Second", Attempts: 1}
	if stats[1] != second {
		t.Errorf("stats[1] = %+v, expected %+v", stats[1], second)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	mustSave(t, store, Run{LevelID: "01", Moves: 3, Solved: true})
	mustSave(t, store, Run{LevelID: "02", Moves: 3, Solved: true})

	if err := store.ClearRuns("01"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.BestRuns("01", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	runs, _ = store.BestRuns("02", 10)
	if len(runs) != 1 {
		t.Errorf("Other levels should be untouched, got %d runs", len(runs))
	}
}

func TestStoreHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.cubes/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".cubes", "test.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}
