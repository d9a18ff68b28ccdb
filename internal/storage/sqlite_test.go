package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/purgatory/internal/core"
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
}

func TestStoreFlags(t *testing.T) {
	store := openTestStore(t)

	v, err := store.Flag("puzzle.room1.blood_writing.1.6")
	if err != nil {
		t.Fatalf("Flag() failed: %v", err)
	}
	if v {
		t.Error("missing flag should read as false")
	}

	if err := store.SetFlag("puzzle.room1.blood_writing.1.6", true); err != nil {
		t.Fatalf("SetFlag() failed: %v", err)
	}
	v, _ = store.Flag("puzzle.room1.blood_writing.1.6")
	if !v {
		t.Error("Flag() = false after SetFlag(true)")
	}

	// Overwrite
	if err := store.SetFlag("puzzle.room1.blood_writing.1.6", false); err != nil {
		t.Fatalf("SetFlag() failed: %v", err)
	}
	v, _ = store.Flag("puzzle.room1.blood_writing.1.6")
	if v {
		t.Error("Flag() = true after SetFlag(false)")
	}
}

func TestStoreFlagsListAndClear(t *testing.T) {
	store := openTestStore(t)

	store.SetFlag("a", true)
	store.SetFlag("b", false)

	flags, err := store.Flags()
	if err != nil {
		t.Fatalf("Flags() failed: %v", err)
	}
	if len(flags) != 2 || !flags["a"] || flags["b"] {
		t.Errorf("Flags() = %v, expected map[a:true b:false]", flags)
	}

	if err := store.ClearFlags(); err != nil {
		t.Fatalf("ClearFlags() failed: %v", err)
	}
	flags, _ = store.Flags()
	if len(flags) != 0 {
		t.Errorf("Expected no flags after clear, got %v", flags)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Player: "local", Outcome: core.OutcomeExtracted, Room: "room1", WrongAnswers: 2, Duration: 40},
		{Player: "local", Outcome: core.OutcomeEscaped, Room: "room2", Solved: 2, Duration: 95},
		{Player: "alice", Outcome: core.OutcomeBound, Room: "room2", Solved: 1},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 runs with limit, got %d", len(recent))
	}
	if recent[0].Player != "alice" || recent[0].Outcome != core.OutcomeBound {
		t.Errorf("Newest run = %+v, expected alice/bound", recent[0])
	}
	if recent[1].Solved != 2 || recent[1].Duration != 95 {
		t.Errorf("Second run = %+v, expected solved 2 in 95s", recent[1])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	counts, err := store.OutcomeCounts()
	if err != nil {
		t.Fatalf("OutcomeCounts() failed: %v", err)
	}
	if counts[core.OutcomeEscaped] != 1 || counts[core.OutcomeExtracted] != 1 || counts[core.OutcomeBound] != 1 {
		t.Errorf("OutcomeCounts() = %v", counts)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	recent, _ = store.RecentRuns(10)
	if len(recent) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(recent))
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store1.SetFlag("puzzle.k", true)
	store1.SaveRun(Run{Outcome: core.OutcomeEscaped})
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	if v, _ := store2.Flag("puzzle.k"); !v {
		t.Error("flag should persist across reopen")
	}
	runs, _ := store2.RecentRuns(10)
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}
