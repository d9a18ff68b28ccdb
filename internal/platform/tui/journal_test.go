package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/storage"
)

func TestJournalPages(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.Run{Player: "alice", Outcome: core.OutcomeBound, Room: "room2", Duration: 75}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.SetFlag("alice:puzzle.room1.blood_writing.1.6", true); err != nil {
		t.Fatalf("SetFlag() failed: %v", err)
	}
	if err := store.SetFlag("bob:puzzle.room1.blood_writing.1.6", true); err != nil {
		t.Fatalf("SetFlag() failed: %v", err)
	}

	m := NewJournalModel(store, "alice", 100, 30)
	if len(m.rows) != 1 || m.rows[0][1] != "alice" || m.rows[0][6] != "1:15" {
		t.Errorf("runs page rows = %v", m.rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	if m.current() != PageOutcomes {
		t.Fatalf("page = %v, expected endings", m.current().Title())
	}
	for _, r := range m.rows {
		if r[0] == string(core.OutcomeBound) && r[1] != "1" {
			t.Errorf("bound count = %s, expected 1", r[1])
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	if len(m.rows) != 1 || !strings.HasPrefix(m.rows[0][0], "alice:") {
		t.Errorf("puzzles page rows = %v, expected only alice's flags", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(JournalModel)
	if m.current() != PageOutcomes {
		t.Errorf("page = %v, expected to go back to endings", m.current().Title())
	}
}

func TestJournalWithoutStore(t *testing.T) {
	m := NewJournalModel(nil, "", 60, 20)
	if !strings.Contains(m.View(), "Nothing written here yet") {
		t.Error("empty journal should say so")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(JournalModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel("alice", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	// Move to the journal entry below the game entries
	for i, item := range m.items {
		if item.Entry == EntryJournal {
			m.cursor = i
		}
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().Entry != EntryJournal {
		t.Errorf("Selected() = %+v, expected the journal", m.Selected())
	}
	if !strings.Contains(m.View(), "Welcome, alice") {
		t.Error("menu should greet the player")
	}
}
