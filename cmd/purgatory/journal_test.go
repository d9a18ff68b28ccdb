package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/storage"
)

type fakeJournal struct {
	runs      []storage.Run
	counts    map[core.Outcome]int
	runsErr   error
	countsErr error
}

func (f fakeJournal) RecentRuns(int) ([]storage.Run, error) { return f.runs, f.runsErr }

func (f fakeJournal) OutcomeCounts() (map[core.Outcome]int, error) {
	return f.counts, f.countsErr
}

func TestPrintJournal(t *testing.T) {
	src := fakeJournal{
		runs:   []storage.Run{{Player: "alice", Outcome: core.OutcomeEscaped, Room: "room2", Duration: 75}},
		counts: map[core.Outcome]int{core.OutcomeEscaped: 3},
	}

	var out bytes.Buffer
	if err := printJournal(&out, src, 10); err != nil {
		t.Fatalf("printJournal() failed: %v", err)
	}
	for _, want := range []string{"alice", "1:15", "Endings:", "escaped    3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintJournalEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := printJournal(&out, fakeJournal{}, 10); err != nil {
		t.Fatalf("printJournal() failed: %v", err)
	}
	if !strings.Contains(out.String(), "No runs recorded yet.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPrintJournalErrors(t *testing.T) {
	boom := errors.New("database is locked")
	run := []storage.Run{{Player: "alice", Outcome: core.OutcomeBound}}

	tests := []struct {
		name string
		src  fakeJournal
	}{
		{"runs", fakeJournal{runsErr: boom}},
		{"endings", fakeJournal{runs: run, countsErr: boom}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := printJournal(&out, tc.src, 10)
			if !errors.Is(err, boom) {
				t.Errorf("printJournal() error = %v, expected %v", err, boom)
			}
		})
	}
}
