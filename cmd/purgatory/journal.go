package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/storage"
)

var flagJournalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show past runs and endings",
	Long: `Display the most recent runs and how often each ending was reached.

Examples:
  purgatory journal
  purgatory journal --limit 25`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagJournalLimit, "limit", 10, "Number of runs to show")
}

// journalSource is the part of the store the journal reads.
type journalSource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	OutcomeCounts() (map[core.Outcome]int, error)
}

func runJournal(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printJournal(os.Stdout, store, flagJournalLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printJournal writes recent runs and ending counts to w.
func printJournal(w io.Writer, src journalSource, limit int) error {
	runs, err := src.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintln(w, "Journal")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'purgatory play' to write the first page.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-10s  %-9s  %-6s  %-6s  %-5s  %s\n", "Date", "Player", "Ending", "Room", "Solved", "Wrong", "Time")
	fmt.Fprintf(w, "  %-16s  %-10s  %-9s  %-6s  %-6s  %-5s  %s\n", "----", "------", "------", "----", "------", "-----", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-16s  %-10s  %-9s  %-6s  %-6d  %-5d  %d:%02d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.Outcome, r.Room,
			r.Solved, r.WrongAnswers, r.Duration/60, r.Duration%60)
	}

	counts, err := src.OutcomeCounts()
	if err != nil {
		return fmt.Errorf("retrieving endings: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endings:")
	for _, o := range []core.Outcome{core.OutcomeEscaped, core.OutcomeExtracted, core.OutcomeBound, core.OutcomeQuit} {
		fmt.Fprintf(w, "  %-10s %d\n", o, counts[o])
	}
	return nil
}
