package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/purgatory/internal/room"
	"github.com/vovakirdan/purgatory/internal/session"
)

var (
	flagProgressReset  bool
	flagProgressPlayer string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset solved puzzles",
	Long: `List every puzzle of the configured rooms and whether it is solved.

Solved puzzles stay solved across runs: their doors open at once.
Use --reset to forget them. Runs in the journal are kept.

Examples:
  purgatory progress
  purgatory progress --store gdata
  purgatory progress --player alice   # progress of an SSH user
  purgatory progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressReset, "reset", false, "Forget every solved puzzle")
	progressCmd.Flags().StringVar(&flagProgressPlayer, "player", "", "SSH user whose progress to show (empty for local play)")
}

func runProgress(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	lib := room.Load(cfg.Rooms.Path, nil)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	flags, err := flagStoreFor(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flags == nil {
		fmt.Fprintln(os.Stderr, "Error: no progress store available")
		os.Exit(1)
	}

	st := session.New(flags, flagProgressPlayer, nil)
	keys := lib.PuzzleKeys()

	if flagProgressReset {
		st.Reset(keys)
		fmt.Printf("Progress reset (%d puzzles).\n", len(keys))
		return
	}

	st.Load(keys)
	if len(keys) == 0 {
		fmt.Println("The rooms hold no puzzles.")
		return
	}
	for _, k := range keys {
		mark := " "
		if st.PuzzleSolved(k) {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, st.StoreKey(k))
	}
	fmt.Printf("\n%d of %d solved\n", st.SolvedCount(), len(keys))
}
