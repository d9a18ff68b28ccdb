package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/purgatory/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends press B to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  purgatory menu
  purgatory menu --fps 30
  purgatory menu --db ./purgatory.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, logCloser := openLogger(cfg)
	if logCloser != nil {
		defer logCloser.Close()
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	flags, err := flagStoreFor(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig()
	player := localPlayer()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(player, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			return
		}

		switch menuResult.Entry {
		case tui.EntryJournal:
			goBack, jErr := tui.RunJournal(store, "", rt.ScreenW, rt.ScreenH)
			if jErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", jErr)
			}
			if !goBack {
				return
			}

		case tui.EntryPlay:
			game, rec, gErr := localGame(store, flags, logger)
			if gErr != nil {
				fmt.Fprintf(os.Stderr, "Error creating game: %v\n", gErr)
				continue
			}

			// Fresh seed for every run unless one was given
			if flagSeed == 0 {
				rt.Seed = time.Now().UnixNano()
			}

			goBack, runErr := tui.Run(game, rec, rt)
			if runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			}
			if !goBack {
				return
			}
		}
	}
}
