package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/purgatory/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Enter Purgatory",
	Long: `Start a new run straight away.

Controls:
  Arrows/WASD   - Walk
  Space/Enter   - Next line
  1-9           - Pick a button
  P             - Pause
  R             - Restart (after the end)
  Q/Ctrl+C      - Quit

Examples:
  purgatory play
  purgatory play --seed 7
  purgatory play --config ./my-purgatory.yaml
  purgatory play --store gdata`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
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

	game, rec, err := localGame(store, flags, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if _, err := tui.Run(game, rec, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
