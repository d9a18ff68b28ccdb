// purgatory is a terminal adventure for two: Enri and Emma walk through
// rooms, read what is written in blood and try to leave.
//
// Usage:
//
//	purgatory play           - Enter Purgatory directly
//	purgatory menu           - Title menu with the journal
//	purgatory serve          - Start SSH server for remote play
//	purgatory rooms          - List room layouts
//	purgatory journal        - Show past runs and endings
//	purgatory progress       - Show or reset solved puzzles
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible runs
//	--db <path>       - Set database path (default: ~/.purgatory/purgatory.db)
//	--config <path>   - Use a custom YAML config
//	--store <kind>    - Where puzzle progress is kept: sqlite or gdata
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/purgatory/internal/config"
	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/logging"
	"github.com/vovakirdan/purgatory/internal/platform/tui"
	"github.com/vovakirdan/purgatory/internal/purgatory"
	"github.com/vovakirdan/purgatory/internal/registry"
	"github.com/vovakirdan/purgatory/internal/session"
	"github.com/vovakirdan/purgatory/internal/storage"
)

// Flag store kinds.
const (
	storeSQLite = "sqlite"
	storeGdata  = "gdata"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagStore  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "purgatory",
	Short: "Purgatory - a two-character adventure in your terminal",
	Long: `Purgatory is a terminal adventure. Walk Enri and Emma through the
rooms, answer the riddles on the walls and find the way out.

Available commands:
  play      - Enter Purgatory directly
  menu      - Title menu with the journal
  serve     - Start SSH server for remote play
  rooms     - List room layouts
  journal   - Show past runs and endings
  progress  - Show or reset solved puzzles

Examples:
  purgatory play
  purgatory play --seed 42
  purgatory menu --store gdata
  purgatory serve --ssh :2222
  purgatory progress --reset`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		purgatory.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.purgatory/purgatory.db", "Path to journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storeSQLite, "Puzzle progress store: sqlite or gdata")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(progressCmd)
}

// loadConfig reads the configuration named by --config.
func loadConfig() config.PurgatoryConfig {
	cfg, err := config.LoadPurgatory(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return cfg
}

// openLogger opens the log file from the configuration. The terminal belongs
// to the game, so logs never go to stdout.
func openLogger(cfg config.PurgatoryConfig) (*log.Logger, io.Closer) {
	if cfg.Log.File == "" {
		return logging.Discard(), nil
	}
	logger, closer, err := logging.OpenFile(cfg.Log.File, "purgatory", cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return logging.Discard(), nil
	}
	return logger, closer
}

// openStore opens the journal database, warning instead of failing.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		// Continue without storage - game still works
		return nil
	}
	return store
}

// flagStoreFor picks where puzzle flags live according to --store.
func flagStoreFor(store *storage.Store) (session.FlagStore, error) {
	switch flagStore {
	case storeGdata:
		gd, err := storage.OpenGdata(purgatory.ID)
		if err != nil {
			return nil, err
		}
		return gd, nil
	case storeSQLite, "":
		if store == nil {
			return nil, nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", flagStore, storeSQLite, storeGdata)
	}
}

// localPlayer names the player in the journal for local runs.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// localGame wires a game to the journal and the flag store.
// Local progress is not namespaced; SSH sessions namespace by user.
func localGame(store *storage.Store, flags session.FlagStore, logger *log.Logger) (registry.Game, *tui.Recorder, error) {
	rec := tui.NewRecorder(store, localPlayer(), logger)
	game, err := registry.Create(purgatory.ID, registry.Env{
		Flags:     flags,
		Logger:    logger,
		OnDismiss: rec.Record,
	})
	if err != nil {
		return nil, nil, err
	}
	return game, rec, nil
}
