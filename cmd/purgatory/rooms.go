package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/purgatory/internal/room"
)

var flagRoomsFile string

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List room layouts",
	Long: `Shows the rooms a run walks through, in order.

Examples:
  purgatory rooms
  purgatory rooms --file ./my-rooms.json`,
	Args: cobra.NoArgs,
	Run:  runRooms,
}

func init() {
	roomsCmd.Flags().StringVar(&flagRoomsFile, "file", "", "Rooms JSON file (defaults to the configured rooms)")
}

func runRooms(_ *cobra.Command, _ []string) {
	path := flagRoomsFile
	if path == "" {
		path = loadConfig().Rooms.Path
	}

	var (
		lib *room.Library
		err error
	)
	if path == "" {
		lib, err = room.Bundled()
	} else {
		lib, err = room.LoadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ids := lib.IDs()
	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-8s  %-5s  %s\n", maxIDLen, "ID", "Size", "Triggers", "Doors", "Needs")
	fmt.Printf("  %-*s  %-7s  %-8s  %-5s  %s\n", maxIDLen, "--", "----", "--------", "-----", "-----")

	for _, id := range ids {
		l := lib.Get(id)
		needs := l.Requires
		if needs == "" {
			needs = "-"
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %-8d  %-5d  %s\n", maxIDLen, l.ID, size, len(l.Triggers), len(l.Doors), needs)
	}

	fmt.Println()
	fmt.Println("Run 'purgatory play' to enter the first room.")
}
