package room

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/logging"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

//go:embed rooms.json
var bundledRooms []byte

// ErrRoomNotFound is returned when a room id is not in the library.
var ErrRoomNotFound = errors.New("room not found")

// document is the JSON shape of a rooms file.
type document struct {
	Rooms []rawRoom `json:"rooms"`
}

// Library holds the rooms of a game in file order.
type Library struct {
	rooms map[string]Layout
	order []string
	log   *log.Logger
}

// Parse builds a library from a rooms document.
func Parse(data []byte) (*Library, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("room: parse rooms: %w", err)
	}
	if len(doc.Rooms) == 0 {
		return nil, fmt.Errorf("room: document has no rooms")
	}

	lib := &Library{rooms: make(map[string]Layout), log: logging.Discard()}
	for _, raw := range doc.Rooms {
		l, err := parseLayout(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.rooms[l.ID]; dup {
			return nil, fmt.Errorf("room: duplicate id %q", l.ID)
		}
		lib.rooms[l.ID] = l
		lib.order = append(lib.order, l.ID)
	}
	return lib, nil
}

// Bundled returns the rooms shipped with the game.
func Bundled() (*Library, error) {
	return Parse(bundledRooms)
}

// LoadFile reads a rooms document from path. A leading ~ is expanded.
func LoadFile(path string) (*Library, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("room: get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("room: read %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the rooms at path, or the bundled rooms when path is empty.
// Any failure is logged and degrades to a library holding only the fallback
// room, so a game can always start.
func Load(path string, logger *log.Logger) *Library {
	logger = logging.OrDiscard(logger)

	var (
		lib *Library
		err error
	)
	if path != "" {
		lib, err = LoadFile(path)
	} else {
		lib, err = Bundled()
	}
	if err != nil {
		logger.Error("could not load rooms, using fallback", "path", path, "error", err)
		fb := Fallback()
		lib = &Library{
			rooms: map[string]Layout{fb.ID: fb},
			order: []string{fb.ID},
		}
	}
	lib.log = logger
	return lib
}

// Room returns the layout with the given id.
func (l *Library) Room(id string) (Layout, error) {
	room, ok := l.rooms[id]
	if !ok {
		return Layout{}, fmt.Errorf("room %q: %w", id, ErrRoomNotFound)
	}
	return room, nil
}

// Get returns the layout with the given id, or the fallback room.
func (l *Library) Get(id string) Layout {
	room, err := l.Room(id)
	if err != nil {
		l.log.Warn("missing room, using fallback", "room", id, "error", err)
		return Fallback()
	}
	return room
}

// First returns the id of the first room.
func (l *Library) First() string {
	if len(l.order) == 0 {
		return FallbackID
	}
	return l.order[0]
}

// IDs returns room ids in file order.
func (l *Library) IDs() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of rooms.
func (l *Library) Len() int {
	return len(l.order)
}

// PuzzleKeys lists the saved-progress keys of every trigger, room by room.
func (l *Library) PuzzleKeys() []string {
	var keys []string
	for _, id := range l.order {
		r := l.rooms[id]
		for _, ts := range r.Triggers {
			keys = append(keys, trigger.Key(r.ID, ts.Identity, ts.Rect()))
		}
	}
	return keys
}
