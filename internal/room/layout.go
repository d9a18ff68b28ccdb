// Package room loads room layouts and tracks progress through them: the
// current room, wrong answers given to puzzles and the illusion trap walls.
package room

import (
	"fmt"

	"github.com/vovakirdan/purgatory/internal/core"
	"github.com/vovakirdan/purgatory/internal/trigger"
)

// Tile is the type of one layout cell.
type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TileDoor
	TileTrigger
	TileItem
	TileEnemy
	TileSpawn
	TileNPC
)

// Layout symbols.
const (
	SymWall         = '#'
	SymEmpty        = '.'
	SymDoor         = 'D'
	SymTrigger      = 'T'
	SymItem         = 'I'
	SymEnemy        = 'E'
	SymSpawn        = 'P'
	SymNPC          = 'N'
	SymBloodWriting = 'B'
	SymPillar       = 'L'
	SymCorpse       = 'C'
)

// ExitTarget is the door target that leaves the building.
const ExitTarget = "exit"

// Pos is a cell position.
type Pos struct {
	Col, Row int
}

// Rect returns the one-cell rectangle at p.
func (p Pos) Rect() core.Rect {
	return core.NewRect(p.Col, p.Row, 1, 1)
}

// Vec returns the world position of the cell's top-left corner.
func (p Pos) Vec() core.Vec {
	return core.Vec{X: float64(p.Col), Y: float64(p.Row)}
}

// TriggerSpec places a trigger node.
type TriggerSpec struct {
	Pos
	Identity trigger.Identity
	Object   *trigger.PlaceableObject
}

// DoorSpec places a door.
type DoorSpec struct {
	Pos
	ID     string
	Target string
}

// Layout is a parsed room.
type Layout struct {
	ID       string
	Width    int
	Height   int
	Next     string
	Requires string // trigger identity that must be solved before doors open
	Tiles    [][]Tile
	Spawn    Pos
	Triggers []TriggerSpec
	Doors    []DoorSpec
	Enemies  []Pos
	NPCs     []Pos
}

// At returns the tile at (col, row). Cells outside the room are walls.
func (l *Layout) At(col, row int) Tile {
	if row < 0 || row >= l.Height || col < 0 || col >= l.Width {
		return TileWall
	}
	return l.Tiles[row][col]
}

// Blocks reports whether characters cannot stand on (col, row).
func (l *Layout) Blocks(col, row int) bool {
	switch l.At(col, row) {
	case TileWall, TileTrigger, TileItem, TileEnemy, TileNPC:
		return true
	default:
		return false
	}
}

// Interior returns the area inside the outer wall.
func (l *Layout) Interior() core.Rect {
	return core.NewRect(1, 1, l.Width-2, l.Height-2)
}

// Door returns the door with the given id.
func (l *Layout) Door(id string) (DoorSpec, bool) {
	for _, d := range l.Doors {
		if d.ID == id {
			return d, true
		}
	}
	return DoorSpec{}, false
}

// rawRoom is the JSON shape of a room.
type rawRoom struct {
	ID       string   `json:"id"`
	Layout   []string `json:"layout"`
	Next     string   `json:"next,omitempty"`
	Requires string   `json:"requires,omitempty"`
	Triggers []string `json:"triggers,omitempty"` // identities for T cells, row-major
	Items    []string `json:"items,omitempty"`    // objects for I cells, row-major
	Doors    []string `json:"doors,omitempty"`    // targets for D cells, row-major
}

// parseLayout builds a Layout from its JSON form.
func parseLayout(raw rawRoom) (Layout, error) {
	if raw.ID == "" {
		return Layout{}, fmt.Errorf("room: missing id")
	}
	if len(raw.Layout) < 3 {
		return Layout{}, fmt.Errorf("room %s: layout needs at least 3 rows", raw.ID)
	}

	l := Layout{
		ID:       raw.ID,
		Height:   len(raw.Layout),
		Width:    len([]rune(raw.Layout[0])),
		Next:     raw.Next,
		Requires: raw.Requires,
		Tiles:    make([][]Tile, len(raw.Layout)),
	}
	if l.Width < 3 {
		return Layout{}, fmt.Errorf("room %s: layout needs at least 3 columns", raw.ID)
	}

	spawnFound := false
	triggerIdx, itemIdx := 0, 0
	for row, line := range raw.Layout {
		runes := []rune(line)
		if len(runes) != l.Width {
			return Layout{}, fmt.Errorf("room %s: row %d has width %d, expected %d", raw.ID, row, len(runes), l.Width)
		}
		l.Tiles[row] = make([]Tile, l.Width)
		for col, ch := range runes {
			p := Pos{Col: col, Row: row}
			switch ch {
			case SymWall:
				l.Tiles[row][col] = TileWall
			case SymEmpty:
				l.Tiles[row][col] = TileEmpty
			case SymDoor:
				l.Tiles[row][col] = TileDoor
				target := l.Next
				if len(l.Doors) < len(raw.Doors) {
					target = raw.Doors[len(l.Doors)]
				}
				l.Doors = append(l.Doors, DoorSpec{
					Pos:    p,
					ID:     fmt.Sprintf("Door%d", len(l.Doors)),
					Target: target,
				})
			case SymTrigger:
				l.Tiles[row][col] = TileTrigger
				id := trigger.BloodWriting
				if triggerIdx < len(raw.Triggers) {
					parsed, err := trigger.ParseIdentity(raw.Triggers[triggerIdx])
					if err != nil {
						return Layout{}, fmt.Errorf("room %s: %w", raw.ID, err)
					}
					id = parsed
				}
				triggerIdx++
				l.Triggers = append(l.Triggers, TriggerSpec{Pos: p, Identity: id})
			case SymBloodWriting, SymPillar, SymCorpse:
				l.Tiles[row][col] = TileTrigger
				l.Triggers = append(l.Triggers, TriggerSpec{Pos: p, Identity: symbolIdentity(ch)})
			case SymItem:
				l.Tiles[row][col] = TileItem
				kind := trigger.CrackedHolySymbol
				if itemIdx < len(raw.Items) {
					parsed, err := trigger.ParseObject(raw.Items[itemIdx])
					if err != nil {
						return Layout{}, fmt.Errorf("room %s: %w", raw.ID, err)
					}
					kind = parsed
				}
				itemIdx++
				l.Triggers = append(l.Triggers, TriggerSpec{
					Pos:      p,
					Identity: trigger.Pillar,
					Object:   &trigger.PlaceableObject{Kind: kind},
				})
			case SymEnemy:
				l.Tiles[row][col] = TileEnemy
				l.Enemies = append(l.Enemies, p)
			case SymSpawn:
				l.Tiles[row][col] = TileSpawn
				if spawnFound {
					return Layout{}, fmt.Errorf("room %s: more than one spawn", raw.ID)
				}
				l.Spawn = p
				spawnFound = true
			case SymNPC:
				l.Tiles[row][col] = TileNPC
				l.NPCs = append(l.NPCs, p)
			default:
				return Layout{}, fmt.Errorf("room %s: unknown symbol %q at %d,%d", raw.ID, ch, col, row)
			}
		}
	}

	if !spawnFound {
		return Layout{}, fmt.Errorf("room %s: no spawn", raw.ID)
	}
	return l, nil
}

func symbolIdentity(ch rune) trigger.Identity {
	switch ch {
	case SymPillar:
		return trigger.Pillar
	case SymCorpse:
		return trigger.Corpse
	default:
		return trigger.BloodWriting
	}
}

// FallbackID is the id of the room used when a layout cannot be loaded.
const FallbackID = "fallback"

// Fallback returns a bare room with a single exit door.
func Fallback() Layout {
	l, err := parseLayout(rawRoom{
		ID: FallbackID,
		Layout: []string{
			"#####################",
			"#...................#",
			"#...................#",
			"#...................#",
			"#.........P.......D.#",
			"#...................#",
			"#...................#",
			"#...................#",
			"#...................#",
			"#####################",
		},
		Doors: []string{ExitTarget},
	})
	if err != nil {
		panic(err)
	}
	return l
}
