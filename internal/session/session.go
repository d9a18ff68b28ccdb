// Package session holds the per-run game state that outlives a room: which
// puzzles are solved. It is loaded from a FlagStore when a run starts and
// written back on every solve and when the run ends.
package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/logging"
)

// FlagStore is a string-keyed boolean store.
type FlagStore interface {
	Flag(key string) (bool, error)
	SetFlag(key string, value bool) error
}

// PuzzlePrefix prefixes every puzzle flag key.
const PuzzlePrefix = "puzzle."

// State is the session state shared by every component of a run.
type State struct {
	store     FlagStore
	namespace string
	log       *log.Logger

	solved map[string]bool
	dirty  map[string]bool
}

// New creates an empty state backed by store. store may be nil, in which case
// nothing is persisted. namespace separates players sharing one store.
func New(store FlagStore, namespace string, logger *log.Logger) *State {
	return &State{
		store:     store,
		namespace: namespace,
		log:       logging.OrDiscard(logger).WithPrefix("session"),
		solved:    make(map[string]bool),
		dirty:     make(map[string]bool),
	}
}

// Load reads the flags for keys. Read failures count as unsolved.
func (s *State) Load(keys []string) {
	for _, k := range keys {
		s.solved[k] = s.read(k)
	}
}

// PuzzleSolved reports whether the puzzle key is solved. Keys not known to be
// solved are read from the store on every call, so a solve saved by another
// session of the same player shows up here.
func (s *State) PuzzleSolved(key string) bool {
	if s.solved[key] {
		return true
	}
	v := s.read(key)
	if v {
		s.solved[key] = true
	}
	return v
}

// SetPuzzleSolved marks the puzzle key solved and writes it through.
func (s *State) SetPuzzleSolved(key string) {
	s.solved[key] = true
	s.dirty[key] = true
	s.flush(key)
}

// SolvedCount returns the number of solved puzzles known to the session.
func (s *State) SolvedCount() int {
	n := 0
	for _, v := range s.solved {
		if v {
			n++
		}
	}
	return n
}

// Save writes every flag changed since the last successful write.
func (s *State) Save() {
	for k := range s.dirty {
		s.flush(k)
	}
}

// Reset clears the flags for keys, in memory and in the store.
func (s *State) Reset(keys []string) {
	for _, k := range keys {
		s.solved[k] = false
		s.dirty[k] = true
		s.flush(k)
	}
}

// StoreKey returns the key a puzzle flag is saved under.
func (s *State) StoreKey(key string) string {
	if s.namespace == "" {
		return PuzzlePrefix + key
	}
	return s.namespace + ":" + PuzzlePrefix + key
}

func (s *State) read(key string) bool {
	if s.store == nil {
		return false
	}
	v, err := s.store.Flag(s.StoreKey(key))
	if err != nil {
		s.log.Warn("could not read flag", "key", key, "error", err)
		return false
	}
	return v
}

func (s *State) flush(key string) {
	if s.store == nil {
		delete(s.dirty, key)
		return
	}
	if err := s.store.SetFlag(s.StoreKey(key), s.solved[key]); err != nil {
		s.log.Warn("could not save flag", "key", key, "error", err)
		return
	}
	delete(s.dirty, key)
}
