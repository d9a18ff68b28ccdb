// Package selection shows transient choice menus and resolves the player's
// pick to a branch.
package selection

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/purgatory/internal/logging"
)

// Menu identifies which kind of menu is on screen.
type Menu int

const (
	MenuNone Menu = iota
	MenuCharacter
	MenuWord
	MenuTakeOrLeave
	MenuObject
	MenuFinal
)

// String returns the menu name.
func (m Menu) String() string {
	switch m {
	case MenuCharacter:
		return "character"
	case MenuWord:
		return "word"
	case MenuTakeOrLeave:
		return "take_or_leave"
	case MenuObject:
		return "object"
	case MenuFinal:
		return "final"
	default:
		return "none"
	}
}

// Layout constants. Offsets are in layout units relative to the screen middle.
const (
	ButtonSpacing  = 60
	CharacterShift = -30
	WordShift      = -90
)

// Option labels with fixed meaning.
const (
	OptionTake  = "Take"
	OptionLeave = "Leave"
	Enri        = "Enri"
	Emma        = "Emma"
)

// ShardChance is the percentage chance that pulling the shard succeeds.
const ShardChance = 50.0

// Button is one option on screen.
type Button struct {
	Label  string
	Offset int
}

// Manager owns the buttons on screen. Only one menu is visible at a time.
type Manager struct {
	menu    Menu
	buttons []Button
	resolve func(index int, label string)
	rng     *rand.Rand
	log     *log.Logger
}

// New creates a selection manager. rng drives the shard pull.
func New(rng *rand.Rand, logger *log.Logger) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Manager{
		rng: rng,
		log: logging.OrDiscard(logger).WithPrefix("selection"),
	}
}

// Show replaces any visible menu with one button per option.
// Button i sits at i*ButtonSpacing + shift. resolver receives the picked
// index and label after the buttons are cleared.
func (m *Manager) Show(menu Menu, options []string, shift int, resolver func(index int, label string)) {
	m.Clear()
	m.menu = menu
	m.buttons = make([]Button, len(options))
	for i, opt := range options {
		m.buttons[i] = Button{Label: opt, Offset: i*ButtonSpacing + shift}
	}
	m.resolve = resolver
	m.log.Debug("show", "menu", menu, "options", options)
}

// Choose picks option index. It reports false when no such button exists.
func (m *Manager) Choose(index int) bool {
	if index < 0 || index >= len(m.buttons) {
		return false
	}
	label := m.buttons[index].Label
	resolve := m.resolve
	menu := m.menu
	m.Clear()

	m.log.Debug("choose", "menu", menu, "label", label)
	if resolve != nil {
		resolve(index, label)
	}
	return true
}

// Clear removes every button.
func (m *Manager) Clear() {
	m.menu = MenuNone
	m.buttons = nil
	m.resolve = nil
}

// Visible reports whether a menu is on screen.
func (m *Manager) Visible() bool {
	return len(m.buttons) > 0
}

// Menu returns the kind of menu on screen.
func (m *Manager) Menu() Menu {
	return m.menu
}

// Buttons returns a copy of the buttons on screen.
func (m *Manager) Buttons() []Button {
	return append([]Button(nil), m.buttons...)
}

// ShowCharacterSelection asks who acts next.
func (m *Manager) ShowCharacterSelection(names []string, enriSelected, emmaSelected func()) {
	m.Show(MenuCharacter, names, CharacterShift, func(_ int, label string) {
		switch label {
		case Enri:
			call(enriSelected)
		case Emma:
			call(emmaSelected)
		}
	})
}

// ShowWordSelection asks for the riddle answer.
func (m *Manager) ShowWordSelection(words []string, answer string, right, wrong func()) {
	m.Show(MenuWord, words, WordShift, func(_ int, label string) {
		if ResolveWord(label, answer) {
			call(right)
		} else {
			call(wrong)
		}
	})
}

// ShowTakeOrLeave offers to take an object.
func (m *Manager) ShowTakeOrLeave(options []string, take, leave func()) {
	m.Show(MenuTakeOrLeave, options, WordShift, func(_ int, label string) {
		if IsTake(label) {
			call(take)
		} else {
			call(leave)
		}
	})
}

// SelectObject offers carried objects for placement; a Leave option backs out.
func (m *Manager) SelectObject(objects []string, put func(index int, label string), leave func()) {
	m.Show(MenuObject, objects, 0, func(index int, label string) {
		if IsLeave(label) {
			call(leave)
			return
		}
		if put != nil {
			put(index, label)
		}
	})
}

// FinalDecision offers a last irreversible choice.
func (m *Manager) FinalDecision(options []string, act, leave func()) {
	m.Show(MenuFinal, options, 0, func(_ int, label string) {
		if IsLeave(label) {
			call(leave)
		} else {
			call(act)
		}
	})
}

// PullOutShard rolls the shard pull and runs the matching branch.
func (m *Manager) PullOutShard(success, fail func()) {
	if m.rng.Float64()*100 < ShardChance {
		m.log.Debug("shard pulled")
		call(success)
		return
	}
	m.log.Debug("shard stuck")
	call(fail)
}

// ResolveWord reports whether word is exactly the answer.
func ResolveWord(word, answer string) bool {
	return word == answer
}

// IsTake reports whether label is the take option.
func IsTake(label string) bool {
	return label == OptionTake
}

// IsLeave reports whether label is the leave option.
func IsLeave(label string) bool {
	return label == OptionLeave
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
