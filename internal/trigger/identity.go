package trigger

import (
	"fmt"

	"github.com/vovakirdan/purgatory/internal/dialogue"
)

// Identity tags the kind of a trigger.
type Identity int

const (
	BloodWriting Identity = iota
	MagicRune
	CursedMirror
	Corpse
	Pillar
)

var identityNames = map[Identity]string{
	BloodWriting: "blood_writing",
	MagicRune:    "magic_rune",
	CursedMirror: "cursed_mirror",
	Corpse:       "corpse",
	Pillar:       "pillar",
}

// String returns the identity key used in layouts and saved flags.
func (id Identity) String() string {
	if name, ok := identityNames[id]; ok {
		return name
	}
	return fmt.Sprintf("identity(%d)", int(id))
}

// ParseIdentity resolves a layout name to an Identity.
func ParseIdentity(name string) (Identity, error) {
	for id, n := range identityNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("trigger: unknown identity %q", name)
}

// ObjectKind is an item that can rest on a pillar.
type ObjectKind int

const (
	CrackedHolySymbol ObjectKind = iota
	BloodySurgicalKnife
	MeltedCandle
)

var objectNames = map[ObjectKind]string{
	CrackedHolySymbol:   "cracked_holy_symbol",
	BloodySurgicalKnife: "bloody_surgical_knife",
	MeltedCandle:        "melted_candle",
}

var objectTitles = map[ObjectKind]string{
	CrackedHolySymbol:   "Cracked Holy Symbol",
	BloodySurgicalKnife: "Bloody Surgical Knife",
	MeltedCandle:        "Melted Candle",
}

// String returns the object key.
func (k ObjectKind) String() string {
	if name, ok := objectNames[k]; ok {
		return name
	}
	return fmt.Sprintf("object(%d)", int(k))
}

// Title returns the display name of the object.
func (k ObjectKind) Title() string {
	if title, ok := objectTitles[k]; ok {
		return title
	}
	return k.String()
}

// ParseObject resolves a layout name to an ObjectKind.
func ParseObject(name string) (ObjectKind, error) {
	for k, n := range objectNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("trigger: unknown object %q", name)
}

// PlaceableObject is an item attached to a pillar.
type PlaceableObject struct {
	Kind ObjectKind
}

// Script holds the three line sets a trigger can present.
type Script struct {
	First  []dialogue.Line
	Second []dialogue.Line
	Solved []dialogue.Line
}

func emma(text string) dialogue.Line {
	return dialogue.Line{Text: text, Portrait: dialogue.PortraitEmma}
}

func enri(text string) dialogue.Line {
	return dialogue.Line{Text: text, Portrait: dialogue.PortraitEnri}
}

// ScriptFor returns the lines of a trigger kind. obj is only used by pillars.
// Reserved identities have no lines.
func ScriptFor(id Identity, obj *PlaceableObject) Script {
	switch id {
	case BloodWriting:
		return Script{
			First: []dialogue.Line{
				emma("Do you see this blood writing"),
				enri("You are right, we need to guess the word, let select who is gonna do that."),
				emma("Yea, let's do it"),
			},
			Second: []dialogue.Line{
				emma("I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?"),
				emma("I suppose we should choose someone who can guess the word, who will it be?"),
			},
			Solved: []dialogue.Line{
				enri("The writing has dried. It has nothing more to say."),
			},
		}
	case Corpse:
		return Script{
			First: []dialogue.Line{
				emma("Do you see this courpse"),
				enri("You are right, we need to take this shard from him, let select who is gonna do that."),
				emma("Yea, let's do it"),
			},
			Second: []dialogue.Line{
				enri("The shard sits deep. One wrong pull and he will wake."),
				emma("Who is gonna pull it out?"),
			},
			Solved: []dialogue.Line{
				enri("He is still. Let's not wake him again."),
			},
		}
	case Pillar:
		first := []dialogue.Line{enri("An old pillar. Something rests on top of it.")}
		second := []dialogue.Line{emma("It's empty. Whatever was here is gone.")}
		if obj != nil {
			second = []dialogue.Line{emma("It's a " + obj.Kind.Title() + ". Should we take it?")}
		}
		return Script{
			First:  first,
			Second: second,
			Solved: []dialogue.Line{enri("Nothing left on the pillar.")},
		}
	default:
		return Script{}
	}
}
