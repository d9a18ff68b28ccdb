// Package config provides YAML-based configuration loading for the game.
package config

import "time"

// PurgatoryConfig contains all tunables of the game.
type PurgatoryConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Trap   TrapConfig   `yaml:"trap"`
	Puzzle PuzzleConfig `yaml:"puzzle"`
	Rooms  RoomsConfig  `yaml:"rooms"`
	Log    LogConfig    `yaml:"log"`
}

// TimingConfig defines animation and movement timing.
type TimingConfig struct {
	FadeIn        time.Duration `yaml:"fade_in"`        // Dialogue fade-in
	FadeOut       time.Duration `yaml:"fade_out"`       // Dialogue fade-out
	WalkPulse     time.Duration `yaml:"walk_pulse"`     // How long one key press walks
	WalkSpeed     float64       `yaml:"walk_speed"`     // Tiles per second
	LightsUp      time.Duration `yaml:"lights_up"`      // Cover fade when a scene starts
	Extraction    time.Duration `yaml:"extraction"`     // Cover fade before extraction
	TriggerRadius int           `yaml:"trigger_radius"` // Contact distance around triggers, in tiles
}

// TrapConfig defines the illusion trap.
type TrapConfig struct {
	Multiplier time.Duration `yaml:"multiplier"` // Delay step between walls
	Fade       time.Duration `yaml:"fade"`       // Wall fade-out on release
}

// PuzzleConfig defines the riddle and its escalation.
type PuzzleConfig struct {
	Answer    string   `yaml:"answer"`
	Words     []string `yaml:"words"`
	TrapAt    int      `yaml:"trap_at"`    // Wrong answers that spring the trap
	ExtractAt int      `yaml:"extract_at"` // Wrong answers that end the game
}

// RoomsConfig selects the room layouts.
type RoomsConfig struct {
	Path  string `yaml:"path"`  // Empty means the bundled rooms
	Start string `yaml:"start"` // Empty means the first room
}

// LogConfig defines log output.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Normalize replaces unusable values with defaults.
func (c *PurgatoryConfig) Normalize() {
	def := DefaultPurgatoryConfig()

	if c.Timing.FadeIn < 0 {
		c.Timing.FadeIn = def.Timing.FadeIn
	}
	if c.Timing.FadeOut < 0 {
		c.Timing.FadeOut = def.Timing.FadeOut
	}
	if c.Timing.WalkPulse <= 0 {
		c.Timing.WalkPulse = def.Timing.WalkPulse
	}
	if c.Timing.WalkSpeed <= 0 {
		c.Timing.WalkSpeed = def.Timing.WalkSpeed
	}
	if c.Timing.LightsUp < 0 {
		c.Timing.LightsUp = def.Timing.LightsUp
	}
	if c.Timing.Extraction < 0 {
		c.Timing.Extraction = def.Timing.Extraction
	}
	if c.Timing.TriggerRadius < 0 {
		c.Timing.TriggerRadius = def.Timing.TriggerRadius
	}
	if c.Trap.Multiplier <= 0 {
		c.Trap.Multiplier = def.Trap.Multiplier
	}
	if c.Trap.Fade < 0 {
		c.Trap.Fade = def.Trap.Fade
	}
	if c.Puzzle.Answer == "" {
		c.Puzzle.Answer = def.Puzzle.Answer
	}
	if len(c.Puzzle.Words) == 0 {
		c.Puzzle.Words = def.Puzzle.Words
	}
	if c.Puzzle.TrapAt < 1 {
		c.Puzzle.TrapAt = def.Puzzle.TrapAt
	}
	if c.Puzzle.ExtractAt <= c.Puzzle.TrapAt {
		c.Puzzle.ExtractAt = c.Puzzle.TrapAt + 1
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
