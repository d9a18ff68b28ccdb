package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/purgatory.yaml
var defaultPurgatoryYAML []byte

// DefaultPurgatoryConfig returns the default game configuration.
func DefaultPurgatoryConfig() PurgatoryConfig {
	return PurgatoryConfig{
		Timing: TimingConfig{
			FadeIn:        300 * time.Millisecond,
			FadeOut:       300 * time.Millisecond,
			WalkPulse:     250 * time.Millisecond,
			WalkSpeed:     6,
			LightsUp:      2 * time.Second,
			Extraction:    3 * time.Second,
			TriggerRadius: 1,
		},
		Trap: TrapConfig{
			Multiplier: 50 * time.Millisecond,
			Fade:       300 * time.Millisecond,
		},
		Puzzle: PuzzleConfig{
			Answer:    "Echo",
			Words:     []string{"Wind", "Echo", "Shadow", "Ghost"},
			TrapAt:    1,
			ExtractAt: 2,
		},
		Log: LogConfig{
			File:  "~/.purgatory/purgatory.log",
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPurgatoryYAML
}
