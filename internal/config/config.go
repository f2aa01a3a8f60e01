// Package config provides YAML-based game configuration loading and
// difficulty management for BuildTree.
package config

import (
	"errors"
	"fmt"
	"time"
)

// BuildTreeConfig contains all configuration for the BuildTree game.
type BuildTreeConfig struct {
	Values     ValuesConfig     `yaml:"values" envPrefix:"VALUES_"`
	Timer      TimerConfig      `yaml:"timer" envPrefix:"TIMER_"`
	Popup      PopupConfig      `yaml:"popup"`
	Layout     LayoutConfig     `yaml:"layout" envPrefix:"LAYOUT_"`
	Difficulty DifficultyConfig `yaml:"difficulty" envPrefix:"DIFFICULTY_"`
}

// ValuesConfig defines the range numbers are drawn from: [Min, Max).
type ValuesConfig struct {
	Min int `yaml:"min" env:"MIN"`
	Max int `yaml:"max" env:"MAX"`
}

// TimerConfig defines the countdown.
type TimerConfig struct {
	Budget     time.Duration `yaml:"budget" env:"BUDGET"`           // Time on the clock at round start
	MoveBonus  time.Duration `yaml:"move_bonus" env:"MOVE_BONUS"`   // Added for every correct move
	WarnBelow  time.Duration `yaml:"warn_below" env:"WARN_BELOW"`   // Timer turns red at or below this
	ReadyDelay time.Duration `yaml:"ready_delay" env:"READY_DELAY"` // Pause between "Play" and the first tick
}

// PopupConfig defines dialog limits and proportions.
type PopupConfig struct {
	MaxTitle       int     `yaml:"max_title"`
	MaxMessage     int     `yaml:"max_message"`
	MaxLabel       int     `yaml:"max_label"`
	WrapRatio      float64 `yaml:"wrap_ratio"`       // Of screen width
	MinWidthRatio  float64 `yaml:"min_width_ratio"`  // Of half screen width
	MinHeightRatio float64 `yaml:"min_height_ratio"` // Of half screen height
	ButtonHeight   int     `yaml:"button_height"`
	ButtonGap      int     `yaml:"button_gap"`
}

// LayoutConfig defines screen requirements and how much of the tree is shown.
type LayoutConfig struct {
	MinWidth  int `yaml:"min_width" env:"MIN_WIDTH"`
	MinHeight int `yaml:"min_height" env:"MIN_HEIGHT"`
	ViewDepth int `yaml:"view_depth" env:"VIEW_DEPTH"` // Levels drawn below the cursor
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" env:"ENABLED"`
	InitialLevel float64           `yaml:"initial_level" env:"INITIAL_LEVEL"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Nodes placed / ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	BonusReduction float64 `yaml:"bonus_reduction"` // Fraction of the move bonus removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ErrUnknownPreset is returned by ParsePreset for names it does not know.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// ParsePreset converts a CLI value into a preset. The empty string maps to
// the empty preset, which leaves the loaded config untouched.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the config describes a playable game.
func (c BuildTreeConfig) Validate() error {
	switch {
	case c.Values.Min >= c.Values.Max:
		return fmt.Errorf("config: values.min (%d) must be below values.max (%d)", c.Values.Min, c.Values.Max)
	case c.Timer.Budget <= 0:
		return fmt.Errorf("config: timer.budget must be positive, got %s", c.Timer.Budget)
	case c.Timer.MoveBonus < 0:
		return fmt.Errorf("config: timer.move_bonus must not be negative, got %s", c.Timer.MoveBonus)
	case c.Timer.ReadyDelay < 0:
		return fmt.Errorf("config: timer.ready_delay must not be negative, got %s", c.Timer.ReadyDelay)
	case c.Popup.MaxTitle <= 0 || c.Popup.MaxMessage <= 0 || c.Popup.MaxLabel <= 0:
		return fmt.Errorf("config: popup text limits must be positive")
	case !ratio(c.Popup.WrapRatio) || !ratio(c.Popup.MinWidthRatio) || !ratio(c.Popup.MinHeightRatio):
		return fmt.Errorf("config: popup ratios must be in (0, 1]")
	case c.Popup.ButtonHeight <= 0 || c.Popup.ButtonGap < 0:
		return fmt.Errorf("config: popup button height must be positive and gap non-negative")
	case c.Layout.MinWidth <= 0 || c.Layout.MinHeight <= 0:
		return fmt.Errorf("config: layout minimum size must be positive")
	case c.Layout.ViewDepth < 1:
		return fmt.Errorf("config: layout.view_depth must be at least 1, got %d", c.Layout.ViewDepth)
	}

	switch c.Difficulty.Progression.Type {
	case "", "score", "time", "none":
	default:
		return fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

func ratio(v float64) bool {
	return v > 0 && v <= 1
}
