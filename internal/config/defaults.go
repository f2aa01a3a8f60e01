package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/buildtree.yaml
var defaultBuildTreeYAML []byte

// DefaultBuildTreeConfig returns the default BuildTree configuration.
// It matches defaults/buildtree.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBuildTreeConfig() BuildTreeConfig {
	return BuildTreeConfig{
		Values: ValuesConfig{
			Min: 50,
			Max: 150,
		},
		Timer: TimerConfig{
			Budget:     15 * time.Second,
			MoveBonus:  500 * time.Millisecond,
			WarnBelow:  1500 * time.Millisecond,
			ReadyDelay: 800 * time.Millisecond,
		},
		Popup: PopupConfig{
			MaxTitle:       25,
			MaxMessage:     150,
			MaxLabel:       10,
			WrapRatio:      0.8,
			MinWidthRatio:  0.9,
			MinHeightRatio: 0.8,
			ButtonHeight:   3,
			ButtonGap:      1,
		},
		Layout: LayoutConfig{
			MinWidth:  40,
			MinHeight: 16,
			ViewDepth: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				BonusReduction: 0.6,
			},
		},
	}
}
