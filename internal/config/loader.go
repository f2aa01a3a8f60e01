package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "buildtree.yaml"

// EnvPrefix prefixes every environment override, e.g. BUILDTREE_TIMER_BUDGET.
const EnvPrefix = "BUILDTREE_"

// Source records where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadBuildTree loads BuildTree configuration.
// Search order: customPath -> ~/.buildtree/configs/buildtree.yaml -> ./configs/buildtree.yaml -> embedded default.
// Files are decoded over the embedded defaults, so they only need the keys
// they change.
func LoadBuildTree(customPath string) (BuildTreeConfig, Source, error) {
	base, baseSrc := embeddedDefaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, SourceCustom, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(data, base)
		if err != nil {
			return base, SourceCustom, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data, base); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := decode(data, base); err == nil {
			return cfg, SourceLocal, nil
		}
	}

	return base, baseSrc, nil
}

// embeddedDefaults decodes the embedded YAML, falling back to the
// hardcoded defaults if it is broken.
func embeddedDefaults() (BuildTreeConfig, Source) {
	cfg, err := decode(defaultBuildTreeYAML, DefaultBuildTreeConfig())
	if err != nil {
		return DefaultBuildTreeConfig(), SourceBuiltin
	}
	return cfg, SourceEmbedded
}

// decode unmarshals data on top of base.
func decode(data []byte, base BuildTreeConfig) (BuildTreeConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".buildtree", "configs", filename)
}

// ApplyEnv overrides config values from BUILDTREE_* environment variables.
// A nil environ reads the process environment.
func ApplyEnv(cfg *BuildTreeConfig, environ map[string]string) error {
	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// ApplyBuildTreePreset modifies the config based on a difficulty preset.
func ApplyBuildTreePreset(cfg *BuildTreeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}

	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the clock based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timer.Budget = 20 * time.Second
		cfg.Timer.MoveBonus = 750 * time.Millisecond
		cfg.Difficulty.Enabled = false
	case DifficultyHard:
		cfg.Timer.Budget = 10 * time.Second
		cfg.Timer.MoveBonus = 500 * time.Millisecond
		cfg.Difficulty.Progression.Type = "score"
	}
}

// Load resolves the full runtime config: file search, preset, then
// environment overrides, then validation.
func Load(customPath string, preset DifficultyPreset) (BuildTreeConfig, Source, error) {
	cfg, src, err := LoadBuildTree(customPath)
	if err != nil {
		return cfg, src, err
	}
	ApplyBuildTreePreset(&cfg, preset)
	if err := ApplyEnv(&cfg, nil); err != nil {
		return cfg, src, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}
