package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/buildtree/internal/config"
	"github.com/vovakirdan/buildtree/internal/games/buildtree"
	"github.com/vovakirdan/buildtree/internal/platform/tui"
	"github.com/vovakirdan/buildtree/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (default: buildtree).

Controls:
  Left/A/H    - The number is smaller: go left
  Right/D/L   - The number is larger: go right
  Enter/Space - Press the focused popup button
  Mouse       - Click popup buttons
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - More time, full bonus on every move
  normal - Bonus time shrinks as the tree grows
  hard   - Less time, bonus shrinks from the start
  fixed  - No progression, full bonus on every move

Examples:
  buildtree play
  buildtree play buildtree_practice
  buildtree play --difficulty easy
  buildtree play --config ./my-buildtree.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultMode
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'buildtree list' to see available modes", gameID)
	}

	if err := prepareConfig(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// prepareConfig resolves --config and --difficulty before the terminal is
// taken over, then hands them to the game package.
func prepareConfig() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, source, err := config.Load(flagConfig, preset)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Info("config resolved",
		"source", source,
		"preset", preset,
		"budget", cfg.Timer.Budget,
		"bonus", cfg.Timer.MoveBonus,
		"min", cfg.Values.Min,
		"max", cfg.Values.Max,
		"difficulty", cfg.Difficulty.Enabled,
	)

	buildtree.SetConfigPath(flagConfig)
	buildtree.SetDifficultyPreset(flagDifficulty)
	return nil
}
