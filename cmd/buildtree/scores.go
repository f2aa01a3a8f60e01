package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/buildtree/internal/platform/tui"
	"github.com/vovakirdan/buildtree/internal/registry"
	"github.com/vovakirdan/buildtree/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best recorded runs for a mode, ranked by nodes placed
and then by round time. Without a mode, prints a summary of every mode played.

Examples:
  buildtree scores
  buildtree scores buildtree --limit 20
  buildtree scores buildtree_practice --interactive
  buildtree scores buildtree --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown mode %q, run 'buildtree list' to see available modes", gameID)
		}
	}

	if flagDBPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), `Run recording is off (--db "").`)
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if gameID == "" {
			return errors.New("--clear needs a mode")
		}
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		logger.Info("runs cleared", "game", gameID)
		fmt.Printf("Cleared runs for %s.\n", gameID)
		return nil

	case flagInteractive:
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
		return err

	case gameID == "":
		return printSummary(store)
	}

	return printRuns(store, gameID)
}

func printRuns(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'buildtree play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-5s  %-9s  %-10s  %s\n", "Rank", "Nodes", "Depth", "Time", "Ended", "Date")
	fmt.Printf("  %-4s  %-5s  %-5s  %-9s  %-10s  %s\n", "----", "-----", "-----", "----", "-----", "----")

	for i, r := range runs {
		row := tui.RunRow(i+1, r)
		fmt.Printf("  %-4d  %-5d  %-5d  %-9s  %-10s  %s\n",
			i+1, r.Score, r.Depth, row[3], row[4], r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Deepest: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.MaxDepth)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-20s  %-5s  %-5s  %-9s  %s\n", "Mode", "Runs", "Best", "Fastest", "Last played")
	fmt.Printf("  %-20s  %-5s  %-5s  %-9s  %s\n", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-20s  %-5d  %-5d  %-9s  %s\n",
			id, s.GamesCount, s.HighScore,
			fmt.Sprintf("%.3fs", s.BestTime.Seconds()),
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
