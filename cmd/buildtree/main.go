// buildtree is a terminal game for practicing binary search tree insertion.
//
// Usage:
//
//	buildtree list              - List available modes
//	buildtree play [mode]       - Play a mode (default: buildtree)
//	buildtree menu              - Pick a mode interactively
//	buildtree scores [mode]     - Show the best recorded runs
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible rounds
//	--db <path>        - Set database path (default: ~/.buildtree/runs.db, "" to disable)
//	--log-file <path>  - Write logs to a file
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/buildtree/internal/core"
	"github.com/vovakirdan/buildtree/internal/storage"
	"github.com/vovakirdan/buildtree/internal/telemetry"

	// Import games to register them
	_ "github.com/vovakirdan/buildtree/internal/games/buildtree"
)

// defaultMode is played when no mode is named.
const defaultMode = "buildtree"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool

	logger    = telemetry.Discard()
	logCloser io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "buildtree",
	Short: "BuildTree - insert numbers into a binary search tree against the clock",
	Long: `BuildTree shows a number and the current node of a binary search tree.
Press left if the number is smaller, right if it is larger, and keep going
until it lands in an empty slot. Correct moves add time; a wrong move or an
empty clock ends the round.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View the best runs

Examples:
  buildtree play
  buildtree play buildtree_practice
  buildtree play --difficulty hard
  buildtree scores buildtree --interactive`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, closer, err := telemetry.NewLogger(flagLogFile, flagDebug)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.buildtree/runs.db", "Path to runs database (empty disables recording)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run log. Play continues without it on failure,
// and an empty --db path turns recording off.
func openStore(l *log.Logger) *storage.Store {
	if flagDBPath == "" {
		l.Info("run recording off")
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		l.Warn("could not open runs database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}
