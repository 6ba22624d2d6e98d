// cubes is a terminal puzzle game about colored cubes that push, merge and
// absorb each other on a grid.
//
// Usage:
//
//	cubes levels             - List available levels
//	cubes play [level]       - Play, starting from the level picker or a level
//	cubes scores [level]     - Show the best runs
//	cubes serve              - Start SSH server for remote play
//	cubes replay <file>      - Verify a recorded session
//	cubes validate <path>... - Check level files
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search path)
//	--db <path>         - Runs database (default: from config)
//	--log-level <level> - debug, info, warn or error
//	--fps <rate>        - Frame rate (default: 60)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cube-arcade/internal/config"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/platform/tui"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagFPS      int
	flagTheme    string

	// appConfig is loaded before any subcommand runs.
	appConfig config.CubesConfig
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubes",
	Short: "Cubes - a puzzle of pushing and merging cubes in your terminal",
	Long: `Cubes is a terminal puzzle game. Steer the green cubes with the
arrow keys, push and merge the other cubes and cover every goal.

Available commands:
  levels    - Show all available levels
  play      - Play, from the level picker or a given level
  scores    - View the best runs
  serve     - Start SSH server for remote play
  replay    - Verify a recorded session
  validate  - Check level files

Examples:
  cubes levels
  cubes play
  cubes play 03-absorb --pace relaxed
  cubes play --dir ./levels --watch
  cubes serve --addr :2222
  cubes validate ./levels`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML (default: ~/.cubes/configs/cubes.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides storage.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DB = flagDBPath
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	tui.SetTheme(tui.ThemeByName(flagTheme))
	appConfig = cfg
	return nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cubes",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// levelDir returns the level directory from the flag or the config, with ~
// expanded. Empty means the built-in levels.
func levelDir(flagDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = appConfig.Levels.Dir
	}
	return config.ExpandHome(dir)
}

// loadLevels loads every valid level of dir and logs the invalid ones.
func loadLevels(dir string, logger *log.Logger) ([]levels.Level, error) {
	loader := levels.Open(dir)
	list, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	failures, err := loader.Check()
	if err != nil {
		return nil, err
	}
	for _, f := range failures {
		logger.Warn("skipping invalid level", "path", f.Path, "err", f.Err)
	}
	return list, nil
}
