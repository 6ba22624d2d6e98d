package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cube-arcade/internal/config"
	"github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/platform/tui"
	"github.com/vovakirdan/cube-arcade/internal/registry"
	"github.com/vovakirdan/cube-arcade/internal/replay"
	"github.com/vovakirdan/cube-arcade/internal/storage"
)

var (
	flagPlayDir string
	flagWatch   bool
	flagRecord  string
	flagPace    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Cubes",
	Long: `Start playing. Without a level id the level picker opens; with one,
that level starts right away and solving it continues with the next.

Controls:
  Arrows/WASD  - Move the green cubes
  Enter        - Next level (after solving)
  R            - Restart the level
  P/Esc        - Pause (Esc again returns to the level picker)
  Ctrl+S       - Save a screenshot to ~/.cubes/screenshots
  Q/Ctrl+C     - Quit

Pace options:
  relaxed - 3 ticks per second
  normal  - 5 ticks per second
  fast    - 10 ticks per second

A recording written with --record can be checked with 'cubes replay'.
A bare file name is placed in replay.dir from the config.

Examples:
  cubes play
  cubes play 02-corridor
  cubes play --pace relaxed
  cubes play --dir ./levels --watch
  cubes play --record session.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayDir, "dir", "", "Level directory (default: built-in levels)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record every tick to this file")
	playCmd.Flags().StringVar(&flagPace, "pace", "", "Timing preset: relaxed, normal, fast")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if flagPace != "" {
		pace, err := config.ParsePace(flagPace)
		if err != nil {
			return err
		}
		config.ApplyPace(&cfg, pace)
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	dir, err := levelDir(flagPlayDir)
	if err != nil {
		return err
	}
	list, err := loadLevels(dir, logger)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no levels found in %s", dir)
	}

	startID := ""
	if len(args) == 1 {
		startID = args[0]
		if !hasLevel(list, startID) {
			return fmt.Errorf("%w: %q (run 'cubes levels' to see available levels)", levels.ErrLevelNotFound, startID)
		}
	}

	watchDir := ""
	if flagWatch || cfg.Levels.Watch {
		if dir == "" {
			logger.Warn("built-in levels cannot be watched")
		} else {
			watchDir = dir
		}
	}

	opts := []cubes.Option{
		cubes.WithLevels(list),
		cubes.WithPlayer(cfg.PlayerKind()),
		cubes.WithTiming(cfg.Timing.StepFrames, cfg.Timing.RemakeFrames),
		cubes.WithLogger(logger),
	}

	if flagRecord != "" {
		rec, err := openRecording(flagRecord, cfg, firstLevel(list, startID))
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("cannot finish recording", "err", err)
			}
			logger.Info("recording saved", "ticks", rec.Count())
		}()
		opts = append(opts, cubes.WithRecorder(rec))
	}

	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	playOpts := tui.PlayOptions{
		Player:   playerName(),
		WatchDir: watchDir,
		Logger:   logger,
	}

	play := func(levelID string) (bool, error) {
		cubes.Configure(append(opts, cubes.WithStartLevel(levelID))...)
		game, err := registry.Create(cubes.ID)
		if err != nil {
			return false, err
		}
		return tui.Run(cmd.Context(), game, store, rc, playOpts)
	}

	if startID != "" {
		_, err := play(startID)
		return err
	}

	// Level picker loop
	for {
		result, err := tui.RunMenu(store, list, rc)
		if err != nil {
			return err
		}
		rc = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, list, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		back, err := play(result.Item.LevelID)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// fileLogger opens ~/.cubes/cubes.log for appending.
func fileLogger() (*log.Logger, func(), error) {
	path, err := config.ExpandHome("~/.cubes/cubes.log")
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f), func() { f.Close() }, nil
}

// openRecording starts a recording. Bare file names go to replay.dir.
func openRecording(name string, cfg config.CubesConfig, level string) (*replay.Recorder, error) {
	path := name
	if !strings.ContainsRune(name, filepath.Separator) && cfg.Replay.Dir != "" {
		dir, err := config.ExpandHome(cfg.Replay.Dir)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, name)
	}
	return replay.Create(path, replay.Header{
		Version: replay.Version,
		Level:   level,
		Player:  cfg.PlayerKind().String(),
	})
}

func hasLevel(list []levels.Level, id string) bool {
	for _, lvl := range list {
		if lvl.ID == id {
			return true
		}
	}
	return false
}

func firstLevel(list []levels.Level, startID string) string {
	if startID != "" || len(list) == 0 {
		return startID
	}
	return list[0].ID
}

// playerName is stored with each local run.
func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}
