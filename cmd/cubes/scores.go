package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/platform/tui"
	"github.com/vovakirdan/cube-arcade/internal/storage"
)

var (
	flagScoresDir   string
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Without a level id, opens the interactive scoreboard. With one, prints
the best solved runs of that level: fewest moves first, then fewest ticks.

Examples:
  cubes scores
  cubes scores 01-first-steps
  cubes scores 03-absorb --limit 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDir, "dir", "", "Level directory (default: built-in levels)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(appConfig.Storage.DB)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	dir, err := levelDir(flagScoresDir)
	if err != nil {
		return err
	}
	list, err := loadLevels(dir, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, list, width, height)
		return err
	}

	levelID := args[0]
	title := levelID
	lvl, err := levels.Open(dir).LoadByID(levelID)
	switch {
	case err == nil:
		title = lvl.Title
	case !errors.Is(err, levels.ErrLevelNotFound):
		return err
	}

	runs, err := store.BestRuns(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No solved runs yet.")
		fmt.Println()
		fmt.Printf("Play 'cubes play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Moves", "Ticks", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-12s  %s\n", i+1, r.Moves, r.Ticks, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.LevelStats()
	if err != nil {
		return err
	}
	for _, st := range stats {
		if st.LevelID == levelID {
			fmt.Println()
			fmt.Printf("Attempts: %d  Solved: %d  Best: %d moves\n", st.Attempts, st.Solves, st.BestMoves)
		}
	}
	return nil
}
