package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
	"github.com/vovakirdan/cube-arcade/internal/replay"
)

var flagReplayDir string

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a recorded session",
	Long: `Re-runs every attempt of a recording made with 'cubes play --record'
and compares the engine state after each tick with the recorded digest.
Exits with an error at the first divergence.

Examples:
  cubes replay session.jsonl.zst
  cubes replay ./mine.jsonl.zst --dir ./levels`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayDir, "dir", "", "Level directory the recording was made with (default: built-in levels)")
}

func runReplay(_ *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)

	header, records, err := replay.Open(args[0])
	if err != nil {
		return err
	}
	player, err := core.ParseKind(header.Player)
	if err != nil {
		return fmt.Errorf("replay: header: %w", err)
	}

	dir, err := levelDir(flagReplayDir)
	if err != nil {
		return err
	}
	loader := levels.Open(dir)

	attempts := replay.Attempts(records)
	logger.Debug("recording loaded", "records", len(records), "attempts", len(attempts), "player", player)

	fmt.Printf("Recording %s: %d ticks in %d attempts\n", args[0], len(records), len(attempts))
	fmt.Println()

	for i, a := range attempts {
		lvl, err := loader.LoadByID(a.Level)
		if err != nil {
			return fmt.Errorf("attempt %d: %w", i+1, err)
		}

		div, err := replay.Verify(lvl.Seed, a.Records, core.WithPlayer(player))
		if err != nil {
			return fmt.Errorf("attempt %d: %w", i+1, err)
		}
		if div != nil {
			fmt.Printf("  %3d  %-20s  DIVERGED\n", i+1, a.Level)
			logger.Error("replay diverged", "attempt", i+1, "level", a.Level, "record", div.Index)
			return div
		}

		solved := ""
		if solvedAfter(lvl, a.Records, player) {
			solved = "  solved"
		}
		fmt.Printf("  %3d  %-20s  %d ticks ok%s\n", i+1, a.Level, len(a.Records), solved)
	}

	fmt.Println()
	fmt.Println("Recording verified.")
	return nil
}

// solvedAfter replays records and reports whether the level ends solved.
func solvedAfter(lvl levels.Level, records []replay.Record, player core.Kind) bool {
	state := lvl.NewState(core.WithPlayer(player))
	for _, rec := range records {
		m, err := core.ParseMovement(rec.Input)
		if err != nil {
			return false
		}
		if rec.Remake {
			state.Remake(m)
		} else {
			state.Commit(m)
		}
	}
	return state.Solved()
}
