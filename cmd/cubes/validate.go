package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Check level files",
	Long: `Parses and schema-checks level files. Directories are scanned
recursively for .toml, .yaml and .yml files. Every invalid file is
reported with its error; the command fails if any file is invalid.

Examples:
  cubes validate ./levels
  cubes validate my-level.toml other.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)

	valid, invalid := 0, 0
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			lvl, err := levels.ReadFile(p)
			if err != nil {
				logger.Error("invalid level", "path", p, "err", err)
				invalid++
				continue
			}
			fmt.Printf("ok  %s  (%s)\n", p, lvl.Title)
			valid++
			continue
		}

		loader := levels.NewLoader(p)
		list, err := loader.LoadAll()
		if err != nil {
			return err
		}
		failures, err := loader.Check()
		if err != nil {
			return err
		}
		for _, lvl := range list {
			fmt.Printf("ok  %s  (%s)\n", lvl.FilePath, lvl.Title)
		}
		for _, f := range failures {
			logger.Error("invalid level", "path", f.Path, "err", f.Err)
		}
		valid += len(list)
		invalid += len(failures)
	}

	fmt.Printf("\n%d valid, %d invalid\n", valid, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid level files", invalid)
	}
	return nil
}
