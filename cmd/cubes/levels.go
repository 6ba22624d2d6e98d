package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the levels in play order: the built-in levels, or the level
files of --dir (or levels.dir from the config).`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "Level directory (default: built-in levels)")
}

func runLevels(_ *cobra.Command, _ []string) error {
	dir, err := levelDir(flagLevelsDir)
	if err != nil {
		return err
	}
	list, err := loadLevels(dir, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, lvl := range list {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxTitleLen = max(maxTitleLen, len(lvl.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Goals", "Author")
	fmt.Printf("  %-*s  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-----", "------")

	for _, lvl := range list {
		size := fmt.Sprintf("%dx%d", lvl.Seed.Size.Width, lvl.Seed.Size.Height)
		fmt.Printf("  %-*s  %-*s  %-7s  %-5d  %s\n", maxIDLen, lvl.ID, maxTitleLen, lvl.Title, size, lvl.Goals(), lvl.Author)
	}

	fmt.Println()
	fmt.Println("Run 'cubes play <id>' to play a level.")
	return nil
}
