package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the placement and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. The file cache
// keeps one subdirectory per pipeline stage (boards, placements, artifacts),
// so the command can report what it removed per stage.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached boards, placements, and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			counts, err := clearCache(dir)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				printInfo("Cache is empty")
				return nil
			}

			total := 0
			stages := make([]string, 0, len(counts))
			for stage, n := range counts {
				stages = append(stages, stage)
				total += n
			}
			sort.Strings(stages)

			printSuccess("Cleared %d cached entries", total)
			for _, stage := range stages {
				printDetail("%s: %d", stage, counts[stage])
			}
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearCache removes every entry under dir and returns the number removed
// per stage subdirectory. A missing or empty cache yields an empty map.
func clearCache(dir string) (map[string]int, error) {
	stages, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, stage := range stages {
		if !stage.IsDir() {
			continue
		}
		stageDir := filepath.Join(dir, stage.Name())
		entries, err := os.ReadDir(stageDir)
		if err != nil {
			continue
		}
		n := 0
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".json") {
				n++
			}
		}
		if err := os.RemoveAll(stageDir); err != nil {
			return counts, err
		}
		if n > 0 {
			counts[stage.Name()] = n
		}
	}
	return counts, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
