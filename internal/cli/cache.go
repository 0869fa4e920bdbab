package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand groups management of the local layout-result cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached layout results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand removes every cached layout. Entries live one file per
// layout under two-character shard directories (see cache.FileCache).
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layout results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache dir: %w", err)
			}

			shards, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Layout cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			removed := 0
			for _, shard := range shards {
				if !shard.IsDir() {
					continue
				}
				shardPath := filepath.Join(dir, shard.Name())
				entries, err := os.ReadDir(shardPath)
				if err != nil {
					continue
				}
				for _, e := range entries {
					if !e.IsDir() {
						removed++
					}
				}
				if err := os.RemoveAll(shardPath); err != nil {
					return fmt.Errorf("remove shard %s: %w", shard.Name(), err)
				}
			}

			printSuccess("Removed %d cached layout%s", removed, plural(removed, "", "s"))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand prints the cache directory, for scripting and inspection.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the layout cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
