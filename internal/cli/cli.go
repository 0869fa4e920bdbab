// Package cli implements the scopetree command-line interface.
//
// This package provides commands for computing tree layouts from object
// graph snapshots, exploring expansion state interactively, running the
// layout HTTP service, and managing the layout cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a tidy-tree layout from a snapshot file
//   - inspect: Show snapshot statistics or browse expansion state
//   - serve: Run the layout HTTP API
//   - cache: Manage the layout result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scopeviz/scopetree/pkg/buildinfo"
	"github.com/scopeviz/scopetree/pkg/cache"
	"github.com/scopeviz/scopetree/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "scopetree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "scopetree",
		Short:        "Scopetree lays out object graphs as tidy trees",
		Long:         `Scopetree computes tidy-tree layouts for debugger object-graph snapshots: nodes get positions, cycles and shared references become overlay edges on a spanning tree, and the result is ready for any renderer to draw.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A zero ttl keeps the
// pipeline default.
func (c *CLI) newRunner(noCache bool, ttl time.Duration) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cache, nil, c.Logger)
	runner.CacheTTL = ttl
	return runner, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scopetree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives the default output file for a given input file by
// replacing its extension: snapshot.json -> snapshot.layout.json.
func outputPath(input, suffix string) string {
	base := input[:len(input)-len(filepath.Ext(input))]
	return base + suffix
}
