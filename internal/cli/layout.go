package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scopeviz/scopetree/pkg/config"
	"github.com/scopeviz/scopetree/pkg/graphio"
	"github.com/scopeviz/scopetree/pkg/pipeline"
)

// spinnerThreshold is the node count above which the layout command shows a
// progress spinner instead of running silently.
const spinnerThreshold = 500

// layoutCommand creates the layout command for computing tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		expand     []string
		configPath string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Compute a tidy-tree layout from an object-graph snapshot",
		Long: `Compute a tidy-tree layout from an object-graph snapshot.

The layout command takes a snapshot.json file (an object graph with a root
and named properties) and computes node positions and routed edges. The
output is a layout.json file ready for a rendering layer to draw.

Cycles and shared references are allowed in the snapshot; layout picks a
spanning tree rooted at the snapshot's root and places the remaining edges
as overlays.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Config file values apply only where no flag was given.
			f := cmd.Flags()
			if !f.Changed("direction") && cfg.Layout.Direction != "" {
				opts.Direction = cfg.Layout.Direction
			}
			if !f.Changed("margin-x") {
				opts.MarginX = cfg.Layout.MarginX
			}
			if !f.Changed("margin-y") {
				opts.MarginY = cfg.Layout.MarginY
			}
			if !f.Changed("max-depth") {
				opts.MaxDepth = cfg.Layout.MaxDepth
			}
			if !f.Changed("max-nodes") {
				opts.MaxNodes = cfg.Layout.MaxNodes
			}
			opts.Expansion, err = parseExpandFlags(expand)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, cfg.Cache.TTL.Duration())
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&configPath, "config", "scopetree.toml", "path to config file")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "lr", "layout direction: lr (left-to-right), tb (top-to-bottom)")
	cmd.Flags().Float64Var(&opts.MarginX, "margin-x", 0, "horizontal margin around nodes (default 30)")
	cmd.Flags().Float64Var(&opts.MarginY, "margin-y", 0, "vertical margin around nodes (default 30)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "fail layouts deeper than this (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", 0, "fail layouts larger than this (0 = unlimited)")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "show a property expanded, as node:property (repeatable)")

	return cmd
}

// runLayout loads the snapshot, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, cacheTTL time.Duration) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache, cacheTTL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var sp *spinner
	if g.NodeCount() > spinnerThreshold {
		sp = newSpinner(ctx, fmt.Sprintf("laying out %d nodes...", g.NodeCount()))
		sp.Start()
	}

	p := newProgress(c.Logger)
	result, err := runner.Execute(ctx, g, opts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Placed %d nodes", result.Stats.NodeCount))

	if output == "" {
		output = outputPath(input, ".layout.json")
	}
	if err := graphio.WriteLayoutFile(result.Layout, output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	printSuccess("Layout written")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printDetail("frame: %.0f×%.0f  direction: %s", result.Layout.Width, result.Layout.Height, result.Layout.Direction)
	return nil
}

// parseExpandFlags converts repeated node:property flags to the pipeline's
// expansion map.
func parseExpandFlags(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	expansion := make(map[string][]string)
	for _, f := range flags {
		node, prop, ok := strings.Cut(f, ":")
		if !ok || node == "" || prop == "" {
			return nil, fmt.Errorf("invalid --expand value %q (want node:property)", f)
		}
		expansion[node] = append(expansion[node], prop)
	}
	return expansion, nil
}
