package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scopeviz/scopetree/pkg/graphio"
	"github.com/scopeviz/scopetree/pkg/object"
)

// inspectCommand creates the inspect command for examining snapshots.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [snapshot.json]",
		Short: "Show snapshot statistics or browse expansion state",
		Long: `Show statistics about an object-graph snapshot.

With --interactive, opens a terminal browser over the snapshot's nodes and
properties. Toggling a property expanded mirrors what the visualizer would
show, and quitting prints the matching --expand flags for the layout command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graphio.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot %s: %w", args[0], err)
			}

			if interactive {
				return c.runExplorer(g, args[0])
			}

			root := g.Root()
			printKeyValue("root", root.ID)
			printKeyValue("nodes", fmt.Sprintf("%d", g.NodeCount()))
			printKeyValue("references", fmt.Sprintf("%d", g.ReferenceCount()))
			printNextStep("Compute a layout", fmt.Sprintf("scopetree layout %s", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse nodes and toggle expansion state")
	return cmd
}

// runExplorer runs the bubbletea expansion-state explorer and prints the
// selected expansion as layout flags.
func (c *CLI) runExplorer(g *object.Graph, input string) error {
	p := tea.NewProgram(NewExplorerModel(g))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run explorer: %w", err)
	}

	m := final.(ExplorerModel)
	flags := m.ExpansionFlags()
	if len(flags) == 0 {
		printInfo("No properties expanded")
		return nil
	}

	var sb strings.Builder
	sb.WriteString("scopetree layout " + input)
	for _, f := range flags {
		sb.WriteString(" --expand " + f)
	}
	printSuccess("%d propert%s expanded", len(flags), plural(len(flags), "y", "ies"))
	printNextStep("Lay out with this expansion", sb.String())
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
