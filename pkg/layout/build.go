package layout

import (
	"fmt"

	"github.com/scopeviz/scopetree/pkg/object"
)

// Build converts an object graph plus the visualizer's expansion state into
// an unpositioned Graph ready for [Engine.Layout].
//
// Construction is two-phase: all positioned nodes are created and indexed
// first, then edges are wired from each reference property to the already
// constructed node of its target. That way no edge ever needs a forward
// reference or late back-patching.
//
// Each node's Width and Height are measured from its displayed content under
// the given expansion state. A nil measurer falls back to [NewTextMeasurer].
//
// Build fails only on caller contract violations: an expansion state naming
// a node absent from the graph (ErrUnknownNode), a property targeting a node
// absent from the node set (ErrDanglingReference), or a graph with no root
// (ErrMissingRoot).
func Build(src *object.Graph, state ExpansionState, m Measurer) (*Graph, error) {
	if src == nil || src.Root() == nil {
		return nil, ErrMissingRoot
	}
	if m == nil {
		m = NewTextMeasurer()
	}
	for id := range state {
		if src.Node(id) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}

	g := &Graph{byID: make(map[string]*Node, src.NodeCount())}

	// Phase 1: one positioned node per object node, measured but unplaced.
	for _, on := range src.Nodes() {
		n := &Node{
			ID:    on.ID,
			Label: nodeLabel(on.TypeName, on.Value),
		}
		for _, op := range on.Properties {
			n.Properties = append(n.Properties, &Property{
				Name:     op.Name,
				Value:    op.Value,
				Expanded: state.IsExpanded(on.ID, op.Name),
				Owner:    n,
			})
		}
		n.Width, n.Height = m.Measure(n.Label, n.Properties)
		g.Nodes = append(g.Nodes, n)
		g.byID[n.ID] = n
	}

	// Phase 2: wire edges now that every target is resolvable.
	for _, on := range src.Nodes() {
		n := g.byID[on.ID]
		for i, op := range on.Properties {
			if !op.IsReference() {
				continue
			}
			target, ok := g.byID[op.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s -> %s", ErrDanglingReference, on.ID, op.Name, op.Target)
			}
			prop := n.Properties[i]
			prop.Edge = &Edge{Name: op.Name, Source: prop, Target: target}
		}
	}

	g.Root = g.byID[src.Root().ID]
	return g, nil
}
