package graphio

import (
	"encoding/json"
	"fmt"

	"github.com/scopeviz/scopetree/pkg/layout"
	"github.com/scopeviz/scopetree/pkg/object"
)

// Direction wire names.
const (
	DirectionLeftToRight = "lr"
	DirectionTopToBottom = "tb"
)

// =============================================================================
// Graph - Object Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for object-graph snapshots.
// Used for CLI round trips, the HTTP API, caching, and storage.
//
// The format is human-readable and designed for round-trip fidelity:
// snapshot → export → re-import produces an identical graph.
type Graph struct {
	Root  string `json:"root" bson:"root"`
	Nodes []Node `json:"nodes" bson:"nodes"`
}

// Node is one serialized object-graph node.
type Node struct {
	ID         string     `json:"id" bson:"id"`
	Type       string     `json:"type,omitempty" bson:"type,omitempty"`
	Value      string     `json:"value,omitempty" bson:"value,omitempty"`
	Properties []Property `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Property is one serialized named member. Target and Value are mutually
// exclusive: a reference property carries a target node ID, a leaf property
// carries its rendered value.
type Property struct {
	Name   string `json:"name" bson:"name"`
	Value  string `json:"value,omitempty" bson:"value,omitempty"`
	Target string `json:"target,omitempty" bson:"target,omitempty"`
}

// FromObject converts an object graph to its serialization format.
// Nodes keep their insertion order for deterministic output.
func FromObject(g *object.Graph) Graph {
	out := Graph{Nodes: make([]Node, 0, g.NodeCount())}
	if root := g.Root(); root != nil {
		out.Root = root.ID
	}
	for _, n := range g.Nodes() {
		node := Node{ID: n.ID, Type: n.TypeName, Value: n.Value}
		for _, p := range n.Properties {
			node.Properties = append(node.Properties, Property{
				Name:   p.Name,
				Value:  p.Value,
				Target: p.Target,
			})
		}
		out.Nodes = append(out.Nodes, node)
	}
	return out
}

// ToObject converts a serialized Graph back to an object graph.
// Returns an error if node IDs collide, the root is unknown, or a property
// dangles.
func ToObject(gw Graph) (*object.Graph, error) {
	g := object.New()
	for _, nw := range gw.Nodes {
		n := object.Node{ID: nw.ID, TypeName: nw.Type, Value: nw.Value}
		for _, pw := range nw.Properties {
			n.Properties = append(n.Properties, object.Property{
				Name:   pw.Name,
				Value:  pw.Value,
				Target: pw.Target,
			})
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nw.ID, err)
		}
	}
	if err := g.SetRoot(gw.Root); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Layout - Positioned Graph Serialization
// =============================================================================

// Layout is the serialization format for a computed layout: final node
// geometry plus routed edges, ready for a rendering layer to draw.
type Layout struct {
	Direction string       `json:"direction" bson:"direction"`
	Width     float64      `json:"width" bson:"width"`
	Height    float64      `json:"height" bson:"height"`
	Nodes     []PlacedNode `json:"nodes" bson:"nodes"`
	Edges     []PlacedEdge `json:"edges,omitempty" bson:"edges,omitempty"`
}

// PlacedNode carries the final geometry of one node.
type PlacedNode struct {
	ID          string  `json:"id" bson:"id"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"`
	Left        float64 `json:"left" bson:"left"`
	Top         float64 `json:"top" bson:"top"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	SubtreeSize float64 `json:"subtree_size,omitempty" bson:"subtree_size,omitempty"`
}

// PlacedEdge carries one routed edge. From is the owning node, Property the
// source member, To the target node.
type PlacedEdge struct {
	From     string         `json:"from" bson:"from"`
	Property string         `json:"property" bson:"property"`
	To       string         `json:"to" bson:"to"`
	Path     []layout.Point `json:"path,omitempty" bson:"path,omitempty"`
}

// FromLayout converts a fully positioned graph to its serialization format.
// Frame dimensions are the bounding box of all placed nodes.
func FromLayout(g *layout.Graph, dir layout.Direction) Layout {
	out := Layout{Direction: dir.String()}
	for _, n := range g.Nodes {
		out.Nodes = append(out.Nodes, PlacedNode{
			ID:          n.ID,
			Label:       n.Label,
			Left:        n.Left,
			Top:         n.Top,
			Width:       n.Width,
			Height:      n.Height,
			SubtreeSize: n.SubtreeSize,
		})
		if right := n.Left + n.Width; right > out.Width {
			out.Width = right
		}
		if bottom := n.Top + n.Height; bottom > out.Height {
			out.Height = bottom
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, PlacedEdge{
			From:     e.Source.Owner.ID,
			Property: e.Name,
			To:       e.Target.ID,
			Path:     e.Path,
		})
	}
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates that
// the direction and node set are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Direction == "" {
		l.Direction = DirectionLeftToRight
	}
	if len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain nodes")
	}
	return l, nil
}
