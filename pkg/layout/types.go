package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDirection is returned by [ParseDirection] for unrecognized
	// direction names.
	ErrInvalidDirection = errors.New("invalid layout direction")

	// ErrMissingRoot is returned by [Build] and [Engine.Layout] when the
	// graph has no root node. There is no partial layout mode; the call
	// fails outright.
	ErrMissingRoot = errors.New("positioned graph has no root")

	// ErrUnknownNode is returned by [Build] when the expansion state
	// references a node that is not part of the object graph. This is a
	// caller contract violation.
	ErrUnknownNode = errors.New("expansion state references unknown node")

	// ErrDanglingReference is returned by [Build] when an object-graph
	// property targets a node absent from the node set.
	ErrDanglingReference = errors.New("property references unknown node")

	// ErrDepthLimit is returned by [Engine.Layout] when traversal exceeds
	// the configured maximum tree depth.
	ErrDepthLimit = errors.New("layout exceeds depth limit")

	// ErrNodeLimit is returned by [Engine.Layout] when the graph exceeds
	// the configured maximum node count.
	ErrNodeLimit = errors.New("layout exceeds node limit")
)

// Direction selects which physical axis tree ranks progress along.
// It is fixed at engine construction; all position math is written once in
// terms of main/lateral axes and mapped through the direction.
type Direction int

const (
	// LeftToRight lays ranks out horizontally: main axis = X, lateral = Y.
	LeftToRight Direction = iota
	// TopToBottom lays ranks out vertically: main axis = Y, lateral = X.
	TopToBottom
)

// String returns the short wire name of the direction ("lr" or "tb").
func (d Direction) String() string {
	if d == TopToBottom {
		return "tb"
	}
	return "lr"
}

// ParseDirection converts a wire name to a Direction. Accepted values are
// "lr", "left-to-right", "tb", and "top-to-bottom".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "lr", "left-to-right":
		return LeftToRight, nil
	case "tb", "top-to-bottom":
		return TopToBottom, nil
	default:
		return LeftToRight, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Point is a coordinate in layout units.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is the positioned counterpart of one object-graph node, created 1:1
// during [Build]. Width and Height are measured before layout; Left, Top,
// and SubtreeSize are computed by [Engine.Layout]. SubtreeSize is only
// valid after the first layout pass; Left and Top only after the second.
//
// Nodes are owned exclusively by their Graph for one layout run and are
// never shared across runs.
type Node struct {
	ID     string // identity of the underlying object-graph node
	Label  string // display label, derived from the object's type
	Width  float64
	Height float64
	Left   float64
	Top    float64

	// SubtreeSize is the lateral span this node and its tree descendants
	// reserve, computed bottom-up during the sizing pass.
	SubtreeSize float64

	// Properties mirrors the object node's ordered property list.
	Properties []*Property
}

// Property wraps one object-graph property together with its optional
// outgoing edge. Edge is nil for leaf values.
type Property struct {
	Name     string
	Value    string
	Expanded bool // whether the property is shown in expanded form
	Owner    *Node
	Edge     *Edge
}

// Edge connects a property to the positioned node of its target. Several
// edges may share a target (shared references); which of them act as tree
// edges is decided per layout run and never persisted here. Path is filled
// in by a [Router] after positions are final.
type Edge struct {
	Name   string
	Source *Property
	Target *Node
	Path   []Point
}

// Graph is the mutable per-run structure the layout engine operates on.
// It is built fresh for every layout invocation and discarded when the
// expansion state or snapshot changes.
type Graph struct {
	Root  *Node
	Nodes []*Node // insertion order of the source object graph

	byID map[string]*Node
}

// Node returns the positioned node for the given object-graph identity,
// or nil if it does not exist.
func (g *Graph) Node(id string) *Node { return g.byID[id] }

// Edges collects every edge in deterministic order: nodes in insertion
// order, properties in declaration order.
func (g *Graph) Edges() []*Edge {
	var out []*Edge
	for _, n := range g.Nodes {
		for _, p := range n.Properties {
			if p.Edge != nil {
				out = append(out, p.Edge)
			}
		}
	}
	return out
}

// Router computes path geometry for every edge of a fully positioned graph.
// It is invoked exactly once per layout run, after coordinates are final,
// and must not alter node positions or subtree sizes.
type Router interface {
	Route(g *Graph) error
}
