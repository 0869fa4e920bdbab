package object

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. One node per distinct inspected object - shared
	// references must reuse the existing node rather than adding a duplicate.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownRootNode is returned by [Graph.SetRoot] when the named node
	// does not exist in the graph.
	ErrUnknownRootNode = errors.New("unknown root node")

	// ErrMissingRoot is returned by [Graph.Validate] when no root has been
	// designated. Every snapshot has exactly one root object.
	ErrMissingRoot = errors.New("graph has no root node")

	// ErrDanglingReference is returned by [Graph.Validate] when a property
	// targets a node that is not part of the graph. This indicates the
	// snapshot was truncated or corrupted.
	ErrDanglingReference = errors.New("property references unknown node")
)

// Property is one named member of an inspected object. A property either
// holds a rendered leaf value (Target empty) or references another node in
// the same graph (Target set to that node's ID). Properties never hold both.
type Property struct {
	Name   string // Member name as shown by the debugger
	Value  string // Rendered leaf value; empty when Target is set
	Target string // ID of the referenced node; empty for leaf values
}

// IsReference reports whether the property points at another object rather
// than holding a leaf value.
func (p Property) IsReference() bool { return p.Target != "" }

// Node represents one distinct object reachable in an inspection snapshot.
// Properties keep their declaration order; layout traversal depends on it
// for reproducible results.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID         string     // Unique identity, one per distinct object
	TypeName   string     // Display type (e.g. "Order", "[]Item")
	Value      string     // Rendered scalar value for leaf objects; empty for composites
	Properties []Property // Ordered named members
}

// Graph is an immutable-after-construction directed graph of objects
// reachable from a designated root. The same target object reached via
// multiple paths maps to a single node, so the graph is a general digraph -
// potentially cyclic, not necessarily a tree.
//
// A Graph is built once per inspection snapshot, read-only thereafter, and
// discarded when the visualizer re-snapshots the inspected object. It is not
// safe for concurrent mutation.
type Graph struct {
	nodes map[string]*Node
	order []string // insertion order, drives deterministic traversal
	root  string
}

// New creates an empty object graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the ID is
// empty, or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	node := n
	g.nodes[node.ID] = &node
	g.order = append(g.order, node.ID)
	return nil
}

// SetRoot designates the root node of the graph. Returns ErrUnknownRootNode
// if no node with the given ID exists.
func (g *Graph) SetRoot(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRootNode, id)
	}
	g.root = id
	return nil
}

// Root returns the root node, or nil if none has been designated.
func (g *Graph) Root() *Node {
	if g.root == "" {
		return nil
	}
	return g.nodes[g.root]
}

// Node returns the node with the given ID, or nil if it does not exist.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all nodes in insertion order. The returned slice is a copy;
// the pointed-to nodes are shared with the graph.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ReferenceCount returns the number of properties that reference another
// node, which equals the number of edges in the graph.
func (g *Graph) ReferenceCount() int {
	count := 0
	for _, id := range g.order {
		for _, p := range g.nodes[id].Properties {
			if p.IsReference() {
				count++
			}
		}
	}
	return count
}

// Validate checks structural integrity: a root must be designated and every
// property target must name a node present in the graph. Returns
// ErrMissingRoot or ErrDanglingReference describing the first violation.
func (g *Graph) Validate() error {
	if g.root == "" {
		return ErrMissingRoot
	}
	for _, id := range g.order {
		for _, p := range g.nodes[id].Properties {
			if !p.IsReference() {
				continue
			}
			if _, ok := g.nodes[p.Target]; !ok {
				return fmt.Errorf("%w: %s.%s -> %s", ErrDanglingReference, id, p.Name, p.Target)
			}
		}
	}
	return nil
}
