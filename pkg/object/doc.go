// Package object models the graph of values a debugger observes when
// inspecting an object: nodes reachable from a root, each carrying ordered
// named properties that may reference other nodes.
//
// The graph is a general digraph. Shared references and cycles are first
// class - one node per distinct object, however many paths reach it. A graph
// is built once per inspection snapshot and read-only afterwards.
//
// # Building Graphs
//
// Graphs can be assembled explicitly:
//
//	g := object.New()
//	_ = g.AddNode(object.Node{ID: "order", TypeName: "Order", Properties: []object.Property{
//	    {Name: "Total", Value: "99.50"},
//	    {Name: "Customer", Target: "customer"},
//	}})
//	_ = g.AddNode(object.Node{ID: "customer", TypeName: "Customer"})
//	_ = g.SetRoot("order")
//
// or captured from a live Go value via [Snapshot], which deduplicates
// pointers, maps, and slices by identity.
//
// # Validation
//
// [Graph.Validate] checks the two caller contracts downstream layout relies
// on: a designated root and no dangling property targets.
package object
