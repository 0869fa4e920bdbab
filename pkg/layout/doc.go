// Package layout computes tidy-tree layouts for object graphs.
//
// The pipeline is: an immutable object graph plus the visualizer's expansion
// state go through [Build], producing a per-run positioned [Graph] with
// measured but unplaced nodes; [Engine.Layout] then assigns subtree sizes
// and coordinates in two depth-first passes; finally a [Router] computes
// edge path geometry over the fixed positions.
//
//	g, _ := layout.Build(objGraph, state, layout.NewTextMeasurer())
//	engine := layout.NewEngine(layout.LeftToRight)
//	if err := engine.Layout(g); err != nil {
//	    return err
//	}
//	_ = router.Route(g)
//
// # Spanning-tree selection
//
// The input is a general digraph - cycles and shared references included.
// During the sizing pass the first edge that reaches each node is classified
// as a tree edge; all later edges to the same node stay non-tree and take no
// part in positioning. The classification lives only for the duration of one
// Layout call.
//
// # Axes
//
// All position math is written in terms of a main axis (the direction ranks
// progress along) and a lateral axis (the direction siblings stack along).
// [LeftToRight] maps main to X, [TopToBottom] maps main to Y; swapping the
// direction transposes the two roles exactly.
//
// # Determinism and failure
//
// Traversal follows property declaration order, and measurement is required
// to be deterministic, so identical input yields identical coordinates.
// Layout is a pure function of its input; there is no transient-failure
// category and no partial or degraded result - contract violations (missing
// root, dangling references, unknown nodes in the expansion state) and
// exceeded depth/node ceilings fail the whole call.
package layout
