package layout

import "fmt"

// Default margins added to a node's raw dimensions to obtain its
// margin-inclusive footprint on each physical axis.
const (
	DefaultMarginX = 30.0
	DefaultMarginY = 30.0
)

// Engine computes a tidy-tree layout over a positioned graph. The layout
// direction is fixed at construction; both directions share one
// implementation expressed in main/lateral axis terms.
//
// Layout is purely computational and single-threaded. An Engine carries no
// per-run state and may be reused across graphs, but a single Graph must not
// be laid out by concurrent callers.
type Engine struct {
	dir      Direction
	marginX  float64
	marginY  float64
	maxDepth int
	maxNodes int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMargins overrides the per-axis margins added to node footprints.
func WithMargins(x, y float64) Option {
	return func(e *Engine) {
		e.marginX = x
		e.marginY = y
	}
}

// WithMaxDepth bounds traversal depth. Exceeding it fails the layout call
// with ErrDepthLimit and no partial result. 0 means unlimited.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// WithMaxNodes bounds the number of nodes a layout call will place.
// Exceeding it fails with ErrNodeLimit and no partial result. 0 means
// unlimited.
func WithMaxNodes(n int) Option {
	return func(e *Engine) { e.maxNodes = n }
}

// NewEngine creates a layout engine for the given direction.
func NewEngine(dir Direction, opts ...Option) *Engine {
	e := &Engine{
		dir:     dir,
		marginX: DefaultMarginX,
		marginY: DefaultMarginY,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Direction returns the layout direction the engine was constructed with.
func (e *Engine) Direction() Direction { return e.dir }

// Layout computes subtree sizes and node coordinates in place.
//
// Pass 1 walks the graph depth-first from the root, classifying the first
// edge that reaches each node as a tree edge and computing every node's
// subtree size bottom-up. Edges to already-visited nodes (cycles, shared
// references, back edges to ancestors) are left as non-tree edges and
// contribute nothing, which turns the general digraph into a spanning tree
// rooted at the visualizer's root.
//
// Pass 2 assigns coordinates pre-order: within a rank, tree children are
// stacked without overlap along the lateral axis; each node is centered over
// its children's combined span; children sit one rank further along the main
// axis than their parent.
//
// Tree-edge membership is scoped to this call and recomputed every run.
// A malformed graph (missing root) or an exceeded limit fails the whole
// call; node fields may have been partially written but no usable layout is
// produced.
func (e *Engine) Layout(g *Graph) error {
	if g == nil || g.Root == nil {
		return ErrMissingRoot
	}

	run := &layoutRun{
		ax:       e.axes(),
		maxDepth: e.maxDepth,
		maxNodes: e.maxNodes,
		visited:  make(map[*Node]bool, len(g.Nodes)),
		children: make(map[*Node][]*Node),
	}
	if err := run.size(g.Root, 1); err != nil {
		return err
	}
	run.place(g.Root, 0, 0)
	return nil
}

// axes maps the direction onto main/lateral accessors. LeftToRight: main =
// X (Left), lateral = Y (Top). TopToBottom: the roles swap.
func (e *Engine) axes() axes {
	if e.dir == TopToBottom {
		return axes{
			mainSize:    func(n *Node) float64 { return n.Height + e.marginY },
			lateralSize: func(n *Node) float64 { return n.Width + e.marginX },
			setMain:     func(n *Node, v float64) { n.Top = v },
			setLateral:  func(n *Node, v float64) { n.Left = v },
		}
	}
	return axes{
		mainSize:    func(n *Node) float64 { return n.Width + e.marginX },
		lateralSize: func(n *Node) float64 { return n.Height + e.marginY },
		setMain:     func(n *Node, v float64) { n.Left = v },
		setLateral:  func(n *Node, v float64) { n.Top = v },
	}
}

// axes holds the direction-specific position accessors. Sizes are
// margin-inclusive footprints.
type axes struct {
	mainSize    func(*Node) float64
	lateralSize func(*Node) float64
	setMain     func(*Node, float64)
	setLateral  func(*Node, float64)
}

// layoutRun is the arena of one layout call: the visited set and the
// tree-child lists that record which edges won spanning-tree classification.
// Discarded after use so no state leaks between runs.
type layoutRun struct {
	ax       axes
	maxDepth int
	maxNodes int
	placed   int
	visited  map[*Node]bool
	children map[*Node][]*Node
}

// size is pass 1: depth-first subtree sizing and tree-edge selection.
func (r *layoutRun) size(n *Node, depth int) error {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return fmt.Errorf("%w: %d", ErrDepthLimit, r.maxDepth)
	}
	r.placed++
	if r.maxNodes > 0 && r.placed > r.maxNodes {
		return fmt.Errorf("%w: %d", ErrNodeLimit, r.maxNodes)
	}
	r.visited[n] = true

	var childSum float64
	for _, p := range n.Properties {
		edge := p.Edge
		if edge == nil || r.visited[edge.Target] {
			continue // leaf, cycle, or shared reference already claimed
		}
		r.children[n] = append(r.children[n], edge.Target)
		if err := r.size(edge.Target, depth+1); err != nil {
			return err
		}
		childSum += edge.Target.SubtreeSize
	}

	// A node never reserves less lateral space than its own footprint.
	n.SubtreeSize = max(r.ax.lateralSize(n), childSum)
	return nil
}

// place is pass 2: pre-order coordinate assignment. lateralBase and mainBase
// locate the current node's subtree region.
func (r *layoutRun) place(n *Node, lateralBase, mainBase float64) {
	kids := r.children[n]

	var childSum float64
	for _, k := range kids {
		childSum += k.SubtreeSize
	}

	center := 0.0
	if len(kids) > 0 {
		center = 0.5 * (childSum - r.ax.lateralSize(n))
	}
	if center < 0 {
		// Node is wider than its children's combined span: push the whole
		// subtree region forward so earlier siblings are not overlapped.
		lateralBase -= center
	}

	r.ax.setLateral(n, lateralBase+center)
	r.ax.setMain(n, mainBase)

	childBase := lateralBase
	childMain := mainBase + r.ax.mainSize(n)
	for _, k := range kids {
		r.place(k, childBase, childMain)
		childBase += k.SubtreeSize
	}
}
