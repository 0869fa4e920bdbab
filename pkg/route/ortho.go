// Package route provides the default edge router for positioned graphs.
//
// Routing runs once per layout, after coordinates are final, and only fills
// in edge paths - node positions and subtree sizes are never touched.
package route

import (
	"errors"

	"github.com/scopeviz/scopetree/pkg/layout"
)

// ErrUnpositioned is returned when routing is attempted before layout has
// assigned coordinates.
var ErrUnpositioned = errors.New("cannot route edges of an unpositioned graph")

// Orthogonal routes every edge as an axis-aligned three-segment polyline
// from the source node's far face to the target node's near face, bending at
// the midpoint of the gap. Tree and non-tree edges are routed alike; the
// renderer distinguishes them visually, not geometrically.
type Orthogonal struct {
	dir layout.Direction
}

// NewOrthogonal creates a router matching the engine's layout direction.
func NewOrthogonal(dir layout.Direction) *Orthogonal {
	return &Orthogonal{dir: dir}
}

// Route implements [layout.Router].
func (o *Orthogonal) Route(g *layout.Graph) error {
	if g == nil || g.Root == nil {
		return ErrUnpositioned
	}
	for _, e := range g.Edges() {
		e.Path = o.path(e.Source.Owner, e.Target)
	}
	return nil
}

// path connects two placed nodes. For left-to-right layouts edges leave the
// source's right face and enter the target's left face; top-to-bottom swaps
// the faces accordingly.
func (o *Orthogonal) path(src, dst *layout.Node) []layout.Point {
	var start, end layout.Point
	if o.dir == layout.TopToBottom {
		start = layout.Point{X: src.Left + src.Width/2, Y: src.Top + src.Height}
		end = layout.Point{X: dst.Left + dst.Width/2, Y: dst.Top}
		midY := (start.Y + end.Y) / 2
		return []layout.Point{
			start,
			{X: start.X, Y: midY},
			{X: end.X, Y: midY},
			end,
		}
	}
	start = layout.Point{X: src.Left + src.Width, Y: src.Top + src.Height/2}
	end = layout.Point{X: dst.Left, Y: dst.Top + dst.Height/2}
	midX := (start.X + end.X) / 2
	return []layout.Point{
		start,
		{X: midX, Y: start.Y},
		{X: midX, Y: end.Y},
		end,
	}
}

var _ layout.Router = (*Orthogonal)(nil)
