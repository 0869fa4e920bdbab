package layout

import "fmt"

// ExpansionState selects, per node identity, which properties are currently
// shown in expanded (larger, detailed) form. It is view state owned by the
// visualizer and only consulted during [Build] to size nodes.
type ExpansionState map[string]map[string]bool

// Expand marks a property of a node as expanded.
func (s ExpansionState) Expand(nodeID, property string) {
	props, ok := s[nodeID]
	if !ok {
		props = make(map[string]bool)
		s[nodeID] = props
	}
	props[property] = true
}

// IsExpanded reports whether the given property of a node is expanded.
func (s ExpansionState) IsExpanded(nodeID, property string) bool {
	return s[nodeID][property]
}

// Measurer computes the on-screen footprint of a node from its displayed
// content. Implementations must be deterministic for identical content and
// expansion state - layouts are reproduced and compared across runs.
type Measurer interface {
	Measure(label string, properties []*Property) (width, height float64)
}

// Text measurement defaults, sized for a monospace debugger font.
const (
	DefaultCharWidth    = 8.0
	DefaultLineHeight   = 16.0
	DefaultPaddingX     = 12.0
	DefaultPaddingY     = 8.0
	DefaultExpandedRows = 2 // extra rows an expanded property occupies
)

// TextMeasurer sizes nodes with a fixed-metric box model: one header line
// for the label, one line per property, and extra rows for expanded
// properties. Purely arithmetic, so identical content always measures
// identically.
type TextMeasurer struct {
	CharWidth    float64
	LineHeight   float64
	PaddingX     float64
	PaddingY     float64
	ExpandedRows int
}

// NewTextMeasurer creates a TextMeasurer with default metrics.
func NewTextMeasurer() *TextMeasurer {
	return &TextMeasurer{
		CharWidth:    DefaultCharWidth,
		LineHeight:   DefaultLineHeight,
		PaddingX:     DefaultPaddingX,
		PaddingY:     DefaultPaddingY,
		ExpandedRows: DefaultExpandedRows,
	}
}

// Measure implements [Measurer].
func (m *TextMeasurer) Measure(label string, properties []*Property) (float64, float64) {
	longest := len(label)
	rows := 1 // header
	for _, p := range properties {
		line := len(p.Name)
		if p.Value != "" {
			line += len(": ") + len(p.Value)
		}
		if line > longest {
			longest = line
		}
		rows++
		if p.Expanded {
			rows += m.ExpandedRows
		}
	}
	w := float64(longest)*m.CharWidth + 2*m.PaddingX
	h := float64(rows)*m.LineHeight + 2*m.PaddingY
	return w, h
}

// FixedMeasurer gives every node the same footprint. Useful for tests and
// for visualizers that render uniform node boxes.
type FixedMeasurer struct {
	W, H float64
}

// Measure implements [Measurer].
func (m FixedMeasurer) Measure(string, []*Property) (float64, float64) { return m.W, m.H }

var (
	_ Measurer = (*TextMeasurer)(nil)
	_ Measurer = FixedMeasurer{}
)

// nodeLabel renders the display label for an object node.
func nodeLabel(typeName, value string) string {
	if value != "" {
		return fmt.Sprintf("%s = %s", typeName, value)
	}
	return typeName
}
