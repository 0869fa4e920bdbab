package layout

import "testing"

func TestTextMeasurer(t *testing.T) {
	m := NewTextMeasurer()

	props := []*Property{
		{Name: "id", Value: "7"},
		{Name: "customer", Value: "\"ada\""},
	}

	w, h := m.Measure("Order", props)

	// Longest line is `customer: "ada"` (15 chars); header plus two
	// property rows.
	wantW := 15*DefaultCharWidth + 2*DefaultPaddingX
	wantH := 3*DefaultLineHeight + 2*DefaultPaddingY
	if w != wantW || h != wantH {
		t.Errorf("Measure() = %gx%g, want %gx%g", w, h, wantW, wantH)
	}
}

func TestTextMeasurerExpandedRows(t *testing.T) {
	m := NewTextMeasurer()
	props := []*Property{{Name: "payload", Value: "...", Expanded: true}}

	_, collapsed := m.Measure("Box", []*Property{{Name: "payload", Value: "..."}})
	_, expanded := m.Measure("Box", props)

	want := float64(DefaultExpandedRows) * DefaultLineHeight
	if got := expanded - collapsed; got != want {
		t.Errorf("expanded height delta = %g, want %g", got, want)
	}
}

func TestTextMeasurerDeterministic(t *testing.T) {
	m := NewTextMeasurer()
	props := []*Property{{Name: "next", Value: "null"}}

	w1, h1 := m.Measure("Node", props)
	w2, h2 := m.Measure("Node", props)
	if w1 != w2 || h1 != h2 {
		t.Errorf("identical content measured differently: %gx%g vs %gx%g", w1, h1, w2, h2)
	}
}

func TestFixedMeasurer(t *testing.T) {
	m := FixedMeasurer{W: 100, H: 50}
	w, h := m.Measure("anything", []*Property{{Name: "a"}, {Name: "b"}})
	if w != 100 || h != 50 {
		t.Errorf("Measure() = %gx%g, want 100x50", w, h)
	}
}

func TestExpansionState(t *testing.T) {
	s := ExpansionState{}

	if s.IsExpanded("n1", "p1") {
		t.Error("empty state reports expanded")
	}

	s.Expand("n1", "p1")
	if !s.IsExpanded("n1", "p1") {
		t.Error("Expand() did not take effect")
	}
	if s.IsExpanded("n1", "p2") || s.IsExpanded("n2", "p1") {
		t.Error("expansion leaked to other properties")
	}
}
