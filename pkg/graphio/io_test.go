package graphio

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/scopeviz/scopetree/pkg/layout"
	"github.com/scopeviz/scopetree/pkg/object"
)

func testGraph(t *testing.T) *object.Graph {
	t.Helper()
	g := object.New()
	nodes := []object.Node{
		{ID: "obj-1", TypeName: "List", Properties: []object.Property{
			{Name: "head", Target: "obj-2"},
			{Name: "length", Value: "1"},
		}},
		{ID: "obj-2", TypeName: "Node", Properties: []object.Property{
			{Name: "value", Value: "\"x\""},
			{Name: "list", Target: "obj-1"},
		}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) error = %v", n.ID, err)
		}
	}
	if err := g.SetRoot("obj-1"); err != nil {
		t.Fatalf("SetRoot() error = %v", err)
	}
	return g
}

func TestGraphRoundTrip(t *testing.T) {
	g := testGraph(t)

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error = %v", err)
	}

	got, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	if got.Root().ID != "obj-1" {
		t.Errorf("root = %s, want obj-1", got.Root().ID)
	}
	if got.NodeCount() != 2 || got.ReferenceCount() != 2 {
		t.Errorf("counts = %d nodes / %d refs, want 2/2", got.NodeCount(), got.ReferenceCount())
	}

	want := g.Node("obj-2")
	node := got.Node("obj-2")
	if node.TypeName != want.TypeName || len(node.Properties) != len(want.Properties) {
		t.Errorf("obj-2 = %+v, want %+v", node, want)
	}
	for i, p := range node.Properties {
		if p != want.Properties[i] {
			t.Errorf("obj-2 property %d = %+v, want %+v", i, p, want.Properties[i])
		}
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := testGraph(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if got.NodeCount() != g.NodeCount() {
		t.Errorf("node count = %d, want %d", got.NodeCount(), g.NodeCount())
	}
}

func TestReadGraphRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{
			"duplicate node",
			`{"root":"a","nodes":[{"id":"a"},{"id":"a"}]}`,
			object.ErrDuplicateNodeID,
		},
		{
			"unknown root",
			`{"root":"ghost","nodes":[{"id":"a"}]}`,
			object.ErrUnknownRootNode,
		},
		{
			"dangling reference",
			`{"root":"a","nodes":[{"id":"a","properties":[{"name":"x","target":"gone"}]}]}`,
			object.ErrDanglingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(bytes.NewReader([]byte(tt.json)))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadGraph() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromLayoutBoundingBox(t *testing.T) {
	g := &layout.Graph{}
	a := &layout.Node{ID: "a", Left: 0, Top: 40, Width: 100, Height: 50}
	b := &layout.Node{ID: "b", Left: 130, Top: 0, Width: 100, Height: 50}
	g.Nodes = []*layout.Node{a, b}
	g.Root = a

	l := FromLayout(g, layout.LeftToRight)
	if l.Direction != DirectionLeftToRight {
		t.Errorf("direction = %q, want %q", l.Direction, DirectionLeftToRight)
	}
	if l.Width != 230 || l.Height != 90 {
		t.Errorf("frame = %gx%g, want 230x90", l.Width, l.Height)
	}
	if len(l.Nodes) != 2 {
		t.Errorf("node count = %d, want 2", len(l.Nodes))
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{
		Direction: DirectionTopToBottom,
		Width:     230,
		Height:    90,
		Nodes: []PlacedNode{
			{ID: "a", Left: 0, Top: 40, Width: 100, Height: 50},
		},
		Edges: []PlacedEdge{
			{From: "a", Property: "next", To: "b", Path: []layout.Point{{X: 100, Y: 65}, {X: 130, Y: 25}}},
		},
	}
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if got.Direction != l.Direction || got.Width != l.Width || len(got.Edges) != 1 {
		t.Errorf("round trip = %+v, want %+v", got, l)
	}
	if len(got.Edges[0].Path) != 2 {
		t.Errorf("edge path lost: %+v", got.Edges[0])
	}
}

func TestUnmarshalLayoutDefaultsAndValidation(t *testing.T) {
	got, err := UnmarshalLayout([]byte(`{"nodes":[{"id":"a"}]}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if got.Direction != DirectionLeftToRight {
		t.Errorf("default direction = %q, want lr", got.Direction)
	}

	if _, err := UnmarshalLayout([]byte(`{"direction":"lr"}`)); err == nil {
		t.Error("UnmarshalLayout() accepted a layout without nodes")
	}
	if _, err := UnmarshalLayout([]byte(`not json`)); err == nil {
		t.Error("UnmarshalLayout() accepted invalid JSON")
	}
}
