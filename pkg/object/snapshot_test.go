package object

import (
	"errors"
	"testing"
)

type listNode struct {
	Next *listNode
	Val  string
}

func TestSnapshotStruct(t *testing.T) {
	type order struct {
		ID    int
		Payed bool
		Note  string

		hidden int // unexported, must be skipped
	}

	g, err := Snapshot(order{ID: 42, Payed: true, Note: "rush", hidden: 7}, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	root := g.Root()
	if root == nil {
		t.Fatal("no root node")
	}
	if len(root.Properties) != 3 {
		t.Fatalf("property count = %d, want 3 (unexported field skipped)", len(root.Properties))
	}

	want := map[string]string{"ID": "42", "Payed": "true", "Note": "\"rush\""}
	for _, p := range root.Properties {
		if p.Value != want[p.Name] {
			t.Errorf("property %s = %q, want %q", p.Name, p.Value, want[p.Name])
		}
	}
}

func TestSnapshotCycle(t *testing.T) {
	a := &listNode{Val: "a"}
	b := &listNode{Val: "b"}
	a.Next = b
	b.Next = a

	g, err := Snapshot(a, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if got := g.NodeCount(); got != 2 {
		t.Fatalf("node count = %d, want 2", got)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// b's Next must point back at the root's node, not a duplicate.
	root := g.Root()
	next := findProperty(t, root, "Next")
	back := findProperty(t, g.Node(next.Target), "Next")
	if back.Target != root.ID {
		t.Errorf("cycle resolved to %s, want %s", back.Target, root.ID)
	}
}

func TestSnapshotSharedReference(t *testing.T) {
	type pair struct {
		L, R *listNode
	}
	shared := &listNode{Val: "shared"}

	g, err := Snapshot(pair{L: shared, R: shared}, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	root := g.Root()
	l := findProperty(t, root, "L")
	r := findProperty(t, root, "R")
	if l.Target == "" || l.Target != r.Target {
		t.Errorf("shared pointer captured as distinct nodes: L=%q R=%q", l.Target, r.Target)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
}

func TestSnapshotSliceAndMap(t *testing.T) {
	type bag struct {
		Items  []int
		Counts map[string]int
	}
	g, err := Snapshot(bag{
		Items:  []int{3, 1},
		Counts: map[string]int{"b": 2, "a": 1},
	}, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	root := g.Root()
	items := g.Node(findProperty(t, root, "Items").Target)
	if items.TypeName != "[]int" {
		t.Errorf("slice type = %q, want []int", items.TypeName)
	}
	if items.Properties[0].Name != "0" || items.Properties[0].Value != "3" {
		t.Errorf("slice element 0 = %+v", items.Properties[0])
	}

	counts := g.Node(findProperty(t, root, "Counts").Target)
	if len(counts.Properties) != 2 {
		t.Fatalf("map property count = %d, want 2", len(counts.Properties))
	}
	// Map keys are sorted for deterministic output.
	if counts.Properties[0].Name != "\"a\"" || counts.Properties[1].Name != "\"b\"" {
		t.Errorf("map keys not sorted: %q, %q", counts.Properties[0].Name, counts.Properties[1].Name)
	}
}

func TestSnapshotNil(t *testing.T) {
	if _, err := Snapshot(nil, SnapshotOptions{}); !errors.Is(err, ErrNilValue) {
		t.Errorf("Snapshot(nil) error = %v, want ErrNilValue", err)
	}
	if _, err := Snapshot((*listNode)(nil), SnapshotOptions{}); !errors.Is(err, ErrNilValue) {
		t.Errorf("Snapshot(nil pointer) error = %v, want ErrNilValue", err)
	}
}

func TestSnapshotNilFieldsBecomeLeaves(t *testing.T) {
	g, err := Snapshot(&listNode{Val: "end"}, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	next := findProperty(t, g.Root(), "Next")
	if next.Target != "" || next.Value != "nil" {
		t.Errorf("nil pointer field = %+v, want leaf value nil", next)
	}
}

func TestSnapshotMaxDepth(t *testing.T) {
	deep := &listNode{Val: "1", Next: &listNode{Val: "2", Next: &listNode{Val: "3"}}}

	g, err := Snapshot(deep, SnapshotOptions{MaxDepth: 1})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got := g.NodeCount(); got != 1 {
		t.Fatalf("node count = %d, want 1", got)
	}
	next := findProperty(t, g.Root(), "Next")
	if next.Value != "..." {
		t.Errorf("truncated reference = %+v, want elided value", next)
	}
}

func TestSnapshotMaxNodes(t *testing.T) {
	deep := &listNode{Val: "1", Next: &listNode{Val: "2", Next: &listNode{Val: "3"}}}

	_, err := Snapshot(deep, SnapshotOptions{MaxNodes: 2})
	if !errors.Is(err, ErrSnapshotTooLarge) {
		t.Errorf("Snapshot() error = %v, want ErrSnapshotTooLarge", err)
	}
}

func TestSnapshotDeterministicIDs(t *testing.T) {
	v := &listNode{Val: "a", Next: &listNode{Val: "b"}}

	g1, err := Snapshot(v, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	g2, err := Snapshot(v, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	n1, n2 := g1.Nodes(), g2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("node counts differ: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i].ID != n2[i].ID || n1[i].TypeName != n2[i].TypeName {
			t.Errorf("node %d differs: %s/%s vs %s/%s",
				i, n1[i].ID, n1[i].TypeName, n2[i].ID, n2[i].TypeName)
		}
	}
	if g1.Root().ID != "obj-1" {
		t.Errorf("root ID = %s, want obj-1", g1.Root().ID)
	}
}

func TestSnapshotRendersFloatsAtTheirOwnPrecision(t *testing.T) {
	type Reading struct {
		Narrow float32
		Wide   float64
	}
	g, err := Snapshot(Reading{Narrow: 0.1, Wide: 0.1}, SnapshotOptions{})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// float32(0.1) formatted at 64-bit precision would leak the conversion
	// error as 0.10000000149011612.
	if got := findProperty(t, g.Root(), "Narrow").Value; got != "0.1" {
		t.Errorf("float32 value = %q, want %q", got, "0.1")
	}
	if got := findProperty(t, g.Root(), "Wide").Value; got != "0.1" {
		t.Errorf("float64 value = %q, want %q", got, "0.1")
	}
}

func findProperty(t *testing.T, n *Node, name string) Property {
	t.Helper()
	for _, p := range n.Properties {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("node %s has no property %s", n.ID, name)
	return Property{}
}
