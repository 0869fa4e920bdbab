package object

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

var (
	// ErrNilValue is returned by [Snapshot] when the inspected value is nil.
	ErrNilValue = errors.New("cannot snapshot nil value")

	// ErrSnapshotTooLarge is returned by [Snapshot] when the reachable graph
	// exceeds SnapshotOptions.MaxNodes.
	ErrSnapshotTooLarge = errors.New("snapshot exceeds node limit")
)

// DefaultMaxSnapshotNodes bounds the reachable set captured by Snapshot.
// Debugger targets routinely hold enormous object graphs; the visualizer
// only ever shows a bounded neighborhood of the root.
const DefaultMaxSnapshotNodes = 10000

// SnapshotOptions controls how much of a live value Snapshot captures.
type SnapshotOptions struct {
	// MaxDepth limits traversal depth from the root. 0 means unlimited.
	MaxDepth int
	// MaxNodes limits the number of captured nodes. 0 applies
	// DefaultMaxSnapshotNodes.
	MaxNodes int
}

// Snapshot builds an object graph from a live Go value using reflection.
// Pointers, maps, and slices are deduplicated by identity, so shared
// references and cycles produce a single node with multiple incoming
// references - the same shape a debugger reports for a heap snapshot.
//
// Node IDs are assigned in visit order ("obj-1", "obj-2", ...), making the
// result deterministic for identical input values.
func Snapshot(v any, opts SnapshotOptions) (*Graph, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	if opts.MaxNodes == 0 {
		opts.MaxNodes = DefaultMaxSnapshotNodes
	}

	s := &snapshotter{
		graph: New(),
		seen:  make(map[identity]string),
		opts:  opts,
	}
	rootID, err := s.visit(reflect.ValueOf(v), 1)
	if err != nil {
		return nil, err
	}
	if rootID == "" {
		return nil, ErrNilValue
	}
	if err := s.graph.SetRoot(rootID); err != nil {
		return nil, err
	}
	return s.graph, nil
}

// identity keys deduplication. Only pointer-shaped kinds carry a stable
// address; value structs are always distinct nodes.
type identity struct {
	ptr uintptr
	typ reflect.Type
}

type snapshotter struct {
	graph *Graph
	seen  map[identity]string
	next  int
	opts  SnapshotOptions
}

// visit captures v as a node and returns its ID. Nil values and values past
// MaxDepth return an empty ID, turning the reference into a truncated leaf.
//
// Identity is taken from the pointer/map/slice header before dereferencing,
// so a cycle through a struct pointer resolves to the already-registered
// node instead of recursing forever.
func (s *snapshotter) visit(v reflect.Value, depth int) (string, error) {
	v = resolveInterface(v)
	if !v.IsValid() {
		return "", nil
	}
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return "", nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return "", nil
		}
		id := identity{ptr: v.Pointer(), typ: v.Type()}
		if existing, dup := s.seen[id]; dup {
			return existing, nil
		}
		nodeID, err := s.newNodeID()
		if err != nil {
			return "", err
		}
		// Register before descending so cycles resolve to this node.
		s.seen[id] = nodeID
		target := v
		if v.Kind() == reflect.Pointer {
			target = resolveInterface(v.Elem())
		}
		return nodeID, s.capture(nodeID, target, depth)
	case reflect.Struct, reflect.Array:
		nodeID, err := s.newNodeID()
		if err != nil {
			return "", err
		}
		return nodeID, s.capture(nodeID, v, depth)
	default:
		return "", nil // scalar leaves are property values, not nodes
	}
}

func (s *snapshotter) newNodeID() (string, error) {
	if s.next >= s.opts.MaxNodes {
		return "", fmt.Errorf("%w: %d", ErrSnapshotTooLarge, s.opts.MaxNodes)
	}
	s.next++
	return fmt.Sprintf("obj-%d", s.next), nil
}

// capture records v's members as properties of the node with the given ID.
func (s *snapshotter) capture(nodeID string, v reflect.Value, depth int) error {
	if !v.IsValid() {
		return s.graph.AddNode(Node{ID: nodeID, TypeName: "nil", Value: "nil"})
	}
	node := Node{ID: nodeID, TypeName: v.Type().String()}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			prop, err := s.property(t.Field(i).Name, v.Field(i), depth)
			if err != nil {
				return err
			}
			node.Properties = append(node.Properties, prop)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			prop, err := s.property(strconv.Itoa(i), v.Index(i), depth)
			if err != nil {
				return err
			}
			node.Properties = append(node.Properties, prop)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return renderScalar(keys[i]) < renderScalar(keys[j])
		})
		for _, k := range keys {
			prop, err := s.property(renderScalar(k), v.MapIndex(k), depth)
			if err != nil {
				return err
			}
			node.Properties = append(node.Properties, prop)
		}
	default:
		node.Value = renderScalar(v)
	}

	return s.graph.AddNode(node)
}

// property captures one member, descending into composites and references.
func (s *snapshotter) property(name string, v reflect.Value, depth int) (Property, error) {
	v = resolveInterface(v)
	if !v.IsValid() {
		return Property{Name: name, Value: "nil"}, nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return Property{Name: name, Value: "nil"}, nil
		}
		fallthrough
	case reflect.Struct, reflect.Array:
		target, err := s.visit(v, depth+1)
		if err != nil {
			return Property{}, err
		}
		if target == "" {
			// Depth-truncated reference renders as an elided value.
			return Property{Name: name, Value: "..."}, nil
		}
		return Property{Name: name, Target: target}, nil
	default:
		return Property{Name: name, Value: renderScalar(v)}, nil
	}
}

// resolveInterface follows interface wrappers to the concrete value.
// Nil interfaces resolve to the invalid Value.
func resolveInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func renderScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return strconv.Quote(v.String())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
