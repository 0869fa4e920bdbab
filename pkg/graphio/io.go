package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scopeviz/scopetree/pkg/object"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts an object graph to JSON bytes.
// Nodes keep insertion order for deterministic output.
func MarshalGraph(g *object.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes an object graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *object.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes an object graph as JSON to an io.Writer.
func WriteGraph(g *object.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded object graph.
// Returns validation errors for malformed graphs (duplicate IDs, unknown
// root, dangling property targets).
func ReadGraphFile(path string) (*object.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON object graph from an io.Reader.
func ReadGraph(r io.Reader) (*object.Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Layout File API
// =============================================================================

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *object.Graph, w io.Writer) error {
	out := FromObject(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*object.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToObject(data)
}
