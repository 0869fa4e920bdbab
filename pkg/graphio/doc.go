// Package graphio provides serialization types for object graphs and
// computed layouts.
//
// This package defines the wire format used for JSON files, API responses,
// caching, and storage. It sits at the boundary between the in-memory
// representations ([object.Graph], [layout.Graph]) and external formats.
//
// # Graph Serialization
//
// Object graphs use a root + node-list JSON format:
//
//	{
//	  "root": "obj-1",
//	  "nodes": [
//	    {"id": "obj-1", "type": "Order", "properties": [
//	      {"name": "Total", "value": "99.50"},
//	      {"name": "Customer", "target": "obj-2"}
//	    ]},
//	    {"id": "obj-2", "type": "Customer"}
//	  ]
//	}
//
// Common operations:
//
//	g, _ := graphio.ReadGraphFile("snapshot.json")   // File → object.Graph
//	graphio.WriteGraphFile(g, "snapshot.json")       // object.Graph → File
//	data, _ := graphio.MarshalGraph(g)               // object.Graph → []byte
//
// # Layout Serialization
//
// A [Layout] carries final node geometry and routed edge paths, ready for a
// rendering layer. Use [FromLayout] after the engine and router have run.
//
// All types carry bson tags so the same structures persist unchanged in the
// snapshot store.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graphio
