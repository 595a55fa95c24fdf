// Package io provides JSON import and export for analyzed dependency graphs.
//
// # Overview
//
// The JSON form keeps everything an analysis produced, so a graph can be
// rendered again, inspected by other tools or served over HTTP without
// re-parsing the code base:
//
//	{
//	  "run_id": "3f0c...",
//	  "language": "python",
//	  "components": ["shop", "billing"],
//	  "nodes": [{"id": "shop"}, {"id": "billing"}],
//	  "edges": [
//	    {"from": "shop", "to": "billing", "weight": 3, "label": "Cycle 1 (2)",
//	     "cycle": 1, "attrs": {"color": "#2f5bc6"}},
//	    {"from": "billing", "to": "shop", "weight": 1, "label": "Cycle 1 (1)",
//	     "cycle": 1, "attrs": {"color": "#2f5bc6"}}
//	  ],
//	  "cycles": [{"id": 1, "nodes": ["shop", "billing"], "color": "#2f5bc6"}]
//	}
//
// # Node and Edge Fields
//
// Nodes need an id and may carry attrs. Edges need from and to; weight
// defaults to 1. The label, cycle and attrs fields are optional.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, meta, err := io.ImportJSON("graph.json")
//
// Duplicate node ids, duplicate edges and edges to unknown nodes are
// rejected. Errors are wrapped with context about which node or edge caused
// the problem.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Node and edge order is preserved, so import followed by export
// reproduces the input.
package io
