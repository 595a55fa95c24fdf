// Package pkg provides the core libraries for cyclegraph import analysis.
//
// # Overview
//
// cyclegraph reads a Python or Go code base, builds a weighted graph of the
// imports between its top-level components and marks every circular
// dependency it finds. The pkg directory is organized into three areas:
//
//  1. Domain logic ([depgraph], [source], [resolve], [build])
//  2. Output ([io], [render])
//  3. Infrastructure ([cache], [config], [errors], [observability], [pipeline])
//
// # Architecture
//
// The data flow through cyclegraph:
//
//	Source tree (Python packages, Go module)
//	         ↓
//	    [source] languages (list packages, read modules, extract imports)
//	         ↓
//	    [build] package (resolve imports to components, weight edges)
//	         ↓
//	    [depgraph/transform] package (mark cycles, filter)
//	         ↓
//	    DOT/JSON/SVG/PNG/PDF output
//
// # Quick Start
//
//	lang := python.New("./src")
//	g, stats, err := build.New(lang, build.Options{}, nil).Build(ctx, []string{"shop", "billing"})
//	if err != nil {
//	    return err
//	}
//	cycles, _ := transform.MarkCycles(g)
//	fmt.Println(nodelink.ToDOT(g, nodelink.Options{}))
//
// Most callers go through [pipeline], which also handles configuration,
// caching and observability hooks.
//
// [depgraph]: github.com/matzehuels/cyclegraph/pkg/depgraph
// [depgraph/transform]: github.com/matzehuels/cyclegraph/pkg/depgraph/transform
// [source]: github.com/matzehuels/cyclegraph/pkg/source
// [resolve]: github.com/matzehuels/cyclegraph/pkg/resolve
// [build]: github.com/matzehuels/cyclegraph/pkg/build
// [io]: github.com/matzehuels/cyclegraph/pkg/io
// [render]: github.com/matzehuels/cyclegraph/pkg/render
// [cache]: github.com/matzehuels/cyclegraph/pkg/cache
// [config]: github.com/matzehuels/cyclegraph/pkg/config
// [errors]: github.com/matzehuels/cyclegraph/pkg/errors
// [observability]: github.com/matzehuels/cyclegraph/pkg/observability
// [pipeline]: github.com/matzehuels/cyclegraph/pkg/pipeline
package pkg
