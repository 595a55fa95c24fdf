// Package build constructs the dependency graph of a code base.
//
// The [Builder] walks the package tree of every root component, extracts
// the imports of each module, resolves them to known modules and folds them
// into weighted edges.
//
// # Modes
//
// In aggregate mode (the default) nodes are components: an import from any
// module below component A to a module inside component B adds one unit of
// weight to the edge A -> B. Imports that stay inside A are ignored.
//
// In detailed mode nodes are modules: the same import adds weight to the
// edge between the two concrete modules, provided the target lies inside a
// tracked component.
//
// # Weight Labels
//
// The first occurrence of a dependency creates its edge with weight 1 and
// label "(1)". With [LabelsLagging] each further occurrence writes the weight
// from before the increment into the label, reproducing the output of
// earlier releases. [LabelsExact] writes the current weight.
package build

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/resolve"
	"github.com/matzehuels/cyclegraph/pkg/source"
)

// LabelPolicy selects how weight labels follow weight increments.
type LabelPolicy int

const (
	// LabelsLagging labels an edge with its weight before the last increment.
	LabelsLagging LabelPolicy = iota
	// LabelsExact labels an edge with its current weight.
	LabelsExact
)

// Options configures a [Builder].
type Options struct {
	// Components lists every tracked component. Defaults to the roots
	// passed to Build.
	Components []string
	// ExcludePackages names subpackages that are never descended into.
	// Entries match either the package name or its full identifier.
	ExcludePackages []string
	// Detailed switches to module granularity. Languages implementing
	// source.Grouper are drawn at their unit granularity instead.
	Detailed bool
	// Labels selects the weight label policy.
	Labels LabelPolicy
	// Extractor overrides the language's import extractor, for example
	// with a caching wrapper.
	Extractor source.Extractor
}

// Stats counts what happened during a build.
type Stats struct {
	Components     int
	Packages       int
	Modules        int
	Excluded       int
	MissingSources int
	ParseFailures  int
	Imports        int
	Unresolved     int
}

// Builder constructs dependency graphs. A Builder is not safe for
// concurrent use.
type Builder struct {
	lang      source.Language
	extractor source.Extractor
	resolver  *resolve.Resolver
	logger    *log.Logger
	opts      Options

	tracked []trackedComponent
	stats   Stats
}

type trackedComponent struct {
	id   string
	path source.Path
}

// New creates a builder for the given language. A nil logger uses
// log.Default().
func New(lang source.Language, opts Options, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = lang
	}
	return &Builder{
		lang:      lang,
		extractor: extractor,
		resolver:  resolve.New(lang),
		logger:    logger,
		opts:      opts,
	}
}

// WeightLabel formats a weight marker.
func WeightLabel(weight int) string { return fmt.Sprintf("(%d)", weight) }

// Build analyzes every root component and returns the resulting graph.
//
// Unreadable sources and modules with syntax errors are logged and skipped.
// Build only fails when ctx is canceled or the graph rejects an update.
func (b *Builder) Build(ctx context.Context, roots []string) (*depgraph.Graph, Stats, error) {
	b.stats = Stats{Components: len(roots)}
	b.tracked = b.tracked[:0]

	components := b.opts.Components
	if len(components) == 0 {
		components = roots
	}
	sep := b.lang.Separator()
	for _, c := range components {
		b.tracked = append(b.tracked, trackedComponent{id: c, path: source.Split(c, sep)})
	}

	g := depgraph.New()
	if !b.opts.Detailed {
		for _, root := range roots {
			if err := g.EnsureNode(root); err != nil {
				return nil, b.stats, err
			}
		}
	}

	for _, root := range roots {
		if err := b.walk(ctx, g, root); err != nil {
			return nil, b.stats, err
		}
	}
	return g, b.stats, nil
}

// walk visits the package tree below root in pre-order. The explicit stack
// holds one frame per open package, so depth does not grow the call stack.
func (b *Builder) walk(ctx context.Context, g *depgraph.Graph, root string) error {
	b.logger.Info("Analyzing component", "component", root)

	sep := b.lang.Separator()
	rootPath := source.Split(root, sep)

	type frame struct {
		children []source.Child
		next     int
	}

	children, err := b.lang.Children(ctx, rootPath)
	if err != nil {
		b.logger.Warn("Cannot list package", "package", root, "err", err)
		return ctx.Err()
	}
	b.stats.Packages++
	stack := []frame{{children: children}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := &stack[len(stack)-1]
		if top.next >= len(top.children) {
			stack = stack[:len(stack)-1]
			continue
		}
		child := top.children[top.next]
		top.next++

		switch child.Kind {
		case source.KindPackage:
			id := child.Path.Join(sep)
			if b.excluded(child.Name, id) {
				b.stats.Excluded++
				b.logger.Info("Ignoring package", "package", id)
				continue
			}
			if b.isTracked(id) {
				continue
			}
			nested, err := b.lang.Children(ctx, child.Path)
			if err != nil {
				b.logger.Warn("Cannot list package", "package", id, "err", err)
				continue
			}
			b.stats.Packages++
			stack = append(stack, frame{children: nested})

		case source.KindModule:
			if err := b.module(ctx, g, root, rootPath, child.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// module folds the imports of one module into g.
func (b *Builder) module(ctx context.Context, g *depgraph.Graph, root string, rootPath, module source.Path) error {
	sep := b.lang.Separator()
	id := module.Join(sep)
	b.stats.Modules++

	node := id
	if b.opts.Detailed {
		node = b.unit(module).Join(sep)
		if err := g.EnsureNode(node); err != nil {
			return err
		}
	}

	src, err := b.lang.Source(ctx, module)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		b.stats.MissingSources++
		b.logger.Warn("Source unavailable", "module", id, "err", err)
		return nil
	}

	imports, err := b.extractor.Imports(ctx, module, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		b.stats.ParseFailures++
		if errors.Is(err, source.ErrSyntax) {
			b.logger.Warn("Syntax error, skipping module", "module", id, "err", err)
		} else {
			b.logger.Warn("Cannot extract imports, skipping module", "module", id, "err", err)
		}
		return nil
	}

	for _, imp := range imports {
		b.stats.Imports++
		target, ok := b.resolver.Resolve(imp)
		if !ok {
			b.stats.Unresolved++
			b.logger.Debug("Unresolved import", "module", id, "import", imp.Join(sep))
			continue
		}

		if b.opts.Detailed {
			if b.owner(target) == "" {
				continue
			}
			to := target.Join(sep)
			if to == node {
				continue
			}
			if err := g.EnsureNode(to); err != nil {
				return err
			}
			if err := b.depend(g, node, to); err != nil {
				return err
			}
			continue
		}

		if target.HasPrefix(rootPath) {
			continue
		}
		owner := b.owner(target)
		if owner == "" {
			continue
		}
		if err := g.EnsureNode(owner); err != nil {
			return err
		}
		if err := b.depend(g, root, owner); err != nil {
			return err
		}
	}
	return nil
}

// unit returns the node a module is counted under in detailed mode.
func (b *Builder) unit(module source.Path) source.Path {
	if gr, ok := b.lang.(source.Grouper); ok {
		return gr.Unit(module)
	}
	return module
}

// depend adds one occurrence of the dependency from -> to.
func (b *Builder) depend(g *depgraph.Graph, from, to string) error {
	e, ok := g.Edge(from, to)
	if !ok {
		e, err := g.AddEdge(from, to)
		if err != nil {
			return err
		}
		e.Label = WeightLabel(1)
		b.logger.Debug("Dependency", "from", from, "to", to)
		return nil
	}

	prev := e.Weight
	e.Weight++
	if b.opts.Labels == LabelsExact {
		e.Label = WeightLabel(e.Weight)
	} else {
		e.Label = WeightLabel(prev)
	}
	return nil
}

// owner returns the first tracked component containing p, or "".
func (b *Builder) owner(p source.Path) string {
	for _, c := range b.tracked {
		if p.HasPrefix(c.path) {
			return c.id
		}
	}
	return ""
}

func (b *Builder) isTracked(id string) bool {
	return slices.ContainsFunc(b.tracked, func(c trackedComponent) bool { return c.id == id })
}

func (b *Builder) excluded(name, id string) bool {
	return slices.Contains(b.opts.ExcludePackages, name) || slices.Contains(b.opts.ExcludePackages, id)
}
