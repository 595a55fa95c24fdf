package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cyclegraph/pkg/build"
	"github.com/matzehuels/cyclegraph/pkg/cache"
	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
	"github.com/matzehuels/cyclegraph/pkg/errors"
	"github.com/matzehuels/cyclegraph/pkg/observability"
	"github.com/matzehuels/cyclegraph/pkg/source"
)

// Runner executes analyses against an import cache.
//
// The Runner keeps no results between calls. Concurrent calls are safe as
// long as the cache is.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger uses the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Analyze opens the code base described by opts and runs the pipeline.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	lang, err := OpenLanguage(opts.Language, opts.Root)
	if err != nil {
		return nil, err
	}
	return r.AnalyzeLanguage(ctx, lang, opts)
}

// AnalyzeLanguage runs the pipeline on an already opened language. Root
// and Language in opts are ignored.
func (r *Runner) AnalyzeLanguage(ctx context.Context, lang source.Language, opts Options) (*Result, error) {
	start := time.Now()
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	roots, err := source.Components(ctx, lang, opts.Components, opts.Include, opts.Exclude)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "find components")
	}
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeComponentNotFound, "no components to analyze")
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, lang.Name(), roots)

	extractor := cache.NewExtractor(lang, r.Cache, opts.CacheTTL, r.Logger)
	b := build.New(lang, build.Options{
		Components:      roots,
		ExcludePackages: opts.ExcludePackages,
		Detailed:        opts.Detailed,
		Labels:          opts.Labels,
		Extractor:       extractor,
	}, r.Logger)

	buildStart := time.Now()
	g, stats, err := b.Build(ctx, roots)
	if err != nil {
		hooks.OnBuildComplete(ctx, lang.Name(), 0, 0, time.Since(buildStart), err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build graph")
	}
	hooks.OnBuildComplete(ctx, lang.Name(), g.NodeCount(), g.EdgeCount(), time.Since(buildStart), nil)

	hits, misses := extractor.Stats()
	r.Logger.Debug("Import cache", "hits", hits, "misses", misses)
	r.Logger.Info("Built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"modules", stats.Modules,
		"duration", time.Since(buildStart))

	res, err := r.finish(ctx, g, opts.Filter)
	if err != nil {
		return nil, err
	}
	res.Language = lang.Name()
	res.Components = roots
	res.Stats = stats
	res.Duration = time.Since(start)
	return res, nil
}

// Demo runs the mark and filter stages on the built-in demo graph.
func (r *Runner) Demo(ctx context.Context, filter transform.FilterOptions) (*Result, error) {
	start := time.Now()
	g := depgraph.Demo()
	res, err := r.finish(ctx, g, filter)
	if err != nil {
		return nil, err
	}
	res.Language = "demo"
	res.Components = g.Nodes()
	res.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) finish(ctx context.Context, g *depgraph.Graph, filter transform.FilterOptions) (*Result, error) {
	markStart := time.Now()
	cycles, err := transform.MarkCycles(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mark cycles")
	}
	observability.Pipeline().OnCyclesMarked(ctx, len(cycles), time.Since(markStart))
	r.Logger.Info("Marked cycles", "cycles", len(cycles), "duration", time.Since(markStart))

	filtered, err := transform.Filter(g, filter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "filter graph")
	}
	if !filter.IsZero() {
		r.Logger.Info("Filtered graph",
			"nodes_removed", len(filtered.NodesRemoved),
			"edges_removed", filtered.EdgesRemoved)
	}

	return &Result{
		RunID:    uuid.NewString(),
		Graph:    g,
		Cycles:   cycles,
		Filtered: filtered,
	}, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
