// Package pipeline runs a complete cyclegraph analysis.
//
// This package implements the build → mark cycles → filter pipeline shared
// by the CLI commands and the HTTP server, plus the export step that writes
// the result to a file. Keeping it in one place gives every entry point the
// same defaults and the same error codes.
//
// # Stages
//
//  1. Build: walk the component trees and fold imports into weighted edges
//  2. Mark: find the cycles and annotate their edges
//  3. Filter: drop acyclic edges and uninteresting nodes on request
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Analyze(ctx, pipeline.Options{
//	    Root:     "./src",
//	    Language: "python",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = pipeline.Export(ctx, result.Graph, result.Meta(), "deps.svg", nodelink.NewGraphvizRenderer())
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/cyclegraph/pkg/build"
	"github.com/matzehuels/cyclegraph/pkg/config"
	"github.com/matzehuels/cyclegraph/pkg/depgraph"
	"github.com/matzehuels/cyclegraph/pkg/depgraph/transform"
	"github.com/matzehuels/cyclegraph/pkg/errors"
	"github.com/matzehuels/cyclegraph/pkg/io"
)

// Language names accepted by [Options].
const (
	LanguageAuto   = "auto"
	LanguagePython = "python"
	LanguageGo     = "go"
)

// DefaultCacheTTL is how long extracted imports stay cached.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures one analysis run.
type Options struct {
	// Root is the directory holding the components. Defaults to ".".
	Root string `json:"root"`
	// Language is "python", "go" or "auto" (the default).
	Language string `json:"language"`

	Components      []string `json:"components,omitempty"`
	Include         []string `json:"include,omitempty"`
	Exclude         []string `json:"exclude,omitempty"`
	ExcludePackages []string `json:"exclude_packages,omitempty"`

	Detailed bool                    `json:"detailed,omitempty"`
	Labels   build.LabelPolicy       `json:"labels,omitempty"`
	Filter   transform.FilterOptions `json:"filter"`

	// CacheTTL bounds the lifetime of cached imports.
	CacheTTL time.Duration `json:"-"`
}

// OptionsFromConfig maps a loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Root:            cfg.Root,
		Language:        cfg.Language,
		Components:      slices.Clone(cfg.Components),
		Include:         slices.Clone(cfg.Include),
		Exclude:         slices.Clone(cfg.Exclude),
		ExcludePackages: slices.Clone(cfg.ExcludePackages),
		Detailed:        cfg.Detailed,
		Filter: transform.FilterOptions{
			OnlyCyclic:     cfg.Filter.OnlyCyclic,
			RemoveSources:  cfg.Filter.RemoveSources,
			RemoveSinks:    cfg.Filter.RemoveSinks,
			RemoveIsolated: cfg.Filter.RemoveIsolated,
		},
		CacheTTL: cfg.Cache.TTL,
	}
	if cfg.Output.ExactLabels {
		opts.Labels = build.LabelsExact
	}
	return opts
}

// SetDefaults fills empty fields and resolves an automatic language.
func (o *Options) SetDefaults() {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Language == "" || o.Language == LanguageAuto {
		o.Language = config.DetectLanguage(o.Root)
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
}

// Validate checks the language and every component name.
func (o *Options) Validate() error {
	switch o.Language {
	case LanguagePython, LanguageGo:
	default:
		return errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", o.Language)
	}
	for _, list := range [][]string{o.Components, o.Include, o.Exclude} {
		for _, name := range list {
			if err := errors.ValidateComponent(o.Language, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	// RunID identifies the run in exported files.
	RunID string
	// Language is the resolved language name.
	Language string
	// Components are the roots that were analyzed.
	Components []string

	Graph    *depgraph.Graph
	Cycles   []transform.Cycle
	Stats    build.Stats
	Filtered transform.FilterResult

	Duration time.Duration
}

// Meta returns the analysis data stored alongside an exported graph.
func (r *Result) Meta() io.Meta {
	return io.Meta{
		RunID:      r.RunID,
		Language:   r.Language,
		Components: slices.Clone(r.Components),
		Cycles:     r.Cycles,
	}
}
