package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cyclegraph/pkg/config"
)

// projectFlags holds the flags shared by every command that analyzes a
// code base. They mirror the keys of the project file.
type projectFlags struct {
	config          string
	language        string
	components      []string
	include         []string
	exclude         []string
	excludePackages []string
	detailed        bool
	exactLabels     bool
	noCache         bool
	filter          filterFlags
}

// filterFlags mirrors the [filter] table of the project file.
type filterFlags struct {
	onlyCyclic     bool
	removeIsolated bool
	removeSources  bool
	removeSinks    bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "project file (default: <root>/"+config.FileName+")")
	fl.StringVarP(&f.language, "language", "l", "", "language: python, go or auto")
	fl.StringSliceVarP(&f.components, "component", "c", nil, "components to analyze (default: discovered)")
	fl.StringSliceVar(&f.include, "include", nil, "keep only these components")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "skip these components")
	fl.StringSliceVar(&f.excludePackages, "exclude-package", nil, "subpackages never descended into")
	fl.BoolVar(&f.detailed, "detailed", false, "one node per module instead of per component")
	fl.BoolVar(&f.exactLabels, "exact-labels", false, "label edges with their current weight")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the import cache")
	f.filter.register(cmd)
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.onlyCyclic, "only-cyclic", false, "drop edges that are not part of a cycle")
	fl.BoolVar(&f.removeIsolated, "remove-isolated", false, "drop nodes without edges")
	fl.BoolVar(&f.removeSources, "remove-sources", false, "drop nodes nothing imports")
	fl.BoolVar(&f.removeSinks, "remove-sinks", false, "drop nodes that import nothing")
}

// apply copies the filter flags that were set on cmd into cfg.
func (f *filterFlags) apply(cmd *cobra.Command, cfg *config.Filter) {
	fl := cmd.Flags()
	if fl.Changed("only-cyclic") {
		cfg.OnlyCyclic = f.onlyCyclic
	}
	if fl.Changed("remove-isolated") {
		cfg.RemoveIsolated = f.removeIsolated
	}
	if fl.Changed("remove-sources") {
		cfg.RemoveSources = f.removeSources
	}
	if fl.Changed("remove-sinks") {
		cfg.RemoveSinks = f.removeSinks
	}
}

// load reads the project file and applies the flags that were set on cmd.
//
// The root is the first argument, or ".". Without --config the project
// file is looked up in the root, and its own root key wins. With --config
// an explicit root argument overrides the file.
func (f *projectFlags) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	path := f.config
	if path == "" {
		path = config.Find(dir)
	}

	var cfg *config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
		if f.config != "" && len(args) > 0 {
			cfg.Root = dir
		}
	} else {
		cfg = config.Default()
		cfg.Root = dir
	}

	fl := cmd.Flags()
	if fl.Changed("language") {
		cfg.Language = f.language
	}
	if fl.Changed("component") {
		cfg.Components = f.components
	}
	if fl.Changed("include") {
		cfg.Include = f.include
	}
	if fl.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if fl.Changed("exclude-package") {
		cfg.ExcludePackages = f.excludePackages
	}
	if fl.Changed("detailed") {
		cfg.Detailed = f.detailed
	}
	if fl.Changed("exact-labels") {
		cfg.Output.ExactLabels = f.exactLabels
	}
	if f.noCache {
		cfg.Cache.Backend = "none"
	}
	f.filter.apply(cmd, &cfg.Filter)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
