// Package config loads cyclegraph project files.
//
// A project file is TOML, named cyclegraph.toml by default:
//
//	root = "src"
//	language = "python"
//	components = ["shop", "billing"]
//	exclude_packages = ["tests", "migrations"]
//	detailed = false
//
//	[filter]
//	only_cyclic = true
//	remove_isolated = true
//
//	[cache]
//	backend = "file"      # file | redis | none
//	ttl = "168h"
//
//	[output]
//	file = "graph.svg"
//	exact_labels = false
//
// Relative paths are resolved against the directory of the project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cyclegraph/pkg/errors"
)

// FileName is the project file looked up by [Find].
const FileName = "cyclegraph.toml"

// Languages accepted in the language key. "auto" picks go when a go.mod
// exists and python otherwise.
var Languages = []string{"auto", "python", "go"}

// Backends accepted in the cache.backend key.
var Backends = []string{"file", "redis", "none"}

// Config is a project file.
type Config struct {
	Root            string   `toml:"root"`
	Language        string   `toml:"language"`
	Components      []string `toml:"components"`
	Include         []string `toml:"include"`
	Exclude         []string `toml:"exclude"`
	ExcludePackages []string `toml:"exclude_packages"`
	Detailed        bool     `toml:"detailed"`

	Filter Filter `toml:"filter"`
	Cache  Cache  `toml:"cache"`
	Output Output `toml:"output"`

	path string
}

// Filter mirrors the post-processing switches.
type Filter struct {
	OnlyCyclic     bool `toml:"only_cyclic"`
	RemoveIsolated bool `toml:"remove_isolated"`
	RemoveSources  bool `toml:"remove_sources"`
	RemoveSinks    bool `toml:"remove_sinks"`
}

// Cache selects the import cache backend.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// Output configures the exported file.
type Output struct {
	File        string `toml:"file"`
	ExactLabels bool   `toml:"exact_labels"`
}

// Default returns a configuration with defaults applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads and validates the project file at path. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.path = path
	c.SetDefaults()
	c.resolvePaths(filepath.Dir(path))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Find returns the project file in dir, or "" when there is none.
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string { return c.path }

// SetDefaults fills empty fields.
func (c *Config) SetDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Language == "" {
		c.Language = "auto"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "cyclegraph:"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 7 * 24 * time.Hour
	}
}

// Validate checks field values. Components are checked against the
// configured language.
func (c *Config) Validate() error {
	if !slices.Contains(Languages, c.Language) {
		return errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q (want one of %s)", c.Language, strings.Join(Languages, ", "))
	}
	if !slices.Contains(Backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported cache backend %q (want one of %s)", c.Cache.Backend, strings.Join(Backends, ", "))
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs cache.redis_addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	for _, list := range [][]string{c.Components, c.Include, c.Exclude} {
		for _, name := range list {
			if err := errors.ValidateComponent(c.Language, name); err != nil {
				return err
			}
		}
	}
	for _, name := range c.ExcludePackages {
		if err := errors.ValidateComponentName(name); err != nil {
			return err
		}
	}
	return nil
}

// DetectLanguage resolves "auto" by looking at the root directory.
func (c *Config) DetectLanguage() string {
	if c.Language != "auto" {
		return c.Language
	}
	return DetectLanguage(c.Root)
}

// DetectLanguage returns "go" when root holds a go.mod and "python"
// otherwise.
func DetectLanguage(root string) string {
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
		return "go"
	}
	return "python"
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return sb.String()
}

func (c *Config) resolvePaths(base string) {
	c.Root = resolve(base, c.Root)
	if c.Cache.Dir != "" {
		c.Cache.Dir = resolve(base, c.Cache.Dir)
	}
	if c.Output.File != "" {
		c.Output.File = resolve(base, c.Output.File)
	}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
