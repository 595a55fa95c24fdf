package source

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Memory is an in-memory [Language] built from a map of module paths to
// import lists. Packages are implied by the module paths.
//
//	m := source.NewMemory(".", map[string][]string{
//	    "a.views":  {"b.models.User"},
//	    "b.models": {"a.views"},
//	})
//
// A module whose import list contains the single entry [MemorySyntaxError]
// fails extraction with ErrSyntax.
type Memory struct {
	sep      string
	modules  map[string][]string
	packages map[string]bool
	children map[string][]Child
	top      []string
}

// MemorySyntaxError marks a module whose source does not parse.
const MemorySyntaxError = "<syntax error>"

// NewMemory builds a tree from module paths joined with sep. Children keep
// the order in which modules were sorted by path.
func NewMemory(sep string, modules map[string][]string) *Memory {
	m := &Memory{
		sep:      sep,
		modules:  modules,
		packages: make(map[string]bool),
		children: make(map[string][]Child),
	}

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	slices.Sort(names)

	seen := make(map[string]bool)
	add := func(parent string, c Child) {
		key := c.Path.Join(sep)
		if seen[key] {
			return
		}
		seen[key] = true
		m.children[parent] = append(m.children[parent], c)
	}

	for _, name := range names {
		p := Split(name, sep)
		for i := 1; i < len(p); i++ {
			pkg := p[:i]
			m.packages[pkg.Join(sep)] = true
			if i == 1 && !slices.Contains(m.top, p[0]) {
				m.top = append(m.top, p[0])
			}
			if i > 1 {
				add(pkg[:i-1].Join(sep), Child{Name: pkg[i-1], Kind: KindPackage, Path: slices.Clone(pkg)})
			}
		}
		add(p.Parent().Join(sep), Child{Name: p[len(p)-1], Kind: KindModule, Path: p})
	}
	return m
}

func (m *Memory) Name() string      { return "memory" }
func (m *Memory) Separator() string { return m.sep }

// Discover returns the top-level packages in sorted order.
func (m *Memory) Discover(context.Context) ([]string, error) {
	return slices.Clone(m.top), nil
}

func (m *Memory) Children(_ context.Context, pkg Path) ([]Child, error) {
	key := pkg.Join(m.sep)
	if !m.packages[key] {
		return nil, fmt.Errorf("%w: package %s", ErrNotFound, key)
	}
	return slices.Clone(m.children[key]), nil
}

// Source renders the module's imports as one target per line.
func (m *Memory) Source(_ context.Context, module Path) ([]byte, error) {
	imports, ok := m.modules[module.Join(m.sep)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, module.Join(m.sep))
	}
	return []byte(strings.Join(imports, "\n")), nil
}

// Imports parses the line format produced by Source. Duplicate lines are
// reported once.
func (m *Memory) Imports(_ context.Context, module Path, src []byte) ([]Path, error) {
	var out []Path
	seen := make(map[string]bool)
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if line == MemorySyntaxError {
			return nil, fmt.Errorf("%w: %s", ErrSyntax, module.Join(m.sep))
		}
		seen[line] = true
		out = append(out, Split(line, m.sep))
	}
	return out, nil
}

func (m *Memory) Importable(p Path) bool {
	key := p.Join(m.sep)
	if m.packages[key] {
		return true
	}
	_, ok := m.modules[key]
	return ok
}

var _ Language = (*Memory)(nil)
