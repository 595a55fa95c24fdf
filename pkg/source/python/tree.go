// Package python reads Python code bases from the filesystem.
//
// A package is a directory holding an __init__.py, a module is a .py file.
// The __init__.py of a package is reported as a module whose path is the
// package path itself, matching how Python names it on import.
//
// Imports are extracted with tree-sitter:
//
//	import a.b            -> a.b
//	import a.b as c       -> a.b
//	from a.b import c, d  -> a.b.c, a.b.d
//	from a import *       -> a
//	from ..c import d     -> <parent package>.c.d
//
// Statements nested in functions, conditionals or try blocks are included.
package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/cyclegraph/pkg/source"
)

const (
	initFile  = "__init__.py"
	extension = ".py"
)

// Tree is a Python source tree rooted at a directory on the import path.
type Tree struct {
	root string

	mu       sync.Mutex
	packages map[string]bool
}

// New returns a tree rooted at dir. Top-level packages are the immediate
// subdirectories of dir.
func New(dir string) *Tree {
	return &Tree{root: dir, packages: make(map[string]bool)}
}

func (t *Tree) Name() string      { return "python" }
func (t *Tree) Separator() string { return "." }

// Root returns the directory the tree was opened on.
func (t *Tree) Root() string { return t.root }

// Discover lists the top-level packages in name order.
func (t *Tree) Discover(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || !isIdentifier(e.Name()) {
			continue
		}
		if t.isPackage(source.Path{e.Name()}) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Children lists the subpackages and modules of pkg in name order. The
// package's own __init__.py comes first.
func (t *Tree) Children(ctx context.Context, pkg source.Path) ([]source.Child, error) {
	if !t.isPackage(pkg) {
		return nil, fmt.Errorf("%w: package %s", source.ErrNotFound, pkg.Join("."))
	}
	entries, err := os.ReadDir(t.dir(pkg))
	if err != nil {
		return nil, err
	}

	var out []source.Child
	for _, e := range entries {
		name := e.Name()
		switch {
		case name == initFile:
			out = slices.Insert(out, 0, source.Child{Name: "__init__", Kind: source.KindModule, Path: slices.Clone(pkg)})
		case e.IsDir():
			if !isIdentifier(name) {
				continue
			}
			child := pkg.Child(name)
			if t.isPackage(child) {
				out = append(out, source.Child{Name: name, Kind: source.KindPackage, Path: child})
			}
		case strings.HasSuffix(name, extension):
			stem := strings.TrimSuffix(name, extension)
			if isIdentifier(stem) {
				out = append(out, source.Child{Name: stem, Kind: source.KindModule, Path: pkg.Child(stem)})
			}
		}
	}
	return out, nil
}

// Source reads the file behind module. A package path reads its
// __init__.py.
func (t *Tree) Source(ctx context.Context, module source.Path) ([]byte, error) {
	if len(module) == 0 {
		return nil, fmt.Errorf("%w: empty module path", source.ErrNotFound)
	}
	path := t.file(module)
	if path == "" {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, module.Join("."))
	}
	return os.ReadFile(path)
}

// Importable reports whether p names a package or a module whose parent
// chain consists of packages.
func (t *Tree) Importable(p source.Path) bool {
	return len(p) > 0 && t.file(p) != ""
}

// file returns the file that defines p, or "".
func (t *Tree) file(p source.Path) string {
	if t.isPackage(p) {
		return filepath.Join(t.dir(p), initFile)
	}
	if len(p) > 1 && !t.isPackage(p.Parent()) {
		return ""
	}
	path := t.dir(p) + extension
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return ""
}

// isPackage reports whether every prefix of p is a directory with an
// __init__.py. Results are memoized.
func (t *Tree) isPackage(p source.Path) bool {
	if len(p) == 0 {
		return false
	}
	key := p.Join(".")

	t.mu.Lock()
	known, ok := t.packages[key]
	t.mu.Unlock()
	if ok {
		return known
	}

	is := len(p) == 1 || t.isPackage(p[:len(p)-1])
	if is {
		_, err := os.Stat(filepath.Join(t.dir(p), initFile))
		is = err == nil
	}

	t.mu.Lock()
	t.packages[key] = is
	t.mu.Unlock()
	return is
}

func (t *Tree) dir(p source.Path) string {
	return filepath.Join(append([]string{t.root}, p...)...)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

var _ source.Language = (*Tree)(nil)
