// Package golang reads Go modules from the filesystem.
//
// Packages are directories below the module root. Each non-test .go file
// is a module whose path is its package path plus the file name, so
// "example.com/app/db/conn.go" is a module of package "example.com/app/db".
// Import targets are package paths, and [Tree.Unit] maps a file back to its
// package so per-module graphs connect packages. Directories named vendor or testdata,
// and those starting with "." or "_", are skipped like the go tool does.
package golang

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/cyclegraph/pkg/source"
)

const (
	separator = "/"
	extension = ".go"
)

// Tree is a Go module on disk.
type Tree struct {
	dir    string
	module string
	prefix source.Path
}

// Open reads the go.mod in dir.
func Open(dir string) (*Tree, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return nil, err
	}
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return nil, fmt.Errorf("parse go.mod: no module directive")
	}
	return &Tree{
		dir:    dir,
		module: f.Module.Mod.Path,
		prefix: source.Split(f.Module.Mod.Path, separator),
	}, nil
}

func (t *Tree) Name() string      { return "go" }
func (t *Tree) Separator() string { return separator }

// Module returns the module path declared in go.mod.
func (t *Tree) Module() string { return t.module }

// Discover lists the top-level package directories as full import paths.
func (t *Tree) Discover(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && !skipDir(e.Name()) {
			out = append(out, t.module+separator+e.Name())
		}
	}
	return out, nil
}

// Children lists the Go files of pkg followed by its subdirectories, in
// name order.
func (t *Tree) Children(ctx context.Context, pkg source.Path) ([]source.Child, error) {
	dir, ok := t.dirOf(pkg)
	if !ok {
		return nil, fmt.Errorf("%w: package %s outside module %s", source.ErrNotFound, pkg.Join(separator), t.module)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: package %s", source.ErrNotFound, pkg.Join(separator))
	}

	var files, dirs []source.Child
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			if !skipDir(name) {
				dirs = append(dirs, source.Child{Name: name, Kind: source.KindPackage, Path: pkg.Child(name)})
			}
		case isSourceFile(name):
			files = append(files, source.Child{Name: name, Kind: source.KindModule, Path: pkg.Child(name)})
		}
	}
	return append(files, dirs...), nil
}

// Source reads the file behind module.
func (t *Tree) Source(ctx context.Context, module source.Path) ([]byte, error) {
	if len(module) == 0 || !isSourceFile(module[len(module)-1]) {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, module.Join(separator))
	}
	dir, ok := t.dirOf(module.Parent())
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, module.Join(separator))
	}
	data, err := os.ReadFile(filepath.Join(dir, module[len(module)-1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, module.Join(separator))
	}
	return data, nil
}

// Unit returns the package a file belongs to. Imports name packages, so
// per-file graphs are drawn between packages.
func (t *Tree) Unit(module source.Path) source.Path {
	if len(module) > 0 && isSourceFile(module[len(module)-1]) {
		return module.Parent()
	}
	return module
}

// Importable reports whether p is a directory of the module holding at
// least one non-test Go file, or one such file.
func (t *Tree) Importable(p source.Path) bool {
	if len(p) == 0 {
		return false
	}
	if last := p[len(p)-1]; isSourceFile(last) {
		dir, ok := t.dirOf(p.Parent())
		if !ok {
			return false
		}
		info, err := os.Stat(filepath.Join(dir, last))
		return err == nil && info.Mode().IsRegular()
	}

	dir, ok := t.dirOf(p)
	if !ok {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	return slices.ContainsFunc(entries, func(e os.DirEntry) bool {
		return !e.IsDir() && isSourceFile(e.Name())
	})
}

// dirOf maps a package path to its directory. It reports false for paths
// outside the module or through skipped directories.
func (t *Tree) dirOf(pkg source.Path) (string, bool) {
	if !pkg.HasPrefix(t.prefix) {
		return "", false
	}
	rel := pkg[len(t.prefix):]
	if slices.ContainsFunc(rel, skipDir) {
		return "", false
	}
	return filepath.Join(append([]string{t.dir}, rel...)...), true
}

func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func isSourceFile(name string) bool {
	return strings.HasSuffix(name, extension) && !strings.HasSuffix(name, "_test"+extension) &&
		!strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}

var (
	_ source.Language = (*Tree)(nil)
	_ source.Grouper  = (*Tree)(nil)
)
