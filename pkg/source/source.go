// Package source defines the collaborators cyclegraph needs to read a code
// base: package introspection, source retrieval and import extraction.
//
// Concrete languages live in subpackages ([python], [golang]). [Memory]
// is an in-memory tree used by tests and examples.
//
// # Paths
//
// Every component, package and module is addressed by a [Path], the
// sequence of identifiers of its fully-qualified name. A language decides
// how the segments are joined: "shop.models" for Python, "example.com/app/db"
// for Go.
//
// [python]: github.com/matzehuels/cyclegraph/pkg/source/python
// [golang]: github.com/matzehuels/cyclegraph/pkg/source/golang
package source

import (
	"context"
	"errors"
	"slices"
	"strings"
)

var (
	// ErrNotFound is returned by [Reader.Source] when a module has no source.
	ErrNotFound = errors.New("source not found")

	// ErrSyntax is returned by [Extractor.Imports] when a source cannot be
	// analyzed for imports.
	ErrSyntax = errors.New("syntax error")
)

// Path is a fully-qualified name split into its segments.
type Path []string

// Split splits s on sep. An empty string yields an empty path.
func Split(s, sep string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, sep))
}

// Join joins the segments with sep.
func (p Path) Join(sep string) string { return strings.Join(p, sep) }

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// HasPrefix reports whether prefix is a leading run of whole segments of p.
// "shop.models" has prefix "shop" but not "sho".
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return slices.Equal(p[:len(prefix)], prefix)
}

// Kind tags a child of a package.
type Kind int

const (
	// KindPackage is a nested package that may contain further children.
	KindPackage Kind = iota
	// KindModule is a unit of source code with imports.
	KindModule
)

// String returns "package" or "module".
func (k Kind) String() string {
	if k == KindModule {
		return "module"
	}
	return "package"
}

// Child is an importable entry directly below a package.
type Child struct {
	Name string // last segment as listed in the package
	Kind Kind
	Path Path // fully-qualified path of the child
}

// Lister lists the immediate children of a package.
type Lister interface {
	Children(ctx context.Context, pkg Path) ([]Child, error)
}

// Reader returns the source text of a module, or ErrNotFound.
type Reader interface {
	Source(ctx context.Context, module Path) ([]byte, error)
}

// Extractor returns the import targets referenced by a module's source.
// The importing module's path anchors relative imports. The result holds
// each target once, in order of first appearance. Unparsable input
// returns an error wrapping ErrSyntax.
type Extractor interface {
	Imports(ctx context.Context, module Path, src []byte) ([]Path, error)
}

// Importer reports whether a path names a package or module of the tree.
type Importer interface {
	Importable(p Path) bool
}

// Grouper is implemented by languages whose modules are parts of a larger
// importable unit, like the files of a Go package. Per-module graphs use
// the unit as the node so that importers and imported share one identity.
type Grouper interface {
	Unit(module Path) Path
}

// Language bundles the collaborators for one kind of code base.
type Language interface {
	Lister
	Reader
	Extractor
	Importer

	// Name is the language identifier ("python", "go", "memory").
	Name() string
	// Separator joins path segments into component identifiers.
	Separator() string
	// Discover lists the top-level components of the tree.
	Discover(ctx context.Context) ([]string, error)
}
