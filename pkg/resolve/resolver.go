// Package resolve maps raw import targets to the modules that define them.
//
// An import statement may name a symbol inside a module ("shop.models.Order")
// rather than the module itself. The true target is the longest leading
// part of the dotted path that is itself importable, so the resolver keeps
// dropping the last segment until it finds one.
package resolve

import "github.com/matzehuels/cyclegraph/pkg/source"

// Resolver finds the longest importable prefix of an import path.
type Resolver struct {
	importer source.Importer
}

// New creates a resolver backed by importer.
func New(importer source.Importer) *Resolver {
	return &Resolver{importer: importer}
}

// Resolve returns the longest prefix of p that is importable, or false when
// no prefix is. A miss is an expected outcome for third-party imports.
func (r *Resolver) Resolve(p source.Path) (source.Path, bool) {
	for n := len(p); n > 0; n-- {
		if r.importer.Importable(p[:n]) {
			return p[:n:n], true
		}
	}
	return nil, false
}
