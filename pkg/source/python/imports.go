package python

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/matzehuels/cyclegraph/pkg/source"
)

// Imports extracts the import targets of a module. Relative imports are
// anchored on the module's package, or on the module itself when it is a
// package's __init__.py.
func (t *Tree) Imports(ctx context.Context, module source.Path, src []byte) ([]source.Path, error) {
	anchor := module.Parent()
	if t.isPackage(module) {
		anchor = slices.Clone(module)
	}
	imports, err := Extract(ctx, anchor, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", module.Join("."), err)
	}
	return imports, nil
}

// Extract parses src and returns every import target once, in order of
// first appearance. pkg is the package relative imports start from.
func Extract(ctx context.Context, pkg source.Path, src []byte) ([]source.Path, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, source.ErrSyntax
	}

	c := &collector{src: src, pkg: pkg, seen: make(map[string]bool)}
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type() {
		case "import_statement":
			c.importStatement(n)
			continue
		case "import_from_statement":
			c.fromStatement(n)
			continue
		case "future_import_statement":
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
	return c.out, nil
}

type collector struct {
	src  []byte
	pkg  source.Path
	seen map[string]bool
	out  []source.Path
}

func (c *collector) add(p source.Path) {
	if len(p) == 0 {
		return
	}
	key := p.Join(".")
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, p)
}

// importStatement handles "import a.b" and "import a.b as c".
func (c *collector) importStatement(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "dotted_name":
			c.add(c.dotted(child))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				c.add(c.dotted(name))
			}
		}
	}
}

// fromStatement handles "from x import y", including relative and
// wildcard forms.
func (c *collector) fromStatement(n *sitter.Node) {
	var (
		base      source.Path
		names     []source.Path
		wildcard  bool
		sawImport bool
		valid     = true
	)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			base, valid = c.relative(child)
		case "dotted_name":
			if sawImport {
				names = append(names, c.dotted(child))
			} else {
				base = c.dotted(child)
			}
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, c.dotted(name))
			}
		case "wildcard_import":
			wildcard = true
		}
	}

	if !valid {
		return
	}
	if wildcard || len(names) == 0 {
		c.add(base)
		return
	}
	for _, name := range names {
		p := make(source.Path, 0, len(base)+len(name))
		p = append(p, base...)
		c.add(append(p, name...))
	}
}

// relative resolves "..a.b" against the anchor package. It reports false
// when the dots climb above the top-level package.
func (c *collector) relative(n *sitter.Node) (source.Path, bool) {
	var dots int
	var name source.Path
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import_prefix":
			dots = strings.Count(child.Content(c.src), ".")
		case "dotted_name":
			name = c.dotted(child)
		}
	}

	up := dots - 1
	if up >= len(c.pkg) {
		return nil, false
	}
	base := make(source.Path, 0, len(c.pkg)-up+len(name))
	base = append(base, c.pkg[:len(c.pkg)-up]...)
	return append(base, name...), true
}

// dotted returns the identifiers of a dotted_name node.
func (c *collector) dotted(n *sitter.Node) source.Path {
	if n.Type() == "identifier" {
		return source.Path{n.Content(c.src)}
	}
	var p source.Path
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "identifier" {
			p = append(p, child.Content(c.src))
		}
	}
	return p
}
