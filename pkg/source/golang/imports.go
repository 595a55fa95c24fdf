package golang

import (
	"context"
	"fmt"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/matzehuels/cyclegraph/pkg/source"
)

// Imports extracts the import paths of a Go file.
func (t *Tree) Imports(ctx context.Context, module source.Path, src []byte) ([]source.Path, error) {
	imports, err := Extract(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", module.Join(separator), err)
	}
	return imports, nil
}

// Extract returns the import paths declared by src, each once, in source
// order. The pseudo-package "C" is skipped.
func Extract(ctx context.Context, src []byte) ([]source.Path, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, source.ErrSyntax
	}

	var out []source.Path
	seen := make(map[string]bool)
	add := func(spec *sitter.Node) error {
		lit := spec.ChildByFieldName("path")
		if lit == nil {
			return nil
		}
		path, err := strconv.Unquote(lit.Content(src))
		if err != nil {
			return fmt.Errorf("%w: import %s", source.ErrSyntax, lit.Content(src))
		}
		if path == "C" || path == "" || seen[path] {
			return nil
		}
		seen[path] = true
		out = append(out, source.Split(path, separator))
		return nil
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "import_declaration" {
			continue
		}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			child := decl.NamedChild(j)
			switch child.Type() {
			case "import_spec":
				if err := add(child); err != nil {
					return nil, err
				}
			case "import_spec_list":
				for k := 0; k < int(child.NamedChildCount()); k++ {
					spec := child.NamedChild(k)
					if spec.Type() != "import_spec" {
						continue
					}
					if err := add(spec); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return out, nil
}
