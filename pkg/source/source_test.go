package source

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestPath(t *testing.T) {
	p := Split("a.b.c", ".")
	if got := p.Join("."); got != "a.b.c" {
		t.Errorf("Join() = %q", got)
	}
	if got := p.Parent().Join("."); got != "a.b" {
		t.Errorf("Parent() = %q", got)
	}
	if got := p.Child("d").Join("/"); got != "a/b/c/d" {
		t.Errorf("Child() = %q", got)
	}
	if len(Split("", ".")) != 0 {
		t.Error("Split(\"\") should be empty")
	}
	if len(Path(nil).Parent()) != 0 {
		t.Error("Parent() of empty path should be empty")
	}
}

func TestPathHasPrefix(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"shop.models", "shop", true},
		{"shop.models", "shop.models", true},
		{"shop", "shop.models", false},
		{"shopping.cart", "shop", false},
		{"billing", "shop", false},
	}
	for _, tt := range tests {
		got := Split(tt.path, ".").HasPrefix(Split(tt.prefix, "."))
		if got != tt.want {
			t.Errorf("%q.HasPrefix(%q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 2, 4)
	copy(base, []string{"a", "b"})
	x := base.Child("x")
	y := base.Child("y")
	if x.Join(".") != "a.b.x" || y.Join(".") != "a.b.y" {
		t.Errorf("Child() aliased: %v %v", x, y)
	}
}

func TestMemoryChildren(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(".", map[string][]string{
		"a.views":      {"b.models"},
		"a.sub.helper": nil,
		"b.models":     nil,
	})

	children, err := m.Children(ctx, Path{"a"})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range children {
		got = append(got, c.Kind.String()+":"+c.Path.Join("."))
	}
	want := []string{"package:a.sub", "module:a.views"}
	if !slices.Equal(got, want) {
		t.Errorf("Children(a) = %v, want %v", got, want)
	}

	if _, err := m.Children(ctx, Path{"zzz"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Children(unknown) error = %v, want ErrNotFound", err)
	}

	top, _ := m.Discover(ctx)
	if !slices.Equal(top, []string{"a", "b"}) {
		t.Errorf("Discover() = %v", top)
	}
}

func TestMemoryImports(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(".", map[string][]string{
		"a.views":  {"b.models.User", "b.models.User", "os.path"},
		"a.broken": {MemorySyntaxError},
		"b.models": nil,
	})

	src, err := m.Source(ctx, Path{"a", "views"})
	if err != nil {
		t.Fatal(err)
	}
	imports, err := m.Imports(ctx, Path{"a", "views"}, src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Path{{"b", "models", "User"}, {"os", "path"}}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("Imports() = %v, want %v", imports, want)
	}

	src, _ = m.Source(ctx, Path{"a", "broken"})
	if _, err := m.Imports(ctx, Path{"a", "broken"}, src); !errors.Is(err, ErrSyntax) {
		t.Errorf("Imports() error = %v, want ErrSyntax", err)
	}

	if _, err := m.Source(ctx, Path{"a", "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Source() error = %v, want ErrNotFound", err)
	}

	if !m.Importable(Path{"b", "models"}) || !m.Importable(Path{"a"}) {
		t.Error("Importable() should accept modules and packages")
	}
	if m.Importable(Path{"b", "models", "User"}) {
		t.Error("Importable() should reject symbols")
	}
}

func TestComponents(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(".", map[string][]string{"a.x": nil, "b.x": nil, "c.x": nil})

	tests := []struct {
		name                       string
		explicit, include, exclude []string
		want                       []string
	}{
		{"discover all", nil, nil, nil, []string{"a", "b", "c"}},
		{"explicit", []string{"c", "a"}, nil, nil, []string{"c", "a"}},
		{"include", nil, []string{"b"}, nil, []string{"b"}},
		{"exclude", nil, nil, []string{"b"}, []string{"a", "c"}},
		{"dedupe", []string{"a", "a"}, nil, nil, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Components(ctx, m, tt.explicit, tt.include, tt.exclude)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Components() = %v, want %v", got, tt.want)
			}
		})
	}
}
