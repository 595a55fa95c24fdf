package resolve

import (
	"slices"
	"testing"

	"github.com/matzehuels/cyclegraph/pkg/source"
)

type importables map[string]bool

func (m importables) Importable(p source.Path) bool { return m[p.Join(".")] }

func TestResolve(t *testing.T) {
	r := New(importables{"a.b": true, "x": true, "x.y.z": true})

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"symbol inside module", "a.b.c", "a.b", true},
		{"exact module", "a.b", "a.b", true},
		{"deep symbol", "a.b.c.d.e", "a.b", true},
		{"longest prefix wins", "x.y.z.w", "x.y.z", true},
		{"falls back to shorter prefix", "x.q", "x", true},
		{"no prefix matches", "django.db.models", "", false},
		{"parent not importable", "a", "", false},
		{"empty path", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(source.Split(tt.path, "."))
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got.Join(".") != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got.Join("."), tt.want)
			}
		})
	}
}

func TestResolveDoesNotAliasInput(t *testing.T) {
	r := New(importables{"a.b": true})
	in := source.Path{"a", "b", "c"}
	got, _ := r.Resolve(in)
	got = append(got, "x")
	if !slices.Equal(in, source.Path{"a", "b", "c"}) {
		t.Errorf("appending to the result modified the input: %v", in)
	}
}

func TestResolveMemory(t *testing.T) {
	m := source.NewMemory(".", map[string][]string{"shop.models": nil})
	r := New(m)

	got, ok := r.Resolve(source.Split("shop.models.Order", "."))
	if !ok || got.Join(".") != "shop.models" {
		t.Errorf("Resolve() = %v, %v", got, ok)
	}
	if _, ok := r.Resolve(source.Split("requests.get", ".")); ok {
		t.Error("third-party import should not resolve")
	}
}
