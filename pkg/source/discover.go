package source

import (
	"context"
	"fmt"
	"slices"
)

// Components returns the root components to analyze.
//
// When explicit is non-empty it is used as-is, otherwise the language's
// [Language.Discover] result is used. include keeps only the listed
// components (when non-empty) and exclude drops the listed ones. The order
// of the base list is preserved.
func Components(ctx context.Context, lang Language, explicit, include, exclude []string) ([]string, error) {
	base := explicit
	if len(base) == 0 {
		var err error
		base, err = lang.Discover(ctx)
		if err != nil {
			return nil, fmt.Errorf("discover components: %w", err)
		}
	}

	var out []string
	for _, c := range base {
		if len(include) > 0 && !slices.Contains(include, c) {
			continue
		}
		if slices.Contains(exclude, c) {
			continue
		}
		if slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
