package pipeline

import (
	"os"

	"github.com/matzehuels/cyclegraph/pkg/errors"
	"github.com/matzehuels/cyclegraph/pkg/source"
	"github.com/matzehuels/cyclegraph/pkg/source/golang"
	"github.com/matzehuels/cyclegraph/pkg/source/python"
)

// OpenLanguage returns the source adapter for name rooted at root.
func OpenLanguage(name, root string) (source.Language, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root %s is not a directory", root)
	}

	switch name {
	case LanguagePython:
		return python.New(root), nil
	case LanguageGo:
		t, err := golang.Open(root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open go module")
		}
		return t, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", name)
	}
}
