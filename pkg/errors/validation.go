package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateComponentName validates a component identifier for safety.
// It rejects names that could be used for path traversal.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - Maximum length of 256 characters
//
// Language-specific validation is done by ValidatePythonComponent and
// ValidateGoComponent.
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidComponent, "component name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidComponent, "component name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidComponent, "component name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidComponent, "component name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// pythonComponentRegex matches dotted Python package paths.
var pythonComponentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidatePythonComponent validates a dotted Python package path.
func ValidatePythonComponent(name string) error {
	if err := ValidateComponentName(name); err != nil {
		return err
	}

	if !pythonComponentRegex.MatchString(name) {
		return New(ErrCodeInvalidComponent, "invalid Python package path: %q", name)
	}

	return nil
}

// goImportPathRegex matches valid Go import paths.
var goImportPathRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/~-]*$`)

// ValidateGoComponent validates a Go package import path.
func ValidateGoComponent(path string) error {
	if err := ValidateComponentName(path); err != nil {
		return err
	}

	if !goImportPathRegex.MatchString(path) || strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidComponent, "invalid Go import path: %q", path)
	}

	return nil
}

// ValidateComponent validates name for the given language. Unknown
// languages only get the generic checks.
func ValidateComponent(language, name string) error {
	switch language {
	case "python":
		return ValidatePythonComponent(name)
	case "go":
		return ValidateGoComponent(name)
	default:
		return ValidateComponentName(name)
	}
}
