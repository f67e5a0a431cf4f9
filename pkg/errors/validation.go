package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateGraphName validates a graph name before it is stored or used as
// a document title.
//
// The rules are deliberately loose, names are display text:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateGraphName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidName, "graph name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains invalid control characters")
		}
	}
	return nil
}

var documentIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateDocumentID validates a store document identifier. Identifiers end
// up in file names and Redis keys, so they are restricted to a safe subset.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document id cannot be empty")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "document id cannot contain path traversal sequences (..)")
	}
	if !documentIDRe.MatchString(id) {
		return New(ErrCodeInvalidInput, "document id %q contains invalid characters", id)
	}
	return nil
}

// ValidateParameters checks a generator parameter string against the
// generator's declared pattern.
func ValidateParameters(params string, pattern *regexp.Regexp) error {
	if pattern == nil {
		return nil
	}
	if !pattern.MatchString(params) {
		return New(ErrCodeInvalidParameters, "parameters %q do not match %s", params, pattern)
	}
	return nil
}

// ValidateDocumentPath validates a path to a graph document.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .vsg or .json
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vsg", ".json":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported document extension %q (want .vsg or .json)", filepath.Ext(path))
	}
}
