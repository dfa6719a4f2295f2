package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// refRegex matches valid component reference designators (e.g. "U1", "R12",
// "C3_A"). A leading letter group followed by digits is the usual convention;
// underscores and dashes are tolerated for generated references.
var refRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidateRef validates a component reference designator.
//
// The validation rules are intentionally conservative:
//   - No empty references
//   - No control characters
//   - Must start with a letter, then letters/digits/"_" "." "-"
//   - Maximum length of 64 characters
func ValidateRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidComponent, "component ref cannot be empty")
	}

	if len(ref) > 64 {
		return New(ErrCodeInvalidComponent, "component ref too long (max 64 characters)")
	}

	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidComponent, "component ref contains control characters")
		}
	}

	if !refRegex.MatchString(ref) {
		return New(ErrCodeInvalidComponent, "invalid component ref: %q", ref)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It prevents null bytes and control characters without restricting
// legitimate absolute or relative paths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateNetName validates an electrical net name.
// Net names come from schematic tools and are fairly free-form, but control
// characters and path-like separators are rejected so the name is safe to
// embed in reports and cache keys.
func ValidateNetName(name string) error {
	if name == "" {
		return nil // unnamed nets are legal (net number only)
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidBoard, "net name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "net name contains control characters")
		}
	}

	if strings.ContainsAny(name, "\\\x00") {
		return New(ErrCodeInvalidBoard, "net name contains invalid characters")
	}

	return nil
}
