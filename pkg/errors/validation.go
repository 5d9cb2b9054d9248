package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// artifactKeyRegex matches keys produced by the artifact stores,
// e.g. "charts/chart-0b8f3c1e-....svg".
var artifactKeyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)*$`)

// ValidateArtifactKey validates an artifact key before it is used to build a
// filesystem path or a database lookup. Keys arrive from URLs served by the
// HTTP boundary, so the rules are conservative:
//   - No empty keys
//   - Maximum length of 256 characters
//   - No control characters or null bytes
//   - No absolute paths, path traversal (..) or backslashes
func ValidateArtifactKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "artifact key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "artifact key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "artifact key contains invalid control characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidInput, "artifact key must be relative")
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"//", // Double slash
		"\\", // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidInput, "artifact key contains invalid characters: %q", pattern)
		}
	}

	if !artifactKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid artifact key: %q", key)
	}

	return nil
}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "svg", "png", "pdf":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}
	return New(ErrCodeInvalidFormat, "unsupported output format: %q (want svg, png or pdf)", format)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
