package errors

import (
	"strings"
	"unicode"
)

// maxSourceLength bounds item source identifiers.
const maxSourceLength = 2048

// ValidateSource validates an item's image source identifier.
//
// Sources are opaque to the layout core, but catalogs are loaded from files and
// databases, so they are checked before they reach a renderer:
//   - Source cannot be empty
//   - Maximum length of 2048 characters
//   - No control characters or null bytes
//   - URLs must use the http or https scheme
func ValidateSource(src string) error {
	if src == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}

	if len(src) > maxSourceLength {
		return New(ErrCodeInvalidSource, "source too long (max %d characters)", maxSourceLength)
	}

	for _, r := range src {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "source contains invalid control characters")
		}
	}

	if strings.Contains(src, "://") {
		if err := ValidateURL(src); err != nil {
			return Wrap(ErrCodeInvalidSource, err, "invalid source %q", src)
		}
	}

	return nil
}

// ValidatePath validates a file path supplied over the network for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
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
