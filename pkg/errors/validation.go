package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxItemID bounds item identifiers accepted from input documents.
const maxItemID = 256

// ValidateItemID validates an item identifier for safety.
// IDs end up in SVG attributes and cache keys, so control characters and
// quoting characters are rejected.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}
	if len(id) > maxItemID {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", maxItemID)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, `"<>&`) {
		return New(ErrCodeInvalidItem, "item id contains invalid characters: %q", id)
	}
	return nil
}

// ValidateSize checks that a natural item size is usable for ratio
// computation: finite, width strictly positive and height non-negative.
func ValidateSize(w, h float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || math.IsNaN(h) || math.IsInf(h, 0) {
		return New(ErrCodeInvalidItem, "item size must be finite (got %vx%v)", w, h)
	}
	if w <= 0 {
		return New(ErrCodeInvalidItem, "item width must be positive (got %v)", w)
	}
	if h < 0 {
		return New(ErrCodeInvalidItem, "item height cannot be negative (got %v)", h)
	}
	return nil
}

// ValidateSpacing checks that a spacing or margin value is a finite,
// non-negative number.
func ValidateSpacing(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a non-negative number (got %v)", name, v)
	}
	return nil
}

// ValidatePath validates a file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
	return nil
}
