package errors

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidateRange checks that v lies within [lo, hi].
func ValidateRange[T cmp.Ordered](name string, v, lo, hi T) error {
	if v < lo || v > hi {
		return New(ErrCodeInvalidOption, "%s must be between %v and %v (got %v)", name, lo, hi, v)
	}
	return nil
}

// ValidateStep checks that v is lo plus a whole multiple of step.
// A tolerance of 1e-9 absorbs float representation error for fractional steps.
func ValidateStep(name string, v, lo, step float64) error {
	if step <= 0 {
		return nil
	}
	n := (v - lo) / step
	if math.Abs(n-math.Round(n)) > 1e-9 {
		return New(ErrCodeInvalidOption, "%s must be a multiple of %v (got %v)", name, step, v)
	}
	return nil
}

// ValidateOneOf checks that v is one of the allowed values.
func ValidateOneOf[T comparable](name string, v T, allowed ...T) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	return New(ErrCodeInvalidOption, "invalid %s: %v (must be one of: %s)", name, v, strings.Join(parts, ", "))
}

// ValidateFilename validates an output filename for safety.
//
// Validation rules:
//   - Filename cannot be empty
//   - No null bytes or control characters
//   - Maximum length of 255 characters
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidInput, "filename too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid control characters")
		}
	}
	return nil
}
