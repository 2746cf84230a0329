package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values for a named quantity.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidateHeelAngles validates a list of heel angles in degrees.
//
// Validation rules:
//   - At least one angle
//   - Every angle finite
//   - Angles within [-90, 90]
//   - No duplicates
func ValidateHeelAngles(heels []float64) error {
	if len(heels) == 0 {
		return New(ErrCodeInvalidInput, "heel angle list cannot be empty")
	}
	seen := make(map[float64]bool, len(heels))
	for _, h := range heels {
		if err := ValidateFinite("heel angle", h); err != nil {
			return err
		}
		if h < -90 || h > 90 {
			return New(ErrCodeInvalidInput, "heel angle %v outside [-90, 90] degrees", h)
		}
		if seen[h] {
			return New(ErrCodeInvalidInput, "duplicate heel angle %v", h)
		}
		seen[h] = true
	}
	return nil
}

// ValidateSiteCode validates a site code such as "DAS" or "AGI-002".
// Codes are short, printable and free of path separators so they can be
// used in cache keys and file names.
func ValidateSiteCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return New(ErrCodeInvalidInput, "site code cannot be empty")
	}
	if len(code) > 64 {
		return New(ErrCodeInvalidInput, "site code too long (max 64 characters)")
	}
	for _, r := range code {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "site code contains invalid control characters")
		}
	}
	if strings.ContainsAny(code, "/\\") {
		return New(ErrCodeInvalidInput, "site code cannot contain path separators")
	}
	return nil
}

// ValidatePath validates a local file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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
