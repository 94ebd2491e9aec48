// Package units defines immutable CSS value types: colors, sizes and
// spacing boxes. Construction and arithmetic fail fast on malformed literals
// or mismatched units, those are programming errors in style composition.
package units

import "errors"

var (
	// ErrInvalidArgument is returned for literals that cannot be parsed.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnitMismatch is returned when arithmetic mixes incompatible units.
	ErrUnitMismatch = errors.New("unit mismatch")
)
