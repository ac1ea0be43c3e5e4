package ecws

import "errors"

// Sentinel errors returned by this package: plain errors.New values
// compared by identity, never a custom error type or wrapped chain.
var (
	// ErrNull is returned when a required NewCurve argument (modulus, b,
	// order) is missing or zero-length.
	ErrNull = errors.New("ecws: missing argument")

	// ErrNotEnoughData is returned when an encoded byte string has an
	// unusable length: a zero-length point coordinate or scalar, a point
	// coordinate longer than the curve's canonical width, or a NewCurve b
	// or order whose length differs from the modulus's.
	ErrNotEnoughData = errors.New("ecws: not enough data")

	// ErrValue is returned when a decoded integer is out of range for its
	// field (>= the modulus) or otherwise structurally invalid, including
	// a generator-ladder scalar wide enough to need more windows than the
	// precomputed table covers.
	ErrValue = errors.New("ecws: value out of range")

	// ErrMemory is returned when a caller-supplied buffer (e.g. a
	// destination for an encoded point) has the wrong length.
	ErrMemory = errors.New("ecws: buffer has wrong length")

	// ErrPoint is returned when a candidate (x,y) pair does not satisfy
	// the curve equation.
	ErrPoint = errors.New("ecws: point not on curve")

	// ErrCurveMismatch is returned when an operation mixes points bound to
	// two different Curve contexts.
	ErrCurveMismatch = errors.New("ecws: points belong to different curves")
)
