package errors

import "math"

// ValidatePositive checks that a numeric parameter is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateOpenUnit checks that v lies in the open interval (0, 1).
// Cooling ratios use this: 0 freezes immediately and 1 never cools.
func ValidateOpenUnit(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v >= 1 {
		return New(ErrCodeInvalidConfig, "%s must be in (0, 1), got %v", name, v)
	}
	return nil
}

// ValidateUnit checks that v lies in the closed interval [0, 1].
func ValidateUnit(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "%s must be in [0, 1], got %v", name, v)
	}
	return nil
}

// ValidateMinInt checks that an integer parameter is at least lo.
func ValidateMinInt(name string, v, lo int) error {
	if v < lo {
		return New(ErrCodeInvalidConfig, "%s must be at least %d, got %d", name, lo, v)
	}
	return nil
}
