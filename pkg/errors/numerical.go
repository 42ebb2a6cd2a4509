package errors

import (
	"math"
)

// Numerical guards shared by the gradient loop and the log-space posterior
// read-out. Divergence surfaces through these as a typed error instead of
// propagating NaN into the learned parameters.

// CheckNumericalStability returns a NumericalInstabilityError when any
// value is NaN or infinite. iteration is the optimization step the values
// came from.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if !isFinite(v) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar guards a single quantity, typically the loss of one step.
func CheckScalar(operation string, value float64, iteration int) error {
	return CheckNumericalStability(operation, []float64{value}, iteration)
}

// CheckMatrix guards a parameter matrix after an update. At most ten
// offending entries are carried into the error.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols, iteration int) error {
	var bad []float64
	for i := 0; i < rows && len(bad) < 10; i++ {
		for j := 0; j < cols && len(bad) < 10; j++ {
			if v := matrix.At(i, j); !isFinite(v) {
				bad = append(bad, v)
			}
		}
	}
	if len(bad) > 0 {
		return NewNumericalInstabilityError(operation, bad, iteration)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClipValue clamps value into [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is
// numerically zero. This is the 0/0 = 0 convention the metrics rely on.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// StabilizeLog and StabilizeExp are the entry and exit of the log-space
// posterior computation: probabilities go in without ever taking log(0)
// and come back out without overflowing exp.
const (
	logFloor = 1e-10
	expCap   = 700 // just under log(MaxFloat64)
)

// StabilizeLog returns log(max(value, floor)).
func StabilizeLog(value float64) float64 {
	return math.Log(math.Max(value, logFloor))
}

// StabilizeExp returns exp(value) with the exponent clamped to a finite
// range.
func StabilizeExp(value float64) float64 {
	return math.Exp(ClipValue(value, -expCap, expCap))
}

// LogSumExp computes log(sum(exp(values))) by factoring out the maximum, so
// the normalizer of a log posterior never overflows.
func LogSumExp(values []float64) float64 {
	if len(values) == 0 {
		return math.Inf(-1)
	}

	shift := values[0]
	for _, v := range values[1:] {
		if v > shift {
			shift = v
		}
	}
	if math.IsInf(shift, -1) {
		return shift
	}

	sum := 0.0
	for _, v := range values {
		sum += math.Exp(v - shift)
	}
	return shift + math.Log(sum)
}
