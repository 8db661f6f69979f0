// Package safe provides arithmetic helpers that report a zero divisor as a
// named error instead of a quotient. Overflow and NaN operands follow
// IEEE 754 and are returned as-is.
package safe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrDivisionByZero is returned when the divisor is zero. It marks the
	// absence of a result, not a malfunction.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNonNumericOperand is returned when an operand cannot be parsed.
	ErrNonNumericOperand = errors.New("operand is not numeric")
)

// Divide returns a / b, or ErrDivisionByZero when b is zero (including -0).
//
// Example:
//
//	q, err := safe.Divide(total, count)
//	if errors.Is(err, safe.ErrDivisionByZero) {
//	    // no result
//	}
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}

	return a / b, nil
}

// ParseOperand parses s as a finite float64 operand.
func ParseOperand(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericOperand, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericOperand, s)
	}

	return f, nil
}
