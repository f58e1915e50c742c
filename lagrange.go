package shamir

import (
	"errors"
	"fmt"
)

// LagrangeCoefficientsAtZero returns the basis coefficients
//
//	L_i = prod_{j != i} -x_j / (x_i - x_j)
//
// so that f(0) = sum L_i * f(x_i) for any polynomial f of degree < len(xs).
// Duplicate x-coordinates make a denominator zero and yield
// ErrDegenerateShareSet. A nil x-coordinate or one from another field yields
// ErrInvalidElement.
func LagrangeCoefficientsAtZero(field Field, xs []Element) ([]Element, error) {
	if len(xs) == 0 {
		return nil, ErrInvalidParameters.WithDetails("at least one x-coordinate is required")
	}
	for i, x := range xs {
		if !field.Owns(x) {
			return nil, foreignElementError(field, fmt.Sprintf("x-coordinate %d", i), x).WithContext("index", i)
		}
	}

	numerators := make([]Element, len(xs))
	denominators := make([]Element, len(xs))

	for i, xi := range xs {
		numerator := field.One()
		denominator := field.One()

		for j, xj := range xs {
			if i == j {
				continue
			}
			// numerator *= (0 - x_j)
			numerator = numerator.Mul(xj.Negate())
			// denominator *= (x_i - x_j)
			denominator = denominator.Mul(xi.Sub(xj))
		}

		numerators[i] = numerator
		denominators[i] = denominator
	}

	inverses, err := BatchInvert(field, denominators)
	if err != nil {
		if errors.Is(err, ErrZeroInverse) {
			return nil, degenerateShareSetError(xs).WithCause(err)
		}
		return nil, err
	}

	coefficients := make([]Element, len(xs))
	for i := range xs {
		coefficients[i] = numerators[i].Mul(inverses[i])
	}

	return coefficients, nil
}

// degenerateShareSetError names the first pair of positions sharing an
// x-coordinate.
func degenerateShareSetError(xs []Element) *SharingError {
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return ErrDegenerateShareSet.
					WithDetails(fmt.Sprintf("shares %d and %d have the same x-coordinate", i, j)).
					WithContext("first", i).
					WithContext("second", j)
			}
		}
	}
	return ErrDegenerateShareSet
}
