package shamir

import (
	"fmt"
)

// Polynomial represents a polynomial over a prime field. Index i holds the
// coefficient of x^i.
type Polynomial struct {
	field        Field
	coefficients []Element
}

// NewRandomPolynomial creates a polynomial with threshold coefficients (degree
// threshold-1) whose constant term is secret. The remaining coefficients are
// drawn independently from rng. A threshold of 1 yields the constant polynomial.
func NewRandomPolynomial(field Field, secret Element, threshold int, rng RandomSource) (*Polynomial, error) {
	if threshold < 1 {
		return nil, ErrInvalidParameters.
			WithDetails(fmt.Sprintf("threshold must be at least 1, got %d", threshold)).
			WithContext("threshold", threshold)
	}
	if field == nil || secret == nil || rng == nil {
		return nil, ErrInvalidParameters.WithDetails("field, secret and randomness source are required")
	}
	if !field.Owns(secret) {
		return nil, foreignElementError(field, "secret", secret)
	}

	coefficients := make([]Element, threshold)
	// Copy the secret so Zeroize never touches the caller's element
	coefficients[0] = field.Zero().Add(secret)

	for i := 1; i < threshold; i++ {
		coeff, err := rng.RandomElement(field)
		if err != nil {
			ZeroizeElements(coefficients[:i])
			return nil, fmt.Errorf("failed to generate coefficient %d: %w", i, err)
		}
		if !field.Owns(coeff) {
			ZeroizeElements(coefficients[:i])
			return nil, foreignElementError(field, fmt.Sprintf("random coefficient %d", i), coeff)
		}
		coefficients[i] = coeff
	}

	return &Polynomial{
		field:        field,
		coefficients: coefficients,
	}, nil
}

// NewPolynomial creates a polynomial from explicit coefficients.
func NewPolynomial(field Field, coefficients []Element) (*Polynomial, error) {
	if field == nil || len(coefficients) == 0 {
		return nil, ErrInvalidParameters.WithDetails("polynomial needs a field and at least one coefficient")
	}

	coeffs := make([]Element, len(coefficients))
	for i, c := range coefficients {
		if c == nil {
			return nil, ErrInvalidParameters.WithDetails(fmt.Sprintf("coefficient %d is nil", i))
		}
		if !field.Owns(c) {
			return nil, foreignElementError(field, fmt.Sprintf("coefficient %d", i), c)
		}
		coeffs[i] = field.Zero().Add(c)
	}

	return &Polynomial{field: field, coefficients: coeffs}, nil
}

// Evaluate evaluates the polynomial at x. The result never aliases a
// coefficient.
func (p *Polynomial) Evaluate(x Element) Element {
	// Horner's method: f(x) = a0 + x(a1 + x(a2 + ...))
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// Degree returns the degree of the polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Zeroize securely clears the polynomial coefficients
func (p *Polynomial) Zeroize() {
	ZeroizeElements(p.coefficients)
	for i := range p.coefficients {
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}
