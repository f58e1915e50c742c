package shamir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomPolynomial(t *testing.T) {
	for _, field := range allFields() {
		t.Run(field.Name(), func(t *testing.T) {
			secret := field.ElementFromUint64(1234)

			poly, err := NewRandomPolynomial(field, secret, 4, seededSource(t, "poly"))
			require.NoError(t, err)
			assert.Equal(t, 3, poly.Degree())
			assert.True(t, poly.Evaluate(field.Zero()).Equal(secret))

			// Random coefficients must actually vary the polynomial
			assert.False(t, poly.Evaluate(field.One()).Equal(secret))
		})
	}
}

func TestNewRandomPolynomial_ConstantForThresholdOne(t *testing.T) {
	field := DefaultField()
	secret := field.ElementFromUint64(42)

	poly, err := NewRandomPolynomial(field, secret, 1, seededSource(t, "constant"))
	require.NoError(t, err)
	assert.Equal(t, 0, poly.Degree())

	for x := uint64(0); x < 5; x++ {
		assert.True(t, poly.Evaluate(field.ElementFromUint64(x)).Equal(secret))
	}
}

func TestNewRandomPolynomial_InvalidThreshold(t *testing.T) {
	field := DefaultField()
	secret := field.ElementFromUint64(1)

	for _, threshold := range []int{0, -1} {
		poly, err := NewRandomPolynomial(field, secret, threshold, seededSource(t, "invalid"))
		assert.Nil(t, poly)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	}

	_, err := NewRandomPolynomial(field, nil, 2, seededSource(t, "nil"))
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = NewRandomPolynomial(field, secret, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestNewRandomPolynomial_RandomnessFailure(t *testing.T) {
	field := DefaultField()

	_, err := NewRandomPolynomial(field, field.One(), 3, NewReaderSource(failingReader{err: errNoEntropy}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRandomnessGeneration)
	assert.ErrorIs(t, err, errNoEntropy)
	assert.False(t, IsRecoverableError(err))
}

func TestPolynomialEvaluate(t *testing.T) {
	field := NewSecp256k1Field()

	// f(x) = 3 + 2x + x^2
	poly, err := NewPolynomial(field, []Element{
		field.ElementFromUint64(3),
		field.ElementFromUint64(2),
		field.ElementFromUint64(1),
	})
	require.NoError(t, err)

	for x, want := range map[uint64]uint64{0: 3, 1: 6, 2: 11, 5: 38, 10: 123} {
		got := poly.Evaluate(field.ElementFromUint64(x))
		assert.True(t, got.Equal(field.ElementFromUint64(want)), "f(%d)", x)
	}
}

func TestPolynomialZeroizeKeepsCallerSecret(t *testing.T) {
	field := NewEd25519Field()
	secret := field.ElementFromUint64(99)

	poly, err := NewRandomPolynomial(field, secret, 1, seededSource(t, "zeroize"))
	require.NoError(t, err)

	value := poly.Evaluate(field.ElementFromUint64(1))
	poly.Zeroize()

	assert.True(t, secret.Equal(field.ElementFromUint64(99)))
	assert.True(t, value.Equal(field.ElementFromUint64(99)))
	assert.Equal(t, -1, poly.Degree())
}

// fixedFieldSource returns elements of its own field whatever is asked for.
type fixedFieldSource struct{ field Field }

func (s fixedFieldSource) RandomElement(Field) (Element, error) {
	return s.field.ElementFromUint64(3), nil
}

func TestNewRandomPolynomial_ForeignElements(t *testing.T) {
	field := DefaultField()

	_, err := NewRandomPolynomial(field, NewSecp256k1Field().One(), 2, NewCryptoRandomSource())
	assert.ErrorIs(t, err, ErrInvalidElement)

	_, err = NewRandomPolynomial(field, field.One(), 3, fixedFieldSource{field: NewEd25519Field()})
	require.ErrorIs(t, err, ErrInvalidElement)
	assert.Contains(t, err.Error(), "random coefficient 1")

	_, err = NewPolynomial(field, []Element{field.One(), NewEd25519Field().One()})
	require.ErrorIs(t, err, ErrInvalidElement)
	assert.Contains(t, err.Error(), "coefficient 1")
}
