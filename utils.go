package shamir

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

const secretFromBytesDomain = "SHAMIR_SECRET_FROM_BYTES"

// SecretFromBytes hashes arbitrary data to a field element with BLAKE2b-512 and
// wide reduction. The mapping is one-way: reconstruction yields the element,
// not the original bytes.
func SecretFromBytes(field Field, data []byte) (Element, error) {
	hasher, err := blake2b.New512(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create hasher: %w", err)
	}

	// Domain separator binds the digest to this use and this field
	hasher.Write([]byte(secretFromBytesDomain))
	hasher.Write([]byte(field.Name()))
	hasher.Write(data)

	digest := hasher.Sum(nil)
	defer ZeroizeBytes(digest)
	return field.ElementFromUniformBytes(digest)
}

// ElementFromBigInt converts v to an element, rejecting values outside
// [0, modulus).
func ElementFromBigInt(field Field, v *big.Int) (Element, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(field.Modulus()) >= 0 {
		return nil, ErrInvalidElement.WithDetails(fmt.Sprintf("value must be in [0, %s)", field.Modulus()))
	}

	buf := make([]byte, field.ElementSize())
	v.FillBytes(buf)
	return field.ElementFromBytes(buf)
}

// ElementToBigInt returns the canonical integer representative of e.
func ElementToBigInt(e Element) *big.Int {
	return new(big.Int).SetBytes(e.Bytes())
}

// ElementToUint64 returns e as a uint64 when it fits.
func ElementToUint64(e Element) (uint64, bool) {
	if e == nil {
		return 0, false
	}

	b := e.Bytes()
	if len(b) < 8 {
		return 0, false
	}
	for _, hi := range b[:len(b)-8] {
		if hi != 0 {
			return 0, false
		}
	}
	return binary.BigEndian.Uint64(b[len(b)-8:]), true
}

// ZeroizeBytes securely clears a byte slice
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ZeroizeElements securely clears a slice of elements
func ZeroizeElements(elements []Element) {
	for _, e := range elements {
		if e != nil {
			e.Zeroize()
		}
	}
}

// BatchInvert inverts every element with a single field inversion using
// Montgomery's trick. If any element is zero it returns an error wrapping
// ErrZeroInverse that names the first zero index.
func BatchInvert(field Field, values []Element) ([]Element, error) {
	n := len(values)
	if n == 0 {
		return nil, nil
	}

	for i, v := range values {
		if v.IsZero() {
			return nil, fmt.Errorf("element at index %d: %w", i, ErrZeroInverse)
		}
	}

	// partials[i] = values[0] * ... * values[i]
	partials := make([]Element, n)
	partials[0] = values[0]
	for i := 1; i < n; i++ {
		partials[i] = partials[i-1].Mul(values[i])
	}

	acc, err := partials[n-1].Invert()
	if err != nil {
		return nil, err
	}

	// acc holds 1/partials[i] at the top of each iteration
	inverses := make([]Element, n)
	for i := n - 1; i > 0; i-- {
		inverses[i] = acc.Mul(partials[i-1])
		acc = acc.Mul(values[i])
	}
	inverses[0] = acc

	return inverses, nil
}
