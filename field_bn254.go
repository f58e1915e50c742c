package shamir

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254Field implements Field for the BN254 scalar field Fr.
type BN254Field struct{}

// NewBN254Field creates a new BN254 field instance
func NewBN254Field() *BN254Field {
	return &BN254Field{}
}

func (f *BN254Field) Name() string      { return string(FieldBN254) }
func (f *BN254Field) ElementSize() int  { return fr.Bytes }
func (f *BN254Field) Modulus() *big.Int { return fr.Modulus() }

func (f *BN254Field) Zero() Element {
	return &BN254Element{}
}

func (f *BN254Field) One() Element {
	e := &BN254Element{}
	e.inner.SetOne()
	return e
}

func (f *BN254Field) ElementFromUint64(v uint64) Element {
	e := &BN254Element{}
	e.inner.SetUint64(v)
	return e
}

func (f *BN254Field) ElementFromBytes(data []byte) (Element, error) {
	if len(data) != fr.Bytes {
		return nil, ErrInvalidElementLength
	}

	e := &BN254Element{}
	if err := e.inner.SetBytesCanonical(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidElementEncoding, err)
	}
	return e, nil
}

func (f *BN254Field) ElementFromUniformBytes(data []byte) (Element, error) {
	if err := checkUniformLength(data); err != nil {
		return nil, err
	}

	// SetBigInt reduces values outside [0, r)
	e := &BN254Element{}
	e.inner.SetBigInt(new(big.Int).SetBytes(data))
	return e, nil
}

func (f *BN254Field) Owns(e Element) bool {
	o, ok := e.(*BN254Element)
	return ok && o != nil
}

// BN254Element implements the Element interface
type BN254Element struct {
	inner fr.Element
}

func asBN254(other Element) *BN254Element {
	o, ok := other.(*BN254Element)
	if !ok {
		mixedFieldPanic("bn254", other)
	}
	return o
}

func (e *BN254Element) Bytes() []byte {
	b := e.inner.Bytes()
	return b[:]
}

func (e *BN254Element) String() string {
	return hex.EncodeToString(e.Bytes())
}

func (e *BN254Element) Add(other Element) Element {
	r := &BN254Element{}
	r.inner.Add(&e.inner, &asBN254(other).inner)
	return r
}

func (e *BN254Element) Sub(other Element) Element {
	r := &BN254Element{}
	r.inner.Sub(&e.inner, &asBN254(other).inner)
	return r
}

func (e *BN254Element) Mul(other Element) Element {
	r := &BN254Element{}
	r.inner.Mul(&e.inner, &asBN254(other).inner)
	return r
}

func (e *BN254Element) Negate() Element {
	r := &BN254Element{}
	r.inner.Neg(&e.inner)
	return r
}

// Invert returns ErrZeroInverse for zero; fr.Element.Inverse would silently
// return zero instead.
func (e *BN254Element) Invert() (Element, error) {
	if e.inner.IsZero() {
		return nil, ErrZeroInverse
	}
	r := &BN254Element{}
	r.inner.Inverse(&e.inner)
	return r, nil
}

func (e *BN254Element) Equal(other Element) bool {
	return e.inner.Equal(&asBN254(other).inner)
}

func (e *BN254Element) IsZero() bool {
	return e.inner.IsZero()
}

func (e *BN254Element) Zeroize() {
	e.inner.SetZero()
}
