package shamir

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Secp256k1Field implements Field for integers modulo the secp256k1 group order.
type Secp256k1Field struct{}

// NewSecp256k1Field creates a new secp256k1 field instance
func NewSecp256k1Field() *Secp256k1Field {
	return &Secp256k1Field{}
}

func (f *Secp256k1Field) Name() string      { return string(FieldSecp256k1) }
func (f *Secp256k1Field) ElementSize() int  { return 32 }
func (f *Secp256k1Field) Modulus() *big.Int { return new(big.Int).Set(btcec.S256().N) }

func (f *Secp256k1Field) Zero() Element {
	return &Secp256k1Element{inner: new(btcec.ModNScalar)}
}

func (f *Secp256k1Field) One() Element {
	scalar := new(btcec.ModNScalar)
	scalar.SetInt(1)
	return &Secp256k1Element{inner: scalar}
}

func (f *Secp256k1Field) ElementFromUint64(v uint64) Element {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], v)

	// A uint64 is always below n, no overflow possible
	scalar := new(btcec.ModNScalar)
	scalar.SetBytes(&buf)
	return &Secp256k1Element{inner: scalar}
}

func (f *Secp256k1Field) ElementFromBytes(data []byte) (Element, error) {
	if len(data) != 32 {
		return nil, ErrInvalidElementLength
	}

	var buf [32]byte
	copy(buf[:], data)

	scalar := new(btcec.ModNScalar)
	if overflow := scalar.SetBytes(&buf); overflow != 0 {
		return nil, ErrInvalidElementEncoding
	}
	return &Secp256k1Element{inner: scalar}, nil
}

func (f *Secp256k1Field) ElementFromUniformBytes(data []byte) (Element, error) {
	if err := checkUniformLength(data); err != nil {
		return nil, err
	}
	return f.ElementFromBytes(wideReduce(btcec.S256().N, data, 32))
}

func (f *Secp256k1Field) Owns(e Element) bool {
	o, ok := e.(*Secp256k1Element)
	return ok && o != nil
}

// Secp256k1Element implements the Element interface
type Secp256k1Element struct {
	inner *btcec.ModNScalar
}

func asSecp256k1(other Element) *Secp256k1Element {
	o, ok := other.(*Secp256k1Element)
	if !ok {
		mixedFieldPanic("secp256k1", other)
	}
	return o
}

func (e *Secp256k1Element) Bytes() []byte {
	b := e.inner.Bytes()
	return b[:]
}

func (e *Secp256k1Element) String() string {
	return hex.EncodeToString(e.Bytes())
}

func (e *Secp256k1Element) Add(other Element) Element {
	result := new(btcec.ModNScalar)
	result.Add2(e.inner, asSecp256k1(other).inner)
	return &Secp256k1Element{inner: result}
}

func (e *Secp256k1Element) Sub(other Element) Element {
	result := new(btcec.ModNScalar)
	result.NegateVal(asSecp256k1(other).inner).Add(e.inner)
	return &Secp256k1Element{inner: result}
}

func (e *Secp256k1Element) Mul(other Element) Element {
	result := new(btcec.ModNScalar)
	result.Mul2(e.inner, asSecp256k1(other).inner)
	return &Secp256k1Element{inner: result}
}

func (e *Secp256k1Element) Negate() Element {
	result := new(btcec.ModNScalar)
	result.NegateVal(e.inner)
	return &Secp256k1Element{inner: result}
}

// Invert uses btcec's variable-time inversion. Share x-coordinates are public,
// so the timing of reconstruction leaks nothing secret.
func (e *Secp256k1Element) Invert() (Element, error) {
	if e.inner.IsZero() {
		return nil, ErrZeroInverse
	}

	result := new(btcec.ModNScalar)
	result.InverseValNonConst(e.inner)
	return &Secp256k1Element{inner: result}, nil
}

func (e *Secp256k1Element) Equal(other Element) bool {
	return e.inner.Equals(asSecp256k1(other).inner)
}

func (e *Secp256k1Element) IsZero() bool {
	return e.inner.IsZero()
}

func (e *Secp256k1Element) Zeroize() {
	e.inner.Zero()
}
