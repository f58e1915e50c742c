package shamir

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
)

// ed25519Order is l = 2^252 + 27742317777372353535851937790883648493.
var ed25519Order, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Ed25519Field implements Field for integers modulo the edwards25519 group order.
type Ed25519Field struct{}

// NewEd25519Field creates a new Ed25519 field instance
func NewEd25519Field() *Ed25519Field {
	return &Ed25519Field{}
}

func (f *Ed25519Field) Name() string      { return string(FieldEd25519) }
func (f *Ed25519Field) ElementSize() int  { return 32 }
func (f *Ed25519Field) Modulus() *big.Int { return new(big.Int).Set(ed25519Order) }

func (f *Ed25519Field) Zero() Element {
	return &Ed25519Element{inner: edwards25519.NewScalar()}
}

func (f *Ed25519Field) One() Element {
	return f.ElementFromUint64(1)
}

func (f *Ed25519Field) ElementFromUint64(v uint64) Element {
	le := make([]byte, 32)
	binary.LittleEndian.PutUint64(le, v)

	// Always canonical: v < 2^64 < l
	scalar, _ := edwards25519.NewScalar().SetCanonicalBytes(le)
	return &Ed25519Element{inner: scalar}
}

func (f *Ed25519Field) ElementFromBytes(data []byte) (Element, error) {
	if len(data) != 32 {
		return nil, ErrInvalidElementLength
	}

	scalar, err := edwards25519.NewScalar().SetCanonicalBytes(reverseBytes(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidElementEncoding, err)
	}
	return &Ed25519Element{inner: scalar}, nil
}

func (f *Ed25519Field) ElementFromUniformBytes(data []byte) (Element, error) {
	if err := checkUniformLength(data); err != nil {
		return nil, err
	}

	if len(data) == UniformBytesSize {
		// SetUniformBytes reads little-endian; reverse to keep the big-endian
		// interpretation shared by every backend
		scalar, err := edwards25519.NewScalar().SetUniformBytes(reverseBytes(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidElementEncoding, err)
		}
		return &Ed25519Element{inner: scalar}, nil
	}

	return f.ElementFromBytes(wideReduce(ed25519Order, data, 32))
}

func (f *Ed25519Field) Owns(e Element) bool {
	o, ok := e.(*Ed25519Element)
	return ok && o != nil
}

// Ed25519Element implements the Element interface. edwards25519 encodes
// scalars little-endian; Bytes converts to the package's big-endian form.
type Ed25519Element struct {
	inner *edwards25519.Scalar
}

func asEd25519(other Element) *Ed25519Element {
	o, ok := other.(*Ed25519Element)
	if !ok {
		mixedFieldPanic("ed25519", other)
	}
	return o
}

func (e *Ed25519Element) Bytes() []byte {
	return reverseBytes(e.inner.Bytes())
}

func (e *Ed25519Element) String() string {
	return hex.EncodeToString(e.Bytes())
}

func (e *Ed25519Element) Add(other Element) Element {
	return &Ed25519Element{inner: edwards25519.NewScalar().Add(e.inner, asEd25519(other).inner)}
}

func (e *Ed25519Element) Sub(other Element) Element {
	return &Ed25519Element{inner: edwards25519.NewScalar().Subtract(e.inner, asEd25519(other).inner)}
}

func (e *Ed25519Element) Mul(other Element) Element {
	return &Ed25519Element{inner: edwards25519.NewScalar().Multiply(e.inner, asEd25519(other).inner)}
}

func (e *Ed25519Element) Negate() Element {
	return &Ed25519Element{inner: edwards25519.NewScalar().Negate(e.inner)}
}

func (e *Ed25519Element) Invert() (Element, error) {
	if e.IsZero() {
		return nil, ErrZeroInverse
	}
	return &Ed25519Element{inner: edwards25519.NewScalar().Invert(e.inner)}, nil
}

func (e *Ed25519Element) Equal(other Element) bool {
	return e.inner.Equal(asEd25519(other).inner) == 1
}

func (e *Ed25519Element) IsZero() bool {
	return e.inner.Equal(edwards25519.NewScalar()) == 1
}

func (e *Ed25519Element) Zeroize() {
	e.inner.Set(edwards25519.NewScalar())
}

func reverseBytes(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}
	return out
}
