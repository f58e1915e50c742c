package shamir

import (
	"errors"
	"fmt"
	"math/big"
)

// Field defines the prime field the scheme works over. The prime is fixed by the
// backend and never changes for the lifetime of a Field value.
type Field interface {
	// Metadata
	Name() string
	ElementSize() int
	Modulus() *big.Int

	// Constants
	Zero() Element
	One() Element

	// Conversion
	ElementFromUint64(uint64) Element
	ElementFromBytes([]byte) (Element, error)
	ElementFromUniformBytes([]byte) (Element, error)

	// Owns reports whether e is a non-nil element of this field. Arithmetic
	// on elements of different fields panics, so values from callers are
	// checked with Owns first.
	Owns(e Element) bool
}

// Element is a fully reduced field element. Arithmetic never mutates the
// receiver; every operation returns a new value.
type Element interface {
	// Serialization (canonical, big-endian, ElementSize bytes)
	Bytes() []byte
	String() string

	// Arithmetic
	Add(Element) Element
	Sub(Element) Element
	Mul(Element) Element
	Negate() Element
	Invert() (Element, error)

	// Comparison
	Equal(Element) bool
	IsZero() bool

	// Security
	Zeroize()
}

// FieldType names a supported field backend.
type FieldType string

const (
	// FieldBN254 is the scalar field Fr of the BN254 pairing curve.
	FieldBN254 FieldType = "bn254"
	// FieldSecp256k1 is the scalar field of secp256k1 (the group order n).
	FieldSecp256k1 FieldType = "secp256k1"
	// FieldEd25519 is the scalar field of edwards25519 (the group order l).
	FieldEd25519 FieldType = "ed25519"
)

// UniformBytesSize is the number of bytes consumed to sample one element with
// negligible modular bias.
const UniformBytesSize = 64

// Field errors
var (
	ErrInvalidElementLength   = errors.New("invalid element length")
	ErrInvalidElementEncoding = errors.New("element encoding is not canonical")
	ErrZeroInverse            = errors.New("inverse of zero is undefined")
)

// NewField returns the backend for fieldType.
func NewField(fieldType FieldType) (Field, error) {
	switch fieldType {
	case FieldBN254:
		return NewBN254Field(), nil
	case FieldSecp256k1:
		return NewSecp256k1Field(), nil
	case FieldEd25519:
		return NewEd25519Field(), nil
	default:
		return nil, ErrUnsupportedField.WithDetails(fmt.Sprintf("unsupported field: %q", fieldType))
	}
}

// DefaultField returns the BN254 scalar field.
func DefaultField() Field {
	return NewBN254Field()
}

// SupportedFields lists every FieldType NewField accepts.
func SupportedFields() []FieldType {
	return []FieldType{FieldBN254, FieldSecp256k1, FieldEd25519}
}

// wideReduce reduces data, read as a big-endian integer, modulo modulus and
// returns the result left-padded to size bytes.
func wideReduce(modulus *big.Int, data []byte, size int) []byte {
	reduced := new(big.Int).SetBytes(data)
	reduced.Mod(reduced, modulus)
	out := make([]byte, size)
	reduced.FillBytes(out)
	return out
}

func checkUniformLength(data []byte) error {
	if len(data) < UniformBytesSize {
		return fmt.Errorf("%w: need at least %d bytes for uniform element generation, got %d",
			ErrInvalidElementLength, UniformBytesSize, len(data))
	}
	return nil
}

// foreignElementError reports a nil or foreign element at a named position.
func foreignElementError(field Field, what string, e Element) *SharingError {
	if e == nil {
		return ErrInvalidElement.WithDetails(what + " is nil")
	}
	return ErrInvalidElement.
		WithDetails(fmt.Sprintf("%s is a %T, not an element of %s", what, e, field.Name())).
		WithContext("field", field.Name())
}

func mixedFieldPanic(want string, got Element) {
	panic(fmt.Sprintf("shamir: %s element combined with %T", want, got))
}
