package shamir

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Share is a point (X, Y) on a sharing polynomial. X is never zero for shares
// produced by GenerateShares.
type Share struct {
	X Element // x-coordinate (share index)
	Y Element // y-coordinate (polynomial value)
}

// NewShare creates a new share
func NewShare(x, y Element) *Share {
	return &Share{X: x, Y: y}
}

// Index returns X as an integer when it fits in a uint64.
func (s *Share) Index() (uint64, bool) {
	return ElementToUint64(s.X)
}

// String encodes the share as "<x hex>:<y hex>".
func (s *Share) String() string {
	return s.X.String() + ":" + s.Y.String()
}

// Zeroize clears the share value.
func (s *Share) Zeroize() {
	if s.Y != nil {
		s.Y.Zeroize()
	}
}

// ParseShare decodes the String form of a share in field.
func ParseShare(field Field, text string) (*Share, error) {
	xHex, yHex, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return nil, ErrInvalidElement.WithDetails("share must have the form <x>:<y>")
	}

	x, err := parseHexElement(field, xHex)
	if err != nil {
		return nil, fmt.Errorf("invalid share x-coordinate: %w", err)
	}
	y, err := parseHexElement(field, yHex)
	if err != nil {
		return nil, fmt.Errorf("invalid share y-coordinate: %w", err)
	}

	return NewShare(x, y), nil
}

func parseHexElement(field Field, h string) (Element, error) {
	raw, err := hex.DecodeString(h)
	if err != nil {
		return nil, ErrInvalidElement.WithCause(err)
	}
	e, err := field.ElementFromBytes(raw)
	if err != nil {
		return nil, ErrInvalidElement.WithCause(err)
	}
	return e, nil
}
