package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomSource produces uniformly random field elements. Implementations are
// borrowed for the duration of a single sharing session and are not retained.
type RandomSource interface {
	RandomElement(field Field) (Element, error)
}

// ReaderSource samples elements by wide reduction of bytes read from an io.Reader.
type ReaderSource struct {
	reader io.Reader
}

// NewReaderSource creates a source reading from r. r must be cryptographically
// secure unless the caller is deliberately testing with fixed input.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{reader: r}
}

// NewCryptoRandomSource creates a source backed by crypto/rand.
func NewCryptoRandomSource() *ReaderSource {
	return NewReaderSource(rand.Reader)
}

// RandomElement reads UniformBytesSize bytes and reduces them into field.
func (s *ReaderSource) RandomElement(field Field) (Element, error) {
	buf := make([]byte, UniformBytesSize)
	defer ZeroizeBytes(buf)

	if _, err := io.ReadFull(s.reader, buf); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(fmt.Errorf("failed to read random bytes: %w", err))
	}

	return field.ElementFromUniformBytes(buf)
}
