package shamir

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const deterministicSalt = "SHAMIR_DETERMINISTIC_ELEMENT_v1"

// DeterministicSource derives a reproducible element stream from a seed. Each
// element comes from its own HKDF-SHA256 expansion keyed by the seed and bound to
// the context string and a running counter, so the stream has no length limit.
//
// The same (seed, context) pair always yields the same sequence. It is meant for
// tests and for callers that must re-derive a sharing; it is not safe for
// concurrent use.
type DeterministicSource struct {
	seed    []byte
	context string
	counter uint64
}

// NewDeterministicSource creates a deterministic source. The seed is copied.
func NewDeterministicSource(seed []byte, context string) (*DeterministicSource, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidParameters.WithDetails("deterministic seed cannot be empty")
	}

	seedCopy := make([]byte, len(seed))
	copy(seedCopy, seed)

	return &DeterministicSource{
		seed:    seedCopy,
		context: context,
	}, nil
}

// RandomElement derives the next element of the stream.
func (s *DeterministicSource) RandomElement(field Field) (Element, error) {
	info := s.elementInfo(field, s.counter)
	s.counter++

	reader := hkdf.New(sha256.New, s.seed, []byte(deterministicSalt), info)
	elementBytes := make([]byte, UniformBytesSize)
	defer ZeroizeBytes(elementBytes)

	if _, err := io.ReadFull(reader, elementBytes); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(fmt.Errorf("failed to derive bytes from HKDF: %w", err))
	}

	return field.ElementFromUniformBytes(elementBytes)
}

// elementInfo binds an expansion to the field, the context and the index.
func (s *DeterministicSource) elementInfo(field Field, index uint64) []byte {
	indexBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(indexBytes, index)

	info := make([]byte, 0, len(field.Name())+len(s.context)+len(indexBytes)+2)
	info = append(info, field.Name()...)
	info = append(info, 0)
	info = append(info, s.context...)
	info = append(info, 0)
	return append(info, indexBytes...)
}

// Zeroize clears the seed. The source must not be used afterwards.
func (s *DeterministicSource) Zeroize() {
	ZeroizeBytes(s.seed)
	s.seed = nil
}
