package shamir

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSource(t *testing.T) {
	for _, field := range allFields() {
		t.Run(field.Name(), func(t *testing.T) {
			src := NewCryptoRandomSource()

			a, err := src.RandomElement(field)
			require.NoError(t, err)
			b, err := src.RandomElement(field)
			require.NoError(t, err)

			assert.False(t, a.Equal(b))
		})
	}
}

func TestReaderSource_FixedInput(t *testing.T) {
	field := DefaultField()
	input := bytes.Repeat([]byte{0x5a}, 2*UniformBytesSize)

	src := NewReaderSource(bytes.NewReader(input))
	a, err := src.RandomElement(field)
	require.NoError(t, err)
	b, err := src.RandomElement(field)
	require.NoError(t, err)

	expected, err := field.ElementFromUniformBytes(input[:UniformBytesSize])
	require.NoError(t, err)
	assert.True(t, a.Equal(expected))
	assert.True(t, b.Equal(expected))

	// Reader exhausted
	_, err = src.RandomElement(field)
	assert.ErrorIs(t, err, ErrRandomnessGeneration)
}

func TestReaderSource_Failure(t *testing.T) {
	src := NewReaderSource(failingReader{err: errNoEntropy})

	e, err := src.RandomElement(DefaultField())
	assert.Nil(t, e)
	require.ErrorIs(t, err, ErrRandomnessGeneration)
	assert.ErrorIs(t, err, errNoEntropy)
	assert.False(t, IsRecoverableError(err))
	assert.True(t, IsErrorCategory(err, ErrorCategoryCryptographic))
}

func TestNewDeterministicSource_EmptySeed(t *testing.T) {
	src, err := NewDeterministicSource(nil, "ctx")
	assert.Nil(t, src)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestDeterministicSource_Reproducible(t *testing.T) {
	for _, field := range allFields() {
		t.Run(field.Name(), func(t *testing.T) {
			first := drawStream(t, field, []byte("seed"), "context", 8)
			second := drawStream(t, field, []byte("seed"), "context", 8)

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("streams differ (-first +second):\n%s", diff)
			}

			// No repeats within a stream
			seen := make(map[string]bool)
			for _, s := range first {
				assert.False(t, seen[s], "repeated element %s", s)
				seen[s] = true
			}
		})
	}
}

func TestDeterministicSource_DomainSeparation(t *testing.T) {
	field := NewSecp256k1Field()
	base := drawStream(t, field, []byte("seed"), "context", 4)

	assert.NotEqual(t, base, drawStream(t, field, []byte("seed"), "other context", 4))
	assert.NotEqual(t, base, drawStream(t, field, []byte("seed2"), "context", 4))

	// Same counter in another field must not produce the same bytes
	assert.NotEqual(t, base, drawStream(t, NewEd25519Field(), []byte("seed"), "context", 4))
}

func TestDeterministicSource_CopiesSeed(t *testing.T) {
	field := DefaultField()
	seed := []byte("mutable seed")

	src, err := NewDeterministicSource(seed, "copy")
	require.NoError(t, err)
	seed[0] = 'X'

	got, err := src.RandomElement(field)
	require.NoError(t, err)

	expected := drawStream(t, field, []byte("mutable seed"), "copy", 1)
	assert.Equal(t, expected[0], got.String())
}

func TestDeterministicSource_Zeroize(t *testing.T) {
	src, err := NewDeterministicSource([]byte{1, 2, 3}, "z")
	require.NoError(t, err)

	src.Zeroize()
	assert.Nil(t, src.seed)
}

func TestDeterministicSharingIsReproducible(t *testing.T) {
	field := DefaultField()
	sss := NewSecretSharing(field)
	secret := field.ElementFromUint64(2024)
	params := SchemeParams{Threshold: 3, TotalShares: 5}

	encode := func() []string {
		src, err := NewDeterministicSource([]byte("rederive"), "vault-1")
		require.NoError(t, err)

		shares, err := sss.GenerateShares(params, secret, src)
		require.NoError(t, err)

		out := make([]string, len(shares))
		for i, s := range shares {
			out[i] = s.String()
		}
		return out
	}

	if diff := cmp.Diff(encode(), encode()); diff != "" {
		t.Errorf("re-derived shares differ (-first +second):\n%s", diff)
	}
}

func drawStream(t *testing.T, field Field, seed []byte, context string, n int) []string {
	t.Helper()

	src, err := NewDeterministicSource(seed, context)
	require.NoError(t, err)

	out := make([]string, n)
	for i := range out {
		e, err := src.RandomElement(field)
		require.NoError(t, err, fmt.Sprintf("element %d", i))
		out[i] = e.String()
	}
	return out
}
