package shamir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShare_StringAndParse(t *testing.T) {
	for _, field := range allFields() {
		t.Run(field.Name(), func(t *testing.T) {
			sss := NewSecretSharing(field)
			secret := field.ElementFromUint64(4242)

			shares, err := sss.GenerateShares(SchemeParams{Threshold: 2, TotalShares: 3}, secret, seededSource(t, "parse"))
			require.NoError(t, err)

			parsed := make([]*Share, len(shares))
			for i, s := range shares {
				text := s.String()
				assert.Len(t, text, 2*2*field.ElementSize()+1)

				parsed[i], err = ParseShare(field, "  "+text+"\n")
				require.NoError(t, err)
				assert.True(t, parsed[i].X.Equal(s.X))
				assert.True(t, parsed[i].Y.Equal(s.Y))
			}

			got, err := sss.ReconstructSecret(pick(parsed, 2, 0), 2)
			require.NoError(t, err)
			assert.True(t, got.Equal(secret))
		})
	}
}

func TestParseShare_Errors(t *testing.T) {
	field := DefaultField()
	valid := NewShare(field.One(), field.ElementFromUint64(2)).String()
	xHex, yHex, _ := strings.Cut(valid, ":")
	overflow := strings.Repeat("ff", field.ElementSize())

	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"missing separator", xHex + yHex, "share must have the form <x>:<y>"},
		{"bad hex x", "zz:" + yHex, "invalid share x-coordinate"},
		{"short y", xHex + ":abcd", "invalid share y-coordinate"},
		{"non canonical y", xHex + ":" + overflow, "invalid share y-coordinate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			share, err := ParseShare(field, tt.input)
			assert.Nil(t, share)
			require.ErrorIs(t, err, ErrInvalidElement)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestShare_Index(t *testing.T) {
	field := NewEd25519Field()

	idx, ok := NewShare(field.ElementFromUint64(7), field.One()).Index()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), idx)

	_, ok = NewShare(field.One().Negate(), field.One()).Index()
	assert.False(t, ok)
}

func TestShare_Zeroize(t *testing.T) {
	field := DefaultField()
	share := NewShare(field.ElementFromUint64(1), field.ElementFromUint64(99))

	share.Zeroize()
	assert.True(t, share.Y.IsZero())
	assert.False(t, share.X.IsZero())

	(&Share{}).Zeroize()
}
