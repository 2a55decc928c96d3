package bytes32

import (
	"strings"
	"testing"

	"github.com/ruteri/audit-book-client/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"Acme",
		"Audit Corp",
		"ünïcödé",
		"a\x00b",
		"\x00lead",
		strings.Repeat("x", MaxLength),
	}

	for _, s := range cases {
		encoded, err := Encode(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, Decode(encoded))

		strict, err := DecodeStrict(encoded)
		require.NoError(t, err, s)
		assert.Equal(t, s, strict)
	}

	_, err := Encode("ab\x00")
	assert.ErrorIs(t, err, ErrTrailingZero)
	assert.ErrorIs(t, err, interfaces.ErrValidation)
}

func TestEncode_Padding(t *testing.T) {
	encoded, err := Encode("Acme")
	require.NoError(t, err)

	assert.Equal(t, []byte("Acme"), encoded[:4])
	for _, b := range encoded[4:] {
		assert.Zero(t, b)
	}
}

func TestEncode_TooLong(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 32))
	assert.ErrorIs(t, err, ErrStringTooLong)
	assert.ErrorIs(t, err, interfaces.ErrValidation)

	// 11 three-byte runes are 33 bytes even though only 11 characters
	_, err = Encode(strings.Repeat("€", 11))
	assert.ErrorIs(t, err, ErrStringTooLong)
}

func TestDecode_Empty(t *testing.T) {
	assert.Equal(t, "", Decode([32]byte{}))

	s, err := DecodeStrict([32]byte{})
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestDecode_NoTerminator(t *testing.T) {
	var full [32]byte
	copy(full[:], strings.Repeat("y", 32))

	assert.Equal(t, strings.Repeat("y", 32), Decode(full))

	_, err := DecodeStrict(full)
	assert.ErrorIs(t, err, ErrMissingTerminator)
}

func TestDecode_TrimsTrailingZerosOnly(t *testing.T) {
	var b [32]byte
	copy(b[:], "ab")
	b[5] = 'z'

	assert.Equal(t, "ab\x00\x00\x00z", Decode(b))

	s, err := DecodeStrict(b)
	require.NoError(t, err)
	assert.Equal(t, "ab\x00\x00\x00z", s)
}

func TestMustEncode_Panics(t *testing.T) {
	assert.Panics(t, func() { MustEncode(strings.Repeat("x", 40)) })
	assert.NotPanics(t, func() { MustEncode("ok") })
}
