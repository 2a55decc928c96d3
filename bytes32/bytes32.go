// Package bytes32 converts between Go strings and the fixed-width bytes32
// text fields used by the AuditBook contract.
//
// The encoding matches ethers' formatBytes32String/parseBytes32String: the
// UTF-8 bytes of the string, right padded with zeros, with at least one zero
// byte left as terminator. Strings are therefore limited to 31 bytes, and
// decoding drops trailing zeros only, so a string may carry zero bytes
// anywhere but at its end.
package bytes32

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ruteri/audit-book-client/interfaces"
)

// MaxLength is the longest string, in bytes, that fits a bytes32 field.
const MaxLength = 31

var (
	ErrStringTooLong     = errors.New("bytes32 string must be less than 32 bytes")
	ErrMissingTerminator = errors.New("invalid bytes32 string - no null terminator")
	ErrTrailingZero      = errors.New("bytes32 string must not end with a zero byte")
)

// Encode packs s into a zero padded bytes32 value. Errors wrap
// interfaces.ErrValidation.
func Encode(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) > MaxLength {
		return out, fmt.Errorf("%w: %w: got %d bytes", interfaces.ErrValidation, ErrStringTooLong, len(s))
	}
	if len(s) > 0 && s[len(s)-1] == 0 {
		return out, fmt.Errorf("%w: %w", interfaces.ErrValidation, ErrTrailingZero)
	}
	copy(out[:], s)
	return out, nil
}

// MustEncode is Encode for constants known to fit.
func MustEncode(s string) [32]byte {
	out, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return out
}

// Decode returns the field with its trailing zero bytes removed. An all-zero
// field decodes to the empty string. A field without terminator is returned
// whole.
func Decode(b [32]byte) string {
	return string(bytes.TrimRight(b[:], "\x00"))
}

// DecodeStrict is Decode that rejects fields whose last byte is not zero,
// the same way ethers does.
func DecodeStrict(b [32]byte) (string, error) {
	if b[31] != 0 {
		return "", ErrMissingTerminator
	}
	return Decode(b), nil
}
