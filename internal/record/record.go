// Package record encodes and decodes bcrypt's textual hash records.
//
// A record is exactly 60 bytes:
//
//     $2b$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//     \__/\_/\____________________/\_____________________________/
//     ver cost   salt (22 chars)           digest (31 chars)
//
// The salt and digest are radix64-encoded 16- and 23-byte values. A salt record is the first 29
// bytes of a hash record: version, cost, and salt, with no digest.
//
// Decoding is strict. Any deviation from the layout is a *FormatError, and every record which
// decodes successfully re-encodes to the identical bytes.
package record

import (
	"errors"
	"fmt"

	"github.com/codahale/bhash/internal/eksblowfish"
	"github.com/codahale/bhash/internal/radix64"
)

// Version identifies a bcrypt revision. All recognised revisions are the same algorithm under a
// 72-byte key limit; they differ only in how historical implementations handled longer keys or
// non-ASCII bytes.
type Version string

const (
	V2a Version = "2a"
	V2b Version = "2b" // V2b is the revision produced by this package.
	V2y Version = "2y"
)

const (
	DigestSize = eksblowfish.DigestSize - 1 // Only 23 of the 24 digest bytes are encoded.

	SaltLen   = 29 // SaltLen is the length of an encoded salt record.
	RecordLen = 60 // RecordLen is the length of an encoded hash record.
)

// ErrInvalidHash is matched by every *FormatError.
var ErrInvalidHash = errors.New("invalid hash")

// FormatError describes which field of a record is malformed and why.
type FormatError struct {
	Field  string // Field is the name of the malformed field.
	Reason string // Reason is a short description of the problem.
	Err    error  // Err is the underlying cause, if any.
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidHash, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidHash.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidHash
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Record is a decoded bcrypt hash.
type Record struct {
	Version Version
	Cost    int
	Salt    [eksblowfish.SaltSize]byte
	Digest  [DigestSize]byte
}

// Encode returns the textual form of r.
func Encode(r *Record) []byte {
	b := make([]byte, RecordLen)

	encodePrefix(b, r.Version, r.Cost, r.Salt[:])
	radix64.Encode(b[SaltLen:], r.Digest[:])

	return b
}

// EncodeSalt returns the textual form of a salt record.
func EncodeSalt(v Version, cost int, salt []byte) []byte {
	b := make([]byte, SaltLen)

	encodePrefix(b, v, cost, salt)

	return b
}

// Decode parses a hash record.
func Decode(b []byte) (*Record, error) {
	if len(b) != RecordLen {
		return nil, &FormatError{
			Field:  "length",
			Reason: fmt.Sprintf("got %d bytes, want %d", len(b), RecordLen),
		}
	}

	var r Record

	if err := decodePrefix(b, &r); err != nil {
		return nil, err
	}

	if err := decodeField("digest", r.Digest[:], b[SaltLen:]); err != nil {
		return nil, err
	}

	return &r, nil
}

// DecodeSalt parses a salt record. The returned Record has a zero Digest.
func DecodeSalt(b []byte) (*Record, error) {
	if len(b) != SaltLen {
		return nil, &FormatError{
			Field:  "length",
			Reason: fmt.Sprintf("got %d bytes, want %d", len(b), SaltLen),
		}
	}

	var r Record

	if err := decodePrefix(b, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// ParseVersion returns the Version named by s.
func ParseVersion(s string) (Version, error) {
	switch v := Version(s); v {
	case V2a, V2b, V2y:
		return v, nil
	default:
		return "", &FormatError{Field: "version", Reason: fmt.Sprintf("unknown version %q", s)}
	}
}

func encodePrefix(b []byte, v Version, cost int, salt []byte) {
	b[0] = '$'
	copy(b[1:3], v)
	b[3] = '$'
	b[4] = byte('0' + cost/10)
	b[5] = byte('0' + cost%10)
	b[6] = '$'
	radix64.Encode(b[7:SaltLen], salt)
}

// decodePrefix parses the first SaltLen bytes of b into r.
func decodePrefix(b []byte, r *Record) error {
	if b[0] != '$' || b[3] != '$' || b[6] != '$' {
		return &FormatError{Field: "separator", Reason: "expected '$' at offsets 0, 3, and 6"}
	}

	v, err := ParseVersion(string(b[1:3]))
	if err != nil {
		return err
	}

	r.Version = v

	if !isDigit(b[4]) || !isDigit(b[5]) {
		return &FormatError{Field: "cost", Reason: fmt.Sprintf("%q is not two decimal digits", b[4:6])}
	}

	r.Cost = int(b[4]-'0')*10 + int(b[5]-'0')
	if err := eksblowfish.CheckCost(r.Cost); err != nil {
		return &FormatError{Field: "cost", Reason: err.Error(), Err: err}
	}

	return decodeField("salt", r.Salt[:], b[7:SaltLen])
}

// decodeField decodes src into dst. The caller guarantees len(dst) == radix64.DecodedLen(len(src)).
func decodeField(name string, dst, src []byte) error {
	if _, err := radix64.Decode(dst, src); err != nil {
		return &FormatError{Field: name, Reason: err.Error(), Err: err}
	}

	return nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
