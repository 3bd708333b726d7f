// Package radix64 implements the unpadded base64 variant used by bcrypt.
//
// The alphabet is "./A-Za-z0-9", which orders the characters differently from both the standard
// and the URL-safe encodings in encoding/base64, so neither can be reused. Bits are packed most
// significant first, exactly as in standard base64; only the character mapping differs.
package radix64

import "strconv"

const alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const invalid = 0xff

//nolint:gochecknoglobals // read-only
var decodeMap = func() (m [256]byte) {
	for i := range m {
		m[i] = invalid
	}

	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}

	return
}()

// CorruptInputError is returned by Decode with the offset of the first invalid character, or of
// the last character if it carries non-zero trailing bits.
type CorruptInputError int

func (e CorruptInputError) Error() string {
	return "illegal radix64 data at input byte " + strconv.Itoa(int(e))
}

// EncodedLen returns the length of the encoding of n source bytes.
func EncodedLen(n int) int {
	return (n*8 + 5) / 6
}

// DecodedLen returns the number of bytes encoded by n characters.
func DecodedLen(n int) int {
	return n * 6 / 8
}

// Encode writes the encoding of src to dst, which must hold EncodedLen(len(src)) bytes.
func Encode(dst, src []byte) {
	di := 0

	for si := 0; si < len(src); si += 3 {
		// Gather up to three bytes into a 24-bit group.
		var val uint32

		n := len(src) - si
		if n > 3 {
			n = 3
		}

		for j := 0; j < n; j++ {
			val |= uint32(src[si+j]) << (16 - 8*j)
		}

		// Emit one character per started 6-bit group.
		for j := 0; j < n+1; j++ {
			dst[di] = alphabet[val>>(18-6*j)&0x3f]
			di++
		}
	}
}

// EncodeToString returns the encoding of src.
func EncodeToString(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	Encode(dst, src)

	return string(dst)
}

// Decode writes the bytes encoded by src to dst, which must hold DecodedLen(len(src)) bytes, and
// returns the number of bytes written. A trailing group of a single character is rejected, as is
// any final character whose unused low bits are not zero; either would mean two different strings
// decode to the same bytes.
func Decode(dst, src []byte) (int, error) {
	di := 0

	for si := 0; si < len(src); si += 4 {
		n := len(src) - si
		if n > 4 {
			n = 4
		}

		if n == 1 {
			return di, CorruptInputError(si)
		}

		// Gather up to four characters into a 24-bit group.
		var val uint32

		for j := 0; j < n; j++ {
			d := decodeMap[src[si+j]]
			if d == invalid {
				return di, CorruptInputError(si + j)
			}

			val |= uint32(d) << (18 - 6*j)
		}

		// Reject bits which the final, partial group cannot carry.
		if n < 4 && val&(0xffffff>>(8*(n-1))) != 0 {
			return di, CorruptInputError(si + n - 1)
		}

		for j := 0; j < n-1; j++ {
			dst[di] = byte(val >> (16 - 8*j))
			di++
		}
	}

	return di, nil
}

// DecodeString returns the bytes encoded by s.
func DecodeString(s string) ([]byte, error) {
	dst := make([]byte, DecodedLen(len(s)))

	n, err := Decode(dst, []byte(s))

	return dst[:n], err
}
