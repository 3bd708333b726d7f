package radix64

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestEncodeToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []byte
		encoded string
	}{
		{name: "empty", in: nil, encoded: ""},
		{name: "one byte", in: []byte{0x00}, encoded: ".."},
		{name: "two bytes", in: []byte{0xff, 0xff}, encoded: "996"},
		{name: "three bytes", in: []byte{0xff, 0xff, 0xff}, encoded: "9999"},
		{name: "alphabet order", in: []byte{0x00, 0x10, 0x83}, encoded: "./AB"},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, "encoded", test.encoded, EncodeToString(test.in))

			out, err := DecodeString(test.encoded)
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, "decoded", len(test.in), len(out))

			if !bytes.Equal(test.in, out) {
				t.Errorf("decoded %x, want %x", out, test.in)
			}
		})
	}
}

func TestEncode_MatchesStandardBase64Shape(t *testing.T) {
	t.Parallel()

	// Only the alphabet differs from unpadded standard base64.
	const std = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}

	for n := 0; n <= len(b); n++ {
		ours := EncodeToString(b[:n])
		theirs := base64.RawStdEncoding.EncodeToString(b[:n])

		assert.Equal(t, "length", len(theirs), len(ours))
		assert.Equal(t, "encoded length", EncodedLen(n), len(ours))

		for i := range ours {
			if alphabet[bytes.IndexByte([]byte(std), theirs[i])] != ours[i] {
				t.Fatalf("n=%d: %q vs %q", n, ours, theirs)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 23} {
		b := make([]byte, n)
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}

		s := EncodeToString(b)

		out, err := DecodeString(s)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(b, out) {
			t.Fatalf("%x round-tripped to %x", b, out)
		}
	}
}

func TestDecodeString_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		err  error
	}{
		{name: "invalid character", in: "ab+d", err: CorruptInputError(2)},
		{name: "padding", in: "ab==", err: CorruptInputError(2)},
		{name: "dangling character", in: "abcde", err: CorruptInputError(4)},
		{name: "non-zero trailing bits in two", in: "./", err: CorruptInputError(1)},
		{name: "non-zero trailing bits in three", in: "../", err: CorruptInputError(2)},
		{name: "high byte", in: "a\xffbc", err: CorruptInputError(1)},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeString(test.in)

			assert.Equal(t, "err", test.err, err)
		})
	}
}

func TestDecodedLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "salt", 16, DecodedLen(22))
	assert.Equal(t, "digest", 23, DecodedLen(31))
	assert.Equal(t, "salt chars", 22, EncodedLen(16))
	assert.Equal(t, "digest chars", 31, EncodedLen(23))
}

func BenchmarkEncode(b *testing.B) {
	src := make([]byte, 23)
	dst := make([]byte, EncodedLen(len(src)))

	for i := 0; i < b.N; i++ {
		Encode(dst, src)
	}
}
