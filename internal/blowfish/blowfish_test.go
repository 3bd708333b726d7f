package blowfish

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/codahale/gubbins/assert"
	xblowfish "golang.org/x/crypto/blowfish"
)

func TestCipher_Encrypt(t *testing.T) {
	t.Parallel()

	// Eric Young's published Blowfish vectors.
	tests := []struct {
		key, plaintext, ciphertext string
	}{
		{"0000000000000000", "0000000000000000", "4ef997456198dd78"},
		{"ffffffffffffffff", "ffffffffffffffff", "51866fd5b85ecb8a"},
		{"3000000000000000", "1000000000000001", "7d856f9a613063f2"},
		{"1111111111111111", "1111111111111111", "2466dd878b963c9d"},
		{"0123456789abcdef", "1111111111111111", "61f9c3802281b096"},
		{"1111111111111111", "0123456789abcdef", "7d0cc630afda1ec7"},
		{"fedcba9876543210", "0123456789abcdef", "0aceab0fc6a0a28d"},
		{"7ca110454a1a6e57", "01a1d6d039776742", "59c68245eb05282b"},
		{"0131d9619dc1376e", "5cd54ca83def57da", "b1b8cc0b250f09a0"},
	}

	for _, test := range tests {
		test := test

		t.Run(test.key, func(t *testing.T) {
			t.Parallel()

			c, err := NewCipher(unhex(t, test.key))
			if err != nil {
				t.Fatal(err)
			}

			dst := make([]byte, BlockSize)
			c.Encrypt(dst, unhex(t, test.plaintext))

			assert.Equal(t, "ciphertext", test.ciphertext, hex.EncodeToString(dst))

			c.Decrypt(dst, dst)

			assert.Equal(t, "plaintext", test.plaintext, hex.EncodeToString(dst))
		})
	}
}

func TestNewCipher_KeySize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, MaxKeySize + 1} {
		_, err := NewCipher(make([]byte, n))

		assert.Equal(t, "err", KeySizeError(n), err)
	}

	if _, err := NewCipher(make([]byte, MaxKeySize)); err != nil {
		t.Fatal(err)
	}
}

func TestDecryptBlock(t *testing.T) {
	t.Parallel()

	c, err := NewCipher([]byte("ayellowsubmarine"))
	if err != nil {
		t.Fatal(err)
	}

	for i := uint32(0); i < 1000; i++ {
		l, r := EncryptBlock(c, i, ^i)
		l, r = DecryptBlock(c, l, r)

		if l != i || r != ^i {
			t.Fatalf("round trip of (%x, %x) produced (%x, %x)", i, ^i, l, r)
		}
	}
}

func TestNewState(t *testing.T) {
	t.Parallel()

	a, b := NewState(), NewState()
	ExpandKey([]byte("this mutates a"), a)

	assert.Equal(t, "fresh P-array", initP, b.p)
	assert.Equal(t, "fresh S0", initS0, b.s0)

	if a.p == initP {
		t.Error("key expansion did not change the P-array")
	}
}

func TestExpandKey_Interop(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		key := randomBytes(t, 1+i*2)

		ours, err := NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		theirs, err := xblowfish.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		assertSameCipher(t, ours, theirs)
	}
}

func TestExpandKeyWithSalt_Interop(t *testing.T) {
	t.Parallel()

	key := []byte("correct horse battery staple\x00")
	salt := randomBytes(t, 16)

	ours := NewState()
	ExpandKeyWithSalt(key, salt, ours)

	theirs, err := xblowfish.NewSaltedCipher(key, salt)
	if err != nil {
		t.Fatal(err)
	}

	assertSameCipher(t, ours, theirs)

	// Both sides now alternate raw expansions of the key and the salt.
	for i := 0; i < 4; i++ {
		ExpandKey(key, ours)
		ExpandKey(salt, ours)
		xblowfish.ExpandKey(key, theirs)
		xblowfish.ExpandKey(salt, theirs)
	}

	assertSameCipher(t, ours, theirs)
}

func TestNextWord(t *testing.T) {
	t.Parallel()

	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	pos := 0

	assert.Equal(t, "first word", uint32(0x01020304), nextWord(b, &pos))
	assert.Equal(t, "wrapped word", uint32(0x05060102), nextWord(b, &pos))
	assert.Equal(t, "position", 2, pos)
}

func BenchmarkExpandKey(b *testing.B) {
	c := NewState()
	key := []byte("this is not a strong passphrase")

	for i := 0; i < b.N; i++ {
		ExpandKey(key, c)
	}
}

func BenchmarkCipher_Encrypt(b *testing.B) {
	c, _ := NewCipher([]byte("ayellowsubmarine"))
	block := make([]byte, BlockSize)

	b.SetBytes(BlockSize)

	for i := 0; i < b.N; i++ {
		c.Encrypt(block, block)
	}
}

func assertSameCipher(t *testing.T, ours *Cipher, theirs *xblowfish.Cipher) {
	t.Helper()

	a, b := make([]byte, BlockSize), make([]byte, BlockSize)
	for i := 0; i < 64; i++ {
		ours.Encrypt(a, a)
		theirs.Encrypt(b, b)

		if !bytes.Equal(a, b) {
			t.Fatalf("block %d: %x != %x", i, a, b)
		}
	}
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}

	return b
}

func unhex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}

	return b
}
