// Package blowfish implements the Blowfish block cipher with the two key schedules bcrypt needs.
//
// Blowfish is a 16-round Feistel cipher over 64-bit blocks. Its state is an 18-word P-array and
// four 256-word S-boxes, all initialized from the digits of pi and then rewritten by the key
// schedule. Alongside the standard key schedule, this package exposes the salted expansion and the
// raw key expansion which EksBlowfish alternates between, so a caller can drive the expensive key
// setup one step at a time.
//
// This is not a general-purpose cipher package: there is no mode of operation here, and nothing
// other than the bcrypt construction should use it.
package blowfish

import (
	"crypto/cipher"
	"encoding/binary"
	"strconv"
)

const (
	BlockSize = 8  // BlockSize is the Blowfish block size in bytes.
	Rounds    = 16 // Rounds is the number of Feistel rounds per block.

	// MaxKeySize is the largest key, in bytes, which the standard key schedule accepts.
	MaxKeySize = 56
)

// KeySizeError is returned by NewCipher when the key is empty or longer than MaxKeySize.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "blowfish: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is the mutable key-dependent state of a Blowfish instance.
//
// A Cipher is owned by exactly one goroutine. It is never safe to share one between concurrent
// key schedules.
type Cipher struct {
	p              [Rounds + 2]uint32
	s0, s1, s2, s3 [256]uint32
}

// NewState returns a fresh, unkeyed state holding a copy of the initial P-array and S-boxes.
func NewState() *Cipher {
	return &Cipher{
		p:  initP,
		s0: initS0,
		s1: initS1,
		s2: initS2,
		s3: initS3,
	}
}

// NewCipher returns a Blowfish cipher keyed with the standard key schedule.
func NewCipher(key []byte) (*Cipher, error) {
	if k := len(key); k < 1 || k > MaxKeySize {
		return nil, KeySizeError(k)
	}

	c := NewState()
	ExpandKey(key, c)

	return c, nil
}

// BlockSize returns the Blowfish block size.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first 8 bytes of src into dst. dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	l, r := EncryptBlock(c, binary.BigEndian.Uint32(src[0:]), binary.BigEndian.Uint32(src[4:]))

	binary.BigEndian.PutUint32(dst[0:], l)
	binary.BigEndian.PutUint32(dst[4:], r)
}

// Decrypt decrypts the first 8 bytes of src into dst. dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	l, r := DecryptBlock(c, binary.BigEndian.Uint32(src[0:]), binary.BigEndian.Uint32(src[4:]))

	binary.BigEndian.PutUint32(dst[0:], l)
	binary.BigEndian.PutUint32(dst[4:], r)
}

// EncryptBlock encrypts the 64-bit block (l, r) with the given state.
func EncryptBlock(c *Cipher, l, r uint32) (uint32, uint32) {
	l ^= c.p[0]

	for i := 1; i <= Rounds; i += 2 {
		r ^= c.f(l) ^ c.p[i]
		l ^= c.f(r) ^ c.p[i+1]
	}

	r ^= c.p[Rounds+1]

	// The last round's swap is undone by returning the halves crossed.
	return r, l
}

// DecryptBlock inverts EncryptBlock.
func DecryptBlock(c *Cipher, l, r uint32) (uint32, uint32) {
	l ^= c.p[Rounds+1]

	for i := Rounds; i >= 1; i -= 2 {
		r ^= c.f(l) ^ c.p[i]
		l ^= c.f(r) ^ c.p[i-1]
	}

	r ^= c.p[0]

	return r, l
}

// f is the Blowfish round function.
func (c *Cipher) f(x uint32) uint32 {
	return ((c.s0[byte(x>>24)] + c.s1[byte(x>>16)]) ^ c.s2[byte(x>>8)]) + c.s3[byte(x)]
}

// ExpandKey mixes key into the state: the cyclically repeated key is XORed into the P-array, then
// a zero block is repeatedly encrypted and the results overwrite the P-array and every S-box in
// turn. Any key length of at least one byte is accepted; only the first 72 bytes matter.
func ExpandKey(key []byte, c *Cipher) {
	c.xorKey(key)

	var l, r uint32

	c.rekey(func() (uint32, uint32) {
		l, r = EncryptBlock(c, l, r)

		return l, r
	})
}

// ExpandKeyWithSalt is ExpandKey with the cyclically repeated salt XORed into the running block
// before every encryption. The salt must be a non-empty multiple of 4 bytes.
func ExpandKeyWithSalt(key, salt []byte, c *Cipher) {
	c.xorKey(key)

	var (
		l, r uint32
		j    int
	)

	c.rekey(func() (uint32, uint32) {
		l ^= nextWord(salt, &j)
		r ^= nextWord(salt, &j)
		l, r = EncryptBlock(c, l, r)

		return l, r
	})
}

// xorKey XORs the cyclically repeated key into the P-array.
func (c *Cipher) xorKey(key []byte) {
	j := 0
	for i := range c.p {
		c.p[i] ^= nextWord(key, &j)
	}
}

// rekey overwrites the P-array and then each S-box, two words at a time, with successive outputs
// of next.
func (c *Cipher) rekey(next func() (uint32, uint32)) {
	for i := 0; i < len(c.p); i += 2 {
		c.p[i], c.p[i+1] = next()
	}

	for _, s := range []*[256]uint32{&c.s0, &c.s1, &c.s2, &c.s3} {
		for i := 0; i < len(s); i += 2 {
			s[i], s[i+1] = next()
		}
	}
}

// nextWord reads a big-endian 32-bit word from b starting at *pos, wrapping around to the start
// of b as needed, and advances *pos.
func nextWord(b []byte, pos *int) uint32 {
	var w uint32

	j := *pos
	for i := 0; i < 4; i++ {
		w = w<<8 | uint32(b[j])

		j++
		if j >= len(b) {
			j = 0
		}
	}

	*pos = j

	return w
}

var _ cipher.Block = &Cipher{}
