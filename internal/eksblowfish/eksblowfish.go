// Package eksblowfish implements the expensive key schedule and the digest step of bcrypt.
//
// Given a cost C, a 16-byte salt S, and a password P, the key K is P with a NUL byte appended,
// truncated to 72 bytes. The state is then derived as follows:
//
//     state = InitState()
//     ExpandKey(state, S, K)
//     repeat 2^C times:
//         ExpandKey(state, 0, K)
//         ExpandKey(state, 0, S)
//
// The digest encrypts the 24-byte string "OrpheanBeholderScryDoubt", as three 64-bit blocks, 64
// times with the resulting state.
//
// Both steps must be reproduced bit-for-bit: any deviation produces hashes which no other bcrypt
// implementation can verify.
package eksblowfish

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/bhash/internal/blowfish"
)

const (
	MinCost = 4  // MinCost is the smallest accepted cost factor.
	MaxCost = 31 // MaxCost is the largest accepted cost factor.

	SaltSize   = 16 // SaltSize is the size of a salt in bytes.
	DigestSize = 24 // DigestSize is the size of a raw digest in bytes.

	// MaxKeySize is the number of key bytes, including the appended NUL, which influence the state.
	MaxKeySize = 72

	digestRounds = 64
)

// ErrInvalidCost is matched by every InvalidCostError.
var ErrInvalidCost = errors.New("invalid cost")

// InvalidCostError is returned when a cost factor is outside [MinCost, MaxCost].
type InvalidCostError int

func (ic InvalidCostError) Error() string {
	return fmt.Sprintf("cost %d is outside allowed range [%d,%d]", int(ic), MinCost, MaxCost)
}

// Is reports whether target is ErrInvalidCost.
func (ic InvalidCostError) Is(target error) bool {
	return target == ErrInvalidCost
}

// InvalidSaltSizeError is returned when a salt is not SaltSize bytes long.
type InvalidSaltSizeError int

func (is InvalidSaltSizeError) Error() string {
	return fmt.Sprintf("salt is %d bytes, not %d", int(is), SaltSize)
}

// CheckCost returns an InvalidCostError if cost is outside [MinCost, MaxCost].
func CheckCost(cost int) error {
	if cost < MinCost || cost > MaxCost {
		return InvalidCostError(cost)
	}

	return nil
}

// Key returns the password with a NUL byte appended, truncated to MaxKeySize bytes. The password
// itself is never modified.
func Key(password []byte) []byte {
	n := len(password) + 1
	if n > MaxKeySize {
		n = MaxKeySize
	}

	key := make([]byte, n)
	copy(key, password)

	return key
}

// Setup returns a Blowfish state derived from the password, salt, and cost. The arguments are
// validated before any state is allocated.
func Setup(cost int, salt, password []byte) (*blowfish.Cipher, error) {
	if err := CheckCost(cost); err != nil {
		return nil, err
	}

	if len(salt) != SaltSize {
		return nil, InvalidSaltSizeError(len(salt))
	}

	key := Key(password)

	// Initialize the state from the digits of pi and mix in the key and the salt.
	c := blowfish.NewState()
	blowfish.ExpandKeyWithSalt(key, salt, c)

	// Alternate between the key and the salt for 2^cost rounds.
	rounds := uint64(1) << uint(cost)
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}

	return c, nil
}

// Digest returns the result of repeatedly encrypting the magic plaintext with the given state.
func Digest(c *blowfish.Cipher) [DigestSize]byte {
	var out [DigestSize]byte

	for i := 0; i < DigestSize; i += blowfish.BlockSize {
		l := binary.BigEndian.Uint32(magic[i:])
		r := binary.BigEndian.Uint32(magic[i+4:])

		for j := 0; j < digestRounds; j++ {
			l, r = blowfish.EncryptBlock(c, l, r)
		}

		binary.BigEndian.PutUint32(out[i:], l)
		binary.BigEndian.PutUint32(out[i+4:], r)
	}

	return out
}

// Sum is Setup followed by Digest.
func Sum(cost int, salt, password []byte) ([DigestSize]byte, error) {
	c, err := Setup(cost, salt, password)
	if err != nil {
		return [DigestSize]byte{}, err
	}

	return Digest(c), nil
}

//nolint:gochecknoglobals // read-only
var magic = []byte("OrpheanBeholderScryDoubt")
