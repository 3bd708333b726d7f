// Package bhash implements bcrypt, the adaptive password hash.
//
// A hash is derived from a password, a random 128-bit salt, and a cost factor C. The password and
// salt key an EksBlowfish state, whose key schedule is repeated 2^C times, and the resulting state
// encrypts a fixed plaintext to produce the digest. The cost, salt, and digest are stored together
// in a 60-character record:
//
//     $2b$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//
// Records produced here can be verified by any other bcrypt implementation, and vice versa.
//
// Passwords longer than MaxPasswordLength bytes are silently truncated: any two passwords which
// share their first 72 bytes produce the same hash. Callers which need to distinguish longer
// passwords must reject them before hashing.
//
// Every function is safe for concurrent use; each call owns all of its state. Hashing is
// CPU-bound and, at realistic costs, slow by design. It cannot be cancelled once started.
package bhash

import (
	"crypto/subtle"

	"github.com/codahale/bhash/internal/eksblowfish"
	"github.com/codahale/bhash/internal/record"
)

const (
	MinCost     = eksblowfish.MinCost // MinCost is the smallest accepted cost factor.
	MaxCost     = eksblowfish.MaxCost // MaxCost is the largest accepted cost factor.
	DefaultCost = 10                  // DefaultCost is the cost used when none is specified.

	// MaxPasswordLength is the number of password bytes which influence a hash. Longer passwords
	// are truncated.
	MaxPasswordLength = eksblowfish.MaxKeySize

	// SaltSize is the size of a raw salt in bytes.
	SaltSize = eksblowfish.SaltSize
)

// Version identifies the bcrypt revision named in a record.
type Version = record.Version

// Recognised revisions. Only V2b is generated; V2a and V2y records are verified identically.
const (
	V2a = record.V2a
	V2b = record.V2b
	V2y = record.V2y
)

var (
	// ErrInvalidHash is matched by every error returned for a malformed record or salt.
	ErrInvalidHash = record.ErrInvalidHash

	// ErrInvalidCost is matched by every InvalidCostError.
	ErrInvalidCost = eksblowfish.ErrInvalidCost
)

type (
	// FormatError describes a malformed record or salt. It matches ErrInvalidHash.
	FormatError = record.FormatError

	// InvalidCostError is returned when a cost factor is outside [MinCost, MaxCost]. It matches
	// ErrInvalidCost.
	InvalidCostError = eksblowfish.InvalidCostError
)

// Hash returns the bcrypt record of the password with the given salt. The same password and salt
// always produce the same record.
func Hash(password []byte, salt Salt) (string, error) {
	digest, err := eksblowfish.Sum(salt.cost, salt.b[:], password)
	if err != nil {
		return "", err
	}

	r := record.Record{Version: salt.version, Cost: salt.cost, Salt: salt.b}
	copy(r.Digest[:], digest[:])

	return string(record.Encode(&r)), nil
}

// HashString is Hash with a salt in its textual form, e.g. "$2b$10$" followed by 22 characters.
func HashString(password []byte, salt string) (string, error) {
	s, err := ParseSalt(salt)
	if err != nil {
		return "", err
	}

	return Hash(password, s)
}

// GenerateFromPassword returns the bcrypt record of the password with a new random salt of the
// given cost.
func GenerateFromPassword(password []byte, cost int) (string, error) {
	salt, err := GenerateSalt(cost)
	if err != nil {
		return "", err
	}

	return Hash(password, salt)
}

// Verify returns true if the password produced the given record. A mismatch is (false, nil); an
// error is returned only if the record is malformed. The digests are compared in constant time.
func Verify(password []byte, encoded string) (bool, error) {
	r, err := record.Decode([]byte(encoded))
	if err != nil {
		return false, err
	}

	// The record's cost has been validated, so this cannot fail.
	digest, err := eksblowfish.Sum(r.Cost, r.Salt[:], password)
	if err != nil {
		panic(err)
	}

	return digestsEqual(r.Digest[:], digest[:record.DigestSize]), nil
}

// Cost returns the cost factor of the given record.
func Cost(encoded string) (int, error) {
	r, err := record.Decode([]byte(encoded))
	if err != nil {
		return 0, err
	}

	return r.Cost, nil
}

// NeedsRehash returns true if the given record was not produced by this package at the given
// cost, i.e. if it has a different cost or an older revision.
func NeedsRehash(encoded string, cost int) (bool, error) {
	if err := eksblowfish.CheckCost(cost); err != nil {
		return false, err
	}

	r, err := record.Decode([]byte(encoded))
	if err != nil {
		return false, err
	}

	return r.Cost != cost || r.Version != V2b, nil
}

// digestsEqual compares a and b without branching on their contents.
func digestsEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
