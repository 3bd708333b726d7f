package bhash

import (
	"crypto/rand"
	"encoding"
	"io"

	"github.com/codahale/bhash/internal/eksblowfish"
	"github.com/codahale/bhash/internal/record"
)

// Salt is a random 128-bit salt paired with a cost factor and a bcrypt revision.
//
// The zero Salt is not valid; Hash rejects it.
type Salt struct {
	version Version
	cost    int
	b       [SaltSize]byte
}

// GenerateSalt returns a new random salt of the given cost. The salt's bytes are read from
// crypto/rand.
func GenerateSalt(cost int) (Salt, error) {
	return readSalt(rand.Reader, cost)
}

// ParseSalt parses the textual form of a salt, as returned by Salt.String.
func ParseSalt(s string) (Salt, error) {
	r, err := record.DecodeSalt([]byte(s))
	if err != nil {
		return Salt{}, err
	}

	return Salt{version: r.Version, cost: r.Cost, b: r.Salt}, nil
}

// SaltOf returns the salt of the given record.
func SaltOf(encoded string) (Salt, error) {
	r, err := record.Decode([]byte(encoded))
	if err != nil {
		return Salt{}, err
	}

	return Salt{version: r.Version, cost: r.Cost, b: r.Salt}, nil
}

// readSalt returns a salt of the given cost with bytes read from src. The cost is checked before
// anything is read.
func readSalt(src io.Reader, cost int) (Salt, error) {
	if err := eksblowfish.CheckCost(cost); err != nil {
		return Salt{}, err
	}

	s := Salt{version: V2b, cost: cost}
	if _, err := io.ReadFull(src, s.b[:]); err != nil {
		return Salt{}, err
	}

	return s, nil
}

// Cost returns the salt's cost factor.
func (s Salt) Cost() int {
	return s.cost
}

// Version returns the salt's bcrypt revision.
func (s Salt) Version() Version {
	return s.version
}

// Bytes returns a copy of the salt's raw bytes.
func (s Salt) Bytes() []byte {
	b := make([]byte, SaltSize)
	copy(b, s.b[:])

	return b
}

func (s Salt) MarshalText() ([]byte, error) {
	if err := eksblowfish.CheckCost(s.cost); err != nil {
		return nil, err
	}

	return record.EncodeSalt(s.version, s.cost, s.b[:]), nil
}

func (s *Salt) UnmarshalText(text []byte) error {
	p, err := ParseSalt(string(text))
	if err != nil {
		return err
	}

	*s = p

	return nil
}

func (s Salt) String() string {
	b, _ := s.MarshalText()
	return string(b)
}

var (
	_ encoding.TextMarshaler   = Salt{}
	_ encoding.TextUnmarshaler = &Salt{}
)
