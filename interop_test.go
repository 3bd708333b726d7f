package bhash_test

import (
	"crypto/rand"
	"testing"

	"github.com/codahale/bhash"
	"github.com/codahale/gubbins/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestInterop_OursVerifiedByXCrypto(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 8, 55, 56, 57, 71, 72} {
		password := make([]byte, n)
		if _, err := rand.Read(password); err != nil {
			t.Fatal(err)
		}

		hashed, err := bhash.GenerateFromPassword(password, bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hashed), password); err != nil {
			t.Errorf("%d-byte password: %v", n, err)
		}

		cost, err := bcrypt.Cost([]byte(hashed))
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "cost", bcrypt.MinCost, cost)
	}
}

func TestInterop_XCryptoVerifiedByOurs(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 8, 55, 56, 57, 71, 72} {
		password := make([]byte, n)
		if _, err := rand.Read(password); err != nil {
			t.Fatal(err)
		}

		hashed, err := bcrypt.GenerateFromPassword(password, bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}

		ok, err := bhash.Verify(password, string(hashed))
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "verified", true, ok)

		// Re-hashing with the extracted salt reproduces the record exactly.
		salt, err := bhash.SaltOf(string(hashed))
		if err != nil {
			t.Fatal(err)
		}

		rehashed, err := bhash.Hash(password, salt)
		if err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "rehashed", string(hashed), rehashed)
	}
}
