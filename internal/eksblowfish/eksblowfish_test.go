package eksblowfish

import (
	"bytes"
	"testing"

	"github.com/codahale/bhash/internal/radix64"
	"github.com/codahale/gubbins/assert"
)

func TestSum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		salt     string
		cost     int
		digest   string
	}{
		{
			name:     "empty",
			password: "",
			salt:     "DCq7YPn5Rq63x1Lad4cll.",
			cost:     6,
			digest:   "TV4S6ytwfsfvkgY8jIucDrjc8deX1s.",
		},
		{
			name:     "one character",
			password: "a",
			salt:     "m0CrhHm10qJ3lXRY.5zDGO",
			cost:     6,
			digest:   "3rS2KdeeWLuGmsfGlMfOxih58VYVfxe",
		},
		{
			name:     "alphabet",
			password: "abcdefghijklmnopqrstuvwxyz",
			salt:     ".rCVZVOThsIa97pEDOxvGu",
			cost:     6,
			digest:   "RRgzG64bvtJ0938xuqzv18d3ZpQhstC",
		},
		{
			name:     "cost 10",
			password: "allmine",
			salt:     "XajjQvNhvvRt5GSeFk1xFe",
			cost:     10,
			digest:   "yqRrsxkhBkUiQeg0dt.wU1qD4aFDcga",
		},
		{
			name:     "longer than a blowfish key",
			password: "012345678901234567890123456789012345678901234567890123456",
			salt:     "XajjQvNhvvRt5GSeFk1xFe",
			cost:     10,
			digest:   "5l47dONXg781AmZtd869sO8zfsHuw7C",
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			salt, err := radix64.DecodeString(test.salt)
			if err != nil {
				t.Fatal(err)
			}

			digest, err := Sum(test.cost, salt, []byte(test.password))
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, "digest", test.digest, radix64.EncodeToString(digest[:DigestSize-1]))
		})
	}
}

func TestSetup_InvalidCost(t *testing.T) {
	t.Parallel()

	salt := make([]byte, SaltSize)

	for _, cost := range []int{-1, 0, MinCost - 1, MaxCost + 1} {
		c, err := Setup(cost, salt, []byte("password"))

		assert.Equal(t, "err", InvalidCostError(cost), err)

		if c != nil {
			t.Errorf("cost %d returned a state", cost)
		}
	}
}

func TestSetup_InvalidSalt(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 15, 17, 22} {
		_, err := Setup(MinCost, make([]byte, n), []byte("password"))

		assert.Equal(t, "err", InvalidSaltSizeError(n), err)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "empty", []byte{0}, Key(nil))
	assert.Equal(t, "short", []byte("abc\x00"), Key([]byte("abc")))

	long := bytes.Repeat([]byte("x"), 100)

	assert.Equal(t, "71 bytes", append(bytes.Repeat([]byte("x"), 71), 0), Key(long[:71]))
	assert.Equal(t, "72 bytes", long[:MaxKeySize], Key(long[:72]))
	assert.Equal(t, "100 bytes", long[:MaxKeySize], Key(long))

	// The password is not modified.
	p := []byte("abc")
	_ = Key(p[:2])

	assert.Equal(t, "password", []byte("abc"), p)
}

func TestSum_Truncation(t *testing.T) {
	t.Parallel()

	salt := make([]byte, SaltSize)
	long := bytes.Repeat([]byte("0123456789"), 10)

	a, err := Sum(MinCost, salt, long[:72])
	if err != nil {
		t.Fatal(err)
	}

	b, err := Sum(MinCost, salt, long)
	if err != nil {
		t.Fatal(err)
	}

	c, err := Sum(MinCost, salt, long[:71])
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "72 vs 100 bytes", a, b)

	if a == c {
		t.Error("71 and 72 byte passwords produced the same digest")
	}
}

func TestInvalidCostError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "message", "cost 32 is outside allowed range [4,31]", InvalidCostError(32).Error())
}

func BenchmarkSetup(b *testing.B) {
	salt := make([]byte, SaltSize)
	password := []byte("this is not a strong passphrase")

	for i := 0; i < b.N; i++ {
		_, _ = Setup(10, salt, password)
	}
}
