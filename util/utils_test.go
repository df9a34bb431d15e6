package util

import (
	"bytes"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/dreip/crypto/random"
)

func TestRandomInt(t *testing.T) {
	c := qt.New(t)
	rng := random.Seeded([]byte("util"))
	seen := make(map[int]int)
	for range 300 {
		n, err := RandomInt(rng, 2, 5)
		c.Assert(err, qt.IsNil)
		c.Assert(n >= 2 && n < 5, qt.IsTrue, qt.Commentf("got %d", n))
		seen[n]++
	}
	c.Assert(seen, qt.HasLen, 3)

	_, err := RandomInt(rng, 3, 3)
	c.Assert(err, qt.ErrorMatches, `empty range \[3, 3\)`)

	// 0xff is above the rejection limit for a bound of 3, 0x07 maps to 1
	n, err := RandomInt(bytes.NewReader([]byte{0xff, 0x07}), 0, 3)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 1)

	_, err = RandomInt(bytes.NewReader(nil), 0, 3)
	c.Assert(err, qt.ErrorMatches, "cannot read random bytes: EOF")
}

func TestRandomHex(t *testing.T) {
	c := qt.New(t)
	h, err := RandomHex(bytes.NewReader([]byte{0xab, 0x01}), 2)
	c.Assert(err, qt.IsNil)
	c.Assert(h, qt.Equals, "ab01")

	_, err = RandomHex(bytes.NewReader([]byte{0xab}), 2)
	c.Assert(err, qt.ErrorMatches, "cannot read random bytes: unexpected EOF")
}

func TestEnv(t *testing.T) {
	c := qt.New(t)
	t.Setenv("DREIP_TEST_ENV", " p256 ")
	c.Assert(Env("DREIP_TEST_ENV", "bn254"), qt.Equals, "p256")
	t.Setenv("DREIP_TEST_ENV", "")
	c.Assert(Env("DREIP_TEST_ENV", "bn254"), qt.Equals, "bn254")
}
