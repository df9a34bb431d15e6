package poseidon

import (
	"crypto/sha256"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

func TestMultiPoseidon(t *testing.T) {
	c := qt.New(t)
	inputs := make([]*big.Int, 0, 40)
	for i := range 40 {
		inputs = append(inputs, big.NewInt(int64(i)))
	}

	// a single chunk is a plain Poseidon hash
	got, err := MultiPoseidon(inputs[:16]...)
	c.Assert(err, qt.IsNil)
	want, err := poseidon.Hash(inputs[:16])
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(want), qt.Equals, 0)

	got, err = MultiPoseidon(inputs...)
	c.Assert(err, qt.IsNil)
	var chunks []*big.Int
	for _, r := range [][2]int{{0, 16}, {16, 32}, {32, 40}} {
		h, err := poseidon.Hash(inputs[r[0]:r[1]])
		c.Assert(err, qt.IsNil)
		chunks = append(chunks, h)
	}
	want, err = poseidon.Hash(chunks)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(want), qt.Equals, 0)

	_, err = MultiPoseidon()
	c.Assert(err, qt.ErrorMatches, "no inputs provided")
	_, err = MultiPoseidon(make([]*big.Int, 257)...)
	c.Assert(err, qt.ErrorMatches, "too many inputs")
}

func TestHashBytes(t *testing.T) {
	c := qt.New(t)
	msg := []byte("dreip")
	digest := sha256.Sum256(msg)
	want, err := poseidon.Hash([]*big.Int{
		new(big.Int).SetBytes(digest[:16]),
		new(big.Int).SetBytes(digest[16:]),
	})
	c.Assert(err, qt.IsNil)
	got, err := HashBytes(msg)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(want), qt.Equals, 0)

	other, err := HashBytes([]byte("dreip!"))
	c.Assert(err, qt.IsNil)
	c.Assert(other.Cmp(got), qt.Not(qt.Equals), 0)
}
