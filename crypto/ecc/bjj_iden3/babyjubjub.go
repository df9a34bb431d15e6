// Package bjj implements the prime order subgroup of the BabyJubJub twisted
// Edwards curve behind the ecc interfaces, using the iden3 implementation.
package bjj

import (
	"bytes"
	"fmt"
	"math/big"

	babyjubjub "github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/iden3/go-iden3-crypto/constants"

	"github.com/vocdoni/dreip/crypto/ecc"
)

const CurveType = "bjj_iden3"

const encodingSize = 32

// BJJ is the affine representation of the BabyJubJub group element.
type BJJ struct {
	inner *babyjubjub.Point
}

// New creates a new BJJ point (identity element by default).
func New() ecc.Point {
	return &BJJ{inner: babyjubjub.NewPoint()}
}

func (g *BJJ) New() ecc.Point {
	return New()
}

func (g *BJJ) Order() *big.Int {
	return babyjubjub.SubOrder
}

func (g *BJJ) Add(a, b ecc.Point) {
	g.inner = g.inner.Projective().Add(a.(*BJJ).inner.Projective(), b.(*BJJ).inner.Projective()).Affine()
}

func (g *BJJ) Sub(a, b ecc.Point) {
	neg := New()
	neg.Neg(b)
	g.Add(a, neg)
}

func (g *BJJ) ScalarMult(a ecc.Point, scalar *big.Int) {
	g.inner = babyjubjub.NewPoint().Mul(ecc.BigToFF(babyjubjub.SubOrder, scalar), a.(*BJJ).inner)
}

func (g *BJJ) ScalarBaseMult(scalar *big.Int) {
	g.inner = babyjubjub.NewPoint().Mul(ecc.BigToFF(babyjubjub.SubOrder, scalar), babyjubjub.B8)
}

func (g *BJJ) Marshal() []byte {
	b := g.inner.Compress()
	return b[:]
}

// Unmarshal decodes a compressed point, rejecting non canonical encodings
// and points outside the prime order subgroup.
func (g *BJJ) Unmarshal(buf []byte) error {
	if len(buf) != encodingSize {
		return fmt.Errorf("%w: point of %d bytes, expected %d", ecc.ErrDecoding, len(buf), encodingSize)
	}
	b32 := [encodingSize]byte{}
	copy(b32[:], buf)
	p, err := babyjubjub.NewPoint().Decompress(b32)
	if err != nil {
		return fmt.Errorf("%w: %v", ecc.ErrDecoding, err)
	}
	if !p.InSubGroup() {
		return fmt.Errorf("%w: point not in the prime order subgroup", ecc.ErrDecoding)
	}
	if c := p.Compress(); !bytes.Equal(c[:], buf) {
		return fmt.Errorf("%w: non canonical point encoding", ecc.ErrDecoding)
	}
	g.inner = p
	return nil
}

func (g *BJJ) Equal(a ecc.Point) bool {
	return g.inner.X.Cmp(a.(*BJJ).inner.X) == 0 && g.inner.Y.Cmp(a.(*BJJ).inner.Y) == 0
}

func (g *BJJ) IsZero() bool {
	return g.inner.X.Sign() == 0 && g.inner.Y.Cmp(big.NewInt(1)) == 0
}

// Neg sets g to (-x, y), the inverse of a on a twisted Edwards curve.
func (g *BJJ) Neg(a ecc.Point) {
	x := new(big.Int).Neg(a.(*BJJ).inner.X)
	x.Mod(x, constants.Q)
	g.inner = &babyjubjub.Point{X: x, Y: new(big.Int).Set(a.(*BJJ).inner.Y)}
}

func (g *BJJ) SetZero() {
	g.inner = babyjubjub.NewPoint()
}

func (g *BJJ) Set(a ecc.Point) {
	g.inner = &babyjubjub.Point{
		X: new(big.Int).Set(a.(*BJJ).inner.X),
		Y: new(big.Int).Set(a.(*BJJ).inner.Y),
	}
}

func (g *BJJ) SetGenerator() {
	g.Set(&BJJ{inner: babyjubjub.B8})
}

func (g *BJJ) String() string {
	return fmt.Sprintf("%x", g.Marshal())
}

func (g *BJJ) Type() string {
	return CurveType
}
