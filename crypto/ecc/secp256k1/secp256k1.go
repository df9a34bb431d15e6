// Package secp256k1 implements the secp256k1 group behind the ecc interfaces,
// using the decred implementation of the curve. Points are encoded in SEC 1
// compressed form, with the single byte 0x00 standing for the point at
// infinity.
package secp256k1

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/vocdoni/dreip/crypto/ecc"
)

const CurveType = "secp256k1"

const scalarSize = 32

var infinityEncoding = []byte{0x00}

// G1 is a secp256k1 group element in Jacobian coordinates.
type G1 struct {
	inner secp256k1.JacobianPoint
}

// New returns a new secp256k1 point set to the point at infinity.
func New() ecc.Point {
	return &G1{}
}

func (g *G1) New() ecc.Point {
	return New()
}

func (g *G1) Order() *big.Int {
	return secp256k1.Params().N
}

func (g *G1) Add(a, b ecc.Point) {
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.(*G1).inner, &b.(*G1).inner, &r)
	g.inner.Set(&r)
}

func (g *G1) Sub(a, b ecc.Point) {
	neg := &G1{}
	neg.Neg(b)
	g.Add(a, neg)
}

func (g *G1) ScalarMult(a ecc.Point, scalar *big.Int) {
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(toModN(scalar), &a.(*G1).inner, &r)
	g.inner.Set(&r)
}

func (g *G1) ScalarBaseMult(scalar *big.Int) {
	secp256k1.ScalarBaseMultNonConst(toModN(scalar), &g.inner)
}

func (g *G1) Marshal() []byte {
	if g.IsZero() {
		return bytes.Clone(infinityEncoding)
	}
	p := g.inner
	p.ToAffine()
	return secp256k1.NewPublicKey(&p.X, &p.Y).SerializeCompressed()
}

func (g *G1) Unmarshal(buf []byte) error {
	if bytes.Equal(buf, infinityEncoding) {
		g.SetZero()
		return nil
	}
	pk, err := secp256k1.ParsePubKey(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ecc.ErrDecoding, err)
	}
	pk.AsJacobian(&g.inner)
	return nil
}

func (g *G1) Equal(a ecc.Point) bool {
	return bytes.Equal(g.Marshal(), a.Marshal())
}

func (g *G1) IsZero() bool {
	return (g.inner.X.IsZero() && g.inner.Y.IsZero()) || g.inner.Z.IsZero()
}

func (g *G1) Neg(a ecc.Point) {
	g.Set(a)
	if g.IsZero() {
		return
	}
	g.inner.ToAffine()
	g.inner.Y.Negate(1).Normalize()
}

func (g *G1) SetZero() {
	g.inner = secp256k1.JacobianPoint{}
}

func (g *G1) Set(a ecc.Point) {
	g.inner.Set(&a.(*G1).inner)
}

func (g *G1) SetGenerator() {
	g.ScalarBaseMult(big.NewInt(1))
}

func (g *G1) String() string {
	return fmt.Sprintf("%x", g.Marshal())
}

func (g *G1) Type() string {
	return CurveType
}

func toModN(k *big.Int) *secp256k1.ModNScalar {
	var buf [scalarSize]byte
	ecc.BigToFF(secp256k1.Params().N, k).FillBytes(buf[:])
	s := new(secp256k1.ModNScalar)
	s.SetBytes(&buf)
	return s
}
