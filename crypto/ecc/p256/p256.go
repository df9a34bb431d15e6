// Package p256 implements the NIST P-256 group behind the ecc interfaces.
// Points are encoded in SEC 1 compressed form, with the single byte 0x00
// standing for the point at infinity.
package p256

import (
	"bytes"
	"fmt"
	"math/big"

	"filippo.io/nistec"
	"github.com/vocdoni/dreip/crypto/ecc"
)

const CurveType = "p256"

// scalarSize is the byte length of P-256 scalars and field elements.
const scalarSize = 32

var order, _ = new(big.Int).SetString("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551", 16)

// G1 is a P-256 group element.
type G1 struct {
	inner *nistec.P256Point
}

// New returns a new P-256 point set to the point at infinity.
func New() ecc.Point {
	return &G1{inner: nistec.NewP256Point()}
}

func (g *G1) New() ecc.Point {
	return New()
}

func (g *G1) Order() *big.Int {
	return order
}

func (g *G1) Add(a, b ecc.Point) {
	g.inner.Add(a.(*G1).inner, b.(*G1).inner)
}

func (g *G1) Sub(a, b ecc.Point) {
	neg := New()
	neg.Neg(b)
	g.Add(a, neg)
}

func (g *G1) ScalarMult(a ecc.Point, scalar *big.Int) {
	if _, err := g.inner.ScalarMult(a.(*G1).inner, scalarBytes(scalar)); err != nil {
		// only reachable with a scalar encoding of the wrong length
		panic(err)
	}
}

func (g *G1) ScalarBaseMult(scalar *big.Int) {
	if _, err := g.inner.ScalarBaseMult(scalarBytes(scalar)); err != nil {
		panic(err)
	}
}

func (g *G1) Marshal() []byte {
	return g.inner.BytesCompressed()
}

func (g *G1) Unmarshal(buf []byte) error {
	if g.inner == nil {
		g.inner = nistec.NewP256Point()
	}
	if _, err := g.inner.SetBytes(buf); err != nil {
		return fmt.Errorf("%w: %v", ecc.ErrDecoding, err)
	}
	return nil
}

func (g *G1) Equal(a ecc.Point) bool {
	return bytes.Equal(g.inner.Bytes(), a.(*G1).inner.Bytes())
}

func (g *G1) IsZero() bool {
	return len(g.inner.Bytes()) == 1
}

// Neg multiplies a by order-1, since nistec exposes no negation.
func (g *G1) Neg(a ecc.Point) {
	g.ScalarMult(a, new(big.Int).Sub(order, big.NewInt(1)))
}

func (g *G1) SetZero() {
	g.inner = nistec.NewP256Point()
}

func (g *G1) Set(a ecc.Point) {
	g.inner.Set(a.(*G1).inner)
}

func (g *G1) SetGenerator() {
	g.inner.SetGenerator()
}

func (g *G1) String() string {
	return fmt.Sprintf("%x", g.Marshal())
}

func (g *G1) Type() string {
	return CurveType
}

// coordinates returns the affine coordinates of a point that is not the
// point at infinity.
func (g *G1) coordinates() (*big.Int, *big.Int) {
	b := g.inner.Bytes()
	return new(big.Int).SetBytes(b[1 : 1+scalarSize]), new(big.Int).SetBytes(b[1+scalarSize:])
}

func scalarBytes(k *big.Int) []byte {
	return ecc.MarshalScalar(ecc.BigToFF(order, k), scalarSize)
}
