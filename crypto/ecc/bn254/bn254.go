package bn254

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vocdoni/dreip/crypto/ecc"
)

const CurveType = "bn254"

var Generator bn254.G1Jac

func init() {
	Generator.X.SetOne()
	Generator.Y.SetUint64(2)
	Generator.Z.SetOne()
}

// G1 is the affine representation of a G1 group element.
type G1 struct {
	inner *bn254.G1Affine
}

// New returns a new G1 point set to the point at infinity.
func New() ecc.Point {
	return &G1{inner: new(bn254.G1Affine)}
}

func (g *G1) New() ecc.Point {
	return New()
}

func (g *G1) Order() *big.Int {
	return fr.Modulus()
}

func (g *G1) Add(a, b ecc.Point) {
	temp := new(bn254.G1Affine)
	temp.Add(a.(*G1).inner, b.(*G1).inner)
	*g.inner = *temp
}

func (g *G1) Sub(a, b ecc.Point) {
	neg := new(bn254.G1Affine)
	neg.Neg(b.(*G1).inner)
	temp := new(bn254.G1Affine)
	temp.Add(a.(*G1).inner, neg)
	*g.inner = *temp
}

func (g *G1) ScalarMult(a ecc.Point, scalar *big.Int) {
	temp := new(bn254.G1Affine)
	temp.ScalarMultiplication(a.(*G1).inner, ecc.BigToFF(fr.Modulus(), scalar))
	*g.inner = *temp
}

func (g *G1) ScalarBaseMult(scalar *big.Int) {
	g.inner.ScalarMultiplicationBase(ecc.BigToFF(fr.Modulus(), scalar))
}

// Marshal returns the 32 byte compressed encoding of the point.
func (g *G1) Marshal() []byte {
	b := g.inner.Bytes()
	return b[:]
}

// Unmarshal decodes a compressed or uncompressed encoding, checking that the
// point lies in the prime order subgroup. Trailing bytes are rejected.
func (g *G1) Unmarshal(buf []byte) error {
	if g.inner == nil {
		g.inner = new(bn254.G1Affine)
	}
	n, err := g.inner.SetBytes(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ecc.ErrDecoding, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: %d trailing bytes", ecc.ErrDecoding, len(buf)-n)
	}
	return nil
}

func (g *G1) Equal(a ecc.Point) bool {
	return g.inner.Equal(a.(*G1).inner)
}

func (g *G1) IsZero() bool {
	return g.inner.IsInfinity()
}

func (g *G1) Neg(a ecc.Point) {
	g.inner.Neg(a.(*G1).inner)
}

func (g *G1) SetZero() {
	g.inner.X.SetZero()
	g.inner.Y.SetZero()
}

func (g *G1) Set(a ecc.Point) {
	g.inner.X.Set(&a.(*G1).inner.X)
	g.inner.Y.Set(&a.(*G1).inner.Y)
}

func (g *G1) SetGenerator() {
	g.inner.FromJacobian(&Generator)
}

func (g *G1) String() string {
	bytes := g.Marshal()
	return fmt.Sprintf("%x", bytes)
}

func (g *G1) Type() string {
	return CurveType
}
