package curves

import (
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/random"
)

// bigEquals compares *big.Int values by value.
var bigEquals = qt.CmpEquals(cmp.Comparer(func(a, b *big.Int) bool {
	return a.Cmp(b) == 0
}))

func forEachSuite(t *testing.T, f func(c *qt.C, s ecc.Suite)) {
	for _, curveType := range Types() {
		t.Run(curveType, func(t *testing.T) {
			t.Parallel()
			c := qt.New(t)
			s, err := New(curveType)
			c.Assert(err, qt.IsNil)
			c.Assert(s.Type(), qt.Equals, curveType)
			f(c, s)
		})
	}
}

func TestUnsupportedCurve(t *testing.T) {
	c := qt.New(t)
	_, err := New("ed448")
	c.Assert(err, qt.ErrorMatches, "unsupported curve type: ed448")
	c.Assert(Types(), qt.Contains, DefaultCurve)
}

func TestGroupLaws(t *testing.T) {
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		a, b := big.NewInt(123456789), big.NewInt(987654321)

		g := s.Point()
		c.Assert(g.IsZero(), qt.IsTrue)
		g.SetGenerator()
		c.Assert(g.IsZero(), qt.IsFalse)
		c.Assert(g.Type(), qt.Equals, s.Type())
		c.Assert(g.Order(), bigEquals, s.Order())

		// g·a + g·b == g·(a+b)
		ga, gb, sum := s.Point(), s.Point(), s.Point()
		ga.ScalarBaseMult(a)
		gb.ScalarMult(g, b)
		sum.Add(ga, gb)
		expected := s.Point()
		expected.ScalarBaseMult(new(big.Int).Add(a, b))
		c.Assert(sum.Equal(expected), qt.IsTrue)

		// (g·a + g·b) - g·b == g·a
		diff := s.Point()
		diff.Sub(sum, gb)
		c.Assert(diff.Equal(ga), qt.IsTrue)

		// p + (-p) == 0
		neg := s.Point()
		neg.Neg(ga)
		c.Assert(neg.Equal(ga), qt.IsFalse)
		zero := s.Point()
		zero.Add(ga, neg)
		c.Assert(zero.IsZero(), qt.IsTrue)

		// g·order == 0 and g·(order+1) == g
		id := s.Point()
		id.ScalarBaseMult(s.Order())
		c.Assert(id.IsZero(), qt.IsTrue)
		wrap := s.Point()
		wrap.ScalarBaseMult(new(big.Int).Add(s.Order(), big.NewInt(1)))
		c.Assert(wrap.Equal(g), qt.IsTrue)

		// negative scalars are reduced modulo the order
		minus := s.Point()
		minus.ScalarBaseMult(big.NewInt(-1))
		gneg := s.Point()
		gneg.Neg(g)
		c.Assert(minus.Equal(gneg), qt.IsTrue)

		// receiver may alias operands
		acc := s.Point()
		acc.Set(ga)
		acc.Add(acc, acc)
		double := s.Point()
		double.ScalarBaseMult(new(big.Int).Mul(a, big.NewInt(2)))
		c.Assert(acc.Equal(double), qt.IsTrue)

		cp := s.Point()
		cp.Set(ga)
		ga.SetZero()
		c.Assert(cp.IsZero(), qt.IsFalse)
		c.Assert(ga.IsZero(), qt.IsTrue)
	})
}

func TestPointEncoding(t *testing.T) {
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		p := s.Point()
		p.ScalarBaseMult(big.NewInt(42))
		buf := p.Marshal()
		q := s.Point()
		c.Assert(q.Unmarshal(buf), qt.IsNil)
		c.Assert(q.Equal(p), qt.IsTrue)
		c.Assert(q.Marshal(), qt.DeepEquals, buf)
		c.Assert(q.String(), qt.Equals, p.String())

		// the identity round trips too
		zero := s.Point()
		q = s.Point()
		c.Assert(q.Unmarshal(zero.Marshal()), qt.IsNil)
		c.Assert(q.IsZero(), qt.IsTrue)

		for name, bad := range map[string][]byte{
			"empty":     {},
			"truncated": buf[:len(buf)-1],
			"trailing":  append(append([]byte{}, buf...), 0x01),
		} {
			err := s.Point().Unmarshal(bad)
			c.Assert(errors.Is(err, ecc.ErrDecoding), qt.IsTrue, qt.Commentf("%s", name))
		}
	})
}

func TestCompressedPointSize(t *testing.T) {
	sizes := map[string]int{
		CurveTypeP256:            33,
		CurveTypeSecp256k1:       33,
		CurveTypeBN254:           32,
		CurveTypeBabyJubJubIden3: 32,
	}
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		rng := random.Seeded([]byte("sizes " + s.Type()))
		for range 8 {
			k, err := s.RandomScalar(rng)
			c.Assert(err, qt.IsNil)
			p := s.Point()
			p.ScalarBaseMult(k)
			buf := p.Marshal()
			c.Assert(buf, qt.HasLen, sizes[s.Type()])
			q := s.Point()
			c.Assert(q.Unmarshal(buf), qt.IsNil)
			c.Assert(q.Equal(p), qt.IsTrue)
		}
	})
}

func TestScalars(t *testing.T) {
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		rng := random.Seeded([]byte(s.Type()))
		k, err := s.RandomScalar(rng)
		c.Assert(err, qt.IsNil)
		c.Assert(k.Sign() > 0 && k.Cmp(s.Order()) < 0, qt.IsTrue)

		buf := ecc.MarshalScalar(k, s.ScalarSize())
		c.Assert(buf, qt.HasLen, s.ScalarSize())
		k2, err := ecc.UnmarshalScalar(buf, s.Order(), s.ScalarSize())
		c.Assert(err, qt.IsNil)
		c.Assert(k2, bigEquals, k)

		_, err = ecc.UnmarshalScalar(ecc.MarshalScalar(s.Order(), s.ScalarSize()), s.Order(), s.ScalarSize())
		c.Assert(errors.Is(err, ecc.ErrDecoding), qt.IsTrue)

		h := s.HashToScalar([]byte("domain"), []byte("data"))
		c.Assert(h.Cmp(s.Order()) < 0, qt.IsTrue)
		c.Assert(s.HashToScalar([]byte("domain"), []byte("data")), bigEquals, h)
		c.Assert(s.HashToScalar([]byte("domain"), []byte("other")), qt.Not(bigEquals), h)
	})
}

func TestHashToPoint(t *testing.T) {
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		p, err := s.HashToPoint([]byte("domain"), []byte("data"))
		c.Assert(err, qt.IsNil)
		c.Assert(p.IsZero(), qt.IsFalse)
		g := s.Point()
		g.SetGenerator()
		c.Assert(p.Equal(g), qt.IsFalse)

		// the result is in the prime order group
		id := s.Point()
		id.ScalarMult(p, s.Order())
		c.Assert(id.IsZero(), qt.IsTrue)

		again, err := s.HashToPoint([]byte("domain"), []byte("data"))
		c.Assert(err, qt.IsNil)
		c.Assert(again.Equal(p), qt.IsTrue)
		other, err := s.HashToPoint([]byte("domain"), []byte("other"))
		c.Assert(err, qt.IsNil)
		c.Assert(other.Equal(p), qt.IsFalse)
	})
}

func TestSignatures(t *testing.T) {
	forEachSuite(t, func(c *qt.C, s ecc.Suite) {
		rng := random.Seeded([]byte("keys"))
		key, err := s.GenerateKey(rng)
		c.Assert(err, qt.IsNil)
		msg := []byte("ballot payload")
		sig, err := key.Sign(rng, msg)
		c.Assert(err, qt.IsNil)
		c.Assert(key.Public().Verify(msg, sig), qt.IsTrue)
		c.Assert(key.Public().Verify([]byte("other payload"), sig), qt.IsFalse)

		tampered := append([]byte{}, sig...)
		tampered[len(tampered)/4] ^= 0x01
		c.Assert(key.Public().Verify(msg, tampered), qt.IsFalse)
		c.Assert(key.Public().Verify(msg, sig[:len(sig)-1]), qt.IsFalse)

		other, err := s.GenerateKey(rng)
		c.Assert(err, qt.IsNil)
		c.Assert(other.Public().Verify(msg, sig), qt.IsFalse)

		// keys survive their encodings
		priv, err := s.UnmarshalPrivateKey(key.Marshal())
		c.Assert(err, qt.IsNil)
		c.Assert(priv.Marshal(), qt.DeepEquals, key.Marshal())
		pub, err := s.UnmarshalPublicKey(key.Public().Marshal())
		c.Assert(err, qt.IsNil)
		c.Assert(pub.Point().Equal(key.Public().Point()), qt.IsTrue)
		c.Assert(pub.Verify(msg, sig), qt.IsTrue)
		sig2, err := priv.Sign(rng, msg)
		c.Assert(err, qt.IsNil)
		c.Assert(pub.Verify(msg, sig2), qt.IsTrue)

		_, err = s.UnmarshalPublicKey(s.Point().Marshal())
		c.Assert(err, qt.IsNotNil)
	})
}
