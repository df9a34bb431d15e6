package p256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/random"
)

// Suite is the P-256 implementation of ecc.Suite.
type Suite struct{}

func (Suite) Type() string     { return CurveType }
func (Suite) Point() ecc.Point { return New() }
func (Suite) Order() *big.Int  { return order }
func (Suite) ScalarSize() int  { return scalarSize }
func (Suite) String() string   { return CurveType }

func (Suite) RandomScalar(rng io.Reader) (*big.Int, error) {
	return ecc.RandomScalar(rng, order)
}

func (Suite) HashToScalar(domain []byte, data ...[]byte) *big.Int {
	return ecc.HashToInt(domain, order, data...)
}

// HashToPoint interprets the hash output as the x coordinate of a
// compressed point, retrying with an incremented counter until it lies on
// the curve.
func (Suite) HashToPoint(domain []byte, data ...[]byte) (ecc.Point, error) {
	return ecc.TryAndIncrement(domain, 1+scalarSize, func(buf []byte) (ecc.Point, error) {
		buf[0] = 0x02 | buf[0]&1
		p := New()
		if err := p.Unmarshal(buf); err != nil {
			return nil, err
		}
		return p, nil
	}, data...)
}

func (s Suite) GenerateKey(rng io.Reader) (ecc.PrivateKey, error) {
	d, err := s.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(d), nil
}

func (Suite) UnmarshalPrivateKey(buf []byte) (ecc.PrivateKey, error) {
	d, err := ecc.UnmarshalScalar(buf, order, scalarSize)
	if err != nil {
		return nil, err
	}
	if d.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero private key", ecc.ErrDecoding)
	}
	return newPrivateKey(d), nil
}

func (Suite) UnmarshalPublicKey(buf []byte) (ecc.PublicKey, error) {
	p := New()
	if err := p.Unmarshal(buf); err != nil {
		return nil, err
	}
	return newPublicKey(p.(*G1))
}

// PrivateKey is an ECDSA P-256 signing key.
type PrivateKey struct {
	key    *ecdsa.PrivateKey
	public *PublicKey
}

func newPrivateKey(d *big.Int) *PrivateKey {
	p := New().(*G1)
	p.ScalarBaseMult(d)
	x, y := p.coordinates()
	return &PrivateKey{
		key: &ecdsa.PrivateKey{
			PublicKey: ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y},
			D:         d,
		},
		public: &PublicKey{point: p, key: &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}},
	}
}

func (k *PrivateKey) Public() ecc.PublicKey {
	return k.public
}

// Sign returns the ECDSA signature of the SHA-256 digest of msg, encoded as
// r || s with fixed width scalars. crypto/ecdsa reads a variable number of
// bytes from its entropy source, so nonces come from the system source and
// the rng is not used.
func (k *PrivateKey) Sign(_ io.Reader, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	r, s, err := ecdsa.Sign(random.New(), k.key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("cannot sign: %w", err)
	}
	return append(ecc.MarshalScalar(r, scalarSize), ecc.MarshalScalar(s, scalarSize)...), nil
}

func (k *PrivateKey) Marshal() []byte {
	return ecc.MarshalScalar(k.key.D, scalarSize)
}

// PublicKey is an ECDSA P-256 verification key.
type PublicKey struct {
	point *G1
	key   *ecdsa.PublicKey
}

func newPublicKey(p *G1) (*PublicKey, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: public key is the point at infinity", ecc.ErrDecoding)
	}
	x, y := p.coordinates()
	return &PublicKey{point: p, key: &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}}, nil
}

func (k *PublicKey) Point() ecc.Point {
	p := New()
	p.Set(k.point)
	return p
}

func (k *PublicKey) Verify(msg, sig []byte) bool {
	if len(sig) != 2*scalarSize {
		return false
	}
	r := new(big.Int).SetBytes(sig[:scalarSize])
	s := new(big.Int).SetBytes(sig[scalarSize:])
	digest := sha256.Sum256(msg)
	return ecdsa.Verify(k.key, digest[:], r, s)
}

func (k *PublicKey) Marshal() []byte {
	return k.point.Marshal()
}
