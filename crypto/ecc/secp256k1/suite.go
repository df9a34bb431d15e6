package secp256k1

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/vocdoni/dreip/crypto/ecc"
)

// Suite is the secp256k1 implementation of ecc.Suite.
type Suite struct{}

func (Suite) Type() string     { return CurveType }
func (Suite) Point() ecc.Point { return New() }
func (Suite) Order() *big.Int  { return secp256k1.Params().N }
func (Suite) ScalarSize() int  { return scalarSize }

func (Suite) RandomScalar(rng io.Reader) (*big.Int, error) {
	return ecc.RandomScalar(rng, secp256k1.Params().N)
}

func (Suite) HashToScalar(domain []byte, data ...[]byte) *big.Int {
	return ecc.HashToInt(domain, secp256k1.Params().N, data...)
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
	return &PrivateKey{key: secp256k1.PrivKeyFromBytes(ecc.MarshalScalar(d, scalarSize))}, nil
}

func (Suite) UnmarshalPrivateKey(buf []byte) (ecc.PrivateKey, error) {
	d, err := ecc.UnmarshalScalar(buf, secp256k1.Params().N, scalarSize)
	if err != nil {
		return nil, err
	}
	if d.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero private key", ecc.ErrDecoding)
	}
	return &PrivateKey{key: secp256k1.PrivKeyFromBytes(buf)}, nil
}

func (Suite) UnmarshalPublicKey(buf []byte) (ecc.PublicKey, error) {
	pk, err := secp256k1.ParsePubKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ecc.ErrDecoding, err)
	}
	return &PublicKey{key: pk}, nil
}

// PrivateKey is an ECDSA secp256k1 signing key. Nonces are derived with
// RFC 6979, so signing ignores the rng.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

func (k *PrivateKey) Public() ecc.PublicKey {
	return &PublicKey{key: k.key.PubKey()}
}

// Sign returns the ECDSA signature of the SHA-256 digest of msg, encoded as
// r || s with fixed width scalars.
func (k *PrivateKey) Sign(_ io.Reader, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	sig := ecdsa.Sign(k.key, digest[:])
	r, s := sig.R(), sig.S()
	rb, sb := r.Bytes(), s.Bytes()
	return append(rb[:], sb[:]...), nil
}

func (k *PrivateKey) Marshal() []byte {
	return k.key.Serialize()
}

// PublicKey is an ECDSA secp256k1 verification key.
type PublicKey struct {
	key *secp256k1.PublicKey
}

func (k *PublicKey) Point() ecc.Point {
	p := &G1{}
	k.key.AsJacobian(&p.inner)
	return p
}

func (k *PublicKey) Verify(msg, sig []byte) bool {
	if len(sig) != 2*scalarSize {
		return false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:scalarSize]) || s.SetByteSlice(sig[scalarSize:]) {
		return false
	}
	if r.IsZero() || s.IsZero() {
		return false
	}
	digest := sha256.Sum256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], k.key)
}

func (k *PublicKey) Marshal() []byte {
	return k.key.SerializeCompressed()
}
