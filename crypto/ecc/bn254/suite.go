package bn254

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/ecdsa"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vocdoni/dreip/crypto/ecc"
)

// scalarSize is the byte length of fr elements.
const scalarSize = fr.Bytes

// hashInputSize is the length of the transcript output fed into the RFC 9380
// hash functions of gnark-crypto.
const hashInputSize = 64

// Suite is the BN254 G1 implementation of ecc.Suite.
type Suite struct{}

func (Suite) Type() string     { return CurveType }
func (Suite) Point() ecc.Point { return New() }
func (Suite) Order() *big.Int  { return fr.Modulus() }
func (Suite) ScalarSize() int  { return scalarSize }

func (Suite) RandomScalar(rng io.Reader) (*big.Int, error) {
	return ecc.RandomScalar(rng, fr.Modulus())
}

// HashToScalar frames the input with the transcript and maps it into fr
// with hash_to_field.
func (Suite) HashToScalar(domain []byte, data ...[]byte) *big.Int {
	msg := ecc.HashToBytes(domain, hashInputSize, data...)
	elems, err := fr.Hash(msg, domain, 1)
	if err != nil {
		// fr.Hash only fails on oversized domain tags
		panic(err)
	}
	return elems[0].BigInt(new(big.Int))
}

// HashToPoint maps the framed input into G1 with the SSWU hash_to_curve
// construction.
func (Suite) HashToPoint(domain []byte, data ...[]byte) (ecc.Point, error) {
	msg := ecc.HashToBytes(domain, hashInputSize, data...)
	p, err := bn254.HashToG1(msg, domain)
	if err != nil {
		return nil, fmt.Errorf("cannot hash to G1: %w", err)
	}
	return &G1{inner: &p}, nil
}

func (s Suite) GenerateKey(rng io.Reader) (ecc.PrivateKey, error) {
	d, err := s.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(d)
}

func (Suite) UnmarshalPrivateKey(buf []byte) (ecc.PrivateKey, error) {
	d, err := ecc.UnmarshalScalar(buf, fr.Modulus(), scalarSize)
	if err != nil {
		return nil, err
	}
	if d.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero private key", ecc.ErrDecoding)
	}
	return newPrivateKey(d)
}

func (Suite) UnmarshalPublicKey(buf []byte) (ecc.PublicKey, error) {
	p := New()
	if err := p.Unmarshal(buf); err != nil {
		return nil, err
	}
	if p.IsZero() {
		return nil, fmt.Errorf("%w: public key is the point at infinity", ecc.ErrDecoding)
	}
	key := new(ecdsa.PublicKey)
	key.A = *p.(*G1).inner
	return &PublicKey{key: key}, nil
}

// PrivateKey is an ECDSA signing key over BN254 G1.
type PrivateKey struct {
	key    *ecdsa.PrivateKey
	scalar *big.Int
}

func newPrivateKey(d *big.Int) (*PrivateKey, error) {
	pub := New()
	pub.ScalarBaseMult(d)
	// gnark-crypto keys are serialized as the public key followed by the scalar
	buf := append(pub.Marshal(), ecc.MarshalScalar(d, scalarSize)...)
	key := new(ecdsa.PrivateKey)
	if _, err := key.SetBytes(buf); err != nil {
		return nil, fmt.Errorf("cannot build private key: %w", err)
	}
	return &PrivateKey{key: key, scalar: d}, nil
}

func (k *PrivateKey) Public() ecc.PublicKey {
	pub := k.key.PublicKey
	return &PublicKey{key: &pub}
}

// Sign returns the gnark-crypto ECDSA signature of msg hashed with SHA-256.
// gnark-crypto draws its own nonce entropy, so the rng is not used.
func (k *PrivateKey) Sign(_ io.Reader, msg []byte) ([]byte, error) {
	sig, err := k.key.Sign(msg, sha256.New())
	if err != nil {
		return nil, fmt.Errorf("cannot sign: %w", err)
	}
	return sig, nil
}

func (k *PrivateKey) Marshal() []byte {
	return ecc.MarshalScalar(k.scalar, scalarSize)
}

// PublicKey is an ECDSA verification key over BN254 G1.
type PublicKey struct {
	key *ecdsa.PublicKey
}

func (k *PublicKey) Point() ecc.Point {
	p := k.key.A
	return &G1{inner: &p}
}

func (k *PublicKey) Verify(msg, sig []byte) bool {
	ok, err := k.key.Verify(sig, msg, sha256.New())
	return err == nil && ok
}

func (k *PublicKey) Marshal() []byte {
	return k.Point().Marshal()
}
