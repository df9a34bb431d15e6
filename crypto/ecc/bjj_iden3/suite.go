package bjj

import (
	"fmt"
	"io"
	"math/big"

	babyjubjub "github.com/iden3/go-iden3-crypto/babyjub"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/hash/poseidon"
)

// cofactor of the BabyJubJub curve.
var cofactor = big.NewInt(8)

// Suite is the BabyJubJub implementation of ecc.Suite. Signatures are
// EdDSA over Poseidon, as used by iden3 circuits.
type Suite struct{}

func (Suite) Type() string     { return CurveType }
func (Suite) Point() ecc.Point { return New() }
func (Suite) Order() *big.Int  { return babyjubjub.SubOrder }
func (Suite) ScalarSize() int  { return encodingSize }

func (Suite) RandomScalar(rng io.Reader) (*big.Int, error) {
	return ecc.RandomScalar(rng, babyjubjub.SubOrder)
}

func (Suite) HashToScalar(domain []byte, data ...[]byte) *big.Int {
	return ecc.HashToInt(domain, babyjubjub.SubOrder, data...)
}

// HashToPoint decompresses the hash output as a curve point, retrying with
// an incremented counter until it succeeds, and clears the cofactor.
func (Suite) HashToPoint(domain []byte, data ...[]byte) (ecc.Point, error) {
	return ecc.TryAndIncrement(domain, encodingSize, func(buf []byte) (ecc.Point, error) {
		b32 := [encodingSize]byte{}
		copy(b32[:], buf)
		p, err := babyjubjub.NewPoint().Decompress(b32)
		if err != nil {
			return nil, err
		}
		return &BJJ{inner: babyjubjub.NewPoint().Mul(cofactor, p)}, nil
	}, data...)
}

func (Suite) GenerateKey(rng io.Reader) (ecc.PrivateKey, error) {
	var k babyjubjub.PrivateKey
	if _, err := io.ReadFull(rng, k[:]); err != nil {
		return nil, fmt.Errorf("cannot read randomness: %w", err)
	}
	return &PrivateKey{key: k}, nil
}

// UnmarshalPrivateKey decodes the 32 byte EdDSA seed the signing scalar is
// derived from.
func (Suite) UnmarshalPrivateKey(buf []byte) (ecc.PrivateKey, error) {
	var k babyjubjub.PrivateKey
	if len(buf) != len(k) {
		return nil, fmt.Errorf("%w: private key of %d bytes, expected %d", ecc.ErrDecoding, len(buf), len(k))
	}
	copy(k[:], buf)
	return &PrivateKey{key: k}, nil
}

func (Suite) UnmarshalPublicKey(buf []byte) (ecc.PublicKey, error) {
	p := New()
	if err := p.Unmarshal(buf); err != nil {
		return nil, err
	}
	if p.IsZero() {
		return nil, fmt.Errorf("%w: public key is the identity", ecc.ErrDecoding)
	}
	return &PublicKey{key: (*babyjubjub.PublicKey)(p.(*BJJ).inner)}, nil
}

// PrivateKey is an EdDSA-Poseidon signing key.
type PrivateKey struct {
	key babyjubjub.PrivateKey
}

func (k *PrivateKey) Public() ecc.PublicKey {
	return &PublicKey{key: k.key.Public()}
}

// Sign returns the 64 byte compressed EdDSA-Poseidon signature of msg.
// Nonces are deterministic, so the rng is not used.
func (k *PrivateKey) Sign(_ io.Reader, msg []byte) ([]byte, error) {
	m, err := poseidon.HashBytes(msg)
	if err != nil {
		return nil, fmt.Errorf("cannot hash message: %w", err)
	}
	sig := k.key.SignPoseidon(m).Compress()
	return sig[:], nil
}

func (k *PrivateKey) Marshal() []byte {
	return append([]byte{}, k.key[:]...)
}

// PublicKey is an EdDSA-Poseidon verification key.
type PublicKey struct {
	key *babyjubjub.PublicKey
}

func (k *PublicKey) Point() ecc.Point {
	p := New()
	p.Set(&BJJ{inner: k.key.Point()})
	return p
}

func (k *PublicKey) Verify(msg, sig []byte) bool {
	var comp babyjubjub.SignatureComp
	if len(sig) != len(comp) {
		return false
	}
	copy(comp[:], sig)
	s, err := comp.Decompress()
	if err != nil {
		return false
	}
	m, err := poseidon.HashBytes(msg)
	if err != nil {
		return false
	}
	return k.key.VerifyPoseidon(m, s)
}

func (k *PublicKey) Marshal() []byte {
	return k.Point().Marshal()
}
