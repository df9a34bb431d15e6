package ecc

import (
	"errors"
	"io"
	"math/big"
)

// ErrDecoding is returned when a byte encoding does not represent a valid
// group element, scalar, key or signature.
var ErrDecoding = errors.New("invalid encoding")

// Point defines the common operations that can be performed on elliptic curve
// group elements. Every implementation works on a prime order (sub)group.
type Point interface {
	// New returns a new elliptic curve point set to the identity element.
	New() Point

	// Order returns the order of the elliptic curve group.
	Order() *big.Int

	// Add adds two elliptic curve group elements and stores the result in the receiver.
	Add(a, b Point)

	// Sub subtracts b from a and stores the result in the receiver.
	Sub(a, b Point)

	// ScalarMult multiplies the group element a by the scalar value.
	ScalarMult(a Point, scalar *big.Int)

	// ScalarBaseMult multiplies the generator point by the scalar value.
	ScalarBaseMult(scalar *big.Int)

	// Marshal serializes the elliptic curve element into a byte slice.
	Marshal() []byte

	// Unmarshal deserializes a byte slice into an elliptic curve element.
	// The input buf must represent a valid serialized point of the group,
	// otherwise an error wrapping ErrDecoding is returned.
	Unmarshal(buf []byte) error

	// Equal checks if two elliptic curve elements are equal.
	Equal(a Point) bool

	// IsZero reports whether the element is the identity.
	IsZero() bool

	// Neg negates an elliptic curve element, effectively computing its inverse.
	Neg(a Point)

	// SetZero sets the elliptic curve element to the identity element.
	SetZero()

	// Set sets the value of the receiver to be equal to another elliptic curve element.
	Set(a Point)

	// SetGenerator sets the elliptic curve element to the generator point.
	SetGenerator()

	// String returns the hexadecimal string representation of the element.
	String() string

	// Type returns the curve type identifier.
	Type() string
}

// Suite bundles a prime order group with the scalar, hashing and signature
// primitives the voting protocol needs from it.
type Suite interface {
	// Type returns the curve type identifier, as registered in the curves package.
	Type() string

	// Point returns a new point set to the identity element.
	Point() Point

	// Order returns the prime order of the group.
	Order() *big.Int

	// ScalarSize returns the length in bytes of an encoded scalar.
	ScalarSize() int

	// RandomScalar returns a uniformly distributed scalar in [1, order-1].
	RandomScalar(rng io.Reader) (*big.Int, error)

	// HashToScalar maps the domain separated input into a scalar.
	HashToScalar(domain []byte, data ...[]byte) *big.Int

	// HashToPoint maps the domain separated input into a group element whose
	// discrete logarithm with respect to the generator is unknown.
	HashToPoint(domain []byte, data ...[]byte) (Point, error)

	// GenerateKey creates a new signing keypair.
	GenerateKey(rng io.Reader) (PrivateKey, error)

	// UnmarshalPrivateKey decodes a private key.
	UnmarshalPrivateKey(buf []byte) (PrivateKey, error)

	// UnmarshalPublicKey decodes a public key.
	UnmarshalPublicKey(buf []byte) (PublicKey, error)
}

// PrivateKey is a signing key of a Suite.
type PrivateKey interface {
	Public() PublicKey
	// Sign returns the signature of msg. The rng may be ignored by
	// implementations with deterministic nonces.
	Sign(rng io.Reader, msg []byte) ([]byte, error)
	Marshal() []byte
}

// PublicKey is a verification key of a Suite.
type PublicKey interface {
	// Point returns the key as a group element.
	Point() Point
	Verify(msg, sig []byte) bool
	Marshal() []byte
}
