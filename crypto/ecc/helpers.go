package ecc

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/vocdoni/dreip/crypto/transcript"
)

// maxHashToPointAttempts bounds the try-and-increment loop of HashToPoint
// implementations. Each attempt succeeds with probability close to 1/2.
const maxHashToPointAttempts = 256

// BigToFF function returns the finite field representation of the big.Int
// provided. It uses the curve scalar field to represent the provided number.
func BigToFF(baseField, iv *big.Int) *big.Int {
	z := big.NewInt(0)
	if c := iv.Cmp(baseField); c == 0 {
		return z
	} else if c != 1 && iv.Cmp(z) != -1 {
		return iv
	}
	return z.Mod(iv, baseField)
}

// ModAdd returns (a + b) mod order.
func ModAdd(order, a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, order)
}

// ModSub returns (a - b) mod order.
func ModSub(order, a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, order)
}

// ModMul returns (a * b) mod order.
func ModMul(order, a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, order)
}

// ModNeg returns -a mod order.
func ModNeg(order, a *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, order)
}

// ModInverse returns a^-1 mod order. Zero has no inverse.
func ModInverse(order, a *big.Int) (*big.Int, error) {
	if BigToFF(order, a).Sign() == 0 {
		return nil, errors.New("zero has no inverse")
	}
	return new(big.Int).ModInverse(a, order), nil
}

// RandomScalar returns a uniformly distributed scalar in [1, order-1] read
// from rng by rejection sampling.
func RandomScalar(rng io.Reader, order *big.Int) (*big.Int, error) {
	size := (order.BitLen() + 7) / 8
	excess := uint(size*8 - order.BitLen())
	buf := make([]byte, size)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("cannot read randomness: %w", err)
		}
		buf[0] &= 0xff >> excess
		k := new(big.Int).SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(order) < 0 {
			return k, nil
		}
	}
}

// MarshalScalar encodes k as a fixed width big endian byte slice.
func MarshalScalar(k *big.Int, size int) []byte {
	return k.FillBytes(make([]byte, size))
}

// UnmarshalScalar decodes a fixed width big endian scalar, rejecting
// encodings of the wrong length or not reduced modulo order.
func UnmarshalScalar(buf []byte, order *big.Int, size int) (*big.Int, error) {
	if len(buf) != size {
		return nil, fmt.Errorf("%w: scalar of %d bytes, expected %d", ErrDecoding, len(buf), size)
	}
	k := new(big.Int).SetBytes(buf)
	if k.Cmp(order) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", ErrDecoding)
	}
	return k, nil
}

// HashToBytes derives size bytes from the domain separated input.
func HashToBytes(domain []byte, size int, data ...[]byte) []byte {
	t := transcript.New(domain)
	t.AppendAll([]byte("data"), data...)
	return t.Challenge([]byte("output"), size)
}

// HashToInt maps the domain separated input into [0, order-1]. It draws 16
// extra bytes before reducing so the result is statistically uniform.
func HashToInt(domain []byte, order *big.Int, data ...[]byte) *big.Int {
	size := (order.BitLen()+7)/8 + 16
	k := new(big.Int).SetBytes(HashToBytes(domain, size, data...))
	return k.Mod(k, order)
}

// TryAndIncrement derives candidate encodings of size bytes from the domain
// separated input and an attempt counter, and returns the first one accepted
// by decode that is not the identity.
func TryAndIncrement(domain []byte, size int, decode func([]byte) (Point, error), data ...[]byte) (Point, error) {
	base := transcript.New(domain)
	base.AppendAll([]byte("data"), data...)
	for i := 0; i < maxHashToPointAttempts; i++ {
		t := base.Clone()
		t.Append([]byte("counter"), []byte{byte(i)})
		p, err := decode(t.Challenge([]byte("output"), size))
		if err == nil && !p.IsZero() {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no point found after %d attempts", maxHashToPointAttempts)
}
