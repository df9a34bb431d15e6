package util

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// RandomBytes reads n bytes from rng.
func RandomBytes(rng io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rng, b); err != nil {
		return nil, fmt.Errorf("cannot read random bytes: %w", err)
	}
	return b, nil
}

// RandomHex returns n random bytes from rng as a hex string.
func RandomHex(rng io.Reader, n int) (string, error) {
	b, err := RandomBytes(rng, n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}

// RandomInt returns a uniform integer in [min, max) drawn from rng.
func RandomInt(rng io.Reader, min, max int) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("empty range [%d, %d)", min, max)
	}
	bound := big.NewInt(int64(max - min))
	// rejection sampling over the smallest byte length that covers bound
	size := (bound.BitLen() + 7) / 8
	limit := new(big.Int).Lsh(big.NewInt(1), uint(size*8))
	limit.Sub(limit, new(big.Int).Mod(limit, bound))
	for {
		b, err := RandomBytes(rng, size)
		if err != nil {
			return 0, err
		}
		n := new(big.Int).SetBytes(b)
		if n.Cmp(limit) < 0 {
			return int(n.Mod(n, bound).Int64()) + min, nil
		}
	}
}

// Env returns the value of the environment variable key, or def if it is
// unset or empty.
func Env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
