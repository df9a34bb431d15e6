// Package random provides the randomness sources elections draw from.
package random

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// New returns the operating system's cryptographically secure source. It is
// safe for concurrent use.
func New() io.Reader {
	return rand.Reader
}

// Reader is a deterministic stream of pseudorandom bytes. It is not safe for
// concurrent use.
type Reader struct {
	cipher *chacha20.Cipher
}

// Seeded returns a Reader whose output is the ChaCha20 key stream keyed by
// the BLAKE2b-256 hash of seed. Equal seeds produce equal streams.
func Seeded(seed []byte) *Reader {
	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &Reader{cipher: c}
}

// Read fills p with the next bytes of the key stream. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
