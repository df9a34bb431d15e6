package poseidon

import (
	"crypto/sha256"
	"errors"
	"math/big"
	"slices"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// MultiPoseidon hashes up to 256 field elements. Inputs are hashed in chunks
// of 16 and the chunk hashes are hashed together when there is more than one.
func MultiPoseidon(inputs ...*big.Int) (*big.Int, error) {
	if len(inputs) > 256 {
		return nil, errors.New("too many inputs")
	} else if len(inputs) == 0 {
		return nil, errors.New("no inputs provided")
	}
	hashes := []*big.Int{}
	for chunk := range slices.Chunk(inputs, 16) {
		hash, err := poseidon.Hash(chunk)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	if len(hashes) == 1 {
		return hashes[0], nil
	}
	return poseidon.Hash(hashes)
}

// HashBytes maps an arbitrary message into the BN254 scalar field by hashing
// the two 128 bit halves of its SHA-256 digest with Poseidon.
func HashBytes(msg []byte) (*big.Int, error) {
	digest := sha256.Sum256(msg)
	return MultiPoseidon(
		new(big.Int).SetBytes(digest[:16]),
		new(big.Int).SetBytes(digest[16:]),
	)
}
