package dreip

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/vocdoni/dreip/crypto/ecc"
)

var payloadEncMode cbor.EncMode

func init() {
	var err error
	if payloadEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
}

// signedVote and signedBallot are the canonical form of a ballot covered by
// its signature. Vote secrets are never part of it, so auditing a ballot does
// not invalidate the signature.
type signedVote struct {
	Candidate string `cbor:"1,keyasint"`
	R         []byte `cbor:"2,keyasint"`
	Z         []byte `cbor:"3,keyasint"`
	Proof     []byte `cbor:"4,keyasint"`
}

type signedBallot struct {
	Domain   string       `cbor:"1,keyasint"`
	Curve    string       `cbor:"2,keyasint"`
	Context  []byte       `cbor:"3,keyasint"`
	BallotID string       `cbor:"4,keyasint"`
	Votes    []signedVote `cbor:"5,keyasint"`
	ProofA   []byte       `cbor:"6,keyasint"`
	ProofB   []byte       `cbor:"7,keyasint"`
	ProofS   []byte       `cbor:"8,keyasint"`
}

// signingPayload returns the deterministic CBOR encoding of the public
// content of b, with votes sorted by candidate.
func signingPayload(p *Params, ballotID string, b *Ballot) ([]byte, error) {
	if err := b.wellFormed(p); err != nil {
		return nil, err
	}
	size := p.suite.ScalarSize()
	sb := signedBallot{
		Domain:   signatureDomain,
		Curve:    p.Curve(),
		Context:  p.Context,
		BallotID: ballotID,
		Votes:    make([]signedVote, 0, len(b.Votes)),
		ProofA:   b.Proof.A.Marshal(),
		ProofB:   b.Proof.B.Marshal(),
		ProofS:   ecc.MarshalScalar(b.Proof.S, size),
	}
	for _, c := range b.Candidates() {
		v := b.Votes[c]
		proof := make([]byte, 0, 4*size)
		for _, k := range []*big.Int{v.Proof.C0, v.Proof.C1, v.Proof.S0, v.Proof.S1} {
			proof = append(proof, ecc.MarshalScalar(k, size)...)
		}
		sb.Votes = append(sb.Votes, signedVote{
			Candidate: c,
			R:         v.R.Marshal(),
			Z:         v.Z.Marshal(),
			Proof:     proof,
		})
	}
	msg, err := payloadEncMode.Marshal(sb)
	if err != nil {
		return nil, fmt.Errorf("cannot encode ballot %s: %w", ballotID, err)
	}
	return msg, nil
}

// wellFormed checks that every value of the ballot is present, belongs to
// the election curve and, for scalars, is reduced.
func (b *Ballot) wellFormed(p *Params) error {
	if b == nil || len(b.Votes) == 0 {
		return errors.New("ballot has no votes")
	}
	curve, order := p.Curve(), p.suite.Order()
	points := func(ps ...ecc.Point) error {
		for _, pt := range ps {
			if pt == nil || pt.Type() != curve {
				return errors.New("missing or foreign point")
			}
		}
		return nil
	}
	scalars := func(ks ...*big.Int) error {
		for _, k := range ks {
			if !inRange(k, order) {
				return errors.New("missing or unreduced scalar")
			}
		}
		return nil
	}
	if b.Proof == nil {
		return errors.New("ballot has no proof")
	}
	if err := points(b.Proof.A, b.Proof.B); err != nil {
		return fmt.Errorf("ballot proof: %w", err)
	}
	if err := scalars(b.Proof.S); err != nil {
		return fmt.Errorf("ballot proof: %w", err)
	}
	for c, v := range b.Votes {
		if v == nil || v.Proof == nil {
			return fmt.Errorf("vote %q: missing values", c)
		}
		if err := points(v.R, v.Z); err != nil {
			return fmt.Errorf("vote %q: %w", c, err)
		}
		if err := scalars(v.Proof.C0, v.Proof.C1, v.Proof.S0, v.Proof.S1); err != nil {
			return fmt.Errorf("vote %q: %w", c, err)
		}
	}
	return nil
}
