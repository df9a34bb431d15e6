package dreip

import (
	"io"
	"math/big"

	"github.com/vocdoni/dreip/crypto/ecc"
)

// VoteSecrets are the secret values behind a vote. They are disclosed only
// when a ballot is audited.
type VoteSecrets struct {
	Rand *big.Int
	Yes  bool
}

func newVoteSecrets(rng io.Reader, suite ecc.Suite, yes bool) (*VoteSecrets, error) {
	r, err := suite.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return &VoteSecrets{Rand: r, Yes: yes}, nil
}

// Value returns the vote as a scalar, 1 for yes and 0 for no.
func (s *VoteSecrets) Value() *big.Int {
	if s.Yes {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// Vote is the public part of a yes or no vote for one candidate.
type Vote struct {
	R     ecc.Point
	Z     ecc.Point
	Proof *VoteProof
}

func newVote(rng io.Reader, p *Params, ballotID, candidate string, s *VoteSecrets) (*Vote, error) {
	order := p.suite.Order()
	R := p.suite.Point()
	R.ScalarMult(p.G2, s.Rand)
	Z := p.suite.Point()
	Z.ScalarMult(p.G1, ecc.ModAdd(order, s.Rand, s.Value()))
	proof, err := proveVote(rng, p, ballotID, candidate, s, Z, R)
	if err != nil {
		return nil, err
	}
	return &Vote{R: R, Z: Z, Proof: proof}, nil
}

// Verify reports whether the vote proof holds for the given ballot and
// candidate.
func (v *Vote) Verify(p *Params, ballotID, candidate string) bool {
	return v.Proof.Verify(p, ballotID, candidate, v.Z, v.R)
}

// matches reports whether the vote commits to the given secrets.
func (v *Vote) matches(p *Params, s *VoteSecrets) bool {
	R := p.suite.Point()
	R.ScalarMult(p.G2, s.Rand)
	Z := p.suite.Point()
	Z.ScalarMult(p.G1, ecc.ModAdd(p.suite.Order(), s.Rand, s.Value()))
	return R.Equal(v.R) && Z.Equal(v.Z)
}
