package dreip

import (
	"io"
	"math/big"
	"sort"

	"github.com/vocdoni/dreip/crypto/ecc"
)

// VoteProof is a disjunctive Chaum-Pedersen proof that a vote (Z, R) encodes
// either 0 or 1. Branch 0 proves Z = G1·r and branch 1 proves Z-G1 = G1·r,
// both together with R = G2·r. One branch is real and the other simulated;
// the branch challenges C0 and C1 must add up to the Fiat-Shamir challenge.
type VoteProof struct {
	C0, C1 *big.Int
	S0, S1 *big.Int
}

func proveVote(rng io.Reader, p *Params, ballotID, candidate string, s *VoteSecrets, Z, R ecc.Point) (*VoteProof, error) {
	order := p.suite.Order()
	// statements of the two branches
	ys := [2]ecc.Point{Z, p.suite.Point()}
	ys[1].Sub(Z, p.G1)

	honest, fake := 0, 1
	if s.Yes {
		honest, fake = 1, 0
	}
	var (
		as, bs [2]ecc.Point
		cs, ss [2]*big.Int
		err    error
	)
	// simulate the false branch with random challenge and response
	if cs[fake], err = p.suite.RandomScalar(rng); err != nil {
		return nil, err
	}
	if ss[fake], err = p.suite.RandomScalar(rng); err != nil {
		return nil, err
	}
	as[fake], bs[fake] = commitments(p, ys[fake], R, cs[fake], ss[fake])

	// commit honestly to the real branch
	w, err := p.suite.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	as[honest] = p.suite.Point()
	as[honest].ScalarMult(p.G1, w)
	bs[honest] = p.suite.Point()
	bs[honest].ScalarMult(p.G2, w)

	c := voteChallenge(p, ballotID, candidate, Z, R, as, bs)
	cs[honest] = ecc.ModSub(order, c, cs[fake])
	ss[honest] = ecc.ModSub(order, w, ecc.ModMul(order, s.Rand, cs[honest]))

	return &VoteProof{C0: cs[0], C1: cs[1], S0: ss[0], S1: ss[1]}, nil
}

// Verify reports whether the proof shows that (Z, R) encodes 0 or 1 for the
// given ballot and candidate.
func (vp *VoteProof) Verify(p *Params, ballotID, candidate string, Z, R ecc.Point) bool {
	if vp == nil || Z == nil || R == nil {
		return false
	}
	order := p.suite.Order()
	for _, k := range []*big.Int{vp.C0, vp.C1, vp.S0, vp.S1} {
		if !inRange(k, order) {
			return false
		}
	}
	y1 := p.suite.Point()
	y1.Sub(Z, p.G1)
	var as, bs [2]ecc.Point
	as[0], bs[0] = commitments(p, Z, R, vp.C0, vp.S0)
	as[1], bs[1] = commitments(p, y1, R, vp.C1, vp.S1)
	c := voteChallenge(p, ballotID, candidate, Z, R, as, bs)
	return ecc.ModAdd(order, vp.C0, vp.C1).Cmp(c) == 0
}

// commitments recomputes the prover commitments G1·s + Y·c and G2·s + R·c
// of a branch proving Y = G1·r and R = G2·r.
func commitments(p *Params, Y, R ecc.Point, c, s *big.Int) (ecc.Point, ecc.Point) {
	a, t := p.suite.Point(), p.suite.Point()
	a.ScalarMult(p.G1, s)
	t.ScalarMult(Y, c)
	a.Add(a, t)

	b := p.suite.Point()
	b.ScalarMult(p.G2, s)
	t.ScalarMult(R, c)
	b.Add(b, t)
	return a, b
}

func voteChallenge(p *Params, ballotID, candidate string, Z, R ecc.Point, as, bs [2]ecc.Point) *big.Int {
	return p.suite.HashToScalar(voteProofDomain,
		p.Context,
		p.G1.Marshal(), p.G2.Marshal(),
		Z.Marshal(), R.Marshal(),
		as[0].Marshal(), bs[0].Marshal(),
		as[1].Marshal(), bs[1].Marshal(),
		[]byte(ballotID), []byte(candidate),
	)
}

// BallotProof proves knowledge of ρ with ΣZ-G1 = G1·ρ and ΣR = G2·ρ over
// the votes of a ballot, which only holds when exactly one vote is a yes.
type BallotProof struct {
	A, B ecc.Point
	S    *big.Int
}

func proveBallot(rng io.Reader, p *Params, ballotID string, votes map[string]*Vote, rSum *big.Int) (*BallotProof, error) {
	order := p.suite.Order()
	w, err := p.suite.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	A := p.suite.Point()
	A.ScalarMult(p.G1, w)
	B := p.suite.Point()
	B.ScalarMult(p.G2, w)
	c := ballotChallenge(p, ballotID, votes, A, B)
	return &BallotProof{A: A, B: B, S: ecc.ModAdd(order, w, ecc.ModMul(order, c, rSum))}, nil
}

// Verify reports whether the proof holds for the votes of the given ballot.
func (bp *BallotProof) Verify(p *Params, ballotID string, votes map[string]*Vote) bool {
	if bp == nil || bp.A == nil || bp.B == nil || !inRange(bp.S, p.suite.Order()) {
		return false
	}
	zSum, rSum := p.suite.Point(), p.suite.Point()
	for _, v := range votes {
		if v == nil || v.Z == nil || v.R == nil {
			return false
		}
		zSum.Add(zSum, v.Z)
		rSum.Add(rSum, v.R)
	}
	zSum.Sub(zSum, p.G1)
	c := ballotChallenge(p, ballotID, votes, bp.A, bp.B)

	lhs, rhs := p.suite.Point(), p.suite.Point()
	lhs.ScalarMult(p.G1, bp.S)
	rhs.ScalarMult(zSum, c)
	rhs.Add(rhs, bp.A)
	if !lhs.Equal(rhs) {
		return false
	}
	lhs.ScalarMult(p.G2, bp.S)
	rhs.ScalarMult(rSum, c)
	rhs.Add(rhs, bp.B)
	return lhs.Equal(rhs)
}

// ballotChallenge binds the proof commitments to every vote of the ballot,
// taken in candidate order.
func ballotChallenge(p *Params, ballotID string, votes map[string]*Vote, A, B ecc.Point) *big.Int {
	data := [][]byte{
		p.Context,
		p.G1.Marshal(), p.G2.Marshal(),
		A.Marshal(), B.Marshal(),
		[]byte(ballotID),
	}
	for _, c := range sortedKeys(votes) {
		data = append(data, []byte(c), votes[c].Z.Marshal(), votes[c].R.Marshal())
	}
	return p.suite.HashToScalar(ballotProofDomain, data...)
}

func randSum(suite ecc.Suite, secrets map[string]*VoteSecrets) *big.Int {
	sum := new(big.Int)
	for _, s := range secrets {
		sum = ecc.ModAdd(suite.Order(), sum, s.Rand)
	}
	return sum
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func inRange(k, order *big.Int) bool {
	return k != nil && k.Sign() >= 0 && k.Cmp(order) < 0
}
