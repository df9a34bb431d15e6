package dreip

import (
	"math/big"

	"github.com/vocdoni/dreip/crypto/ecc"
)

// Totals is the published tally of a candidate together with the sum of the
// vote randomness of the confirmed ballots.
type Totals struct {
	Tally   *big.Int
	RandSum *big.Int
}

// Add accumulates a vote into the totals.
func (t *Totals) Add(order *big.Int, s VoteSecrets) {
	if t.Tally == nil {
		t.Tally = new(big.Int)
	}
	if t.RandSum == nil {
		t.RandSum = new(big.Int)
	}
	t.Tally = ecc.ModAdd(order, t.Tally, s.Value())
	t.RandSum = ecc.ModAdd(order, t.RandSum, s.Rand)
}

// Results are the published outcome of an election: its public values,
// every audited and confirmed ballot keyed by ballot id, and the totals of
// every candidate.
type Results struct {
	Params    *Params
	Audited   map[string]*AuditedBallot
	Confirmed map[string]*Ballot
	Totals    map[string]*Totals
}

// Verify reports whether the results are valid.
func (r *Results) Verify() bool {
	return r.Inspect().Valid()
}

// Inspect verifies the election parameters and every ballot, checks that
// confirmed ballots only vote for registered candidates, and that the totals
// of every candidate match the sums of the confirmed votes. It stops at the
// first failure.
func (r *Results) Inspect() Report {
	p := r.Params
	if p == nil || p.Check() != nil {
		return Report{Stage: StageParams}
	}
	for _, id := range sortedKeys(r.Audited) {
		if _, ok := r.Confirmed[id]; ok {
			return Report{Stage: StageDuplicateBallot, BallotID: id}
		}
		if report := r.Audited[id].Inspect(p, id); !report.Valid() {
			return report
		}
	}

	zSums := make(map[string]ecc.Point)
	rSums := make(map[string]ecc.Point)
	for _, id := range sortedKeys(r.Confirmed) {
		b := r.Confirmed[id]
		if report := b.Inspect(p, id); !report.Valid() {
			return report
		}
		for _, c := range b.Candidates() {
			if !p.HasCandidate(c) {
				return Report{Stage: StageCandidates, BallotID: id, Candidate: c}
			}
			v := b.Votes[c]
			if _, ok := zSums[c]; !ok {
				zSums[c], rSums[c] = p.suite.Point(), p.suite.Point()
			}
			zSums[c].Add(zSums[c], v.Z)
			rSums[c].Add(rSums[c], v.R)
		}
	}

	if len(zSums) != len(r.Totals) {
		return Report{Stage: StageCandidates}
	}
	for c := range zSums {
		if _, ok := r.Totals[c]; !ok {
			return Report{Stage: StageCandidates, Candidate: c}
		}
	}
	order := p.suite.Order()
	for _, c := range sortedKeys(r.Totals) {
		t := r.Totals[c]
		if t == nil || !inRange(t.Tally, order) || !inRange(t.RandSum, order) {
			return Report{Stage: StageTally, Candidate: c}
		}
		z, rr := p.suite.Point(), p.suite.Point()
		z.ScalarMult(p.G1, ecc.ModAdd(order, t.Tally, t.RandSum))
		rr.ScalarMult(p.G2, t.RandSum)
		if !z.Equal(zSums[c]) || !rr.Equal(rSums[c]) {
			return Report{Stage: StageTally, Candidate: c}
		}
	}
	return Report{}
}
