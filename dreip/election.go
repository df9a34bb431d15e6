// Package dreip implements the cryptographic core of the DRE-ip voting
// protocol: elections, ballots carrying one commitment per candidate, the
// zero knowledge proofs that every commitment encodes 0 or 1 and that each
// ballot encodes exactly one yes, and their verification.
//
// For a vote v ∈ {0,1} with secret randomness r the ballot publishes
//
//	R = G2·r
//	Z = G1·(r+v)
//
// Summing Z and R over the confirmed ballots lets anyone check a published
// tally t and randomness sum ρ of a candidate: ΣZ = G1·(t+ρ) and ΣR = G2·ρ.
package dreip

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/log"
)

// ContextSize is the length in bytes of an election context.
const ContextSize = 32

// Domain separation tags of every hash the protocol computes.
var (
	contextDomain     = []byte("dreip/context")
	generatorDomain   = []byte("dreip/generator")
	voteProofDomain   = []byte("dreip/vote-proof")
	ballotProofDomain = []byte("dreip/ballot-proof")
	signatureDomain   = "dreip/ballot-signature"
)

// Params holds the public values of an election. They are all a verifier
// needs.
type Params struct {
	suite ecc.Suite

	G1         ecc.Point
	G2         ecc.Point
	Context    []byte
	Candidates []string
	PublicKey  ecc.PublicKey
}

// NewParams assembles the public values of an election, typically decoded
// from a published dump. Use Check to validate them.
func NewParams(suite ecc.Suite, g1, g2 ecc.Point, context []byte, candidates []string, publicKey ecc.PublicKey) *Params {
	return &Params{
		suite:      suite,
		G1:         g1,
		G2:         g2,
		Context:    context,
		Candidates: candidates,
		PublicKey:  publicKey,
	}
}

// Suite returns the group the election works on.
func (p *Params) Suite() ecc.Suite {
	return p.suite
}

// Curve returns the curve type of the election.
func (p *Params) Curve() string {
	return p.suite.Type()
}

// HasCandidate reports whether candidate is registered in the election.
func (p *Params) HasCandidate(candidate string) bool {
	return slices.Contains(p.Candidates, candidate)
}

// Check verifies that the parameters are well formed: G1 is the standard
// generator, G2 is derived from the context, and the candidate list is valid.
func (p *Params) Check() error {
	if p.suite == nil || p.G1 == nil || p.G2 == nil || p.PublicKey == nil {
		return fmt.Errorf("%w: missing values", ErrInvalidParams)
	}
	if len(p.Context) != ContextSize {
		return fmt.Errorf("%w: context of %d bytes", ErrInvalidParams, len(p.Context))
	}
	if err := checkCandidates(p.Candidates); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	g1 := p.suite.Point()
	g1.SetGenerator()
	if !p.G1.Equal(g1) {
		return fmt.Errorf("%w: g1 is not the curve generator", ErrInvalidParams)
	}
	g2, err := deriveG2(p.suite, p.Context)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if !p.G2.Equal(g2) {
		return fmt.Errorf("%w: g2 is not derived from the context", ErrInvalidParams)
	}
	if p.PublicKey.Point().IsZero() {
		return fmt.Errorf("%w: public key is the identity", ErrInvalidParams)
	}
	return nil
}

// Election is an election instance run by a voting terminal. It holds the
// signing key ballots are authenticated with.
type Election struct {
	*Params
	privateKey ecc.PrivateKey
}

// New creates an election for the ordered candidate list. It reads a fresh
// seed and the signing key from rng.
func New(suite ecc.Suite, candidates []string, rng io.Reader) (*Election, error) {
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}
	seed := make([]byte, ContextSize)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, fmt.Errorf("cannot read election seed: %w", err)
	}
	context := deriveContext(seed, candidates)
	g1 := suite.Point()
	g1.SetGenerator()
	g2, err := deriveG2(suite, context)
	if err != nil {
		return nil, err
	}
	key, err := suite.GenerateKey(rng)
	if err != nil {
		return nil, fmt.Errorf("cannot generate election key: %w", err)
	}
	log.Debugw("election created",
		"curve", suite.Type(),
		"candidates", len(candidates),
		"context", fmt.Sprintf("%x", context),
	)
	return &Election{
		Params:     NewParams(suite, g1, g2, context, slices.Clone(candidates), key.Public()),
		privateKey: key,
	}, nil
}

// Public returns a copy of the public values of the election.
func (e *Election) Public() *Params {
	p := *e.Params
	p.Context = bytes.Clone(e.Context)
	p.Candidates = slices.Clone(e.Candidates)
	return &p
}

// CreateBallot returns a signed ballot voting yes for the yes candidate and
// no for every other candidate. The vote secrets are discarded.
func (e *Election) CreateBallot(rng io.Reader, ballotID, yes string, candidates []string) (*Ballot, error) {
	d, err := e.Draft(rng, ballotID, yes, candidates)
	if err != nil {
		return nil, err
	}
	return d.Confirm()
}

// Draft is like CreateBallot but keeps the vote secrets, so the voter can
// still choose between confirming and auditing the ballot.
func (e *Election) Draft(rng io.Reader, ballotID, yes string, candidates []string) (*Draft, error) {
	if ballotID == "" {
		return nil, ErrEmptyBallotID
	}
	if err := checkCandidates(candidates); err != nil {
		return nil, err
	}
	if !slices.Contains(candidates, yes) {
		return nil, fmt.Errorf("%w: yes candidate %q not in the ballot", ErrUnknownCandidate, yes)
	}
	for _, c := range candidates {
		if !e.HasCandidate(c) {
			return nil, fmt.Errorf("%w: %q is not part of the election", ErrUnknownCandidate, c)
		}
	}
	values := make([]bool, len(candidates))
	for i, c := range candidates {
		values[i] = c == yes
	}
	return e.draft(rng, ballotID, candidates, values)
}

// draft builds and signs a ballot with the given vote values without any
// validation.
func (e *Election) draft(rng io.Reader, ballotID string, candidates []string, values []bool) (*Draft, error) {
	b := &Ballot{
		ID:    ballotID,
		Votes: make(map[string]*Vote, len(candidates)),
	}
	secrets := make(map[string]*VoteSecrets, len(candidates))
	for i, c := range candidates {
		s, err := newVoteSecrets(rng, e.suite, values[i])
		if err != nil {
			return nil, err
		}
		v, err := newVote(rng, e.Params, ballotID, c, s)
		if err != nil {
			return nil, err
		}
		b.Votes[c] = v
		secrets[c] = s
	}
	proof, err := proveBallot(rng, e.Params, ballotID, b.Votes, randSum(e.suite, secrets))
	if err != nil {
		return nil, err
	}
	b.Proof = proof
	if b.Signature, err = e.sign(rng, ballotID, b); err != nil {
		return nil, err
	}
	log.Debugw("ballot created", "ballotID", ballotID, "votes", len(candidates))
	return &Draft{ballot: b, secrets: secrets}, nil
}

func (e *Election) sign(rng io.Reader, ballotID string, b *Ballot) ([]byte, error) {
	msg, err := signingPayload(e.Params, ballotID, b)
	if err != nil {
		return nil, err
	}
	sig, err := e.privateKey.Sign(rng, msg)
	if err != nil {
		return nil, fmt.Errorf("cannot sign ballot %s: %w", ballotID, err)
	}
	return sig, nil
}

func checkCandidates(candidates []string) error {
	if len(candidates) == 0 {
		return ErrNoCandidates
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCandidate, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// deriveContext binds the election seed to the ordered candidate list. The
// transcript frames every candidate with its length.
func deriveContext(seed []byte, candidates []string) []byte {
	data := make([][]byte, 0, len(candidates)+1)
	data = append(data, seed)
	for _, c := range candidates {
		data = append(data, []byte(c))
	}
	return ecc.HashToBytes(contextDomain, ContextSize, data...)
}

// deriveG2 hashes the context into the second generator, so nobody knows
// its discrete logarithm with respect to G1.
func deriveG2(suite ecc.Suite, context []byte) (ecc.Point, error) {
	g2, err := suite.HashToPoint(generatorDomain, context)
	if err != nil {
		return nil, fmt.Errorf("cannot derive g2: %w", err)
	}
	g1 := suite.Point()
	g1.SetGenerator()
	if g2.IsZero() || g2.Equal(g1) {
		return nil, fmt.Errorf("degenerate g2 %s", g2)
	}
	return g2, nil
}
