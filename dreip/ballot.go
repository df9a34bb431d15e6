package dreip

import (
	"fmt"
	"math/big"
)

// Ballot is a signed set of votes, one per candidate, with the proof that
// exactly one of them is a yes. It holds no secrets.
type Ballot struct {
	ID        string
	Votes     map[string]*Vote
	Proof     *BallotProof
	Signature []byte
}

// Candidates returns the candidates the ballot has votes for, sorted.
func (b *Ballot) Candidates() []string {
	return sortedKeys(b.Votes)
}

type draftState int

const (
	draftOpen draftState = iota
	draftConfirmed
	draftAudited
)

// Draft is a freshly created ballot that still holds its vote secrets. The
// voter either confirms it, which discards the secrets, or audits it, which
// discloses them and spoils the ballot. Only one of the two can happen.
type Draft struct {
	ballot  *Ballot
	secrets map[string]*VoteSecrets
	state   draftState
}

// Ballot returns the public part of the draft.
func (d *Draft) Ballot() *Ballot {
	return d.ballot
}

// Secrets returns a copy of the vote secrets, for the party that keeps the
// running tally. It returns nil once the draft is confirmed or audited.
func (d *Draft) Secrets() map[string]VoteSecrets {
	if d.state != draftOpen {
		return nil
	}
	out := make(map[string]VoteSecrets, len(d.secrets))
	for c, s := range d.secrets {
		out[c] = VoteSecrets{Rand: new(big.Int).Set(s.Rand), Yes: s.Yes}
	}
	return out
}

// Confirm discards the vote secrets and returns the ballot to be cast.
func (d *Draft) Confirm() (*Ballot, error) {
	if d.state != draftOpen {
		return nil, fmt.Errorf("%w: ballot %s", ErrDraftFinalized, d.ballot.ID)
	}
	for _, s := range d.secrets {
		s.Rand.SetInt64(0)
	}
	d.secrets = nil
	d.state = draftConfirmed
	return d.ballot, nil
}

// Audit returns the ballot together with its vote secrets, so the voter can
// check it encodes their choice. An audited ballot is spoiled and can no
// longer be confirmed.
func (d *Draft) Audit() (*AuditedBallot, error) {
	if d.state != draftOpen {
		return nil, fmt.Errorf("%w: ballot %s", ErrDraftFinalized, d.ballot.ID)
	}
	a := &AuditedBallot{Ballot: d.ballot, Secrets: d.secrets}
	d.secrets = nil
	d.state = draftAudited
	return a, nil
}

// AuditedBallot is a spoiled ballot published with its vote secrets.
type AuditedBallot struct {
	*Ballot
	Secrets map[string]*VoteSecrets
}

// Yes returns the candidate the audited ballot votes for, or an empty string
// if the disclosed secrets hold no yes.
func (a *AuditedBallot) Yes() string {
	for _, c := range sortedKeys(a.Secrets) {
		if a.Secrets[c].Yes {
			return c
		}
	}
	return ""
}
