package dreip

import "fmt"

// Stage identifies the verification step that rejected a ballot or a set
// of election results.
type Stage int

const (
	StageValid Stage = iota
	StageParams
	StageSignature
	StageVoteProof
	StageBallotProof
	StageSecrets
	StageDuplicateBallot
	StageCandidates
	StageTally
)

var stageNames = map[Stage]string{
	StageValid:           "valid",
	StageParams:          "election parameters",
	StageSignature:       "signature",
	StageVoteProof:       "vote proof",
	StageBallotProof:     "ballot proof",
	StageSecrets:         "audit secrets",
	StageDuplicateBallot: "duplicate ballot",
	StageCandidates:      "candidates",
	StageTally:           "tally",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Report is the outcome of a verification. A failed report names the stage
// that failed, and the ballot and candidate involved where they apply.
type Report struct {
	Stage     Stage
	BallotID  string
	Candidate string
}

// Valid reports whether verification succeeded.
func (r Report) Valid() bool {
	return r.Stage == StageValid
}

func (r Report) String() string {
	if r.Valid() {
		return "valid"
	}
	s := fmt.Sprintf("%s check failed", r.Stage)
	if r.BallotID != "" {
		s += fmt.Sprintf(" for ballot %q", r.BallotID)
	}
	if r.Candidate != "" {
		s += fmt.Sprintf(" on candidate %q", r.Candidate)
	}
	return s
}

// Verify reports whether b is a valid ballot of the election with the given
// id.
func (b *Ballot) Verify(p *Params, ballotID string) bool {
	return b.Inspect(p, ballotID).Valid()
}

// Inspect verifies b as a ballot of the election with the given id. It
// checks that the ballot carries that id and its signature, then every vote
// proof in candidate order, then the ballot proof, and stops at the first
// failure.
func (b *Ballot) Inspect(p *Params, ballotID string) Report {
	report := Report{BallotID: ballotID}
	if p == nil || p.suite == nil || p.G1 == nil || p.G2 == nil || p.PublicKey == nil {
		report.Stage = StageParams
		return report
	}
	if b == nil || b.ID != ballotID {
		report.Stage = StageSignature
		return report
	}
	msg, err := signingPayload(p, ballotID, b)
	if err != nil || !p.PublicKey.Verify(msg, b.Signature) {
		report.Stage = StageSignature
		return report
	}
	for _, c := range b.Candidates() {
		if !b.Votes[c].Verify(p, ballotID, c) {
			report.Stage, report.Candidate = StageVoteProof, c
			return report
		}
	}
	if !b.Proof.Verify(p, ballotID, b.Votes) {
		report.Stage = StageBallotProof
		return report
	}
	return report
}

// Verify reports whether a is a valid audited ballot of the election with
// the given id.
func (a *AuditedBallot) Verify(p *Params, ballotID string) bool {
	return a.Inspect(p, ballotID).Valid()
}

// Inspect verifies the ballot as Ballot.Inspect does, and then checks that
// the disclosed secrets open every vote.
func (a *AuditedBallot) Inspect(p *Params, ballotID string) Report {
	if a == nil || a.Ballot == nil {
		return Report{Stage: StageSignature, BallotID: ballotID}
	}
	report := a.Ballot.Inspect(p, ballotID)
	if !report.Valid() {
		return report
	}
	if len(a.Secrets) != len(a.Votes) {
		report.Stage = StageSecrets
		return report
	}
	for _, c := range a.Candidates() {
		s, ok := a.Secrets[c]
		if !ok || s == nil || !inRange(s.Rand, p.suite.Order()) || !a.Votes[c].matches(p, s) {
			report.Stage, report.Candidate = StageSecrets, c
			return report
		}
	}
	return report
}
