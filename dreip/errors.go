package dreip

import "errors"

var (
	// ErrNoCandidates is returned when an election or ballot is created
	// without candidates.
	ErrNoCandidates = errors.New("no candidates")
	// ErrDuplicateCandidate is returned when a candidate list repeats an
	// identifier.
	ErrDuplicateCandidate = errors.New("duplicate candidate")
	// ErrUnknownCandidate is returned when the yes candidate is not among the
	// ballot candidates, or a ballot candidate is not part of the election.
	ErrUnknownCandidate = errors.New("unknown candidate")
	// ErrEmptyBallotID is returned when a ballot is created without an id.
	ErrEmptyBallotID = errors.New("empty ballot id")
	// ErrInvalidParams is returned when published election values are not
	// consistent with each other.
	ErrInvalidParams = errors.New("invalid election parameters")
	// ErrDraftFinalized is returned when a draft that was already confirmed
	// or audited is confirmed or audited again.
	ErrDraftFinalized = errors.New("ballot already confirmed or audited")
)
