package dreip

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/ecc/curves"
)

// Wire representations shared by the JSON and CBOR encodings. Points and
// scalars travel as their raw byte encodings, and every container carries
// the curve type needed to decode them.

type paramsWire struct {
	Curve      string        `json:"curve" cbor:"1,keyasint"`
	G1         hexutil.Bytes `json:"g1" cbor:"2,keyasint"`
	G2         hexutil.Bytes `json:"g2" cbor:"3,keyasint"`
	Context    hexutil.Bytes `json:"context" cbor:"4,keyasint"`
	Candidates []string      `json:"candidates" cbor:"5,keyasint"`
	PublicKey  hexutil.Bytes `json:"publicKey" cbor:"6,keyasint"`
}

type voteProofWire struct {
	C0 hexutil.Bytes `json:"c0" cbor:"1,keyasint"`
	C1 hexutil.Bytes `json:"c1" cbor:"2,keyasint"`
	S0 hexutil.Bytes `json:"s0" cbor:"3,keyasint"`
	S1 hexutil.Bytes `json:"s1" cbor:"4,keyasint"`
}

type voteWire struct {
	R     hexutil.Bytes `json:"R" cbor:"1,keyasint"`
	Z     hexutil.Bytes `json:"Z" cbor:"2,keyasint"`
	Proof voteProofWire `json:"proof" cbor:"3,keyasint"`
}

type ballotProofWire struct {
	A hexutil.Bytes `json:"a" cbor:"1,keyasint"`
	B hexutil.Bytes `json:"b" cbor:"2,keyasint"`
	S hexutil.Bytes `json:"s" cbor:"3,keyasint"`
}

type ballotWire struct {
	Curve     string              `json:"curve" cbor:"1,keyasint"`
	ID        string              `json:"id" cbor:"2,keyasint"`
	Votes     map[string]voteWire `json:"votes" cbor:"3,keyasint"`
	Proof     ballotProofWire     `json:"proof" cbor:"4,keyasint"`
	Signature hexutil.Bytes       `json:"signature" cbor:"5,keyasint"`
}

type secretsWire struct {
	Rand hexutil.Bytes `json:"r" cbor:"1,keyasint"`
	Yes  bool          `json:"yes" cbor:"2,keyasint"`
}

type auditedWire struct {
	Ballot  ballotWire             `json:"ballot" cbor:"1,keyasint"`
	Secrets map[string]secretsWire `json:"secrets" cbor:"2,keyasint"`
}

type totalsWire struct {
	Tally   hexutil.Bytes `json:"tally" cbor:"1,keyasint"`
	RandSum hexutil.Bytes `json:"randSum" cbor:"2,keyasint"`
}

type resultsWire struct {
	Election  paramsWire             `json:"election" cbor:"1,keyasint"`
	Audited   map[string]auditedWire `json:"audited" cbor:"2,keyasint"`
	Confirmed map[string]ballotWire  `json:"confirmed" cbor:"3,keyasint"`
	Totals    map[string]totalsWire  `json:"totals" cbor:"4,keyasint"`
}

// codec encodes and decodes the values of a single curve.
type codec struct {
	suite ecc.Suite
}

func codecFor(curveType string) (codec, error) {
	s, err := curves.New(curveType)
	if err != nil {
		return codec{}, fmt.Errorf("%w: %w", ecc.ErrDecoding, err)
	}
	return codec{suite: s}, nil
}

func (cd codec) scalar(k *big.Int) hexutil.Bytes {
	return ecc.MarshalScalar(k, cd.suite.ScalarSize())
}

func (cd codec) decodeScalar(buf []byte) (*big.Int, error) {
	return ecc.UnmarshalScalar(buf, cd.suite.Order(), cd.suite.ScalarSize())
}

func (cd codec) decodePoint(buf []byte) (ecc.Point, error) {
	p := cd.suite.Point()
	if err := p.Unmarshal(buf); err != nil {
		return nil, err
	}
	return p, nil
}

func paramsToWire(p *Params) *paramsWire {
	return &paramsWire{
		Curve:      p.Curve(),
		G1:         p.G1.Marshal(),
		G2:         p.G2.Marshal(),
		Context:    p.Context,
		Candidates: p.Candidates,
		PublicKey:  p.PublicKey.Marshal(),
	}
}

func (w *paramsWire) decode() (*Params, error) {
	cd, err := codecFor(w.Curve)
	if err != nil {
		return nil, err
	}
	g1, err := cd.decodePoint(w.G1)
	if err != nil {
		return nil, fmt.Errorf("g1: %w", err)
	}
	g2, err := cd.decodePoint(w.G2)
	if err != nil {
		return nil, fmt.Errorf("g2: %w", err)
	}
	pub, err := cd.suite.UnmarshalPublicKey(w.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return NewParams(cd.suite, g1, g2, w.Context, w.Candidates, pub), nil
}

// ballotCurve returns the curve of the points of b.
func ballotCurve(b *Ballot) (string, error) {
	if b == nil {
		return "", errors.New("cannot encode a nil ballot")
	}
	if b.Proof != nil && b.Proof.A != nil {
		return b.Proof.A.Type(), nil
	}
	for _, v := range b.Votes {
		if v != nil && v.R != nil {
			return v.R.Type(), nil
		}
	}
	return "", errors.New("cannot encode an empty ballot")
}

func ballotToWire(b *Ballot) (*ballotWire, error) {
	curve, err := ballotCurve(b)
	if err != nil {
		return nil, err
	}
	cd, err := codecFor(curve)
	if err != nil {
		return nil, err
	}
	if err := b.wellFormed(&Params{suite: cd.suite}); err != nil {
		return nil, fmt.Errorf("cannot encode ballot: %w", err)
	}
	w := &ballotWire{
		Curve: curve,
		ID:    b.ID,
		Votes: make(map[string]voteWire, len(b.Votes)),
		Proof: ballotProofWire{
			A: b.Proof.A.Marshal(),
			B: b.Proof.B.Marshal(),
			S: cd.scalar(b.Proof.S),
		},
		Signature: b.Signature,
	}
	for c, v := range b.Votes {
		w.Votes[c] = voteWire{
			R: v.R.Marshal(),
			Z: v.Z.Marshal(),
			Proof: voteProofWire{
				C0: cd.scalar(v.Proof.C0),
				C1: cd.scalar(v.Proof.C1),
				S0: cd.scalar(v.Proof.S0),
				S1: cd.scalar(v.Proof.S1),
			},
		}
	}
	return w, nil
}

func (w *ballotWire) decode() (*Ballot, error) {
	cd, err := codecFor(w.Curve)
	if err != nil {
		return nil, err
	}
	b := &Ballot{
		ID:        w.ID,
		Votes:     make(map[string]*Vote, len(w.Votes)),
		Proof:     new(BallotProof),
		Signature: w.Signature,
	}
	if b.Proof.A, err = cd.decodePoint(w.Proof.A); err != nil {
		return nil, fmt.Errorf("ballot proof: %w", err)
	}
	if b.Proof.B, err = cd.decodePoint(w.Proof.B); err != nil {
		return nil, fmt.Errorf("ballot proof: %w", err)
	}
	if b.Proof.S, err = cd.decodeScalar(w.Proof.S); err != nil {
		return nil, fmt.Errorf("ballot proof: %w", err)
	}
	for c, vw := range w.Votes {
		v := &Vote{Proof: new(VoteProof)}
		if v.R, err = cd.decodePoint(vw.R); err != nil {
			return nil, fmt.Errorf("vote %q: %w", c, err)
		}
		if v.Z, err = cd.decodePoint(vw.Z); err != nil {
			return nil, fmt.Errorf("vote %q: %w", c, err)
		}
		for _, f := range []struct {
			dst **big.Int
			buf []byte
		}{
			{&v.Proof.C0, vw.Proof.C0},
			{&v.Proof.C1, vw.Proof.C1},
			{&v.Proof.S0, vw.Proof.S0},
			{&v.Proof.S1, vw.Proof.S1},
		} {
			if *f.dst, err = cd.decodeScalar(f.buf); err != nil {
				return nil, fmt.Errorf("vote %q: %w", c, err)
			}
		}
		b.Votes[c] = v
	}
	return b, nil
}

func auditedToWire(a *AuditedBallot) (*auditedWire, error) {
	bw, err := ballotToWire(a.Ballot)
	if err != nil {
		return nil, err
	}
	cd, err := codecFor(bw.Curve)
	if err != nil {
		return nil, err
	}
	w := &auditedWire{Ballot: *bw, Secrets: make(map[string]secretsWire, len(a.Secrets))}
	for c, s := range a.Secrets {
		if s == nil || !inRange(s.Rand, cd.suite.Order()) {
			return nil, fmt.Errorf("cannot encode secrets of %q", c)
		}
		w.Secrets[c] = secretsWire{Rand: cd.scalar(s.Rand), Yes: s.Yes}
	}
	return w, nil
}

func (w *auditedWire) decode() (*AuditedBallot, error) {
	b, err := w.Ballot.decode()
	if err != nil {
		return nil, err
	}
	cd, err := codecFor(w.Ballot.Curve)
	if err != nil {
		return nil, err
	}
	a := &AuditedBallot{Ballot: b, Secrets: make(map[string]*VoteSecrets, len(w.Secrets))}
	for c, sw := range w.Secrets {
		r, err := cd.decodeScalar(sw.Rand)
		if err != nil {
			return nil, fmt.Errorf("secrets %q: %w", c, err)
		}
		a.Secrets[c] = &VoteSecrets{Rand: r, Yes: sw.Yes}
	}
	return a, nil
}

func resultsToWire(r *Results) (*resultsWire, error) {
	if r.Params == nil {
		return nil, errors.New("cannot encode results without election")
	}
	cd := codec{suite: r.Params.suite}
	w := &resultsWire{
		Election:  *paramsToWire(r.Params),
		Audited:   make(map[string]auditedWire, len(r.Audited)),
		Confirmed: make(map[string]ballotWire, len(r.Confirmed)),
		Totals:    make(map[string]totalsWire, len(r.Totals)),
	}
	for id, a := range r.Audited {
		aw, err := auditedToWire(a)
		if err != nil {
			return nil, fmt.Errorf("audited ballot %s: %w", id, err)
		}
		w.Audited[id] = *aw
	}
	for id, b := range r.Confirmed {
		bw, err := ballotToWire(b)
		if err != nil {
			return nil, fmt.Errorf("confirmed ballot %s: %w", id, err)
		}
		w.Confirmed[id] = *bw
	}
	for c, t := range r.Totals {
		if t == nil || !inRange(t.Tally, cd.suite.Order()) || !inRange(t.RandSum, cd.suite.Order()) {
			return nil, fmt.Errorf("cannot encode totals of %q", c)
		}
		w.Totals[c] = totalsWire{Tally: cd.scalar(t.Tally), RandSum: cd.scalar(t.RandSum)}
	}
	return w, nil
}

func (w *resultsWire) decode() (*Results, error) {
	p, err := w.Election.decode()
	if err != nil {
		return nil, fmt.Errorf("election: %w", err)
	}
	cd := codec{suite: p.suite}
	r := &Results{
		Params:    p,
		Audited:   make(map[string]*AuditedBallot, len(w.Audited)),
		Confirmed: make(map[string]*Ballot, len(w.Confirmed)),
		Totals:    make(map[string]*Totals, len(w.Totals)),
	}
	for id, aw := range w.Audited {
		if aw.Ballot.Curve != p.Curve() {
			return nil, fmt.Errorf("audited ballot %s: %w: curve %s", id, ecc.ErrDecoding, aw.Ballot.Curve)
		}
		if r.Audited[id], err = aw.decode(); err != nil {
			return nil, fmt.Errorf("audited ballot %s: %w", id, err)
		}
	}
	for id, bw := range w.Confirmed {
		if bw.Curve != p.Curve() {
			return nil, fmt.Errorf("confirmed ballot %s: %w: curve %s", id, ecc.ErrDecoding, bw.Curve)
		}
		if r.Confirmed[id], err = bw.decode(); err != nil {
			return nil, fmt.Errorf("confirmed ballot %s: %w", id, err)
		}
	}
	for c, tw := range w.Totals {
		t := new(Totals)
		if t.Tally, err = cd.decodeScalar(tw.Tally); err != nil {
			return nil, fmt.Errorf("totals %q: %w", c, err)
		}
		if t.RandSum, err = cd.decodeScalar(tw.RandSum); err != nil {
			return nil, fmt.Errorf("totals %q: %w", c, err)
		}
		r.Totals[c] = t
	}
	return r, nil
}

// MarshalJSON serializes the public election values to JSON.
func (p *Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramsToWire(p))
}

// UnmarshalJSON deserializes the public election values from JSON.
func (p *Params) UnmarshalJSON(data []byte) error {
	var w paramsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal election container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// MarshalCBOR serializes the public election values to CBOR.
func (p *Params) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(paramsToWire(p))
}

// UnmarshalCBOR deserializes the public election values from CBOR.
func (p *Params) UnmarshalCBOR(data []byte) error {
	var w paramsWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal election container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// MarshalJSON serializes the Ballot to JSON.
func (b *Ballot) MarshalJSON() ([]byte, error) {
	w, err := ballotToWire(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes the Ballot from JSON.
func (b *Ballot) UnmarshalJSON(data []byte) error {
	var w ballotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal ballot container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// MarshalCBOR serializes the Ballot to CBOR.
func (b *Ballot) MarshalCBOR() ([]byte, error) {
	w, err := ballotToWire(b)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(w)
}

// UnmarshalCBOR deserializes the Ballot from CBOR.
func (b *Ballot) UnmarshalCBOR(data []byte) error {
	var w ballotWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal ballot container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// MarshalJSON serializes the audited ballot, secrets included, to JSON.
func (a *AuditedBallot) MarshalJSON() ([]byte, error) {
	w, err := auditedToWire(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes the audited ballot from JSON.
func (a *AuditedBallot) UnmarshalJSON(data []byte) error {
	var w auditedWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal audited ballot container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}

// MarshalCBOR serializes the audited ballot, secrets included, to CBOR.
func (a *AuditedBallot) MarshalCBOR() ([]byte, error) {
	w, err := auditedToWire(a)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(w)
}

// UnmarshalCBOR deserializes the audited ballot from CBOR.
func (a *AuditedBallot) UnmarshalCBOR(data []byte) error {
	var w auditedWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal audited ballot container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*a = *decoded
	return nil
}

// MarshalJSON serializes the election results to JSON.
func (r *Results) MarshalJSON() ([]byte, error) {
	w, err := resultsToWire(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes the election results from JSON.
func (r *Results) UnmarshalJSON(data []byte) error {
	var w resultsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal results container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// MarshalCBOR serializes the election results to CBOR.
func (r *Results) MarshalCBOR() ([]byte, error) {
	w, err := resultsToWire(r)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(w)
}

// UnmarshalCBOR deserializes the election results from CBOR.
func (r *Results) UnmarshalCBOR(data []byte) error {
	var w resultsWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to unmarshal results container: %w", err)
	}
	decoded, err := w.decode()
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}
