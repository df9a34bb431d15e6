package dreip

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/ecc/curves"
)

func TestResultsEncoding(t *testing.T) {
	forEachCurve(t, func(c *qt.C, curveType string) {
		e, rng := testElection(c, curveType, "encoding")
		r := runElection(c, e, rng, []string{"Eve", "Alice", "Alice"}, 1)

		data, err := json.Marshal(r)
		c.Assert(err, qt.IsNil)
		fromJSON := new(Results)
		c.Assert(json.Unmarshal(data, fromJSON), qt.IsNil)
		c.Assert(fromJSON.Inspect(), qt.DeepEquals, Report{})
		c.Assert(fromJSON.Params.Curve(), qt.Equals, curveType)
		c.Assert(fromJSON.Params.Candidates, qt.DeepEquals, testCandidates)

		data, err = cbor.Marshal(r)
		c.Assert(err, qt.IsNil)
		fromCBOR := new(Results)
		c.Assert(cbor.Unmarshal(data, fromCBOR), qt.IsNil)
		c.Assert(fromCBOR.Inspect(), qt.DeepEquals, Report{})
		c.Assert(fromCBOR.Audited, qt.HasLen, 1)
		c.Assert(fromCBOR.Confirmed, qt.HasLen, 2)
	})
}

func TestParamsEncoding(t *testing.T) {
	c := qt.New(t)
	e, _ := testElection(c, curves.CurveTypeBN254, "params")

	data, err := json.Marshal(e.Public())
	c.Assert(err, qt.IsNil)
	p := new(Params)
	c.Assert(json.Unmarshal(data, p), qt.IsNil)
	c.Assert(p.Check(), qt.IsNil)
	c.Assert(p.G2.Equal(e.G2), qt.IsTrue)
	c.Assert(p.PublicKey.Marshal(), qt.DeepEquals, e.PublicKey.Marshal())

	data, err = cbor.Marshal(e.Public())
	c.Assert(err, qt.IsNil)
	p = new(Params)
	c.Assert(cbor.Unmarshal(data, p), qt.IsNil)
	c.Assert(p.Check(), qt.IsNil)
}

func TestDecodingErrors(t *testing.T) {
	c := qt.New(t)
	e, rng := testElection(c, curves.DefaultCurve, "decoding")
	b, err := e.CreateBallot(rng, "1", "Alice", testCandidates)
	c.Assert(err, qt.IsNil)
	data, err := json.Marshal(b)
	c.Assert(err, qt.IsNil)

	for name, mutate := range map[string]func(m map[string]any){
		"unknown curve": func(m map[string]any) { m["curve"] = "ed448" },
		"foreign curve": func(m map[string]any) { m["curve"] = curves.CurveTypeBabyJubJubIden3 },
		"truncated point": func(m map[string]any) {
			m["proof"].(map[string]any)["a"] = "0x02"
		},
		"unreduced scalar": func(m map[string]any) {
			m["proof"].(map[string]any)["s"] = "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
		},
		"short scalar": func(m map[string]any) {
			vote := m["votes"].(map[string]any)["Bob"].(map[string]any)
			vote["proof"].(map[string]any)["c1"] = "0x01"
		},
	} {
		var m map[string]any
		c.Assert(json.Unmarshal(data, &m), qt.IsNil)
		mutate(m)
		mutated, err := json.Marshal(m)
		c.Assert(err, qt.IsNil)
		err = json.Unmarshal(mutated, new(Ballot))
		c.Assert(err, qt.ErrorIs, ecc.ErrDecoding, qt.Commentf(name))
	}

	err = json.Unmarshal([]byte(`{"curve": "p256", "g1": "zz"}`), new(Params))
	c.Assert(err, qt.ErrorMatches, "failed to unmarshal election container: .*")
}

func TestEncodingRejectsIncompleteValues(t *testing.T) {
	c := qt.New(t)
	e, rng := testElection(c, curves.DefaultCurve, "incomplete")
	d, err := e.Draft(rng, "1", "Eve", testCandidates)
	c.Assert(err, qt.IsNil)

	_, err = json.Marshal(&Ballot{ID: "1"})
	c.Assert(err, qt.Not(qt.IsNil))

	a := audit(c, d)
	a.Secrets["Eve"] = nil
	_, err = json.Marshal(a)
	c.Assert(err, qt.Not(qt.IsNil))

	r := &Results{
		Params:    e.Public(),
		Confirmed: map[string]*Ballot{"2": confirm(c, mustDraft(c, e, rng))},
		Totals:    map[string]*Totals{"Eve": nil},
	}
	_, err = cbor.Marshal(r)
	c.Assert(err, qt.Not(qt.IsNil))
	_, err = cbor.Marshal(&Results{})
	c.Assert(err, qt.ErrorMatches, ".*cannot encode results without election")
}
