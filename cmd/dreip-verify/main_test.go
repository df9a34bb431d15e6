package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/dreip/crypto/ecc/curves"
	"github.com/vocdoni/dreip/crypto/random"
	"github.com/vocdoni/dreip/dreip"
)

func writeResults(c *qt.C, tamper func(r *dreip.Results)) string {
	suite, err := curves.New(curves.DefaultCurve)
	c.Assert(err, qt.IsNil)
	rng := random.Seeded([]byte("verify"))
	e, err := dreip.New(suite, []string{"Alice", "Bob"}, rng)
	c.Assert(err, qt.IsNil)

	r := &dreip.Results{
		Params:    e.Public(),
		Confirmed: make(map[string]*dreip.Ballot),
		Totals:    make(map[string]*dreip.Totals),
	}
	for i, yes := range []string{"Alice", "Bob", "Alice"} {
		d, err := e.Draft(rng, string(rune('a'+i)), yes, e.Candidates)
		c.Assert(err, qt.IsNil)
		for cand, s := range d.Secrets() {
			if r.Totals[cand] == nil {
				r.Totals[cand] = new(dreip.Totals)
			}
			r.Totals[cand].Add(suite.Order(), s)
		}
		b, err := d.Confirm()
		c.Assert(err, qt.IsNil)
		r.Confirmed[b.ID] = b
	}
	if tamper != nil {
		tamper(r)
	}
	data, err := json.Marshal(r)
	c.Assert(err, qt.IsNil)
	path := filepath.Join(c.TempDir(), "results.json")
	c.Assert(os.WriteFile(path, data, 0o600), qt.IsNil)
	return path
}

func TestVerify(t *testing.T) {
	c := qt.New(t)
	var out bytes.Buffer
	c.Assert(verify(writeResults(c, nil), &out), qt.Equals, exitValid)
	c.Assert(out.String(), qt.Equals, "valid\nAlice\t2\nBob\t1\n")

	out.Reset()
	path := writeResults(c, func(r *dreip.Results) {
		r.Totals["Bob"].Tally.SetInt64(2)
	})
	c.Assert(verify(path, &out), qt.Equals, exitInvalid)
	c.Assert(out.String(), qt.Equals, "tally check failed on candidate \"Bob\"\n")

	out.Reset()
	c.Assert(verify(filepath.Join(c.TempDir(), "missing.json"), &out), qt.Equals, exitFailure)
	garbage := filepath.Join(c.TempDir(), "garbage.json")
	c.Assert(os.WriteFile(garbage, []byte("{"), 0o600), qt.IsNil)
	c.Assert(verify(garbage, &out), qt.Equals, exitFailure)
	c.Assert(out.Len(), qt.Equals, 0)
}
