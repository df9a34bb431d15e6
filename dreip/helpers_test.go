package dreip

import (
	"io"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/dreip/crypto/ecc"
	"github.com/vocdoni/dreip/crypto/ecc/curves"
	"github.com/vocdoni/dreip/crypto/random"
)

var testCandidates = []string{"Alice", "Bob", "Eve"}

// countingReader wraps a reader and counts the bytes read from it.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func testSuite(c *qt.C, curveType string) ecc.Suite {
	s, err := curves.New(curveType)
	c.Assert(err, qt.IsNil)
	return s
}

func testElection(c *qt.C, curveType string, seed string) (*Election, io.Reader) {
	rng := random.Seeded([]byte(seed))
	e, err := New(testSuite(c, curveType), testCandidates, rng)
	c.Assert(err, qt.IsNil)
	return e, rng
}

func mustDraft(c *qt.C, e *Election, rng io.Reader) *Draft {
	d, err := e.Draft(rng, "2", "Bob", testCandidates)
	c.Assert(err, qt.IsNil)
	return d
}

func confirm(c *qt.C, d *Draft) *Ballot {
	b, err := d.Confirm()
	c.Assert(err, qt.IsNil)
	return b
}

func audit(c *qt.C, d *Draft) *AuditedBallot {
	a, err := d.Audit()
	c.Assert(err, qt.IsNil)
	return a
}

// forEachCurve runs f once per supported curve.
func forEachCurve(t *testing.T, f func(c *qt.C, curveType string)) {
	for _, curveType := range curves.Types() {
		t.Run(curveType, func(t *testing.T) {
			t.Parallel()
			f(qt.New(t), curveType)
		})
	}
}
