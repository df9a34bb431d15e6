package transcript

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestChallengeIsDeterministic(t *testing.T) {
	c := qt.New(t)
	build := func() *Transcript {
		tr := New([]byte("test"))
		tr.Append([]byte("a"), []byte("hello"))
		tr.AppendAll([]byte("b"), []byte("x"), []byte("y"))
		return tr
	}
	c.Assert(build().Challenge([]byte("c"), 32), qt.DeepEquals, build().Challenge([]byte("c"), 32))
}

func TestChallengeSeparatesInputs(t *testing.T) {
	c := qt.New(t)
	challenge := func(domain string, messages ...string) []byte {
		tr := New([]byte(domain))
		for _, m := range messages {
			tr.Append([]byte("m"), []byte(m))
		}
		return tr.Challenge([]byte("c"), 32)
	}
	base := challenge("test", "ab", "c")
	c.Assert(challenge("other", "ab", "c"), qt.Not(qt.DeepEquals), base)
	// message boundaries are framed
	c.Assert(challenge("test", "a", "bc"), qt.Not(qt.DeepEquals), base)
	c.Assert(challenge("test", "abc"), qt.Not(qt.DeepEquals), base)
}

func TestClone(t *testing.T) {
	c := qt.New(t)
	tr := New([]byte("test"))
	tr.Append([]byte("m"), []byte("shared"))
	clone := tr.Clone()
	clone.Append([]byte("m"), []byte("diverge"))
	c.Assert(tr.Challenge([]byte("c"), 16), qt.Not(qt.DeepEquals), clone.Challenge([]byte("c"), 16))

	// successive challenges differ
	tr2 := New([]byte("test"))
	c.Assert(tr2.Challenge([]byte("c"), 16), qt.Not(qt.DeepEquals), tr2.Challenge([]byte("c"), 16))
}
