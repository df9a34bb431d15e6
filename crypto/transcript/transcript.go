// Package transcript implements a Merlin style Fiat-Shamir transcript on top
// of the Strobe protocol framework. Every message is framed with its label
// and length, so distinct sequences of messages never collide.
package transcript

import (
	"encoding/binary"

	"github.com/mimoo/StrobeGo/strobe"
)

const (
	securityLevel  = 128
	protocolLabel  = "Merlin v1.0"
	domainSepLabel = "dom-sep"
)

// Transcript accumulates the public messages of a protocol run.
type Transcript struct {
	strobe strobe.Strobe
}

// New returns a transcript bound to the given domain separation label.
func New(label []byte) *Transcript {
	t := &Transcript{strobe: strobe.InitStrobe(protocolLabel, securityLevel)}
	t.Append([]byte(domainSepLabel), label)
	return t
}

// Append adds a labelled message to the transcript.
func (t *Transcript) Append(label, message []byte) {
	t.strobe.AD(true, frame(label, len(message)))
	t.strobe.AD(false, message)
}

// AppendAll adds every message under the same label.
func (t *Transcript) AppendAll(label []byte, messages ...[]byte) {
	for _, m := range messages {
		t.Append(label, m)
	}
}

// Challenge derives n pseudorandom bytes from everything appended so far.
// The challenge is itself absorbed, so later challenges differ.
func (t *Transcript) Challenge(label []byte, n int) []byte {
	t.strobe.AD(true, frame(label, n))
	return t.strobe.PRF(n)
}

// Clone returns an independent copy of the transcript state.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{strobe: *t.strobe.Clone()}
}

func frame(label []byte, n int) []byte {
	buf := make([]byte, len(label), len(label)+4)
	copy(buf, label)
	return binary.LittleEndian.AppendUint32(buf, uint32(n))
}
