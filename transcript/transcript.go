// Package transcript implements the Fiat-Shamir sponge every protocol in
// this module uses to turn an interactive proof into a non-interactive
// one. It is a per-protocol, stack-local object (spec.md §9: "never a
// process-wide singleton") — callers construct one with New for each
// prove/verify run and discard it afterwards.
package transcript

import (
	"golang.org/x/crypto/sha3"

	"github.com/pope-h/zero-knowledge/field"
)

// DigestLen is the width of a squeeze, matching a 256-bit sponge.
const DigestLen = 32

// Transcript holds a running SHA3-256 digest as its state.
type Transcript struct {
	state []byte
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{state: []byte{}}
}

// Absorb appends data into the transcript. Absorb is append-only: it
// never changes what a prior squeeze returned, only what the next one will.
func (t *Transcript) Absorb(data []byte) {
	t.state = hash(append(append([]byte{}, t.state...), data...))
}

// Squeeze returns H(state) and folds that digest back into the state, so
// two consecutive squeezes without an intervening absorb still differ.
func (t *Transcript) Squeeze() [DigestLen]byte {
	digest := hash(t.state)
	t.state = hash(append(append([]byte{}, t.state...), digest...))
	var out [DigestLen]byte
	copy(out[:], digest)
	return out
}

// ChallengeField squeezes and reduces the digest into a field element,
// the `F::from_be_bytes_mod_order(squeeze())` convention spec.md §4.1
// requires for every challenge derivation in this module.
func (t *Transcript) ChallengeField() field.Element {
	d := t.Squeeze()
	return field.FromBEBytesModOrder(d[:])
}

func hash(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}
