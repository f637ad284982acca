// Package sumcheck implements the sum-check protocol reduced over sums of
// products of multilinears, grounded on
// original_source/protocols/src/partial_sum_check.rs and the teacher's
// internal/vybium-starks-vm/protocols/univariate_sumcheck.go for the
// round-by-round prove/verify shape.
package sumcheck

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/polynomial"
	"github.com/pope-h/zero-knowledge/transcript"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Proof is the transcript of one sum-check run: the initial claimed sum,
// one round polynomial (as its d+1 samples) per variable, and the
// challenge squeezed after each round.
type Proof struct {
	ClaimedSum field.Element
	RoundPolys [][]field.Element
	Challenges []field.Element
}

// SubClaim is what the verifier reduces a SumCheckProof to: the verifier
// does not itself check the terminal oracle claim; it returns the
// challenge point and the value the caller's oracle must equal there.
type SubClaim struct {
	Challenges []field.Element
	FinalSum   field.Element
}

// Prove runs the sum-check protocol over numVars rounds for a claim that
// the sum, over the Boolean hypercube, of the sum of the given products'
// elementwise products equals claimedSum. tr is absorbed into and
// squeezed from in place.
func Prove(tr *transcript.Transcript, products []*polynomial.Product, claimedSum field.Element) (*Proof, error) {
	if len(products) == 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "sumcheck: no products given")
	}
	numVars := products[0].NumVars()
	for i, p := range products {
		if p.NumVars() != numVars {
			return nil, zkerr.New(zkerr.KindInputShape, "sumcheck: product %d has %d vars, want %d", i, p.NumVars(), numVars)
		}
	}

	tr.Absorb(claimedSum.Bytes())

	cur := products
	roundPolys := make([][]field.Element, numVars)
	challenges := make([]field.Element, numVars)

	for r := 0; r < numVars; r++ {
		var g []field.Element
		for _, p := range cur {
			samples, err := p.UnivariateToEvaluation()
			if err != nil {
				return nil, err
			}
			g = sumSamples(g, samples)
		}
		roundPolys[r] = g
		absorbSamples(tr, g)

		c := tr.ChallengeField()
		challenges[r] = c

		next := make([]*polynomial.Product, len(cur))
		for i, p := range cur {
			reduced, err := p.PartialEvaluate(c, 0)
			if err != nil {
				return nil, err
			}
			next[i] = reduced
		}
		cur = next
	}

	return &Proof{ClaimedSum: claimedSum, RoundPolys: roundPolys, Challenges: challenges}, nil
}

// Verify checks a Proof's round-by-round consistency (each g_r(0)+g_r(1)
// must equal the running claimed sum) and returns the resulting
// SubClaim. It does not evaluate the caller's oracle at the final
// challenge point; that check is the caller's responsibility. tr must be
// fresh, matching the one Prove absorbed into.
func Verify(tr *transcript.Transcript, proof *Proof) (*SubClaim, error) {
	tr.Absorb(proof.ClaimedSum.Bytes())

	running := proof.ClaimedSum
	numVars := len(proof.RoundPolys)
	challenges := make([]field.Element, numVars)

	for r := 0; r < numVars; r++ {
		g := proof.RoundPolys[r]
		if len(g) < 2 {
			return nil, zkerr.New(zkerr.KindProofInvalid, "sumcheck: round %d polynomial has fewer than two samples", r)
		}
		sum01 := g[0].Add(g[1])
		if !sum01.Equal(running) {
			return nil, zkerr.WithRound(zkerr.KindProofInvalid, r, "sumcheck: g(0)+g(1) != claimed sum")
		}

		absorbSamples(tr, g)
		c := tr.ChallengeField()
		if r < len(proof.Challenges) && !proof.Challenges[r].Equal(c) {
			return nil, zkerr.WithRound(zkerr.KindProofInvalid, r, "sumcheck: transcript challenge does not match proof")
		}
		challenges[r] = c

		xs := make([]field.Element, len(g))
		for i := range xs {
			xs[i] = field.FromUint64(uint64(i))
		}
		roundPoly, err := polynomial.Interpolate(xs, g)
		if err != nil {
			return nil, zkerr.WithRound(zkerr.KindProofInvalid, r, "sumcheck: failed to interpolate round polynomial: %v", err)
		}
		running = roundPoly.Evaluate(c)
	}

	return &SubClaim{Challenges: challenges, FinalSum: running}, nil
}

func sumSamples(a, b []field.Element) []field.Element {
	if a == nil {
		out := make([]field.Element, len(b))
		copy(out, b)
		return out
	}
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = field.Zero()
		if i < len(a) {
			out[i] = out[i].Add(a[i])
		}
		if i < len(b) {
			out[i] = out[i].Add(b[i])
		}
	}
	return out
}

func absorbSamples(tr *transcript.Transcript, samples []field.Element) {
	for _, s := range samples {
		tr.Absorb(s.Bytes())
	}
}
