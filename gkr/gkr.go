// Package gkr implements the layered-circuit GKR argument: it reduces a
// claim about the circuit's output layer to a claim about its input
// layer via one sum-check per layer, using the 2-to-1 trick to fold the
// (w_i(r_b), w_i(r_c)) pair of claims into one between layers. Grounded
// on original_source/protocols/src/gkr_protocol.rs and
// gkr_2_to_1_trick.rs.
package gkr

import (
	"github.com/pope-h/zero-knowledge/circuit"
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/polynomial"
	"github.com/pope-h/zero-knowledge/sumcheck"
	"github.com/pope-h/zero-knowledge/transcript"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Proof is the GKR transcript: the padded output layer, one sum-check
// proof per circuit layer (output-to-input order), and the prover's
// claimed (w_i(r_b), w_i(r_c)) oracle pair for every layer. The last
// pair is the input layer's, which the caller checks against a KZG
// opening.
type Proof struct {
	OutputLayer []field.Element
	WEvals      [][2]field.Element
	RoundProofs []*sumcheck.Proof
}

// InputOpening is what the caller (succinctgkr) must open: the reduced
// point and value pair the verifier needs checked against the circuit's
// input layer.
type InputOpening struct {
	RB, RC         []field.Element
	ValueB, ValueC field.Element
}

// Prove runs GKR over c, whose Evaluate() output is the witness. It
// returns the proof plus the final InputOpening the caller must close
// with a polynomial commitment.
func Prove(c *circuit.Circuit) (*Proof, *InputOpening, error) {
	trace, err := c.Evaluate()
	if err != nil {
		return nil, nil, err
	}

	circuitLen := len(trace) - 1
	if circuitLen == 0 {
		return nil, nil, zkerr.New(zkerr.KindInputShape, "gkr: circuit has no layers")
	}

	w0 := padToPowerOfTwo(trace[circuitLen])
	tr := transcript.New()
	tr.Absorb(toBytes(w0))

	numVars := log2(len(w0))
	rA := make([]field.Element, numVars)
	for i := range rA {
		rA[i] = tr.ChallengeField()
	}

	w0Poly, err := polynomial.NewMultilinear(w0)
	if err != nil {
		return nil, nil, err
	}
	claimedSum, err := w0Poly.Evaluate(rA)
	if err != nil {
		return nil, nil, err
	}

	addVec, mulVec, err := c.LayerAddMul(circuitLen - 1)
	if err != nil {
		return nil, nil, err
	}
	addMLE, mulMLE, err := reduceOnVars(addVec, mulVec, rA)
	if err != nil {
		return nil, nil, err
	}

	roundProofs := make([]*sumcheck.Proof, circuitLen)
	wEvals := make([][2]field.Element, circuitLen)

	nextLayerIdx := circuitLen - 1
	wBExp, wCExp := circuit.ExplodeWire(trace[nextLayerIdx])
	sumTerm := circuit.ElementWiseAdd(wBExp, wCExp)
	mulTerm := circuit.ElementWiseMul(wBExp, wCExp)

	proof, err := sumCheckOverAddMul(addMLE, mulMLE, sumTerm, mulTerm, claimedSum)
	if err != nil {
		return nil, nil, err
	}
	roundProofs[0] = proof
	challenges := proof.Challenges

	for layerIdx := circuitLen - 1; layerIdx >= 1; layerIdx-- {
		step := circuitLen - layerIdx
		currentLayerW := trace[layerIdx]
		rB, rC := splitChallenges(challenges)

		wB, err := evalAt(currentLayerW, rB)
		if err != nil {
			return nil, nil, err
		}
		wC, err := evalAt(currentLayerW, rC)
		if err != nil {
			return nil, nil, err
		}
		wEvals[step-1] = [2]field.Element{wB, wC}

		alpha, beta := gkrTrickChallenges()
		newClaimedSum := alpha.Mul(wB).Add(beta.Mul(wC))

		addVecNext, mulVecNext, err := c.LayerAddMul(layerIdx - 1)
		if err != nil {
			return nil, nil, err
		}
		newAdd, newMul, err := twoToOneFold(addVecNext, mulVecNext, rB, rC, alpha, beta)
		if err != nil {
			return nil, nil, err
		}

		wBExp, wCExp := circuit.ExplodeWire(trace[layerIdx-1])
		sumTerm := circuit.ElementWiseAdd(wBExp, wCExp)
		mulTerm := circuit.ElementWiseMul(wBExp, wCExp)

		proof, err := sumCheckOverAddMul(newAdd, newMul, sumTerm, mulTerm, newClaimedSum)
		if err != nil {
			return nil, nil, err
		}
		roundProofs[step] = proof
		challenges = proof.Challenges
	}

	inputLayerW := trace[0]
	rB, rC := splitChallenges(challenges)
	valueB, err := evalAt(inputLayerW, rB)
	if err != nil {
		return nil, nil, err
	}
	valueC, err := evalAt(inputLayerW, rC)
	if err != nil {
		return nil, nil, err
	}
	wEvals[circuitLen-1] = [2]field.Element{valueB, valueC}

	return &Proof{OutputLayer: w0, WEvals: wEvals, RoundProofs: roundProofs},
		&InputOpening{RB: rB, RC: rC, ValueB: valueB, ValueC: valueC}, nil
}

// Verify checks the GKR proof's internal consistency (every layer's
// sum-check transcript and oracle-gluing step) and returns the final
// InputOpening the caller must check against a polynomial commitment to
// the circuit's input layer — GKR itself never touches the input layer.
func Verify(c *circuit.Circuit, proof *Proof) (*InputOpening, error) {
	circuitLen := len(c.Layers)
	if len(proof.RoundProofs) != circuitLen {
		return nil, zkerr.New(zkerr.KindProofInvalid, "gkr: expected %d round proofs, got %d", circuitLen, len(proof.RoundProofs))
	}

	tr := transcript.New()
	tr.Absorb(toBytes(proof.OutputLayer))
	numVars := log2(len(proof.OutputLayer))
	rA := make([]field.Element, numVars)
	for i := range rA {
		rA[i] = tr.ChallengeField()
	}

	addVec, mulVec, err := c.LayerAddMul(circuitLen - 1)
	if err != nil {
		return nil, err
	}
	newAdd, newMul, err := reduceOnVars(addVec, mulVec, rA)
	if err != nil {
		return nil, err
	}

	w0Poly, err := polynomial.NewMultilinear(proof.OutputLayer)
	if err != nil {
		return nil, err
	}
	currentClaim, err := w0Poly.Evaluate(rA)
	if err != nil {
		return nil, err
	}

	if len(proof.WEvals) != circuitLen {
		return nil, zkerr.New(zkerr.KindProofInvalid, "gkr: expected %d oracle-pair entries, got %d", circuitLen, len(proof.WEvals))
	}

	var lastRB, lastRC []field.Element

	for i, roundProof := range proof.RoundProofs {
		sub, err := verifySumCheckRound(roundProof, currentClaim)
		if err != nil {
			return nil, zkerr.WithLayer(zkerr.KindProofInvalid, i, "gkr: sum-check verification failed: %v", err)
		}

		rB, rC := splitChallenges(sub.Challenges)
		lastRB, lastRC = rB, rC

		// Every round, including the last, must satisfy the gluing
		// identity: f_i(r_b,r_c) = add_i(r_b,r_c)*(w(r_b)+w(r_c)) +
		// mul_i(r_b,r_c)*(w(r_b)*w(r_c)). For the last round, w(r_b)/
		// w(r_c) are the untrusted InputOpening values the caller must
		// separately confirm against a commitment to the input layer.
		newAddEval, err := evalAMLE(newAdd, sub.Challenges)
		if err != nil {
			return nil, err
		}
		newMulEval, err := evalAMLE(newMul, sub.Challenges)
		if err != nil {
			return nil, err
		}

		wB, wC := proof.WEvals[i][0], proof.WEvals[i][1]
		wSum := wB.Add(wC)
		wMul := wB.Mul(wC)
		check := newAddEval.Mul(wSum).Add(newMulEval.Mul(wMul))
		if !check.Equal(sub.FinalSum) {
			return nil, zkerr.WithLayer(zkerr.KindProofInvalid, i, "gkr: oracle gluing check failed")
		}

		if i < len(proof.RoundProofs)-1 {
			layerIdx := circuitLen - i - 2
			alpha, beta := gkrTrickChallenges()
			addVecNext, mulVecNext, err := c.LayerAddMul(layerIdx)
			if err != nil {
				return nil, err
			}
			newAdd, newMul, err = twoToOneFold(addVecNext, mulVecNext, rB, rC, alpha, beta)
			if err != nil {
				return nil, err
			}
			// The next layer's sum-check proves the 2-to-1 combination of
			// this layer's two oracle claims, as the prover built it.
			currentClaim = alpha.Mul(wB).Add(beta.Mul(wC))
		}
	}

	wB, wC := proof.WEvals[len(proof.WEvals)-1][0], proof.WEvals[len(proof.WEvals)-1][1]
	return &InputOpening{RB: lastRB, RC: lastRC, ValueB: wB, ValueC: wC}, nil
}

// gkrTrickChallenges derives α, β from a fresh per-call sponge, matching
// the source's gkr_2_to_1_trick convention: back-to-back squeezes with no
// intervening absorb and no continuation of the outer protocol
// transcript.
func gkrTrickChallenges() (field.Element, field.Element) {
	tr := transcript.New()
	alpha := tr.ChallengeField()
	beta := tr.ChallengeField()
	return alpha, beta
}

func reduceOnVars(addVec, mulVec []field.Element, rs []field.Element) (*polynomial.Multilinear, *polynomial.Multilinear, error) {
	addMLE, err := polynomial.NewMultilinear(addVec)
	if err != nil {
		return nil, nil, err
	}
	mulMLE, err := polynomial.NewMultilinear(mulVec)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rs {
		addMLE, err = addMLE.PartialEvaluate(r, 0)
		if err != nil {
			return nil, nil, err
		}
		mulMLE, err = mulMLE.PartialEvaluate(r, 0)
		if err != nil {
			return nil, nil, err
		}
	}
	return addMLE, mulMLE, nil
}

func twoToOneFold(addVec, mulVec []field.Element, rB, rC []field.Element, alpha, beta field.Element) (*polynomial.Multilinear, *polynomial.Multilinear, error) {
	addRB, addRC, err := foldBoth(addVec, rB, rC)
	if err != nil {
		return nil, nil, err
	}
	mulRB, mulRC, err := foldBoth(mulVec, rB, rC)
	if err != nil {
		return nil, nil, err
	}

	newAdd := make([]field.Element, len(addRB))
	newMul := make([]field.Element, len(mulRB))
	for i := range newAdd {
		newAdd[i] = alpha.Mul(addRB[i]).Add(beta.Mul(addRC[i]))
	}
	for i := range newMul {
		newMul[i] = alpha.Mul(mulRB[i]).Add(beta.Mul(mulRC[i]))
	}

	newAddMLE, err := polynomial.NewMultilinear(newAdd)
	if err != nil {
		return nil, nil, err
	}
	newMulMLE, err := polynomial.NewMultilinear(newMul)
	if err != nil {
		return nil, nil, err
	}
	return newAddMLE, newMulMLE, nil
}

func foldBoth(vec []field.Element, rB, rC []field.Element) ([]field.Element, []field.Element, error) {
	mle, err := polynomial.NewMultilinear(vec)
	if err != nil {
		return nil, nil, err
	}
	rbMLE := mle
	for _, r := range rB {
		rbMLE, err = rbMLE.PartialEvaluate(r, 0)
		if err != nil {
			return nil, nil, err
		}
	}
	rcMLE := mle
	for _, r := range rC {
		rcMLE, err = rcMLE.PartialEvaluate(r, 0)
		if err != nil {
			return nil, nil, err
		}
	}
	return rbMLE.Evals(), rcMLE.Evals(), nil
}

func sumCheckOverAddMul(addMLE, mulMLE *polynomial.Multilinear, sumTerm, mulTerm []field.Element, claimedSum field.Element) (*sumcheck.Proof, error) {
	sumTermMLE, err := polynomial.NewMultilinear(sumTerm)
	if err != nil {
		return nil, err
	}
	mulTermMLE, err := polynomial.NewMultilinear(mulTerm)
	if err != nil {
		return nil, err
	}

	p1, err := polynomial.NewProduct([]*polynomial.Multilinear{addMLE, sumTermMLE})
	if err != nil {
		return nil, err
	}
	p2, err := polynomial.NewProduct([]*polynomial.Multilinear{mulMLE, mulTermMLE})
	if err != nil {
		return nil, err
	}

	tr := transcript.New()
	return sumcheck.Prove(tr, []*polynomial.Product{p1, p2}, claimedSum)
}

func verifySumCheckRound(proof *sumcheck.Proof, expectedClaim field.Element) (*sumcheck.SubClaim, error) {
	if !proof.ClaimedSum.Equal(expectedClaim) {
		return nil, zkerr.New(zkerr.KindProofInvalid, "gkr: round proof's claimed sum does not match the gluing step")
	}
	tr := transcript.New()
	return sumcheck.Verify(tr, proof)
}

func evalAMLE(mle *polynomial.Multilinear, rs []field.Element) (field.Element, error) {
	return mle.Evaluate(rs)
}

func evalAt(w []field.Element, rs []field.Element) (field.Element, error) {
	mle, err := polynomial.NewMultilinear(w)
	if err != nil {
		return field.Element{}, err
	}
	return mle.Evaluate(rs)
}

func splitChallenges(challenges []field.Element) ([]field.Element, []field.Element) {
	mid := len(challenges) / 2
	rB := make([]field.Element, mid)
	rC := make([]field.Element, len(challenges)-mid)
	copy(rB, challenges[:mid])
	copy(rC, challenges[mid:])
	return rB, rC
}

func padToPowerOfTwo(w []field.Element) []field.Element {
	n := len(w)
	if n == 1 {
		return []field.Element{w[0], field.Zero()}
	}
	if n&(n-1) == 0 {
		out := make([]field.Element, n)
		copy(out, w)
		return out
	}
	target := 1
	for target < n {
		target <<= 1
	}
	out := make([]field.Element, target)
	copy(out, w)
	for i := n; i < target; i++ {
		out[i] = field.Zero()
	}
	return out
}

func toBytes(w []field.Element) []byte {
	out := make([]byte, 0, len(w)*field.Bytes)
	for _, e := range w {
		out = append(out, e.Bytes()...)
	}
	return out
}

func log2(n int) int {
	v := 0
	for (1 << uint(v)) < n {
		v++
	}
	return v
}
