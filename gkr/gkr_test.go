package gkr

import (
	"testing"

	"github.com/pope-h/zero-knowledge/circuit"
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/polynomial"
)

func fe(v int64) field.Element { return field.FromInt64(v) }

func setupTestCircuit8() *circuit.Circuit {
	c := circuit.New([]field.Element{fe(1), fe(2), fe(3), fe(4), fe(5), fe(6), fe(7), fe(8)})
	c.AddLayer(circuit.Layer{Gates: []circuit.Gate{
		{Left: 0, Right: 1, Op: circuit.Add, Output: 0},
		{Left: 2, Right: 3, Op: circuit.Mul, Output: 1},
		{Left: 4, Right: 5, Op: circuit.Mul, Output: 2},
		{Left: 6, Right: 7, Op: circuit.Mul, Output: 3},
	}})
	c.AddLayer(circuit.Layer{Gates: []circuit.Gate{
		{Left: 0, Right: 1, Op: circuit.Add, Output: 0},
		{Left: 2, Right: 3, Op: circuit.Mul, Output: 1},
	}})
	c.AddLayer(circuit.Layer{Gates: []circuit.Gate{
		{Left: 0, Right: 1, Op: circuit.Add, Output: 0},
	}})
	return c
}

func TestProveVerifyRoundTrip(t *testing.T) {
	c := setupTestCircuit8()

	proof, opening, err := Prove(c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	gotOpening, err := Verify(c, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if !gotOpening.ValueB.Equal(opening.ValueB) || !gotOpening.ValueC.Equal(opening.ValueC) {
		t.Fatalf("verifier opening (%s,%s) != prover opening (%s,%s)",
			gotOpening.ValueB.String(), gotOpening.ValueC.String(),
			opening.ValueB.String(), opening.ValueC.String())
	}
	if len(gotOpening.RB) != len(opening.RB) || len(gotOpening.RC) != len(opening.RC) {
		t.Fatalf("verifier opening point shape mismatch")
	}

	inputPoly, err := polynomial.NewMultilinear(c.Inputs)
	if err != nil {
		t.Fatalf("NewMultilinear: %v", err)
	}
	wantB, err := inputPoly.Evaluate(gotOpening.RB)
	if err != nil {
		t.Fatalf("Evaluate RB: %v", err)
	}
	wantC, err := inputPoly.Evaluate(gotOpening.RC)
	if err != nil {
		t.Fatalf("Evaluate RC: %v", err)
	}
	if !wantB.Equal(gotOpening.ValueB) {
		t.Fatalf("opening.ValueB = %s, want %s", gotOpening.ValueB.String(), wantB.String())
	}
	if !wantC.Equal(gotOpening.ValueC) {
		t.Fatalf("opening.ValueC = %s, want %s", gotOpening.ValueC.String(), wantC.String())
	}
}

func TestVerifyRejectsTamperedOutputLayer(t *testing.T) {
	c := setupTestCircuit8()
	proof, _, err := Prove(c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.OutputLayer[0] = proof.OutputLayer[0].Add(fe(1))

	if _, err := Verify(c, proof); err == nil {
		t.Fatalf("expected verification failure for tampered output layer")
	}
}

func TestVerifyRejectsTamperedWEval(t *testing.T) {
	c := setupTestCircuit8()
	proof, _, err := Prove(c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.WEvals[0][0] = proof.WEvals[0][0].Add(fe(1))

	if _, err := Verify(c, proof); err == nil {
		t.Fatalf("expected verification failure for tampered oracle pair")
	}
}

func TestVerifyRejectsWrongRoundProofCount(t *testing.T) {
	c := setupTestCircuit8()
	proof, _, err := Prove(c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.RoundProofs = proof.RoundProofs[:len(proof.RoundProofs)-1]

	if _, err := Verify(c, proof); err == nil {
		t.Fatalf("expected verification failure for truncated round proof list")
	}
}

func TestSingleLayerCircuit(t *testing.T) {
	c := circuit.New([]field.Element{fe(3), fe(4)})
	c.AddLayer(circuit.Layer{Gates: []circuit.Gate{{Left: 0, Right: 1, Op: circuit.Mul, Output: 0}}})

	proof, opening, err := Prove(c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	gotOpening, err := Verify(c, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !gotOpening.ValueB.Equal(opening.ValueB) || !gotOpening.ValueC.Equal(opening.ValueC) {
		t.Fatalf("opening mismatch on single-layer circuit")
	}
}
