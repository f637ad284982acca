package succinctgkr

import (
	"testing"

	"github.com/pope-h/zero-knowledge/circuit"
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/kzg"
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

func testSetup(t *testing.T, numVar int) *kzg.Setup {
	t.Helper()
	tau := make([]field.Element, numVar)
	for i := range tau {
		tau[i] = fe(int64(7 + i*3))
	}
	setup, err := kzg.NewSetup(tau)
	if err != nil {
		t.Fatalf("NewSetup: %v", err)
	}
	return setup
}

func TestProveVerifyRoundTrip(t *testing.T) {
	c := setupTestCircuit8()
	setup := testSetup(t, 3) // 8 inputs => 3 variables

	proof, err := Prove(setup, c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	ok, err := Verify(setup, c, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected honest proof to verify")
	}
}

func TestVerifyRejectsTamperedOpening(t *testing.T) {
	c := setupTestCircuit8()
	setup := testSetup(t, 3)

	proof, err := Prove(setup, c)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	proof.OpenB.Value = proof.OpenB.Value.Add(fe(1))

	ok, err := Verify(setup, c, proof)
	if err == nil && ok {
		t.Fatal("expected tampered opening to be rejected")
	}
}
