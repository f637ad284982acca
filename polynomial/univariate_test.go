package polynomial

import (
	"testing"

	"github.com/pope-h/zero-knowledge/field"
)

func TestEvaluateHorner(t *testing.T) {
	// p(x) = 3 + 2x + x^2
	p := NewUnivariate([]field.Element{fe(3), fe(2), fe(1)})
	got := p.Evaluate(fe(5))
	want := fe(3 + 2*5 + 25)
	if !got.Equal(want) {
		t.Fatalf("Evaluate(5) = %s, want %s", got.String(), want.String())
	}
}

func TestInterpolateRecoversPolynomial(t *testing.T) {
	// p(x) = 1 + x + x^2, sampled at x = 0,1,2,3.
	p := NewUnivariate([]field.Element{fe(1), fe(1), fe(1)})
	xs := []field.Element{fe(0), fe(1), fe(2), fe(3)}
	ys := make([]field.Element, len(xs))
	for i, x := range xs {
		ys[i] = p.Evaluate(x)
	}

	got, err := Interpolate(xs, ys)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	for i, x := range xs {
		if gv := got.Evaluate(x); !gv.Equal(ys[i]) {
			t.Fatalf("interpolated poly at %s = %s, want %s", x.String(), gv.String(), ys[i].String())
		}
	}
	// Also check agreement at a point outside the sample set.
	if !got.Evaluate(fe(10)).Equal(p.Evaluate(fe(10))) {
		t.Fatalf("interpolated polynomial disagrees with source polynomial off the sample set")
	}
}

func TestInterpolateRejectsDuplicateXs(t *testing.T) {
	xs := []field.Element{fe(1), fe(1)}
	ys := []field.Element{fe(1), fe(2)}
	if _, err := Interpolate(xs, ys); err == nil {
		t.Fatalf("expected error for duplicate x values")
	}
}

func TestInterpolateRejectsMismatchedLengths(t *testing.T) {
	xs := []field.Element{fe(1), fe(2)}
	ys := []field.Element{fe(1)}
	if _, err := Interpolate(xs, ys); err == nil {
		t.Fatalf("expected error for mismatched xs/ys lengths")
	}
}

func TestAddAndMul(t *testing.T) {
	a := NewUnivariate([]field.Element{fe(1), fe(2)}) // 1 + 2x
	b := NewUnivariate([]field.Element{fe(3), fe(4)}) // 3 + 4x

	sum := a.Add(b)
	if got := sum.Evaluate(fe(2)); !got.Equal(fe((1 + 2*2) + (3 + 4*2))) {
		t.Fatalf("Add mismatch at x=2: got %s", got.String())
	}

	prod := a.Mul(b)
	x := fe(2)
	want := a.Evaluate(x).Mul(b.Evaluate(x))
	if got := prod.Evaluate(x); !got.Equal(want) {
		t.Fatalf("Mul mismatch at x=2: got %s want %s", got.String(), want.String())
	}
}
