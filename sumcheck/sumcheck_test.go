package sumcheck

import (
	"testing"

	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/polynomial"
	"github.com/pope-h/zero-knowledge/transcript"
)

func fe(v int64) field.Element { return field.FromInt64(v) }

func sumOverHypercube(products []*polynomial.Product) field.Element {
	sum := field.Zero()
	numVars := products[0].NumVars()
	for x := 0; x < (1 << uint(numVars)); x++ {
		rs := make([]field.Element, numVars)
		for b := 0; b < numVars; b++ {
			bit := (x >> uint(numVars-1-b)) & 1
			rs[b] = fe(int64(bit))
		}
		for _, p := range products {
			prod := field.One()
			for _, f := range p.Factors() {
				v, _ := f.Evaluate(rs)
				prod = prod.Mul(v)
			}
			sum = sum.Add(prod)
		}
	}
	return sum
}

func TestProveVerifyRoundTrip(t *testing.T) {
	a, _ := polynomial.NewMultilinear([]field.Element{fe(1), fe(2), fe(3), fe(4)})
	b, _ := polynomial.NewMultilinear([]field.Element{fe(5), fe(6), fe(7), fe(8)})
	product, err := polynomial.NewProduct([]*polynomial.Multilinear{a, b})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	products := []*polynomial.Product{product}
	claimed := sumOverHypercube(products)

	proverTr := transcript.New()
	proof, err := Prove(proverTr, products, claimed)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifierTr := transcript.New()
	sub, err := Verify(verifierTr, proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	got, err := a.Evaluate(sub.Challenges)
	if err != nil {
		t.Fatalf("a.Evaluate: %v", err)
	}
	gotB, err := b.Evaluate(sub.Challenges)
	if err != nil {
		t.Fatalf("b.Evaluate: %v", err)
	}
	if want := got.Mul(gotB); !want.Equal(sub.FinalSum) {
		t.Fatalf("oracle check failed: a(r)*b(r) = %s, want %s", want.String(), sub.FinalSum.String())
	}
}

func TestVerifyRejectsTamperedSum(t *testing.T) {
	a, _ := polynomial.NewMultilinear([]field.Element{fe(1), fe(2), fe(3), fe(4)})
	product, _ := polynomial.NewProduct([]*polynomial.Multilinear{a})
	products := []*polynomial.Product{product}
	claimed := sumOverHypercube(products)

	proverTr := transcript.New()
	proof, err := Prove(proverTr, products, claimed)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.ClaimedSum = proof.ClaimedSum.Add(fe(1))

	verifierTr := transcript.New()
	if _, err := Verify(verifierTr, proof); err == nil {
		t.Fatalf("expected verification failure for tampered claimed sum")
	}
}

func TestVerifyRejectsTamperedRoundPoly(t *testing.T) {
	a, _ := polynomial.NewMultilinear([]field.Element{fe(1), fe(2), fe(3), fe(4)})
	product, _ := polynomial.NewProduct([]*polynomial.Multilinear{a})
	products := []*polynomial.Product{product}
	claimed := sumOverHypercube(products)

	proverTr := transcript.New()
	proof, err := Prove(proverTr, products, claimed)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	proof.RoundPolys[0][0] = proof.RoundPolys[0][0].Add(fe(1))

	verifierTr := transcript.New()
	if _, err := Verify(verifierTr, proof); err == nil {
		t.Fatalf("expected verification failure for tampered round polynomial")
	}
}
