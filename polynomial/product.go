package polynomial

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Product is a product polynomial: the elementwise product of a set of
// multilinear factors, all of the same length. "Degree" is the factor
// count.
type Product struct {
	factors []*Multilinear
}

// NewProduct wraps factors as a product polynomial. All factors must
// share the same length.
func NewProduct(factors []*Multilinear) (*Product, error) {
	if len(factors) == 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "product: no factors given")
	}
	n := len(factors[0].evals)
	for i, f := range factors {
		if len(f.evals) != n {
			return nil, zkerr.New(zkerr.KindInputShape, "product: factor %d has length %d, want %d", i, len(f.evals), n)
		}
	}
	return &Product{factors: factors}, nil
}

// Factors returns the underlying multilinear factors.
func (p *Product) Factors() []*Multilinear {
	return p.factors
}

// Degree returns the number of factors.
func (p *Product) Degree() int {
	return len(p.factors)
}

// NumVars returns the number of Boolean variables each factor is defined
// over.
func (p *Product) NumVars() int {
	return p.factors[0].NumVars()
}

// PartialEvaluate partially evaluates every factor independently at r,
// variable j.
func (p *Product) PartialEvaluate(r field.Element, j int) (*Product, error) {
	out := make([]*Multilinear, len(p.factors))
	for i, f := range p.factors {
		next, err := f.PartialEvaluate(r, j)
		if err != nil {
			return nil, err
		}
		out[i] = next
	}
	return &Product{factors: out}, nil
}

// UnivariateToEvaluation samples the degree-≤d round polynomial implied by
// this product at points 0, 1, ..., d, where d is the factor count. Each
// sample P_i is obtained by partially evaluating variable 0 at F(i) in
// every factor, then summing the elementwise product of the resulting
// half-length factor tables over all their entries.
func (p *Product) UnivariateToEvaluation() ([]field.Element, error) {
	d := p.Degree()
	out := make([]field.Element, d+1)

	for i := 0; i <= d; i++ {
		point := field.FromUint64(uint64(i))
		sample, err := p.PartialEvaluate(point, 0)
		if err != nil {
			return nil, err
		}
		sum := field.Zero()
		for idx := 0; idx < len(sample.factors[0].evals); idx++ {
			prod := field.One()
			for _, f := range sample.factors {
				prod = prod.Mul(f.evals[idx])
			}
			sum = sum.Add(prod)
		}
		out[i] = sum
	}

	return out, nil
}
