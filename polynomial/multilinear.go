// Package polynomial implements the multilinear, univariate, and product
// polynomial representations used throughout the sum-check and GKR
// protocols, grounded on original_source/protocols/src/{multi_linear,lib,
// product_poly}.rs.
package polynomial

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Multilinear is a multilinear polynomial over v variables, stored as the
// 2^v evaluations over the Boolean hypercube. Variable 0 is the
// most-significant index bit.
type Multilinear struct {
	evals []field.Element
}

// NewMultilinear wraps evals as a multilinear polynomial. len(evals) must
// be a power of two.
func NewMultilinear(evals []field.Element) (*Multilinear, error) {
	n := len(evals)
	if n == 0 || n&(n-1) != 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "multilinear: length %d is not a power of two", n)
	}
	cp := make([]field.Element, n)
	copy(cp, evals)
	return &Multilinear{evals: cp}, nil
}

// NumVars returns the number of Boolean variables this polynomial is
// defined over.
func (m *Multilinear) NumVars() int {
	n := len(m.evals)
	v := 0
	for n > 1 {
		n >>= 1
		v++
	}
	return v
}

// Evals returns the underlying hypercube table. The slice is m's own
// storage, not a copy: mutating it in place mutates m.
func (m *Multilinear) Evals() []field.Element {
	return m.evals
}

// PartialEvaluate evaluates variable j at r, halving the table length. For
// each pair (y0, y1) differing only in bit j, the result holds
// y0 + (y1 - y0)*r.
func (m *Multilinear) PartialEvaluate(r field.Element, j int) (*Multilinear, error) {
	numVars := m.NumVars()
	if j < 0 || j >= numVars {
		return nil, zkerr.New(zkerr.KindInputShape, "multilinear: variable index %d out of range [0,%d)", j, numVars)
	}

	n := len(m.evals)
	stride := n >> (uint(j) + 1)
	half := n / 2
	out := make([]field.Element, half)

	outIdx := 0
	for block := 0; block < n; block += stride * 2 {
		for off := 0; off < stride; off++ {
			y0 := m.evals[block+off]
			y1 := m.evals[block+stride+off]
			out[outIdx] = y0.Add(y1.Sub(y0).Mul(r))
			outIdx++
		}
	}

	return &Multilinear{evals: out}, nil
}

// Evaluate evaluates the polynomial at rs by repeatedly partially
// evaluating variable 0, consuming rs left to right.
func (m *Multilinear) Evaluate(rs []field.Element) (field.Element, error) {
	if len(rs) != m.NumVars() {
		return field.Element{}, zkerr.New(zkerr.KindInputShape, "multilinear: expected %d evaluation points, got %d", m.NumVars(), len(rs))
	}

	cur := m
	for _, r := range rs {
		next, err := cur.PartialEvaluate(r, 0)
		if err != nil {
			return field.Element{}, err
		}
		cur = next
	}
	return cur.evals[0], nil
}

// ToBytes concatenates the big-endian encoding of every hypercube entry.
func (m *Multilinear) ToBytes() []byte {
	out := make([]byte, 0, len(m.evals)*field.Bytes)
	for _, e := range m.evals {
		out = append(out, e.Bytes()...)
	}
	return out
}
