package polynomial

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Univariate is a univariate polynomial stored as coefficients from the
// constant term upward.
type Univariate struct {
	coeffs []field.Element
}

// NewUnivariate wraps coeffs (constant term first) as a polynomial.
func NewUnivariate(coeffs []field.Element) *Univariate {
	cp := make([]field.Element, len(coeffs))
	copy(cp, coeffs)
	return &Univariate{coeffs: cp}
}

// Coeffs returns the constant-term-first coefficient slice.
func (u *Univariate) Coeffs() []field.Element {
	return u.coeffs
}

// Degree returns len(coeffs)-1, or -1 for the empty polynomial.
func (u *Univariate) Degree() int {
	return len(u.coeffs) - 1
}

// Evaluate applies Horner's rule starting from the highest-order
// coefficient.
func (u *Univariate) Evaluate(x field.Element) field.Element {
	if len(u.coeffs) == 0 {
		return field.Zero()
	}
	acc := u.coeffs[len(u.coeffs)-1]
	for i := len(u.coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(u.coeffs[i])
	}
	return acc
}

// Interpolate builds the unique lowest-degree polynomial passing through
// (xs[i], ys[i]) via Lagrange interpolation. xs must be distinct.
func Interpolate(xs, ys []field.Element) (*Univariate, error) {
	if len(xs) != len(ys) {
		return nil, zkerr.New(zkerr.KindInputShape, "interpolate: len(xs)=%d != len(ys)=%d", len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "interpolate: no points given")
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if xs[i].Equal(xs[j]) {
				return nil, zkerr.New(zkerr.KindInputShape, "interpolate: duplicate x value at indices %d,%d", i, j)
			}
		}
	}

	result := make([]field.Element, n)
	for i := range result {
		result[i] = field.Zero()
	}

	for i := 0; i < n; i++ {
		// basis starts as the constant polynomial 1.
		basis := []field.Element{field.One()}
		denom := field.One()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			basis = mulLinear(basis, xs[j])
			denom = denom.Mul(xs[i].Sub(xs[j]))
		}
		scale := ys[i].Div(denom)
		for k, c := range basis {
			result[k] = result[k].Add(c.Mul(scale))
		}
	}

	return &Univariate{coeffs: result}, nil
}

// mulLinear multiplies poly by (x - root), both in constant-first form.
func mulLinear(poly []field.Element, root field.Element) []field.Element {
	out := make([]field.Element, len(poly)+1)
	for i, c := range poly {
		out[i] = out[i].Add(c.Mul(root.Neg()))
		out[i+1] = out[i+1].Add(c)
	}
	return out
}

// Add returns u + other as a dense convolution-free coefficient sum.
func (u *Univariate) Add(other *Univariate) *Univariate {
	n := len(u.coeffs)
	if len(other.coeffs) > n {
		n = len(other.coeffs)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = field.Zero()
		if i < len(u.coeffs) {
			out[i] = out[i].Add(u.coeffs[i])
		}
		if i < len(other.coeffs) {
			out[i] = out[i].Add(other.coeffs[i])
		}
	}
	return &Univariate{coeffs: out}
}

// Mul returns the dense convolution u * other.
func (u *Univariate) Mul(other *Univariate) *Univariate {
	if len(u.coeffs) == 0 || len(other.coeffs) == 0 {
		return &Univariate{coeffs: []field.Element{}}
	}
	out := make([]field.Element, len(u.coeffs)+len(other.coeffs)-1)
	for i := range out {
		out[i] = field.Zero()
	}
	for i, a := range u.coeffs {
		for j, b := range other.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return &Univariate{coeffs: out}
}
