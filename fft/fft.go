// Package fft implements the radix-2 DIT transform that the FRI protocol
// builds on, grounded on
// original_source/protocols/src/fft.rs's FastFourierTransform.
package fft

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Evaluate maps coefficients (constant term first) to their evaluations
// over the domain generated by the n-th root of unity, n = len(coeffs).
// len(coeffs) must be a power of two.
func Evaluate(coeffs []field.Element) ([]field.Element, error) {
	n := len(coeffs)
	if n == 0 || n&(n-1) != 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "fft: length %d is not a power of two", n)
	}
	omega, err := field.GetRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}
	return transform(coeffs, omega), nil
}

// InverseEvaluate maps evaluations back to coefficients using ω⁻¹, without
// the final 1/n scaling. Callers that want exact coefficients call
// Interpolate instead.
func InverseEvaluate(evals []field.Element) ([]field.Element, error) {
	n := len(evals)
	if n == 0 || n&(n-1) != 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "fft: length %d is not a power of two", n)
	}
	omega, err := field.GetRootOfUnity(uint64(n))
	if err != nil {
		return nil, err
	}
	return transform(evals, omega.Inverse()), nil
}

// Interpolate recovers the unique coefficient vector whose evaluation
// over the n-th-root-of-unity domain is evals, scaling InverseEvaluate's
// result by n⁻¹.
func Interpolate(evals []field.Element) ([]field.Element, error) {
	raw, err := InverseEvaluate(evals)
	if err != nil {
		return nil, err
	}
	nInv := field.FromUint64(uint64(len(evals))).Inverse()
	out := make([]field.Element, len(raw))
	for i, v := range raw {
		out[i] = v.Mul(nInv)
	}
	return out, nil
}

// transform runs the iterative bit-reversal radix-2 DIT butterfly over
// root. Bit-for-bit identical to a recursive Cooley-Tukey formulation,
// matching gnark-crypto's own fft.Domain butterfly structure.
func transform(input []field.Element, root field.Element) []field.Element {
	n := len(input)
	out := make([]field.Element, n)
	copy(out, input)
	bitReverse(out)

	for size := 2; size <= n; size <<= 1 {
		halfSize := size / 2
		stepPow := n / size
		stepRoot := root.Pow(uint64(stepPow))

		for start := 0; start < n; start += size {
			w := field.One()
			for k := 0; k < halfSize; k++ {
				even := out[start+k]
				odd := out[start+k+halfSize].Mul(w)
				out[start+k] = even.Add(odd)
				out[start+k+halfSize] = even.Sub(odd)
				w = w.Mul(stepRoot)
			}
		}
	}

	return out
}

func bitReverse(a []field.Element) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}
