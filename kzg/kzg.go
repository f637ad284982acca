// Package kzg implements a multilinear KZG polynomial commitment over
// bn254, grounded on
// original_source/protocols/src/kzg/{kzg_protocol,kzg_helper_functions,
// trusted_setup}.rs. The trusted setup here is test-only (a known tau
// vector), matching the non-goal that excludes a real ceremony.
package kzg

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Setup is a multilinear KZG trusted setup over v = len(Tau) variables:
// an encrypted Lagrange basis of length 2^v in G1, and one G2 element
// per variable encoding tau_j. G1Gen/G2Gen are retained so
// VerifyOpening doesn't need to re-derive the curve generators.
type Setup struct {
	G1     []bn254.G1Affine
	G2     []bn254.G2Affine
	G1Gen  bn254.G1Affine
	G2Gen  bn254.G2Affine
	NumVar int
}

// NewSetup builds a trusted setup from an explicit secret tau vector.
// Real deployments would derive tau from a multi-party ceremony; this
// library does not implement one (§1 non-goal).
func NewSetup(tau []field.Element) (*Setup, error) {
	if len(tau) == 0 {
		return nil, zkerr.New(zkerr.KindInputShape, "kzg: tau must have at least one variable")
	}
	basis := computeLagrangeBasis(tau)

	_, _, g1Gen, g2Gen := bn254.Generators()

	g1 := make([]bn254.G1Affine, len(basis))
	for i, l := range basis {
		g1[i].ScalarMultiplication(&g1Gen, l.BigInt())
	}

	g2 := make([]bn254.G2Affine, len(tau))
	for j, t := range tau {
		g2[j].ScalarMultiplication(&g2Gen, t.BigInt())
	}

	return &Setup{G1: g1, G2: g2, G1Gen: g1Gen, G2Gen: g2Gen, NumVar: len(tau)}, nil
}

// computeLagrangeBasis returns the length-2^v multilinear Lagrange
// basis evaluated at tau, in MSB-first variable order: L_i(tau) =
// product_j (tau_j if bit j of i is 1 else 1-tau_j), bit 0 the most
// significant.
func computeLagrangeBasis(tau []field.Element) []field.Element {
	v := len(tau)
	size := 1 << uint(v)
	basis := make([]field.Element, size)
	for i := 0; i < size; i++ {
		l := field.One()
		for j := 0; j < v; j++ {
			bit := (i >> uint(v-1-j)) & 1
			if bit == 1 {
				l = l.Mul(tau[j])
			} else {
				l = l.Mul(field.One().Sub(tau[j]))
			}
		}
		basis[i] = l
	}
	return basis
}

// Commit returns g1^{poly(tau)} = Σᵢ poly[i]·G1[i], the KZG commitment
// to poly (given in evaluation-table/Lagrange-coefficient form, length
// 2^v).
func Commit(setup *Setup, poly []field.Element) (bn254.G1Affine, error) {
	if len(poly) != len(setup.G1) {
		return bn254.G1Affine{}, zkerr.New(zkerr.KindInputShape, "kzg: poly has %d entries, setup basis has %d", len(poly), len(setup.G1))
	}
	return multiExpG1(setup.G1, poly)
}

// Proof is the prover's quotient commitment sequence for one opening:
// one G1 element per opened variable.
type Proof struct {
	Quotients []bn254.G1Affine
	Value     field.Element
}

// Open proves poly(point) = v by iteratively splitting the table on
// its leading variable, committing the quotient (second half minus
// first half, blown back up to the full 2^v length by constant
// extension in the already-eliminated variables), then folding the
// table at the next coordinate of point.
func Open(setup *Setup, poly []field.Element, point []field.Element) (*Proof, error) {
	if len(point) != setup.NumVar {
		return nil, zkerr.New(zkerr.KindInputShape, "kzg: point has %d coordinates, setup has %d variables", len(point), setup.NumVar)
	}
	if len(poly) != len(setup.G1) {
		return nil, zkerr.New(zkerr.KindInputShape, "kzg: poly has %d entries, setup basis has %d", len(poly), len(setup.G1))
	}

	v := setup.NumVar
	value, err := evaluateTable(poly, point)
	if err != nil {
		return nil, err
	}

	cur := make([]field.Element, len(poly))
	for i, e := range poly {
		cur[i] = e.Sub(value)
	}

	quotients := make([]bn254.G1Affine, v)
	for j := 0; j < v; j++ {
		half := len(cur) / 2
		first, second := cur[:half], cur[half:]

		q := make([]field.Element, half)
		for i := range q {
			q[i] = second[i].Sub(first[i])
		}
		blown := blowUp(q, j+1)

		com, err := multiExpG1(setup.G1, blown)
		if err != nil {
			return nil, err
		}
		quotients[j] = com

		cur = remainder(first, second, point[j])
	}

	return &Proof{Quotients: quotients, Value: value}, nil
}

// blowUp duplicates q 'times' times (each duplication doubling the
// length) to restore the variables eliminated by earlier rounds as
// constant extensions, so the result can be committed against the
// full-width encrypted basis.
func blowUp(q []field.Element, times int) []field.Element {
	out := q
	for i := 0; i < times; i++ {
		doubled := make([]field.Element, len(out)*2)
		copy(doubled, out)
		copy(doubled[len(out):], out)
		out = doubled
	}
	return out
}

// remainder folds the table at the leading variable's assigned value a:
// result[i] = first[i] + a*(second[i]-first[i]).
func remainder(first, second []field.Element, a field.Element) []field.Element {
	out := make([]field.Element, len(first))
	for i := range out {
		out[i] = first[i].Add(a.Mul(second[i].Sub(first[i])))
	}
	return out
}

func evaluateTable(table []field.Element, point []field.Element) (field.Element, error) {
	cur := make([]field.Element, len(table))
	copy(cur, table)
	for _, a := range point {
		half := len(cur) / 2
		if half == 0 {
			return field.Element{}, zkerr.New(zkerr.KindInputShape, "kzg: table shorter than point")
		}
		cur = remainder(cur[:half], cur[half:], a)
	}
	if len(cur) != 1 {
		return field.Element{}, zkerr.New(zkerr.KindInputShape, "kzg: table/point length mismatch")
	}
	return cur[0], nil
}

// VerifyOpening checks the bilinear-pairing identity
// e(Commit - g1^v, g2) = product_j e(g1^{Qj(tau)}, g2^{tau_j} - g2^{a_j}).
func VerifyOpening(setup *Setup, commitment bn254.G1Affine, point []field.Element, proof *Proof) (bool, error) {
	if len(proof.Quotients) != len(point) || len(point) != setup.NumVar {
		return false, zkerr.New(zkerr.KindSetupInvalid, "kzg: expected %d quotients for %d-variable point, got %d", setup.NumVar, len(point), len(proof.Quotients))
	}

	var g1v bn254.G1Affine
	g1v.ScalarMultiplication(&setup.G1Gen, proof.Value.BigInt())

	var commitMinusV bn254.G1Affine
	commitMinusV.Sub(&commitment, &g1v)

	p := make([]bn254.G1Affine, 0, len(point)+1)
	q := make([]bn254.G2Affine, 0, len(point)+1)
	p = append(p, commitMinusV)
	q = append(q, setup.G2Gen)

	for j, a := range point {
		var aG2 bn254.G2Affine
		aG2.ScalarMultiplication(&setup.G2Gen, a.BigInt())
		var tauMinusA bn254.G2Affine
		tauMinusA.Sub(&setup.G2[j], &aG2)

		var negQ bn254.G1Affine
		negQ.Neg(&proof.Quotients[j])

		p = append(p, negQ)
		q = append(q, tauMinusA)
	}

	ok, err := bn254.PairingCheck(p, q)
	if err != nil {
		return false, zkerr.Wrap(zkerr.KindProofInvalid, err, "kzg: pairing check failed")
	}
	return ok, nil
}

// multiExpG1 computes Σᵢ scalars[i]·basis[i] by Jacobian accumulation.
func multiExpG1(basis []bn254.G1Affine, scalars []field.Element) (bn254.G1Affine, error) {
	if len(basis) != len(scalars) {
		return bn254.G1Affine{}, zkerr.New(zkerr.KindInputShape, "kzg: basis has %d points, scalars has %d", len(basis), len(scalars))
	}
	var acc bn254.G1Jac
	for i, s := range scalars {
		if s.IsZero() {
			continue
		}
		var term bn254.G1Jac
		term.FromAffine(&basis[i])
		term.ScalarMultiplication(&term, s.BigInt())
		acc.AddAssign(&term)
	}
	var res bn254.G1Affine
	res.FromJacobian(&acc)
	return res, nil
}
