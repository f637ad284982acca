// Package succinctgkr combines GKR with a multilinear KZG opening of the
// circuit's input layer, replacing gkr.InputOpening's bare (value_b,
// value_c) pair — which a verifier would otherwise have to trust — with
// a commitment the verifier checks against two pairing equations.
// Grounded on spec.md §4.9 step 6 and the gkr/kzg packages this module
// already builds.
package succinctgkr

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/pope-h/zero-knowledge/circuit"
	"github.com/pope-h/zero-knowledge/gkr"
	"github.com/pope-h/zero-knowledge/kzg"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Proof is a GKR proof plus the input layer's commitment and the two
// KZG openings (at r_b and r_c) the verifier needs to close the loop
// GKR itself leaves open.
type Proof struct {
	GKR        *gkr.Proof
	Commitment bn254.G1Affine
	OpenB      *kzg.Proof
	OpenC      *kzg.Proof
}

// Prove runs GKR over c, then commits the input layer and opens it at
// the two reduced points GKR's input-layer claim names.
func Prove(setup *kzg.Setup, c *circuit.Circuit) (*Proof, error) {
	proof, opening, err := gkr.Prove(c)
	if err != nil {
		return nil, err
	}

	commitment, err := kzg.Commit(setup, c.Inputs)
	if err != nil {
		return nil, err
	}

	openB, err := kzg.Open(setup, c.Inputs, opening.RB)
	if err != nil {
		return nil, err
	}
	openC, err := kzg.Open(setup, c.Inputs, opening.RC)
	if err != nil {
		return nil, err
	}

	if !openB.Value.Equal(opening.ValueB) || !openC.Value.Equal(opening.ValueC) {
		return nil, zkerr.New(zkerr.KindProofInvalid, "succinctgkr: KZG-opened value disagrees with GKR's claimed input-layer value")
	}

	return &Proof{GKR: proof, Commitment: commitment, OpenB: openB, OpenC: openC}, nil
}

// Verify checks the GKR proof's internal consistency, then verifies both
// KZG openings against the claimed input-layer values GKR's verifier
// derives.
func Verify(setup *kzg.Setup, c *circuit.Circuit, proof *Proof) (bool, error) {
	opening, err := gkr.Verify(c, proof.GKR)
	if err != nil {
		return false, err
	}

	if !proof.OpenB.Value.Equal(opening.ValueB) {
		return false, zkerr.New(zkerr.KindProofInvalid, "succinctgkr: opened value at r_b disagrees with GKR's claimed input-layer value")
	}
	if !proof.OpenC.Value.Equal(opening.ValueC) {
		return false, zkerr.New(zkerr.KindProofInvalid, "succinctgkr: opened value at r_c disagrees with GKR's claimed input-layer value")
	}

	okB, err := kzg.VerifyOpening(setup, proof.Commitment, opening.RB, proof.OpenB)
	if err != nil {
		return false, err
	}
	if !okB {
		return false, nil
	}
	return kzg.VerifyOpening(setup, proof.Commitment, opening.RC, proof.OpenC)
}
