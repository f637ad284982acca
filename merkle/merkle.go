// Package merkle implements the binary hash tree used to commit to FRI's
// folded evaluation vectors, grounded on the teacher's
// internal/vybium-starks-vm/core.MerkleTree.
package merkle

import (
	"bytes"

	"golang.org/x/crypto/sha3"

	"github.com/pope-h/zero-knowledge/zkerr"
)

// Tree is a binary Merkle tree over byte leaves.
type Tree struct {
	layers [][][]byte
}

// New hashes each leaf and builds parents by pairwise H(left||right). An
// unpaired odd tail node at any level is hashed with itself.
func New(leaves [][]byte) *Tree {
	hashed := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		hashed[i] = hashLeaf(leaf)
	}

	layers := [][][]byte{hashed}
	current := hashed
	for len(current) > 1 {
		next := make([][]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, hashPair(current[i], current[i+1]))
			} else {
				next = append(next, hashPair(current[i], current[i]))
			}
		}
		layers = append(layers, next)
		current = next
	}

	return &Tree{layers: layers}
}

// Root returns the tree's root digest, or nil if the tree has no leaves.
func (t *Tree) Root() []byte {
	if len(t.layers) == 0 {
		return nil
	}
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return nil
	}
	return top[0]
}

// Proof is an inclusion proof for one leaf: the sibling digest at each
// level on the path to the root, plus the leaf's index (needed by the
// caller to know concatenation order and, for FRI, the domain position).
type Proof struct {
	Siblings  [][]byte
	LeafIndex int
}

// Prove builds the inclusion proof for the leaf at index.
func (t *Tree) Prove(index int) (*Proof, error) {
	if len(t.layers) == 0 || index < 0 || index >= len(t.layers[0]) {
		return nil, zkerr.New(zkerr.KindInputShape, "merkle: index %d out of range", index)
	}

	siblings := make([][]byte, 0, len(t.layers)-1)
	idx := index
	for level := 0; level < len(t.layers)-1; level++ {
		layer := t.layers[level]
		siblingIdx := idx ^ 1
		if siblingIdx < len(layer) {
			siblings = append(siblings, layer[siblingIdx])
		} else {
			siblings = append(siblings, layer[idx])
		}
		idx /= 2
	}

	return &Proof{Siblings: siblings, LeafIndex: index}, nil
}

// VerifyProof recomputes the path from leaf to root using proof.LeafIndex
// to decide concatenation order at each level, and compares against root.
func VerifyProof(root []byte, leaf []byte, proof *Proof) bool {
	if proof == nil {
		return false
	}
	hash := hashLeaf(leaf)
	idx := proof.LeafIndex
	for _, sibling := range proof.Siblings {
		if idx%2 == 0 {
			hash = hashPair(hash, sibling)
		} else {
			hash = hashPair(sibling, hash)
		}
		idx /= 2
	}
	return bytes.Equal(hash, root)
}

func hashLeaf(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

func hashPair(left, right []byte) []byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	sum := sha3.Sum256(buf)
	return sum[:]
}
