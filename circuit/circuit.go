// Package circuit implements the layered arithmetic circuit GKR runs
// over: gate evaluation, the add_i/mul_i multilinear extensions, and the
// wire-explosion helper that turns a layer's wire values into the
// two-variable tables w_i(b), w_i(c). Grounded on spec.md §4.8 and the
// usage patterns in original_source/protocols/src/gkr_protocol.rs and
// gkr_2_to_1_trick.rs (gkr_circuit.rs itself was not retrieved).
package circuit

import (
	"github.com/pope-h/zero-knowledge/field"
	"github.com/pope-h/zero-knowledge/zkerr"
)

// Op identifies a gate's operation.
type Op int

const (
	Add Op = iota
	Mul
)

// Gate connects two input wires to one output wire of the next layer
// (going toward the circuit's output) via Op.
type Gate struct {
	Left, Right int
	Output      int
	Op          Op
}

// Layer is one layer's gate set.
type Layer struct {
	Gates []Gate
}

// Circuit is a layered arithmetic circuit. Layer 0 reads Inputs; layer i's
// gates index into layer i's input wire values, which are layer i-1's
// output values (or Inputs for layer 0).
type Circuit struct {
	Inputs []field.Element
	Layers []Layer
}

// New constructs an empty circuit over inputs.
func New(inputs []field.Element) *Circuit {
	cp := make([]field.Element, len(inputs))
	copy(cp, inputs)
	return &Circuit{Inputs: cp}
}

// AddLayer appends a layer after all previously added layers; it reads
// the output wires of the layer added before it (or Inputs if it is the
// first).
func (c *Circuit) AddLayer(l Layer) {
	c.Layers = append(c.Layers, l)
}

// Evaluate runs the circuit forward and returns every layer's wire
// values, with Inputs as index 0 and c.Layers[i]'s output values at
// index i+1.
func (c *Circuit) Evaluate() ([][]field.Element, error) {
	trace := make([][]field.Element, len(c.Layers)+1)
	trace[0] = c.Inputs

	for i, layer := range c.Layers {
		in := trace[i]
		out := make([]field.Element, len(layer.Gates))
		for _, g := range layer.Gates {
			if g.Left < 0 || g.Left >= len(in) || g.Right < 0 || g.Right >= len(in) {
				return nil, zkerr.WithLayer(zkerr.KindInputShape, i, "circuit: gate references wire out of range")
			}
			if g.Output < 0 || g.Output >= len(out) {
				return nil, zkerr.WithLayer(zkerr.KindInputShape, i, "circuit: gate output index %d out of range", g.Output)
			}
			l, r := in[g.Left], in[g.Right]
			switch g.Op {
			case Add:
				out[g.Output] = l.Add(r)
			case Mul:
				out[g.Output] = l.Mul(r)
			}
		}
		trace[i+1] = out
	}

	return trace, nil
}

// gateBits returns (outputBits, inputBits) for a layer with gateCount
// gates, following the convention that a single-gate layer uses one bit
// for every position, and otherwise output_bits covers next_pow2(gateCount)
// while input_bits = output_bits + 1 (the layer feeding it has twice the
// wires).
func gateBits(gateCount int) (outputBits, inputBits int) {
	if gateCount <= 1 {
		return 1, 1
	}
	ob := 0
	for (1 << uint(ob)) < gateCount {
		ob++
	}
	return ob, ob + 1
}

// LayerAddMul returns the add_i and mul_i tables for layer index i: two
// tables of length 2^(output_bits + 2*input_bits) indexed by
// (output || left || right) in big-endian bit order, each entry 1 iff a
// gate of that op type connects those indices.
func (c *Circuit) LayerAddMul(i int) (addVec, mulVec []field.Element, err error) {
	if i < 0 || i >= len(c.Layers) {
		return nil, nil, zkerr.New(zkerr.KindInputShape, "circuit: layer index %d out of range", i)
	}
	layer := c.Layers[i]
	outputBits, inputBits := gateBits(len(layer.Gates))
	size := 1 << uint(outputBits+2*inputBits)

	addVec = make([]field.Element, size)
	mulVec = make([]field.Element, size)
	for idx := range addVec {
		addVec[idx] = field.Zero()
		mulVec[idx] = field.Zero()
	}

	for _, g := range layer.Gates {
		idx := (g.Output << uint(2*inputBits)) | (g.Left << uint(inputBits)) | g.Right
		if idx < 0 || idx >= size {
			return nil, nil, zkerr.WithLayer(zkerr.KindInputShape, i, "circuit: gate index %d out of add/mul table bounds", idx)
		}
		switch g.Op {
		case Add:
			addVec[idx] = field.One()
		case Mul:
			mulVec[idx] = field.One()
		}
	}

	return addVec, mulVec, nil
}

// ElementWiseAdd returns the pointwise sum of a and b. Both must have
// equal length.
func ElementWiseAdd(a, b []field.Element) []field.Element {
	out := make([]field.Element, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

// ElementWiseMul returns the pointwise product of a and b. Both must have
// equal length.
func ElementWiseMul(a, b []field.Element) []field.Element {
	out := make([]field.Element, len(a))
	for i := range a {
		out[i] = a[i].Mul(b[i])
	}
	return out
}

// ExplodeWire turns a layer's wire values w (length n) into the two
// length-n^2 tables W_B, W_C with W_B[b*n+c] = w[b], W_C[b*n+c] = w[c] —
// the MLE tables of w_i(b) and w_i(c) over the product hypercube.
func ExplodeWire(w []field.Element) (wB, wC []field.Element) {
	n := len(w)
	wB = make([]field.Element, n*n)
	wC = make([]field.Element, n*n)
	for b := 0; b < n; b++ {
		for cIdx := 0; cIdx < n; cIdx++ {
			wB[b*n+cIdx] = w[b]
			wC[b*n+cIdx] = w[cIdx]
		}
	}
	return wB, wC
}
