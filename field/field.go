// Package field wraps gnark-crypto's bn254 scalar field as the prime
// field every other package in this module computes over. It exposes
// exactly the capability set spec.md expects of "FieldOps": arithmetic,
// canonical byte encoding, and FFT root-of-unity access.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/pope-h/zero-knowledge/zkerr"
)

// Bytes is the canonical big-endian encoding width for an Element.
// bn254's scalar field is a 254-bit prime, so the minimal multiple of 8
// bytes covering it is 32.
const Bytes = fr.Bytes

// Element is a scalar in the bn254 Fr field.
type Element struct {
	inner fr.Element
}

// Zero returns the additive identity.
func Zero() Element {
	var e Element
	e.inner.SetZero()
	return e
}

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.inner.SetOne()
	return e
}

// FromUint64 lifts a uint64 into the field.
func FromUint64(v uint64) Element {
	var e Element
	e.inner.SetUint64(v)
	return e
}

// FromInt64 lifts an int64 into the field, reducing negative values mod q.
func FromInt64(v int64) Element {
	var e Element
	e.inner.SetInt64(v)
	return e
}

// FromBigInt reduces a big.Int into the field.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.inner.SetBigInt(v)
	return e
}

// FromBEBytesModOrder reduces a big-endian byte string into the field,
// matching spec.md's `from_be_bytes_mod_order`.
func FromBEBytesModOrder(b []byte) Element {
	var e Element
	e.inner.SetBytes(b)
	return e
}

// Random draws a uniformly random field element.
func Random() (Element, error) {
	var e Element
	if _, err := e.inner.SetRandom(); err != nil {
		return Element{}, zkerr.Wrap(zkerr.KindInputShape, err, "failed to draw random field element")
	}
	return e, nil
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	var r Element
	r.inner.Add(&e.inner, &other.inner)
	return r
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	var r Element
	r.inner.Sub(&e.inner, &other.inner)
	return r
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	var r Element
	r.inner.Mul(&e.inner, &other.inner)
	return r
}

// Div returns e / other. If other is zero the result is zero, since
// gnark-crypto's Inverse maps zero to zero; it does not panic.
func (e Element) Div(other Element) Element {
	var inv, r Element
	inv.inner.Inverse(&other.inner)
	r.inner.Mul(&e.inner, &inv.inner)
	return r
}

// Inverse returns e⁻¹.
func (e Element) Inverse() Element {
	var r Element
	r.inner.Inverse(&e.inner)
	return r
}

// Neg returns -e.
func (e Element) Neg() Element {
	var r Element
	r.inner.Neg(&e.inner)
	return r
}

// Square returns e².
func (e Element) Square() Element {
	var r Element
	r.inner.Square(&e.inner)
	return r
}

// Double returns 2e.
func (e Element) Double() Element {
	var r Element
	r.inner.Double(&e.inner)
	return r
}

// Pow returns e^k.
func (e Element) Pow(k uint64) Element {
	var r Element
	r.inner.Exp(e.inner, new(big.Int).SetUint64(k))
	return r
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.inner.IsZero()
}

// Equal reports whether e and other represent the same residue.
func (e Element) Equal(other Element) bool {
	return e.inner.Equal(&other.inner)
}

// Bytes returns the canonical big-endian encoding of e.
func (e Element) Bytes() []byte {
	b := e.inner.Bytes()
	return b[:]
}

// BigInt returns the canonical integer representative of e in [0, q).
func (e Element) BigInt() *big.Int {
	var out big.Int
	e.inner.BigInt(&out)
	return &out
}

// String renders the decimal representation of e's integer
// representative. FRI uses this exact encoding for Merkle leaves
// (spec.md §6.5).
func (e Element) String() string {
	return e.inner.String()
}

// GetRootOfUnity returns a primitive n-th root of unity, where n must be
// a power of two dividing q-1. It delegates to gnark-crypto's FFT domain
// construction rather than re-deriving roots by search.
func GetRootOfUnity(n uint64) (Element, error) {
	if n == 0 || n&(n-1) != 0 {
		return Element{}, zkerr.New(zkerr.KindInputShape, "GetRootOfUnity: n=%d is not a power of two", n)
	}
	domain := fft.NewDomain(n)
	if domain.Cardinality != n {
		return Element{}, zkerr.New(zkerr.KindInputShape, "GetRootOfUnity: no subgroup of order %d", n)
	}
	return Element{inner: domain.Generator}, nil
}
