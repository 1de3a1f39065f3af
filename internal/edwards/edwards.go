// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edwards implements the twisted-Edwards fixed-base scalar
// multiplication pipeline (component D) used for key generation: a point
// on the curve -x^2+y^2 = 1 + d*x^2*y^2 birationally equivalent to
// Curve25519, walked via a precomputed Duif table instead of a ladder,
// since the base point never changes.
package edwards

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/scalar"
	"github.com/ulhaocheng/AVXECC/internal/vec"
)

// ExtPoint is a point in twisted-Edwards extended coordinates
// (X:Y:Z:E:H), with E*H = T = XY/Z the usual extended-coordinates
// auxiliary product, split into two cofactors the way the reference
// addition/doubling formulas consume them.
type ExtPoint struct {
	X, Y, Z, E, H field.Element
}

// Identity sets p to the neutral element (0, 1, 1, 0, 1) and returns p.
func (p *ExtPoint) Identity() *ExtPoint {
	p.X.Zero()
	p.Y.One()
	p.Z.One()
	p.E.Zero()
	p.H.One()
	return p
}

// DuifPoint is one precomputed entry of the fixed-base table: the affine
// point (x, y) stored as ((y+x)/2, (y-x)/2, d*x*y), the representation
// that lets point addition (Add) skip a doubling and an inversion (the
// classic Duif trick). Field names mirror the reused x/y/z slots of the
// reference ProPoint struct.
type DuifPoint struct {
	X, Y, Z field.Element
}

// Add sets r = p + q, where q is a Duif-form table entry, and returns r
// (component D "Mixed point addition", grounded on the reference mixed
// addition formula for extended coordinates against a cached
// ((y+x)/2,(y-x)/2,d*x*y) point). r and p may alias, which is how the
// table-walk accumulation loop in FixedBaseMul uses it (r.X is the only
// field written before its aliased p.X counterpart is last read, and
// likewise for Y/Z/E/H, by construction of the operand order below).
func (r *ExtPoint) Add(p *ExtPoint, q *DuifPoint) *ExtPoint {
	var t field.Element

	t.Mul(&p.E, &p.H)
	r.E.Sub(&p.Y, &p.X)
	r.H.Add(&p.Y, &p.X)
	r.X.Mul(&r.E, &q.Y)
	r.Y.Mul(&r.H, &q.X)
	r.E.Sub(&r.Y, &r.X)
	r.H.Add(&r.Y, &r.X)
	r.X.Mul(&t, &q.Z)
	t.Sbc(&p.Z, &r.X)
	r.X.Add(&p.Z, &r.X)
	r.Z.Mul(&t, &r.X)
	r.Y.Mul(&r.X, &r.H)
	r.X.Mul(&r.E, &t)
	return r
}

// Double sets r = 2p and returns r (component D "Point doubling").
// r and p may alias.
func (r *ExtPoint) Double(p *ExtPoint) *ExtPoint {
	var t, x, y field.Element

	r.E.Square(&p.X)
	r.H.Square(&p.Y)
	t.Sbc(&r.E, &r.H)
	r.H.Add(&r.E, &r.H)
	x.Add(&p.X, &p.Y)
	r.E.Square(&x)
	r.E.Sub(&r.H, &r.E)
	y.Square(&p.Z)
	y.Mul29(&y, 2)
	y.Add(&t, &y)
	r.X.Mul(&r.E, &y)
	r.Z.Mul(&y, &t)
	r.Y.Mul(&t, &r.H)
	return r
}

// ScalarToNibbles recodes k into 64 signed base-16 digits in [-8, 7], low
// digit first, such that k = sum(e[i] * 16^i) (component D "Signed-digit
// recoding", the radix-16 analogue of a binary NAF). Each e[i] is packed
// into the low byte of its lane as an unsigned two's-complement
// representation of the signed digit, matching the layout QueryTable's
// sign handling expects.
func ScalarToNibbles(k scalar.Words) [64]vec.V {
	var e [64]vec.V
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			e[8*i+j] = vec.And(vec.Shr(k[i], uint(4*j)), vec.Broadcast(0xF))
		}
	}

	eight := vec.Broadcast(8)
	mask8 := vec.Broadcast(0xFF)
	carry := vec.Zero()
	for i := 0; i < 63; i++ {
		e[i] = vec.Add(e[i], carry)
		carry = vec.Add(e[i], eight)
		carry = vec.Shr(carry, 4)
		e[i] = vec.Sub(e[i], vec.Shl(carry, 4))
		e[i] = vec.And(e[i], mask8)
	}
	e[63] = vec.Add(e[63], carry)
	e[63] = vec.And(e[63], mask8)
	return e
}

// FixedBaseMul computes k*B, where B is the fixed base point, and returns
// the result's Y and Z extended-coordinate slots (component D "Fixed-base
// multiplication", the core of key generation). X is intentionally never
// computed: the birational map to a Montgomery u-coordinate (ToMontgomeryU)
// only ever needs Y and Z, so this function skips the work of producing a
// meaningful X rather than returning a struct with a field callers might
// mistake for valid data (see the design note on this choice).
func FixedBaseMul(k scalar.Words) (y, z *field.Element) {
	kp := scalar.Clamp(k)
	e := ScalarToNibbles(kp)

	var acc ExtPoint
	acc.Identity()

	// Odd-indexed digits first: table[j] stores plain multiples m*B' of
	// B' = 256^j*Base, so summing these contributes e_{2j+1} * 256^j * Base.
	for j := 0; j < 32; j++ {
		q := QueryTable(j, e[2*j+1])
		acc.Add(&acc, q)
	}

	// Quadrupling (four doublings) scales that partial sum by 16, landing
	// each term on its true weight 16^(2j+1) = 16*256^j.
	for i := 0; i < 4; i++ {
		acc.Double(&acc)
	}

	// Even-indexed digits land directly on weight 16^(2j) = 256^j, the
	// same pre-shifted base the table already stores.
	for j := 0; j < 32; j++ {
		q := QueryTable(j, e[2*j])
		acc.Add(&acc, q)
	}

	yy, zz := acc.Y, acc.Z
	return &yy, &zz
}
