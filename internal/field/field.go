// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements the batched radix-2^29 prime-field arithmetic
// modulo p = 2^255-19 that every curve operation in this module is built
// on. All nine limbs of a field element are vectorized across 4 lanes
// (internal/vec.V), so every function below drives four independent
// users' arithmetic in lock-step.
//
// Every operation publishes the limb-bound invariant it leaves its result
// in (see the per-function doc comments), following the loose/reduced/
// canonical discipline described in the design notes: Add produces loose
// limbs that must be fed through Sbc (or similarly reducing op) before
// they can be multiplied; Mul, Square, Mul29 and Sbc always take and
// return reduced operands.
package field

import "github.com/ulhaocheng/AVXECC/internal/vec"

// Element is a field element modulo p = 2^255-19, stored as 9 limbs in
// radix 2^29, batched across 4 lanes.
type Element struct {
	l [NWords]vec.V
}

// Zero sets v to 0 and returns v.
func (v *Element) Zero() *Element {
	for i := range v.l {
		v.l[i] = vec.Zero()
	}
	return v
}

// One sets v to 1 and returns v.
func (v *Element) One() *Element {
	v.Zero()
	v.l[0] = vec.Broadcast(1)
	return v
}

// Set copies a into v (component B's "Copy") and returns v.
func (v *Element) Set(a *Element) *Element {
	v.l = a.l
	return v
}

// Limbs exposes the raw limb array, for serialization and table lookups.
func (v *Element) Limbs() [NWords]vec.V { return v.l }

// SetLimbs sets v's limbs directly (used by serialization and table
// lookups, which build elements from non-arithmetic sources).
func (v *Element) SetLimbs(l [NWords]vec.V) *Element {
	v.l = l
	return v
}

// Add sets v = a + b and returns v. Output is loose (limbs <= 2^30): a
// plain lane-wise limb addition with no carry propagation or reduction.
// Callers must not chain enough adds to overflow the headroom, and must
// route the result through Sbc (or another reducing op) before it is
// multiplied or squared.
func (v *Element) Add(a, b *Element) *Element {
	for i := range v.l {
		v.l[i] = vec.Add(a.l[i], b.l[i])
	}
	return v
}

// Sub sets v = 2p* + a - b and returns v (component B "Sub",
// non-reducing). Output is loose and non-negative. To limb 0 it adds
// 2*LSWP29; to limbs 1..8 it adds 2*(2^29-1), which keeps every limb of
// the subtraction non-negative regardless of a and b's relative
// magnitude. The result still needs carry propagation (Sbc) before being
// multiplied.
func (v *Element) Sub(a, b *Element) *Element {
	dlswp := vec.Broadcast(2 * LSWP29)
	dwrdp := vec.Broadcast(2 * Mask29)

	v.l[0] = vec.Add(dlswp, vec.Sub(a.l[0], b.l[0]))
	for i := 1; i < NWords; i++ {
		v.l[i] = vec.Add(dwrdp, vec.Sub(a.l[i], b.l[i]))
	}
	return v
}

// Sbc sets v = (2p* + a - b) mod p* and returns v (component B "Sub with
// carry"). It performs the same non-reducing subtraction as Sub, followed
// by one forward carry-propagation sweep and a final fold of limb 8's
// overflow (times ConstC) back into limb 0. Output is reduced (every limb
// <= 2^29-1, value in [0, 2p*)), so a chain of Sbc results may be safely
// multiplied or squared.
func (v *Element) Sbc(a, b *Element) *Element {
	v.Sub(a, b)

	for i := 0; i < NWords-1; i++ {
		v.l[i+1] = vec.Add(v.l[i+1], vec.Shr(v.l[i], Bits29))
		v.l[i] = vec.And(v.l[i], vec.Broadcast(Mask29))
	}

	top := vec.Shr(v.l[NWords-1], Bits29)
	top = vec.Mul32(top, vec.Broadcast(ConstC))
	v.l[0] = vec.Add(v.l[0], top)
	v.l[NWords-1] = vec.And(v.l[NWords-1], vec.Broadcast(Mask29))
	return v
}

// Mul sets v = a*b mod p and returns v (component B "Multiply"). It
// performs a 9x9 product-scanning multiplication producing 17 column
// sums, folds the high half into the low half via ConstC, and propagates
// one more carry to fully reduce. Inputs MUST already be reduced (every
// limb <= 2^29-1): each of the (at most) 9 products per column is then
// bounded by 2^58, and 9 such summands plus carry-in still fit a 64-bit
// lane without overflow. Output is reduced.
func (v *Element) Mul(a, b *Element) *Element {
	A, B := a.l, b.l
	mask29 := vec.Broadcast(Mask29)
	constC := vec.Broadcast(ConstC)

	var t [NWords]vec.V
	// 1st loop: columns 0..8, lower-triangular partial products.
	t[0] = vec.Mul32(A[0], B[0])

	t[1] = vec.Mac32(vec.Mul32(A[0], B[1]), A[1], B[0])

	t[2] = vec.Mul32(A[0], B[2])
	t[2] = vec.Mac32(t[2], A[1], B[1])
	t[2] = vec.Mac32(t[2], A[2], B[0])

	t[3] = vec.Mul32(A[0], B[3])
	t[3] = vec.Mac32(t[3], A[1], B[2])
	t[3] = vec.Mac32(t[3], A[2], B[1])
	t[3] = vec.Mac32(t[3], A[3], B[0])

	t[4] = vec.Mul32(A[0], B[4])
	t[4] = vec.Mac32(t[4], A[1], B[3])
	t[4] = vec.Mac32(t[4], A[2], B[2])
	t[4] = vec.Mac32(t[4], A[3], B[1])
	t[4] = vec.Mac32(t[4], A[4], B[0])

	t[5] = vec.Mul32(A[0], B[5])
	t[5] = vec.Mac32(t[5], A[1], B[4])
	t[5] = vec.Mac32(t[5], A[2], B[3])
	t[5] = vec.Mac32(t[5], A[3], B[2])
	t[5] = vec.Mac32(t[5], A[4], B[1])
	t[5] = vec.Mac32(t[5], A[5], B[0])

	t[6] = vec.Mul32(A[0], B[6])
	t[6] = vec.Mac32(t[6], A[1], B[5])
	t[6] = vec.Mac32(t[6], A[2], B[4])
	t[6] = vec.Mac32(t[6], A[3], B[3])
	t[6] = vec.Mac32(t[6], A[4], B[2])
	t[6] = vec.Mac32(t[6], A[5], B[1])
	t[6] = vec.Mac32(t[6], A[6], B[0])

	t[7] = vec.Mul32(A[0], B[7])
	t[7] = vec.Mac32(t[7], A[1], B[6])
	t[7] = vec.Mac32(t[7], A[2], B[5])
	t[7] = vec.Mac32(t[7], A[3], B[4])
	t[7] = vec.Mac32(t[7], A[4], B[3])
	t[7] = vec.Mac32(t[7], A[5], B[2])
	t[7] = vec.Mac32(t[7], A[6], B[1])
	t[7] = vec.Mac32(t[7], A[7], B[0])

	t[8] = vec.Mul32(A[0], B[8])
	t[8] = vec.Mac32(t[8], A[1], B[7])
	t[8] = vec.Mac32(t[8], A[2], B[6])
	t[8] = vec.Mac32(t[8], A[3], B[5])
	t[8] = vec.Mac32(t[8], A[4], B[4])
	t[8] = vec.Mac32(t[8], A[5], B[3])
	t[8] = vec.Mac32(t[8], A[6], B[2])
	t[8] = vec.Mac32(t[8], A[7], B[1])
	t[8] = vec.Mac32(t[8], A[8], B[0])

	accu := vec.Shr(t[8], Bits29)
	t[8] = vec.And(t[8], mask29)

	// 2nd loop: columns 9..16, upper-triangular partial products,
	// reduced into r[0..8] as they're produced.
	var r [NWords]vec.V

	accu = vec.Mac32(accu, A[1], B[8])
	accu = vec.Mac32(accu, A[2], B[7])
	accu = vec.Mac32(accu, A[3], B[6])
	accu = vec.Mac32(accu, A[4], B[5])
	accu = vec.Mac32(accu, A[5], B[4])
	accu = vec.Mac32(accu, A[6], B[3])
	accu = vec.Mac32(accu, A[7], B[2])
	accu = vec.Mac32(accu, A[8], B[1])
	r[0] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[2], B[8])
	accu = vec.Mac32(accu, A[3], B[7])
	accu = vec.Mac32(accu, A[4], B[6])
	accu = vec.Mac32(accu, A[5], B[5])
	accu = vec.Mac32(accu, A[6], B[4])
	accu = vec.Mac32(accu, A[7], B[3])
	accu = vec.Mac32(accu, A[8], B[2])
	r[1] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[3], B[8])
	accu = vec.Mac32(accu, A[4], B[7])
	accu = vec.Mac32(accu, A[5], B[6])
	accu = vec.Mac32(accu, A[6], B[5])
	accu = vec.Mac32(accu, A[7], B[4])
	accu = vec.Mac32(accu, A[8], B[3])
	r[2] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[4], B[8])
	accu = vec.Mac32(accu, A[5], B[7])
	accu = vec.Mac32(accu, A[6], B[6])
	accu = vec.Mac32(accu, A[7], B[5])
	accu = vec.Mac32(accu, A[8], B[4])
	r[3] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[5], B[8])
	accu = vec.Mac32(accu, A[6], B[7])
	accu = vec.Mac32(accu, A[7], B[6])
	accu = vec.Mac32(accu, A[8], B[5])
	r[4] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[6], B[8])
	accu = vec.Mac32(accu, A[7], B[7])
	accu = vec.Mac32(accu, A[8], B[6])
	r[5] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[7], B[8])
	accu = vec.Mac32(accu, A[8], B[7])
	r[6] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	accu = vec.Mac32(accu, A[8], B[8])
	r[7] = vec.And(accu, mask29)
	r[8] = vec.Shr(accu, Bits29)

	// modulo-p* reduction: fold r (the 2^(9*29) .. 2^(17*29) columns)
	// back into t via ConstC.
	accu = vec.Mac32(t[0], r[0], constC)
	t[0] = vec.And(accu, mask29)

	for i := 1; i < NWords; i++ {
		accu = vec.Add(t[i], vec.Shr(accu, Bits29))
		accu = vec.Mac32(accu, r[i], constC)
		t[i] = vec.And(accu, mask29)
	}

	accu = vec.Shr(accu, Bits29)
	t[0] = vec.Mac32(t[0], accu, constC)

	v.l = t
	return v
}

// Square sets v = a*a mod p and returns v (component B "Square"). Same
// shape as Mul, but only the distinct cross products are computed and
// doubled (shl by 1) before the diagonal terms are folded in, instead of
// running the full 9x9 grid. Input MUST be reduced; output is reduced.
func (v *Element) Square(a *Element) *Element {
	A := a.l
	mask29 := vec.Broadcast(Mask29)
	constC := vec.Broadcast(ConstC)

	var t [NWords]vec.V
	t[0] = vec.Mul32(A[0], A[0])

	accu := vec.Mul32(A[0], A[1])
	t[1] = vec.Shl(accu, 1)

	accu = vec.Mul32(A[0], A[2])
	t[2] = vec.Shl(accu, 1)
	t[2] = vec.Mac32(t[2], A[1], A[1])

	accu = vec.Mul32(A[0], A[3])
	accu = vec.Mac32(accu, A[1], A[2])
	t[3] = vec.Shl(accu, 1)

	accu = vec.Mul32(A[0], A[4])
	accu = vec.Mac32(accu, A[1], A[3])
	t[4] = vec.Shl(accu, 1)
	t[4] = vec.Mac32(t[4], A[2], A[2])

	accu = vec.Mul32(A[0], A[5])
	accu = vec.Mac32(accu, A[1], A[4])
	accu = vec.Mac32(accu, A[2], A[3])
	t[5] = vec.Shl(accu, 1)

	accu = vec.Mul32(A[0], A[6])
	accu = vec.Mac32(accu, A[1], A[5])
	accu = vec.Mac32(accu, A[2], A[4])
	t[6] = vec.Shl(accu, 1)
	t[6] = vec.Mac32(t[6], A[3], A[3])

	accu = vec.Mul32(A[0], A[7])
	accu = vec.Mac32(accu, A[1], A[6])
	accu = vec.Mac32(accu, A[2], A[5])
	accu = vec.Mac32(accu, A[3], A[4])
	t[7] = vec.Shl(accu, 1)

	accu = vec.Mul32(A[0], A[8])
	accu = vec.Mac32(accu, A[1], A[7])
	accu = vec.Mac32(accu, A[2], A[6])
	accu = vec.Mac32(accu, A[3], A[5])
	t[8] = vec.Shl(accu, 1)
	t[8] = vec.Mac32(t[8], A[4], A[4])

	temp := vec.Shr(t[8], Bits29)
	t[8] = vec.And(t[8], mask29)

	var r [NWords]vec.V

	accu = vec.Mul32(A[1], A[8])
	accu = vec.Mac32(accu, A[2], A[7])
	accu = vec.Mac32(accu, A[3], A[6])
	accu = vec.Mac32(accu, A[4], A[5])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	r[0] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[2], A[8])
	accu = vec.Mac32(accu, A[3], A[7])
	accu = vec.Mac32(accu, A[4], A[6])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	temp = vec.Mac32(temp, A[5], A[5])
	r[1] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[3], A[8])
	accu = vec.Mac32(accu, A[4], A[7])
	accu = vec.Mac32(accu, A[5], A[6])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	r[2] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[4], A[8])
	accu = vec.Mac32(accu, A[5], A[7])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	temp = vec.Mac32(temp, A[6], A[6])
	r[3] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[5], A[8])
	accu = vec.Mac32(accu, A[6], A[7])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	r[4] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[6], A[8])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	temp = vec.Mac32(temp, A[7], A[7])
	r[5] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	accu = vec.Mul32(A[7], A[8])
	temp = vec.Add(temp, vec.Shl(accu, 1))
	r[6] = vec.And(temp, mask29)
	temp = vec.Shr(temp, Bits29)

	temp = vec.Mac32(temp, A[8], A[8])
	r[7] = vec.And(temp, mask29)
	r[8] = vec.Shr(temp, Bits29)

	accu = vec.Add(t[0], vec.Mul32(r[0], constC))
	t[0] = vec.And(accu, mask29)

	for i := 1; i < NWords; i++ {
		accu = vec.Add(t[i], vec.Shr(accu, Bits29))
		accu = vec.Mac32(accu, r[i], constC)
		t[i] = vec.And(accu, mask29)
	}

	accu = vec.Shr(accu, Bits29)
	t[0] = vec.Add(t[0], vec.Mul32(accu, constC))

	v.l = t
	return v
}

// Mul29 sets v = a*b mod p, where b is a 29-bit (or smaller) constant,
// and returns v (component B "Small-scalar multiply"). Input MUST be
// reduced; output is reduced. Used by the ladder step (factor (A-2)/4)
// and by point doubling (factor 2).
func (v *Element) Mul29(a *Element, b uint32) *Element {
	A := a.l
	vb := vec.Broadcast(uint64(b))
	mask29 := vec.Broadcast(Mask29)
	constC := vec.Broadcast(ConstC)

	var r [NWords]vec.V
	accu := vec.Mul32(A[0], vb)
	r[0] = vec.And(accu, mask29)
	accu = vec.Shr(accu, Bits29)

	for i := 1; i < NWords; i++ {
		accu = vec.Mac32(accu, A[i], vb)
		r[i] = vec.And(accu, mask29)
		accu = vec.Shr(accu, Bits29)
	}

	accu = vec.Mul32(constC, accu)
	r[0] = vec.Add(r[0], vec.And(accu, mask29))
	r[1] = vec.Add(r[1], vec.Shr(accu, Bits29))

	v.l = r
	return v
}

// Invert sets v = a^(p-2) mod p (so v = 1/a, or 0 if a == 0) and returns
// v (component B "Inversion"). It uses the standard Curve25519
// Itoh-Tsujii-style addition chain of 254 squarings and 11 multiplies:
// 2^1, 2^2+2^0, then blocks of 5, 10, 20, 10, 50, 100, 50, 5 doublings
// each followed by one multiply. The chain is public and fixed-shape
// (same instruction sequence regardless of a's value), so this function
// is constant-time.
func (v *Element) Invert(a *Element) *Element {
	var t0, t1, t2, t3 Element

	t0.Square(a)
	t1.Square(&t0)
	t1.Square(&t1)
	t1.Mul(a, &t1)
	t0.Mul(&t0, &t1)
	t2.Square(&t0)
	t1.Mul(&t1, &t2)
	t2.Square(&t1)
	for i := 0; i < 4; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1)
	t2.Square(&t1)
	for i := 0; i < 9; i++ {
		t2.Square(&t2)
	}
	t2.Mul(&t2, &t1)
	t3.Square(&t2)
	for i := 0; i < 19; i++ {
		t3.Square(&t3)
	}
	t2.Mul(&t3, &t2)
	t2.Square(&t2)
	for i := 0; i < 9; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1)
	t2.Square(&t1)
	for i := 0; i < 49; i++ {
		t2.Square(&t2)
	}
	t2.Mul(&t2, &t1)
	t3.Square(&t2)
	for i := 0; i < 99; i++ {
		t3.Square(&t3)
	}
	t2.Mul(&t3, &t2)
	t2.Square(&t2)
	for i := 0; i < 49; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1)
	t1.Square(&t1)
	for i := 0; i < 4; i++ {
		t1.Square(&t1)
	}
	return v.Mul(&t1, &t0)
}

// CondSwap replaces (v, a) with (a, v) if b's lanes are 1, or leaves them
// unchanged (per lane) if 0 (component B "Conditional swap"). Each lane's
// swap decision is independent, and the implementation touches every limb
// of both operands regardless of b, so it is constant-time: mask =
// 0-b (all-ones or all-zero per lane), x = (v[i] xor a[i]) and mask,
// v[i] xor= x, a[i] xor= x.
func (v *Element) CondSwap(a *Element, b vec.V) {
	mask := vec.CondMask(b)
	for i := range v.l {
		x := vec.And(vec.Xor(v.l[i], a.l[i]), mask)
		v.l[i] = vec.Xor(v.l[i], x)
		a.l[i] = vec.Xor(a.l[i], x)
	}
}

// Select sets v to a if cond's lanes are 1, or to b if 0, per lane.
func (v *Element) Select(a, b *Element, cond vec.V) *Element {
	mask := vec.CondMask(cond)
	for i := range v.l {
		v.l[i] = vec.Select(mask, a.l[i], b.l[i])
	}
	return v
}

// Negate sets v = -a mod p* (computed as 0 - a via Sbc) and returns v.
func (v *Element) Negate(a *Element) *Element {
	var zero Element
	return v.Sbc(zero.Zero(), a)
}
