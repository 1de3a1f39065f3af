// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package montgomery implements the Montgomery-curve differential ladder
// (component C) used for variable-base scalar multiplication: the core
// of the ECDH shared-secret computation.
package montgomery

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/scalar"
	"github.com/ulhaocheng/AVXECC/internal/vec"
)

// ProPoint is a point on Curve25519 in Montgomery projective (X:Z)
// coordinates, u = X/Z. The Y slot is scratch space reused inside
// LadderStep (see moncurve.c's comment "we use y-coordinate as tmp"),
// exactly as the reference implementation does, to avoid an extra
// temporary allocation per ladder step.
type ProPoint struct {
	X, Y, Z field.Element
}

// LadderStep replaces (p, q) with (2p, p+q) in place, given xd, the
// x-only affine difference p-q (the original peer u-coordinate), which
// never changes across the ladder (component C "Ladder step"). It costs
// 5 multiplies, 4 squarings, 1 Mul29 and 8 add/sub, and inserts Sbc after
// every subtraction that feeds a multiply; the sums produced by Add are
// passed to Mul/Square as loose operands.
func LadderStep(p, q *ProPoint, xd *field.Element) {
	tmp1, tmp2 := &p.Y, &q.Y

	tmp1.Add(&p.X, &p.Z)
	p.X.Sbc(&p.X, &p.Z)
	tmp2.Add(&q.X, &q.Z)
	q.X.Sbc(&q.X, &q.Z)
	p.Z.Square(tmp1)
	q.Z.Mul(tmp2, &p.X)
	tmp2.Mul(&q.X, tmp1)
	tmp1.Square(&p.X)
	p.X.Mul(&p.Z, tmp1)
	tmp1.Sbc(&p.Z, tmp1)
	q.X.Mul29(tmp1, (field.ConstA-2)/4)
	q.X.Add(&q.X, &p.Z)
	p.Z.Mul(&q.X, tmp1)
	tmp1.Add(tmp2, &q.Z)
	q.X.Square(tmp1)
	tmp1.Sbc(tmp2, &q.Z)
	tmp2.Square(tmp1)
	q.Z.Mul(tmp2, xd)
}

// condSwap replaces (p, q) with (q, p), per lane, wherever b's lane is 1
// (component C "Conditional point swap"). b is masked to its low bit
// first, as the reference cswap does, since the ladder's running flag
// accumulates XORs of individual scalar bits.
func condSwap(p, q *ProPoint, b vec.V) {
	bit := vec.And(b, vec.Broadcast(1))
	p.X.CondSwap(&q.X, bit)
	p.Z.CondSwap(&q.Z, bit)
}

// VarBaseMul computes r = k*P, where P has affine u-coordinate x, using
// only u-coordinates throughout (component C "Variable-base ladder", the
// core of sharedsecret). k is clamped per RFC 7748 before use.
//
// The ladder maintains a single running flag s that tracks whether the
// conceptual (P1, P2) pair is currently swapped, so only one conditional
// swap is needed per bit instead of two (swap-before and swap-after): for
// each bit from 254 down to 0, s is XORed with the bit, (P1,P2) is
// swapped under s, a ladder step is applied, and s is set to the bit for
// the next iteration. A final swap after the loop restores orientation.
// Every one of the 255 bit positions is visited regardless of the
// scalar's value, and the swap/step sequence never branches on secret
// data, so this function is constant-time.
func VarBaseMul(k scalar.Words, x *field.Element) *field.Element {
	kp := scalar.Clamp(k)

	var p1, p2 ProPoint
	p1.X.One()
	p1.Z.Zero()
	p2.X.Set(x)
	p2.Z.One()

	s := vec.Zero()
	for i := 254; i >= 0; i-- {
		b := kp.Bit(i)
		s = vec.Xor(s, b)
		condSwap(&p1, &p2, s)
		LadderStep(&p1, &p2, x)
		s = b
	}
	condSwap(&p1, &p2, s)

	var r, invZ field.Element
	invZ.Invert(&p1.Z)
	r.Mul(&invZ, &p1.X)
	return &r
}
