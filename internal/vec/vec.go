// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec implements the 4-lane vector primitives that the rest of
// this module is built on: every field and curve operation drives one
// instruction stream across four independent lanes, one per batched user.
//
// This file is the portable lane backend. It models the AVX2 intrinsics
// the design was distilled from (see intrin.h in the reference sources:
// VADD, VSUB, VMUL, VMAC, VSHR, VSHL, VAND, VOR, VXOR, VABS8, VBROAD64,
// VEXTR32) one-for-one, but keeps each lane an independent uint64 rather
// than a slot in a real SIMD register. It has no counterpart of VSHUF32 or
// VPERM64: no permute or 32-bit shuffle operation is provided. An
// ISA-specific backend (e.g. amd64 AVX2) could replace this file under a
// build tag without changing any caller, since correctness of the field
// and curve layers above only depends on the per-lane contract below, not
// on true hardware parallelism.
package vec

// V is a 4-lane, 64-bit-per-lane vector. Lane j holds user j's value.
type V [4]uint64

// Zero returns the all-zero vector.
func Zero() V { return V{} }

// Broadcast returns a vector with every lane set to x.
func Broadcast(x uint64) V { return V{x, x, x, x} }

// FromLanes builds a vector from four independent per-user values.
func FromLanes(l0, l1, l2, l3 uint64) V { return V{l0, l1, l2, l3} }

// Add returns a+b, lane-wise, with no overflow handling beyond uint64.
func Add(a, b V) V {
	return V{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns a-b, lane-wise (wrapping, as with AVX2 VSUB).
func Sub(a, b V) V {
	return V{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Mul32 returns the lane-wise product of the low 32 bits of a and b,
// zero-extended to 64 bits. This mirrors VMUL (_mm256_mul_epu32), which
// ignores the upper 32 bits of each input lane.
func Mul32(a, b V) V {
	const mask32 = 0xFFFFFFFF
	return V{
		(a[0] & mask32) * (b[0] & mask32),
		(a[1] & mask32) * (b[1] & mask32),
		(a[2] & mask32) * (b[2] & mask32),
		(a[3] & mask32) * (b[3] & mask32),
	}
}

// Mac32 returns z + Mul32(x,y), lane-wise (the VMAC macro).
func Mac32(z, x, y V) V {
	return Add(z, Mul32(x, y))
}

// Shl returns a lane-wise left shift by n bits (0 <= n < 64).
func Shl(a V, n uint) V {
	return V{a[0] << n, a[1] << n, a[2] << n, a[3] << n}
}

// Shr returns a lane-wise logical right shift by n bits (0 <= n < 64).
func Shr(a V, n uint) V {
	return V{a[0] >> n, a[1] >> n, a[2] >> n, a[3] >> n}
}

// And returns the lane-wise bitwise AND of a and b.
func And(a, b V) V {
	return V{a[0] & b[0], a[1] & b[1], a[2] & b[2], a[3] & b[3]}
}

// Or returns the lane-wise bitwise OR of a and b.
func Or(a, b V) V {
	return V{a[0] | b[0], a[1] | b[1], a[2] | b[2], a[3] | b[3]}
}

// Xor returns the lane-wise bitwise XOR of a and b.
func Xor(a, b V) V {
	return V{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// Extract32 returns the low 32 bits of lane i as a uint32.
func Extract32(a V, i int) uint32 {
	return uint32(a[i])
}

// Abs8 returns the lane-wise absolute value of each lane's low byte,
// treated as a signed int8, zero-extended back to 64 bits. This mirrors
// VABS8 (_mm256_abs_epi8) applied to a nibble/byte value stored in the low
// byte of each 64-bit lane, which is how signed-nibble magnitudes are
// carried through this module. The sign is extracted into an all-ones/
// all-zero mask (arithmetic shift of the sign-extended byte) rather than
// branching on it, since the byte being inspected is a secret digit.
func Abs8(a V) V {
	var r V
	for i := range a {
		b := int64(int8(a[i]))
		mask := uint64(b >> 63)
		r[i] = uint64((b ^ int64(mask)) - int64(mask))
	}
	return r
}

// Select returns, lane-wise, a[i] if mask[i] is all-ones, else b[i]. mask
// must be the result of a comparison-style operation (all-zero or
// all-one per lane) — see CondMask.
func Select(mask, a, b V) V {
	return V{
		(mask[0] & a[0]) | (^mask[0] & b[0]),
		(mask[1] & a[1]) | (^mask[1] & b[1]),
		(mask[2] & a[2]) | (^mask[2] & b[2]),
		(mask[3] & a[3]) | (^mask[3] & b[3]),
	}
}

// CondMask returns, lane-wise, all-ones if b's lane is 1, all-zero if it
// is 0 (b's lanes MUST each be 0 or 1). This is the `0 - b` idiom used
// throughout the reference field/point cswap routines.
func CondMask(b V) V {
	return Sub(Zero(), b)
}

// Equal reports whether a and b are identical in all four lanes. It is a
// test/debugging helper, not a constant-time primitive.
func Equal(a, b V) bool {
	return a == b
}
