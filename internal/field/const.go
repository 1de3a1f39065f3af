// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

// Radix-2^29 layout: a field element is 9 limbs, each holding 29 value
// bits (9*29 = 261 >= 256), vectorized across 4 lanes (one per batched
// user). Arithmetic is carried out modulo the auxiliary prime
//
//	p* = 64*(2^255 - 19) = 2^261 - 1216
//
// rather than p = 2^255-19 directly, since 64p is the nearest multiple of
// p that aligns exactly on a 9*29-bit boundary. FinalReduce (see
// reduce.go) folds p* back down to p at the boundary of the module.
const (
	NWords = 9
	Bits29 = 29
	Mask29 = (1 << Bits29) - 1 // 0x1FFFFFFF

	// ConstC is the wraparound constant: p* = 2^261 - ConstC, so folding
	// the 9th limb's overflow back into limb 0 means multiplying by
	// ConstC and adding.
	ConstC = 1216

	// ConstA is the Montgomery curve coefficient A in
	// y^2 = x^3 + A*x^2 + x, used by the ladder step's (A-2)/4 term.
	ConstA = 486662

	// LSWP29 is the least-significant 29-bit limb of p*.
	LSWP29 = Mask29 - ConstC + 1 // 0x1FFFFB40
)
