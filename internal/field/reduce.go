// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "github.com/ulhaocheng/AVXECC/internal/vec"

// FinalReduce folds v, which is reduced modulo the auxiliary prime
// p* = 64*(2^255-19) (every limb <= 2^29-1, value in [0, 2p*)), down to a
// value modulo p = 2^255-19 in the same 9x29-limb layout, with the top
// limb bounded to 23 bits (component "Final canonical reduction", §4.5).
//
// It folds the bits at or above position 23 of limb 8 back into limb 0
// (multiplied by 19, since 2^255 = 19 mod p) and propagates the carry
// through all nine limbs, twice: the first pass can leave at most one
// further bit above position 23 in limb 8, so two passes always suffice.
//
// This does NOT perform a final conditional subtraction of p, so the
// result may land in [0, p+eps) rather than strictly [0, p) -- matching
// the historical reference implementation this design was distilled from,
// which never serializes this value through a byte-exact RFC 7748 path.
// Callers that need bit-exact canonical output must subtract p in
// constant time themselves; see the package x25519 façade's doc comments.
func (v *Element) FinalReduce() *Element {
	mask23 := vec.Broadcast((1 << 23) - 1)
	mask29 := vec.Broadcast(Mask29)
	const19 := vec.Broadcast(19)

	for pass := 0; pass < 2; pass++ {
		top := vec.Shr(v.l[NWords-1], 23)
		v.l[NWords-1] = vec.And(v.l[NWords-1], mask23)

		v.l[0] = vec.Add(v.l[0], vec.Mul32(top, const19))
		for i := 0; i < NWords-1; i++ {
			v.l[i+1] = vec.Add(v.l[i+1], vec.Shr(v.l[i], Bits29))
			v.l[i] = vec.And(v.l[i], mask29)
		}
	}
	return v
}
