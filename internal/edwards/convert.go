// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/vec"
)

// chunksToElement repacks a value stored as four 64-bit little-endian
// chunks per lane into a field.Element's nine 29-bit limbs per lane
// (component D's lut_conv_coor2mpi29 step). Each limb is assembled from
// one or two adjacent chunk words using a shift amount fixed by the limb
// index alone, never by a chunk's value, so the control flow here does
// not depend on the (possibly secret) coordinate being converted.
func chunksToElement(c [4]vec.V) *field.Element {
	var limbs [field.NWords]vec.V
	for i := 0; i < field.NWords; i++ {
		bitpos := field.Bits29 * i
		wordIdx := bitpos / 64
		bitOff := uint(bitpos % 64)

		lo := vec.Shr(c[wordIdx], bitOff)
		if bitOff > 0 && wordIdx+1 < 4 {
			hi := vec.Shl(c[wordIdx+1], 64-bitOff)
			lo = vec.Or(lo, hi)
		}
		limbs[i] = vec.And(lo, vec.Broadcast(field.Mask29))
	}
	var e field.Element
	e.SetLimbs(limbs)
	return &e
}
