// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards

import "github.com/ulhaocheng/AVXECC/internal/field"

// ToMontgomeryU maps a twisted-Edwards point, given as its extended
// coordinates' Y and Z slots (as returned by FixedBaseMul), to the
// birationally equivalent Montgomery u-coordinate u = (Z+Y)/(Z-Y)
// (component D "Birational map", grounded on the reference fixed-base
// entry point, which performs this same add/sub/invert/multiply sequence
// right after its table-walk loop instead of returning affine Edwards
// coordinates directly).
func ToMontgomeryU(y, z *field.Element) *field.Element {
	var zero, num, den, inv, u field.Element
	zero.Zero()

	num.Add(z, y)
	num.Sbc(&num, &zero)
	den.Sbc(z, y)

	inv.Invert(&den)
	u.Mul(&num, &inv)
	return &u
}
