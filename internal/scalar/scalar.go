// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalar implements the RFC 7748 scalar clamping shared by both
// the Montgomery variable-base ladder and the twisted-Edwards fixed-base
// multiplication entry points.
package scalar

import "github.com/ulhaocheng/AVXECC/internal/vec"

// Words is a 256-bit scalar, lane-packed across 4 batched users, stored
// as eight 32-bit words per lane (low word first), matching the layout of
// a field.Element's byte-serialized form before 29-bit repacking.
type Words [8]vec.V

// Clamp returns the RFC 7748 clamped form of k: clear the low 3 bits of
// byte 0, clear the top bit of byte 31, and set the second-highest bit of
// byte 31. This is applied identically before both the Montgomery
// variable-base ladder (internal/montgomery) and the Edwards fixed-base
// multiplication (internal/edwards) consume a scalar.
func Clamp(k Words) Words {
	var out Words
	copy(out[:], k[:])
	out[0] = vec.And(out[0], vec.Broadcast(0xFFFFFFF8))
	out[7] = vec.And(out[7], vec.Broadcast(0x7FFFFFFF))
	out[7] = vec.Or(out[7], vec.Broadcast(0x40000000))
	return out
}

// Bit returns, as a 0/1 vector per lane, bit i (0 <= i < 255) of k.
func (k Words) Bit(i int) vec.V {
	word := k[i>>5]
	return vec.And(vec.Shr(word, uint(i&31)), vec.Broadcast(1))
}
