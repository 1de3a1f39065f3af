// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x25519

import (
	"encoding/binary"

	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/scalar"
	"github.com/ulhaocheng/AVXECC/internal/vec"
)

// Scalars is a lane-packed batch of four RFC 7748 private scalars, each a
// 32-byte little-endian integer. Lane i belongs to the i-th batched user.
type Scalars [4][32]byte

// Elements is a lane-packed batch of four RFC 7748 u-coordinates (public
// keys or shared secrets), encoded the same way as Scalars.
type Elements [4][32]byte

// packWords converts s's four 32-byte scalars into the internal 8x32-bit
// lane-packed word layout scalar.Clamp and the ladder operate on.
func packWords(s Scalars) scalar.Words {
	var w scalar.Words
	for i := 0; i < 8; i++ {
		w[i] = vec.FromLanes(
			uint64(binary.LittleEndian.Uint32(s[0][4*i:])),
			uint64(binary.LittleEndian.Uint32(s[1][4*i:])),
			uint64(binary.LittleEndian.Uint32(s[2][4*i:])),
			uint64(binary.LittleEndian.Uint32(s[3][4*i:])),
		)
	}
	return w
}

// packElements converts e's four 32-byte u-coordinates into a lane-packed
// field.Element. Per RFC 7748 §5, the most significant bit of the last byte
// is cleared before interpretation, since peer-supplied coordinates are only
// ever meaningful modulo 2^255.
func packElements(e Elements) *field.Element {
	var limbs [field.NWords]vec.V
	for lane := 0; lane < 4; lane++ {
		var buf [32]byte
		copy(buf[:], e[lane][:])
		buf[31] &= 0x7F

		// Load the 256-bit value as four 64-bit little-endian words, then
		// slice it into nine 29-bit limbs, mirroring chunksToElement's
		// fixed, index-determined shift schedule.
		var words [4]uint64
		for i := 0; i < 4; i++ {
			words[i] = binary.LittleEndian.Uint64(buf[8*i : 8*i+8])
		}
		for i := 0; i < field.NWords; i++ {
			bitpos := field.Bits29 * i
			wordIdx := bitpos / 64
			bitOff := uint(bitpos % 64)

			v := words[wordIdx] >> bitOff
			if bitOff > 0 && wordIdx+1 < 4 {
				v |= words[wordIdx+1] << (64 - bitOff)
			}
			v &= field.Mask29

			limbs[i][lane] = v
		}
	}
	var out field.Element
	out.SetLimbs(limbs)
	return &out
}

// elementToBytes converts a lane-packed, finally-reduced field.Element back
// into four 32-byte little-endian encodings.
func elementToBytes(e *field.Element) Elements {
	limbs := e.Limbs()
	var out Elements
	for lane := 0; lane < 4; lane++ {
		var words [4]uint64
		for i := 0; i < field.NWords; i++ {
			bitpos := field.Bits29 * i
			wordIdx := bitpos / 64
			bitOff := uint(bitpos % 64)

			limb := limbs[i][lane] & field.Mask29
			words[wordIdx] |= limb << bitOff
			if bitOff+field.Bits29 > 64 && wordIdx+1 < 4 {
				words[wordIdx+1] |= limb >> (64 - bitOff)
			}
		}
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint64(out[lane][8*i:8*i+8], words[i])
		}
	}
	return out
}
