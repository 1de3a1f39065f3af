// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/vec"
)

// oneHalfChunks is 1/2 mod p, stored in the table's 4x64-bit little-endian
// chunk format. It stands in for a magnitude-0 (neutral-element) row in
// every column: the fixed-base table only stores magnitudes 1..8, so a digit of 0 is handled
// by selecting this constant as both (y+x)/2 and (y-x)/2 and zero as
// d*x*y, the Duif encoding of the identity point.
var oneHalfChunks = [4]uint64{
	0xFFFFFFFFFFFFFFF7,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
	0x3FFFFFFFFFFFFFFF,
}

// QueryTable performs a constant-time lookup of column pos's entry for
// signed digit b (component D "Masked table scan"), returning the
// Duif-form point b*256^pos*Base (b's magnitude selects one of the 8
// stored multiples, per the table layout documented on baseTable).
// It never branches on b: every one of the 8 stored rows is visited and
// combined through an equality mask, regardless of which one is selected,
// and the output's sign is corrected for negative digits by swapping the
// X/Y coordinates and negating Z.
func QueryTable(pos int, b vec.V) *DuifPoint {
	m := vec.Abs8(b)

	var xAcc, yAcc, zAcc [4]vec.V
	mask0 := vec.CondMask(vec.Eq(m, vec.Zero()))
	for c := 0; c < 4; c++ {
		xAcc[c] = vec.And(mask0, vec.Broadcast(oneHalfChunks[c]))
		yAcc[c] = vec.And(mask0, vec.Broadcast(oneHalfChunks[c]))
		zAcc[c] = vec.Zero()
	}

	row := baseTable[pos]
	for j := 0; j < 8; j++ {
		maskJ := vec.CondMask(vec.Eq(m, vec.Broadcast(uint64(j+1))))
		for c := 0; c < 4; c++ {
			xAcc[c] = vec.Xor(xAcc[c], vec.And(maskJ, vec.Broadcast(row[j].yPlusX[c])))
			yAcc[c] = vec.Xor(yAcc[c], vec.And(maskJ, vec.Broadcast(row[j].yMinusX[c])))
			zAcc[c] = vec.Xor(zAcc[c], vec.And(maskJ, vec.Broadcast(row[j].t2d[c])))
		}
	}

	bsign := vec.And(vec.Shr(b, 7), vec.Broadcast(1))
	bmask := vec.CondMask(bsign)
	for c := 0; c < 4; c++ {
		swap := vec.And(vec.Xor(xAcc[c], yAcc[c]), bmask)
		xAcc[c] = vec.Xor(xAcc[c], swap)
		yAcc[c] = vec.Xor(yAcc[c], swap)
	}

	var q DuifPoint
	q.X = *chunksToElement(xAcc)
	q.Y = *chunksToElement(yAcc)

	z := *chunksToElement(zAcc)
	var zNeg field.Element
	zNeg.Negate(&z)
	z.CondSwap(&zNeg, bsign)
	q.Z = z
	return &q
}
