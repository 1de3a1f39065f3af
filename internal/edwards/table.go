// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards

// tableEntry is one precomputed fixed-base multiple, stored as three
// coordinates of the Duif triple ((y+x)/2, (y-x)/2, d*x*y), each in the
// generic 4x64-bit little-endian chunk format QueryTable expects (this is
// a compact storage format only; arithmetic never runs on it directly, it
// is converted to the 29-bit vectorized layout by chunksToElement at
// query time).
type tableEntry struct {
	yPlusX  [4]uint64
	yMinusX [4]uint64
	t2d     [4]uint64
}

// baseColumns is the number of table columns: the clamped scalar is
// recoded into 64 signed nibbles, processed two at a time (one odd, one
// even index sharing the same column, see FixedBaseMul), so 32 columns
// of pre-shifted base points B' = 256^j*Base cover the full scalar.
const baseColumns = 32

// tableRows is the number of stored multiples per column: a signed digit
// in [-8,7] has absolute value 0..8, magnitude 0 handled as the neutral
// element, so rows cover magnitudes 1..8. Column j's row m-1 holds m*B'.
const tableRows = 8

// baseTable holds tableRows precomputed multiples of the fixed base point
// for each of baseColumns digit positions: baseTable[pos][m-1] is
// m*256^pos*Base. It is populated once, from public constants, by
// buildBaseTable in table_gen.go.
var baseTable [baseColumns][tableRows]tableEntry

func init() {
	buildBaseTable()
}
