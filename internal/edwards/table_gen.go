// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards

import "math/big"

// This file generates the fixed-base table once, at package init, from
// the curve's public parameters using math/big. None of the inputs here
// are secret, so ordinary (non-constant-time) big.Int arithmetic is the
// right tool: it keeps the 512 precomputed points out of the source as
// hand-transcribed magic constants, the way golang-crypto's
// constant-time field code still leans on math/big for anything that
// runs over public data (e.g. its test vectors and reference checks).

var bigP = mustBig("57896044618658097711785492504343953926634992332820282019728792003956564819949")

// bigD is the twisted-Edwards curve constant d = -121665/121666 mod p.
var bigD = computeD()

// baseX, baseY are the canonical base point's affine coordinates (the
// same generator used throughout the Ed25519/X25519 ecosystem; X25519's
// u=9 Montgomery base point and this Edwards point are related by the
// standard birational map y=(u-1)/(u+1)).
var (
	baseX = mustBig("15112221349535400772501151409588531511454012693041857206046113283949847762202")
	baseY = mustBig("46316835694926478169428394003475163141307993866256225615783033603165251855960")
)

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("edwards: bad constant literal " + s)
	}
	return n
}

func computeD() *big.Int {
	num := big.NewInt(-121665)
	num.Mod(num, bigP)
	den := big.NewInt(121666)
	denInv := new(big.Int).ModInverse(den, bigP)
	d := new(big.Int).Mul(num, denInv)
	return d.Mod(d, bigP)
}

// affinePoint is an affine point (x, y) on the twisted-Edwards curve
// -x^2+y^2 = 1 + d*x^2*y^2, used only during table generation.
type affinePoint struct{ x, y *big.Int }

// addAffine returns p1+p2 using the standard (a=-1) unified twisted-
// Edwards addition law, which is complete for this curve (no exceptional
// cases), so the same formula also computes doublings (p1 == p2).
func addAffine(p1, p2 affinePoint) affinePoint {
	x1, y1, x2, y2 := p1.x, p1.y, p2.x, p2.y

	cross := new(big.Int).Mul(x1, x2)
	cross.Mul(cross, y1)
	cross.Mul(cross, y2)
	cross.Mul(cross, bigD)
	cross.Mod(cross, bigP)

	xNum := new(big.Int).Mul(x1, y2)
	xNum.Add(xNum, new(big.Int).Mul(y1, x2))
	xNum.Mod(xNum, bigP)
	xDen := new(big.Int).Add(big.NewInt(1), cross)
	xDen.Mod(xDen, bigP)
	xDen.ModInverse(xDen, bigP)
	x3 := xNum.Mul(xNum, xDen)
	x3.Mod(x3, bigP)

	yNum := new(big.Int).Mul(y1, y2)
	yNum.Add(yNum, new(big.Int).Mul(x1, x2))
	yNum.Mod(yNum, bigP)
	yDen := new(big.Int).Sub(big.NewInt(1), cross)
	yDen.Mod(yDen, bigP)
	yDen.ModInverse(yDen, bigP)
	y3 := yNum.Mul(yNum, yDen)
	y3.Mod(y3, bigP)

	return affinePoint{x3, y3}
}

// bigToChunks splits x (0 <= x < p) into four 64-bit little-endian words.
func bigToChunks(x *big.Int) [4]uint64 {
	var out [4]uint64
	mask64 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	tmp := new(big.Int).Set(x)
	word := new(big.Int)
	for i := 0; i < 4; i++ {
		word.And(tmp, mask64)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}

// storeEntry fills e with pt's Duif-form encoding ((y+x)/2, (y-x)/2, d*x*y).
func storeEntry(e *tableEntry, pt affinePoint, inv2 *big.Int) {
	sum := new(big.Int).Add(pt.y, pt.x)
	sum.Mod(sum, bigP)
	sum.Mul(sum, inv2)
	sum.Mod(sum, bigP)

	diff := new(big.Int).Sub(pt.y, pt.x)
	diff.Mod(diff, bigP)
	diff.Mul(diff, inv2)
	diff.Mod(diff, bigP)

	t2d := new(big.Int).Mul(pt.x, pt.y)
	t2d.Mul(t2d, bigD)
	t2d.Mod(t2d, bigP)

	e.yPlusX = bigToChunks(sum)
	e.yMinusX = bigToChunks(diff)
	e.t2d = bigToChunks(t2d)
}

// buildBaseTable fills baseTable with the baseColumns*tableRows
// precomputed multiples of the fixed base point (component D "Table
// generation"). Column pos holds the multiples 1*B',2*B',...,8*B' of
// B' = 256^pos*Base: row m-1 is m*B', matching the reference table
// query's direct babs-to-row mapping (no odd-only windowing). The
// same column is walked twice by FixedBaseMul, once for an odd-indexed
// digit and once for an even one with an intervening x16 scaling, which
// is why the column step here is 256 (eight doublings) rather than 16.
func buildBaseTable() {
	inv2 := new(big.Int).ModInverse(big.NewInt(2), bigP)

	col := affinePoint{new(big.Int).Set(baseX), new(big.Int).Set(baseY)}
	for pos := 0; pos < baseColumns; pos++ {
		cur := col
		for m := 1; m <= tableRows; m++ {
			storeEntry(&baseTable[pos][m-1], cur, inv2)
			if m < tableRows {
				cur = addAffine(cur, col)
			}
		}
		for i := 0; i < 8; i++ {
			col = addAffine(col, col)
		}
	}
}
