// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x25519 implements batched X25519 Diffie-Hellman key agreement
// (RFC 7748), computing four independent users' scalar multiplications in
// lockstep across SIMD-shaped lanes rather than one at a time.
package x25519

import (
	"crypto/subtle"

	"github.com/ulhaocheng/AVXECC/internal/edwards"
	"github.com/ulhaocheng/AVXECC/internal/montgomery"
)

// Keygen derives the four public keys (u-coordinates) corresponding to sk,
// one per lane, via fixed-base scalar multiplication against the canonical
// Curve25519 base point.
func Keygen(sk Scalars) Elements {
	k := packWords(sk)
	y, z := edwards.FixedBaseMul(k)
	u := edwards.ToMontgomeryU(y, z)
	u.FinalReduce()
	return elementToBytes(u)
}

// SharedSecret computes the four ECDH shared secrets between sk and the
// peer public keys in pk, one per lane, via the variable-base Montgomery
// ladder. Per RFC 7748, pk's high bit is ignored and every input is
// accepted: low-order-point filtering, if a caller needs it, is the
// caller's responsibility.
func SharedSecret(sk Scalars, pk Elements) Elements {
	k := packWords(sk)
	x := packElements(pk)
	ss := montgomery.VarBaseMul(k, x)
	ss.FinalReduce()
	return elementToBytes(ss)
}

// KeygenOne is the single-key convenience wrapper around Keygen: it packs
// sk into lane 0, replicates it across the other three lanes (their outputs
// are simply discarded), and returns lane 0's public key.
func KeygenOne(sk [32]byte) [32]byte {
	var batch Scalars
	for i := range batch {
		batch[i] = sk
	}
	return Keygen(batch)[0]
}

// SharedSecretOne is the single-key convenience wrapper around
// SharedSecret, following the same lane-0-only convention as KeygenOne.
func SharedSecretOne(sk, pk [32]byte) [32]byte {
	var skBatch Scalars
	var pkBatch Elements
	for i := range skBatch {
		skBatch[i] = sk
		pkBatch[i] = pk
	}
	return SharedSecret(skBatch, pkBatch)[0]
}

// Equal reports whether a and b are the same value, comparing each lane in
// constant time. Callers who reject low-order shared secrets (ss all-zero)
// can use this against a zero Elements rather than branching on a direct
// byte comparison.
func (a Elements) Equal(b Elements) bool {
	eq := 1
	for lane := range a {
		eq &= subtle.ConstantTimeCompare(a[lane][:], b[lane][:])
	}
	return eq == 1
}
