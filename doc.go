// Copyright (c) 2024 The AVXECC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package x25519 computes RFC 7748 X25519 Diffie-Hellman key agreement for
four independent users at a time.

Every exported entry point, Keygen and SharedSecret, operates on a batch of
four 32-byte lane-packed values (Scalars, Elements): under the hood, each of
the nine field-element limbs and each of the eight scalar words is a single
internal/vec.V carrying one value per user, so the underlying field and
curve arithmetic drives all four users' computations in lockstep rather than
looping over them one at a time. KeygenOne and SharedSecretOne are thin
single-key wrappers for callers who don't have four peers in flight.

The package performs no low-order-point filtering and returns no error:
per RFC 7748, every 32-byte string is a valid scalar or u-coordinate, so
every operation here is total. Callers who need to reject low-order shared
secrets must do so themselves.

Results are reduced modulo 2^255-19 without a final conditional
subtraction of p: a result whose value lies in [p, 2^255) is encoded as
that value rather than as its canonical residue below p.
*/
package x25519
