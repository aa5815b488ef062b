// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package encode maps arbitrary-precision integers to BN254 scalar field elements.
//
// User identities and balances are handled as big.Int by the rest of the module;
// every cryptographic operation (KZG openings, Merkle sum tree hashing) works over
// fr.Element. The mapping is total and deterministic: FromBigInt never fails, it
// reduces modulo the field order. Callers that need the encoding to be injective
// (which solvency soundness requires) must check Fits beforehand; a value at or above
// the field order aliases a smaller one and silently corrupts the committed data.
package encode

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FromBigInt returns the unique field element congruent to v modulo the BN254
// scalar field order. Negative values follow modular arithmetic.
func FromBigInt(v *big.Int) fr.Element {
	var e fr.Element
	e.SetBigInt(v)
	return e
}

// Fits reports whether v is in [0, r), r the BN254 scalar field order, i.e. whether
// FromBigInt(v) represents v without reduction.
func Fits(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(fr.Modulus()) < 0
}
