// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package solvency implements the cryptographic core of a proof-of-solvency protocol.
//
// A custodian periodically commits to a snapshot of all customer balances across
// multiple currencies, and later proves to any individual customer that a specific
// balance was included in the committed snapshot, without revealing other customers'
// data. Two independent accumulators coexist:
//   - a KZG polynomial-commitment scheme over per-column polynomials (one identity
//     column plus one column per currency), see package round
//   - a Merkle sum tree whose nodes carry both a hash and an aggregate balance,
//     see package merklesum
//
// All arithmetic is over the BN254 scalar field, using
// github.com/consensys/gnark-crypto.
package solvency

import (
	"github.com/blang/semver/v4"
)

// Version of the solvency module
var Version = semver.MustParse("0.1.0")
