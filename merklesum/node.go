// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package merklesum implements a Merkle sum tree over customer balances.
//
// Each node carries a MiMC hash and the aggregate balance of its subtree, so a single
// root commits both to the set of (identity, balance) leaves and to the custodian's
// total liabilities. Proof verification is offline: it needs only the proof and the
// root, no trusted setup.
package merklesum

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/consensys/solvency/encode"
)

// Node is one Merkle sum tree node. For an internal node,
// Balance = left.Balance + right.Balance and
// Hash = MiMC(left.Hash, right.Hash, Balance).
type Node struct {
	Hash    fr.Element
	Balance fr.Element
}

// LeafNode builds the leaf committing to one customer's identity and balance.
func LeafNode(userID, balance *big.Int) Node {
	var n Node
	n.Balance = encode.FromBigInt(balance)
	id := encode.FromBigInt(userID)

	h := mimc.NewMiMC()
	b := id.Bytes()
	h.Write(b[:])
	b = n.Balance.Bytes()
	h.Write(b[:])
	n.Hash.SetBytes(h.Sum(nil))
	return n
}

// MiddleNode combines two children into their parent. The combined balance is hashed
// together with both child hashes so the aggregate sum is bound into the root.
func MiddleNode(left, right *Node) Node {
	var n Node
	n.Balance.Add(&left.Balance, &right.Balance)

	h := mimc.NewMiMC()
	b := left.Hash.Bytes()
	h.Write(b[:])
	b = right.Hash.Bytes()
	h.Write(b[:])
	b = n.Balance.Bytes()
	h.Write(b[:])
	n.Hash.SetBytes(h.Sum(nil))
	return n
}
