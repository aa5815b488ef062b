// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package merklesum

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/solvency/encode"
)

// Proof claims that the leaf (UserID, Balance) is included in the tree committed to
// by RootHash. SiblingHashes, SiblingBalances and PathIndices are parallel sequences
// of length = tree depth, ordered leaf to root. PathIndices[i] == 0 means the proven
// node is the left child at level i, 1 means it is the right child.
type Proof struct {
	UserID  *big.Int
	Balance *big.Int

	RootHash fr.Element

	SiblingHashes   []fr.Element
	SiblingBalances []fr.Element
	PathIndices     []uint8
}

// VerifyProof replays the claimed path from the leaf up and reports whether it lands
// on the committed root. Two checks are required: the recomputed hash must equal
// RootHash, and the balance accumulated along the path must equal the final node's
// balance. It is safe on adversarial input: malformed proofs (mismatched sequence
// lengths, path indicators outside {0,1}, nil values) verify false, never panic.
func VerifyProof(proof *Proof) bool {
	if proof == nil || proof.UserID == nil || proof.Balance == nil {
		return false
	}
	depth := len(proof.SiblingHashes)
	if len(proof.SiblingBalances) != depth || len(proof.PathIndices) != depth {
		return false
	}

	node := LeafNode(proof.UserID, proof.Balance)
	balance := encode.FromBigInt(proof.Balance)

	for i := 0; i < depth; i++ {
		sibling := Node{
			Hash:    proof.SiblingHashes[i],
			Balance: proof.SiblingBalances[i],
		}

		switch proof.PathIndices[i] {
		case 0:
			node = MiddleNode(&node, &sibling)
		case 1:
			node = MiddleNode(&sibling, &node)
		default:
			return false
		}

		balance.Add(&balance, &sibling.Balance)
	}

	return node.Hash.Equal(&proof.RootHash) && balance.Equal(&node.Balance)
}
