// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package merklesum

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/consensys/solvency/entry"
)

var (
	// ErrEmptyTree a tree needs at least one leaf
	ErrEmptyTree = errors.New("tree has no leaves")

	// ErrCurrencyOutOfRange the requested currency is not carried by every entry
	ErrCurrencyOutOfRange = errors.New("currency index is out of range for an entry")

	// ErrIndexOutOfRange the requested leaf index is beyond the entry set
	ErrIndexOutOfRange = errors.New("leaf index is out of range")
)

type leaf struct {
	userID  *big.Int
	balance *big.Int
}

// Tree is a balanced Merkle sum tree over one currency's balances. The leaf set is
// zero-padded to the next power of two; padding leaves have identity 0 and balance 0,
// so the root balance equals the custodian's total liabilities for that currency.
type Tree struct {
	leaves []leaf
	levels [][]Node // levels[0] = leaf nodes, last level = root
}

// NewTree builds the tree for the given currency column of the entry set.
func NewTree(entries []entry.Entry, currency int) (*Tree, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTree
	}

	nbLeaves := 1
	if len(entries) > 1 {
		nbLeaves = 1 << bits.Len(uint(len(entries)-1))
	}

	t := &Tree{
		leaves: make([]leaf, nbLeaves),
	}
	for i, e := range entries {
		if currency < 0 || currency >= e.NbCurrencies() {
			return nil, ErrCurrencyOutOfRange
		}
		t.leaves[i] = leaf{userID: e.UserID(), balance: e.Balance(currency)}
	}
	for i := len(entries); i < nbLeaves; i++ {
		t.leaves[i] = leaf{userID: new(big.Int), balance: new(big.Int)}
	}

	level := make([]Node, nbLeaves)
	for i, l := range t.leaves {
		level[i] = LeafNode(l.userID, l.balance)
	}
	t.levels = append(t.levels, level)

	for len(level) > 1 {
		next := make([]Node, len(level)/2)
		for i := range next {
			next[i] = MiddleNode(&level[2*i], &level[2*i+1])
		}
		t.levels = append(t.levels, next)
		level = next
	}

	return t, nil
}

// Root returns the root node; its Balance is the aggregate of all leaf balances.
func (t *Tree) Root() Node {
	return t.levels[len(t.levels)-1][0]
}

// Depth returns the number of levels between a leaf and the root.
func (t *Tree) Depth() int {
	return len(t.levels) - 1
}

// NbLeaves returns the padded leaf count.
func (t *Tree) NbLeaves() int {
	return len(t.leaves)
}

// Prove returns the inclusion proof for the leaf at the given index.
func (t *Tree) Prove(index int) (Proof, error) {
	if index < 0 || index >= len(t.leaves) {
		return Proof{}, ErrIndexOutOfRange
	}

	depth := t.Depth()
	proof := Proof{
		UserID:          new(big.Int).Set(t.leaves[index].userID),
		Balance:         new(big.Int).Set(t.leaves[index].balance),
		RootHash:        t.Root().Hash,
		SiblingHashes:   make([]fr.Element, depth),
		SiblingBalances: make([]fr.Element, depth),
		PathIndices:     make([]uint8, depth),
	}

	pos := index
	for i := 0; i < depth; i++ {
		sibling := t.levels[i][pos^1]
		proof.SiblingHashes[i] = sibling.Hash
		proof.SiblingBalances[i] = sibling.Balance
		proof.PathIndices[i] = uint8(pos & 1)
		pos >>= 1
	}

	return proof, nil
}
