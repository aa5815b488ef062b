// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package merklesum

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/consensys/solvency/entry"
)

func testEntries(t *testing.T, balances ...int64) []entry.Entry {
	t.Helper()
	entries := make([]entry.Entry, len(balances))
	for i, b := range balances {
		var err error
		entries[i], err = entry.New(fmt.Sprintf("user_%d", i), []*big.Int{big.NewInt(b)})
		require.NoError(t, err)
	}
	return entries
}

func TestRoundTrip(t *testing.T) {
	assert := require.New(t)

	tree, err := NewTree(testEntries(t, 10, 20, 30, 40, 50, 60, 70, 80), 0)
	assert.NoError(err)
	assert.Equal(3, tree.Depth())

	for i := 0; i < tree.NbLeaves(); i++ {
		proof, err := tree.Prove(i)
		assert.NoError(err)
		assert.True(VerifyProof(&proof), "leaf %d", i)
	}
}

func TestRoundTripPadded(t *testing.T) {
	assert := require.New(t)

	// 5 entries pad to 8 leaves; padding leaves carry zero balances
	tree, err := NewTree(testEntries(t, 1, 2, 3, 4, 5), 0)
	assert.NoError(err)
	assert.Equal(8, tree.NbLeaves())

	var total fr.Element
	total.SetUint64(15)
	root := tree.Root()
	assert.True(total.Equal(&root.Balance))

	for i := 0; i < tree.NbLeaves(); i++ {
		proof, err := tree.Prove(i)
		assert.NoError(err)
		assert.True(VerifyProof(&proof), "leaf %d", i)
	}
}

func TestSingleLeaf(t *testing.T) {
	assert := require.New(t)

	tree, err := NewTree(testEntries(t, 42), 0)
	assert.NoError(err)
	assert.Equal(0, tree.Depth())

	proof, err := tree.Prove(0)
	assert.NoError(err)
	assert.Empty(proof.SiblingHashes)
	assert.True(VerifyProof(&proof))
}

func TestTamperedProof(t *testing.T) {
	assert := require.New(t)

	tree, err := NewTree(testEntries(t, 10, 20, 30, 40), 0)
	assert.NoError(err)

	valid, err := tree.Prove(2)
	assert.NoError(err)
	assert.True(VerifyProof(&valid))

	var one fr.Element
	one.SetOne()

	for level := 0; level < tree.Depth(); level++ {
		proof := clone(valid)
		proof.SiblingHashes[level].Add(&proof.SiblingHashes[level], &one)
		assert.False(VerifyProof(&proof), "flipped sibling hash at level %d", level)

		proof = clone(valid)
		proof.SiblingBalances[level].Add(&proof.SiblingBalances[level], &one)
		assert.False(VerifyProof(&proof), "flipped sibling balance at level %d", level)

		proof = clone(valid)
		proof.PathIndices[level] ^= 1
		assert.False(VerifyProof(&proof), "flipped path indicator at level %d", level)
	}

	proof := clone(valid)
	proof.RootHash.Add(&proof.RootHash, &one)
	assert.False(VerifyProof(&proof))

	proof = clone(valid)
	proof.Balance.Add(proof.Balance, big.NewInt(1))
	assert.False(VerifyProof(&proof))

	proof = clone(valid)
	proof.UserID.Add(proof.UserID, big.NewInt(1))
	assert.False(VerifyProof(&proof))
}

func TestMalformedProof(t *testing.T) {
	assert := require.New(t)

	tree, err := NewTree(testEntries(t, 10, 20, 30, 40), 0)
	assert.NoError(err)

	valid, err := tree.Prove(1)
	assert.NoError(err)

	assert.False(VerifyProof(nil))

	proof := clone(valid)
	proof.UserID = nil
	assert.False(VerifyProof(&proof))

	proof = clone(valid)
	proof.Balance = nil
	assert.False(VerifyProof(&proof))

	// truncated / extended parallel sequences
	proof = clone(valid)
	proof.SiblingHashes = proof.SiblingHashes[:1]
	assert.False(VerifyProof(&proof))

	proof = clone(valid)
	proof.SiblingBalances = append(proof.SiblingBalances, fr.Element{})
	assert.False(VerifyProof(&proof))

	proof = clone(valid)
	proof.PathIndices = nil
	assert.False(VerifyProof(&proof))

	// path indicator outside {0,1}
	proof = clone(valid)
	proof.PathIndices[0] = 2
	assert.False(VerifyProof(&proof))
}

func TestBalanceConservation(t *testing.T) {
	assert := require.New(t)

	tree, err := NewTree(testEntries(t, 7, 11, 13, 17, 19, 23, 29, 31), 0)
	assert.NoError(err)

	for l := 1; l < len(tree.levels); l++ {
		for i, node := range tree.levels[l] {
			var sum fr.Element
			sum.Add(&tree.levels[l-1][2*i].Balance, &tree.levels[l-1][2*i+1].Balance)
			assert.True(sum.Equal(&node.Balance), "level %d node %d", l, i)
		}
	}

	var total fr.Element
	total.SetUint64(7 + 11 + 13 + 17 + 19 + 23 + 29 + 31)
	root := tree.Root()
	assert.True(total.Equal(&root.Balance))
}

func TestTreeErrors(t *testing.T) {
	assert := require.New(t)

	_, err := NewTree(nil, 0)
	assert.ErrorIs(err, ErrEmptyTree)

	entries := testEntries(t, 1, 2)
	_, err = NewTree(entries, 1)
	assert.ErrorIs(err, ErrCurrencyOutOfRange)

	tree, err := NewTree(entries, 0)
	assert.NoError(err)
	_, err = tree.Prove(-1)
	assert.ErrorIs(err, ErrIndexOutOfRange)
	_, err = tree.Prove(tree.NbLeaves())
	assert.ErrorIs(err, ErrIndexOutOfRange)
}

// VerifyProof must hold its no-panic contract whatever the sequence lengths are.
func TestVerifyProofAdversarialLengths(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary sequence lengths never panic", prop.ForAll(
		func(nbHashes, nbBalances, nbIndices uint8) bool {
			proof := Proof{
				UserID:          big.NewInt(1),
				Balance:         big.NewInt(2),
				SiblingHashes:   make([]fr.Element, nbHashes%16),
				SiblingBalances: make([]fr.Element, nbBalances%16),
				PathIndices:     make([]uint8, nbIndices%16),
			}
			VerifyProof(&proof)
			return true
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.TestingRun(t)
}

func clone(p Proof) Proof {
	res := Proof{
		UserID:          new(big.Int).Set(p.UserID),
		Balance:         new(big.Int).Set(p.Balance),
		RootHash:        p.RootHash,
		SiblingHashes:   make([]fr.Element, len(p.SiblingHashes)),
		SiblingBalances: make([]fr.Element, len(p.SiblingBalances)),
		PathIndices:     make([]uint8, len(p.PathIndices)),
	}
	copy(res.SiblingHashes, p.SiblingHashes)
	copy(res.SiblingBalances, p.SiblingBalances)
	copy(res.PathIndices, p.PathIndices)
	return res
}
