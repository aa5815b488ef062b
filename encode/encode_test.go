// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package encode

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestFromBigInt(t *testing.T) {
	assert := require.New(t)

	var want fr.Element

	want.SetUint64(42)
	assert.True(want.Equal(toPtr(FromBigInt(big.NewInt(42)))))

	// reduction: r + 42 ≡ 42
	overflow := new(big.Int).Add(fr.Modulus(), big.NewInt(42))
	assert.True(want.Equal(toPtr(FromBigInt(overflow))))

	// -1 ≡ r - 1
	want.SetOne()
	want.Neg(&want)
	assert.True(want.Equal(toPtr(FromBigInt(big.NewInt(-1)))))
}

func TestFits(t *testing.T) {
	assert := require.New(t)

	rMinusOne := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))

	assert.True(Fits(big.NewInt(0)))
	assert.True(Fits(rMinusOne))
	assert.False(Fits(fr.Modulus()))
	assert.False(Fits(big.NewInt(-1)))
}

func TestFromBigIntProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("congruence: FromBigInt(v+r) == FromBigInt(v)", prop.ForAll(
		func(v uint64) bool {
			a := FromBigInt(new(big.Int).SetUint64(v))
			b := FromBigInt(new(big.Int).Add(new(big.Int).SetUint64(v), fr.Modulus()))
			return a.Equal(&b)
		},
		gen.UInt64(),
	))

	properties.Property("determinism", prop.ForAll(
		func(v uint64) bool {
			a := FromBigInt(new(big.Int).SetUint64(v))
			b := FromBigInt(new(big.Int).SetUint64(v))
			return a.Equal(&b)
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func toPtr(e fr.Element) *fr.Element {
	return &e
}
