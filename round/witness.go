// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/consensys/solvency/encode"
	"github.com/consensys/solvency/entry"
)

// BuildColumnPolynomials encodes the entry set as coefficient-form column
// polynomials over the setup's domain: column 0 evaluates to entry i's identity at
// row point Generator^i, column c >= 1 to entry i's balance for currency c-1. Rows
// beyond the entry set evaluate to zero.
func BuildColumnPolynomials(entries []entry.Entry, setup *TrustedSetup) ([][]fr.Element, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyEntrySet
	}
	if uint64(len(entries)) > setup.domain.Cardinality {
		return nil, fmt.Errorf("%w: %d entries exceed the 2^%d domain",
			ErrDomainTooSmall, len(entries), setup.k)
	}
	for i, e := range entries {
		if e.NbCurrencies() != setup.nbColumns-1 {
			return nil, fmt.Errorf("%w: entry %d has %d balances, expected %d",
				ErrBalanceArity, i, e.NbCurrencies(), setup.nbColumns-1)
		}
	}

	polys := make([][]fr.Element, setup.nbColumns)
	for c := range polys {
		evals := make([]fr.Element, setup.domain.Cardinality)
		for i := range entries {
			if c == 0 {
				evals[i] = encode.FromBigInt(entries[i].UserID())
			} else {
				evals[i] = encode.FromBigInt(entries[i].Balance(c - 1))
			}
		}

		// Lagrange -> canonical
		setup.domain.FFTInverse(evals, fft.DIF)
		fft.BitReverse(evals)

		polys[c] = evals
	}

	return polys, nil
}
