// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package entry defines one customer's record for a solvency epoch: an identity
// derived from the username and one balance per currency.
package entry

import (
	"errors"
	"math/big"

	"github.com/consensys/solvency/encode"
)

var (
	// ErrNoBalances an entry must carry at least one currency balance
	ErrNoBalances = errors.New("entry has no balances")

	// ErrNegativeValue balances are unsigned quantities
	ErrNegativeValue = errors.New("balance is negative")

	// ErrValueTooLarge identity or balance does not fit the scalar field
	ErrValueTooLarge = errors.New("value exceeds the scalar field capacity")
)

// Entry is one customer's record for an epoch. It is immutable once constructed;
// accessors return copies.
type Entry struct {
	userID   *big.Int   // username bytes interpreted as a big-endian integer
	balances []*big.Int // one per currency, in the epoch's declared currency order
}

// New builds an Entry from a username and its per-currency balances.
// Every value must fit the scalar field: the field encoding used downstream reduces
// modulo the field order, so an oversized value would alias another customer's data.
func New(username string, balances []*big.Int) (Entry, error) {
	userID := new(big.Int).SetBytes([]byte(username))
	if !encode.Fits(userID) {
		return Entry{}, ErrValueTooLarge
	}
	if len(balances) == 0 {
		return Entry{}, ErrNoBalances
	}
	e := Entry{
		userID:   userID,
		balances: make([]*big.Int, len(balances)),
	}
	for i, b := range balances {
		if b == nil || b.Sign() < 0 {
			return Entry{}, ErrNegativeValue
		}
		if !encode.Fits(b) {
			return Entry{}, ErrValueTooLarge
		}
		e.balances[i] = new(big.Int).Set(b)
	}
	return e, nil
}

// UserID returns the identity as a big integer.
func (e *Entry) UserID() *big.Int {
	return new(big.Int).Set(e.userID)
}

// NbCurrencies returns the number of balances carried by the entry.
func (e *Entry) NbCurrencies() int {
	return len(e.balances)
}

// Balance returns the balance for the i-th currency.
func (e *Entry) Balance(i int) *big.Int {
	return new(big.Int).Set(e.balances[i])
}

// Balances returns all balances in currency order.
func (e *Entry) Balances() []*big.Int {
	res := make([]*big.Int, len(e.balances))
	for i, b := range e.balances {
		res[i] = new(big.Int).Set(b)
	}
	return res
}
