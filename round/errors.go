// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import "errors"

var (
	// ErrInvalidSetupID the trusted setup provenance identifier does not end with a
	// parsable domain-size exponent
	ErrInvalidSetupID = errors.New("malformed trusted setup identifier")

	// ErrColumnMismatch the number of column polynomials does not match the declared
	// circuit shape (one identity column plus one column per currency)
	ErrColumnMismatch = errors.New("column count does not match the circuit shape")

	// ErrDomainTooSmall the evaluation domain or the SRS cannot hold the epoch's data
	ErrDomainTooSmall = errors.New("domain size does not support the circuit shape")

	// ErrBalanceArity an entry does not carry one balance per declared currency
	ErrBalanceArity = errors.New("entry balance count does not match the currency count")

	// ErrEmptyEntrySet a snapshot needs at least one entry
	ErrEmptyEntrySet = errors.New("entry set is empty")

	// ErrIndexOutOfRange the requested user index is beyond the entry set
	ErrIndexOutOfRange = errors.New("user index is out of the entry set range")

	// ErrProofSelfCheck a freshly generated opening proof failed its own verification;
	// the snapshot's commitment and claimed data disagree
	ErrProofSelfCheck = errors.New("opening proof self-check failed")

	// ErrNoSigner commitment dispatch requires a signer
	ErrNoSigner = errors.New("round has no signer")
)
