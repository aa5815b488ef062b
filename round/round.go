// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import (
	"context"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"

	"github.com/consensys/solvency/entry"
	"github.com/consensys/solvency/logger"
)

// Signer submits an epoch's commitment for on-chain publication. Implementations
// own key management and transaction dispatch; they must honor ctx cancellation.
type Signer interface {
	SubmitCommitment(ctx context.Context, commitment []byte, timestamp uint64) error
}

// Round is one epoch of the solvency protocol: a timestamp, the epoch's Snapshot,
// and the signer publishing the epoch's commitment. Immutable after construction.
type Round struct {
	timestamp uint64
	snapshot  *Snapshot
	signer    Signer
	log       zerolog.Logger
}

// NewRound constructs the epoch's Snapshot from the supplied column polynomials and
// entries. The trusted setup is borrowed, not owned: it may back several Rounds as
// long as the circuit shape is unchanged.
func NewRound(signer Signer, polys [][]fr.Element, entries []entry.Entry, setup *TrustedSetup, timestamp uint64, opts ...Option) (*Round, error) {
	snapshot, err := NewSnapshot(polys, entries, setup, opts...)
	if err != nil {
		return nil, fmt.Errorf("construct snapshot: %w", err)
	}

	return &Round{
		timestamp: timestamp,
		snapshot:  snapshot,
		signer:    signer,
		log:       logger.Logger().With().Uint64("timestamp", timestamp).Logger(),
	}, nil
}

// Timestamp returns the epoch identifier.
func (r *Round) Timestamp() uint64 {
	return r.timestamp
}

// ProofOfInclusion returns the KZG inclusion proof for the user at userIndex.
func (r *Round) ProofOfInclusion(userIndex int) (*InclusionProof, error) {
	proof, err := r.snapshot.ProofOfInclusion(userIndex)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Int("userIndex", userIndex).Msg("inclusion proof generated")
	return proof, nil
}

// DispatchCommitment hands the epoch's commitment digest to the signer for on-chain
// submission: the Keccak-256 hash of the column commitments' uncompressed
// coordinates, in column order. It never mutates the Snapshot; signer failures and
// ctx cancellation propagate to the caller.
func (r *Round) DispatchCommitment(ctx context.Context) error {
	if r.signer == nil {
		return ErrNoSigner
	}

	commitments, err := r.snapshot.Commitments()
	if err != nil {
		return err
	}

	h := sha3.NewLegacyKeccak256()
	for i := range commitments {
		raw := commitments[i].RawBytes()
		h.Write(raw[:])
	}
	digest := h.Sum(nil)

	if err := ctx.Err(); err != nil {
		return err
	}

	r.log.Debug().Hex("commitment", digest).Msg("dispatching commitment")
	return r.signer.SubmitCommitment(ctx, digest, r.timestamp)
}
