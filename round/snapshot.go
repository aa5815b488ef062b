// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/solvency/encode"
	"github.com/consensys/solvency/entry"
	"github.com/consensys/solvency/logger"
)

// Snapshot binds one epoch's column polynomials and entry set to a trusted setup.
// Column 0 encodes user identities, columns 1..N the balances in declared currency
// order; polynomial i evaluates, at domain point Generator^row, to row's value for
// that column. Immutable after construction, safe for concurrent proof requests.
type Snapshot struct {
	setup   *TrustedSetup
	polys   [][]fr.Element // coefficient form
	entries []entry.Entry
	nbTasks int
}

// NewSnapshot validates the epoch's data against the trusted setup's circuit shape
// and stores it immutably.
func NewSnapshot(polys [][]fr.Element, entries []entry.Entry, setup *TrustedSetup, opts ...Option) (*Snapshot, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(polys) != setup.nbColumns {
		return nil, fmt.Errorf("%w: got %d polynomials, circuit has %d columns",
			ErrColumnMismatch, len(polys), setup.nbColumns)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyEntrySet
	}
	if uint64(len(entries)) > setup.domain.Cardinality {
		return nil, fmt.Errorf("%w: %d entries exceed the 2^%d domain",
			ErrDomainTooSmall, len(entries), setup.k)
	}

	s := &Snapshot{
		setup:   setup,
		polys:   make([][]fr.Element, len(polys)),
		entries: make([]entry.Entry, len(entries)),
		nbTasks: cfg.nbTasks,
	}

	for i, p := range polys {
		if uint64(len(p)) > setup.domain.Cardinality {
			return nil, fmt.Errorf("%w: column %d has degree %d, domain holds 2^%d",
				ErrDomainTooSmall, i, len(p)-1, setup.k)
		}
		s.polys[i] = make([]fr.Element, len(p))
		copy(s.polys[i], p)
	}

	for i, e := range entries {
		if e.NbCurrencies() != setup.nbColumns-1 {
			return nil, fmt.Errorf("%w: entry %d has %d balances, expected %d",
				ErrBalanceArity, i, e.NbCurrencies(), setup.nbColumns-1)
		}
		s.entries[i] = e
	}

	log := logger.Logger()
	log.Debug().
		Int("nbEntries", len(entries)).
		Int("nbColumns", setup.nbColumns).
		Uint64("k", setup.k).
		Msg("snapshot constructed")

	return s, nil
}

// NbEntries returns the size of the entry set.
func (s *Snapshot) NbEntries() int {
	return len(s.entries)
}

// ProofOfInclusion generates the KZG inclusion proof for the user at userIndex.
//
// For each column it commits to the polynomial, opens it at the user's row point
// Generator^userIndex, checks the opening against the entry's own data and the
// verifying key, and serializes the opening proof point as two 32-byte big-endian
// coordinates. Columns are processed in parallel; the calldata concatenates the
// per-column segments strictly in column order, so the output is deterministic.
func (s *Snapshot) ProofOfInclusion(userIndex int) (*InclusionProof, error) {
	if userIndex < 0 || userIndex >= len(s.entries) {
		return nil, fmt.Errorf("%w: index %d, entry set size %d",
			ErrIndexOutOfRange, userIndex, len(s.entries))
	}
	user := &s.entries[userIndex]

	// the evaluation point is the domain point assigned to the user's row, not a
	// random challenge; opening anywhere else would break row binding
	var point fr.Element
	point.Exp(s.setup.domain.Generator, big.NewInt(int64(userIndex)))

	segments := make([][]byte, len(s.polys))

	var g errgroup.Group
	g.SetLimit(s.nbTasks)
	for column := range s.polys {
		g.Go(func() error {
			seg, err := s.openColumn(column, point, user)
			if err != nil {
				return err
			}
			segments[column] = seg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &InclusionProof{
		PublicInputs:  []*big.Int{}, // reserved for future on-chain binding
		ProofCalldata: bytes.Join(segments, nil),
	}, nil
}

// openColumn opens one column at the user's row point and returns the serialized
// opening proof coordinates.
func (s *Snapshot) openColumn(column int, point fr.Element, user *entry.Entry) ([]byte, error) {
	var claimed fr.Element
	if column == 0 {
		claimed = encode.FromBigInt(user.UserID())
	} else {
		claimed = encode.FromBigInt(user.Balance(column - 1))
	}

	commitment, err := kzg.Commit(s.polys[column], s.setup.srs.Pk, s.nbTasks)
	if err != nil {
		return nil, fmt.Errorf("commit column %d: %w", column, err)
	}

	proof, err := kzg.Open(s.polys[column], point, s.setup.srs.Pk)
	if err != nil {
		return nil, fmt.Errorf("open column %d: %w", column, err)
	}

	// the polynomial must agree with the entry set it claims to encode
	if !proof.ClaimedValue.Equal(&claimed) {
		return nil, fmt.Errorf("%w: column %d evaluation differs from the entry", ErrProofSelfCheck, column)
	}
	if err := kzg.Verify(&commitment, &proof, point, s.setup.srs.Vk); err != nil {
		return nil, fmt.Errorf("%w: column %d: %v", ErrProofSelfCheck, column, err)
	}

	x := proof.H.X.Bytes()
	y := proof.H.Y.Bytes()
	seg := make([]byte, 0, len(x)+len(y))
	seg = append(seg, x[:]...)
	seg = append(seg, y[:]...)
	return seg, nil
}

// Commitments returns the KZG commitment of every column, in column order.
func (s *Snapshot) Commitments() ([]kzg.Digest, error) {
	commitments := make([]kzg.Digest, len(s.polys))
	for i, p := range s.polys {
		var err error
		if commitments[i], err = kzg.Commit(p, s.setup.srs.Pk, s.nbTasks); err != nil {
			return nil, fmt.Errorf("commit column %d: %w", i, err)
		}
	}
	return commitments, nil
}
