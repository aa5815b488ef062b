// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Package round implements the KZG side of the solvency protocol: one Round per
// epoch binds a trusted setup, the epoch's entries and their column polynomials,
// and answers per-user inclusion-proof requests.
package round

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
)

// maxDomainExponent bounds the domain size to 2^28 rows, the largest SRS circulating
// from public powers-of-tau ceremonies.
const maxDomainExponent = 28

// TrustedSetup wraps externally generated KZG parameters for a fixed circuit shape:
// one identity column plus one column per currency, over a 2^k evaluation domain.
// It is read-only after construction and may be shared across concurrent Rounds.
type TrustedSetup struct {
	srs       *kzg.SRS
	domain    *fft.Domain
	k         uint64
	nbColumns int
}

// NewTrustedSetup binds an SRS to the circuit shape declared by nbCurrencies.
// The domain-size exponent k is parsed from the final '-'-delimited segment of
// provenanceID (the setup artifact's name, e.g. "hermez-raw-11").
func NewTrustedSetup(srs *kzg.SRS, provenanceID string, nbCurrencies int) (*TrustedSetup, error) {
	if nbCurrencies < 1 {
		return nil, fmt.Errorf("%w: need at least one currency", ErrColumnMismatch)
	}

	k, err := parseDomainExponent(provenanceID)
	if err != nil {
		return nil, err
	}

	size := uint64(1) << k
	if uint64(len(srs.Pk.G1)) < size {
		return nil, fmt.Errorf("%w: SRS supports degree %d, domain needs %d",
			ErrDomainTooSmall, len(srs.Pk.G1)-1, size)
	}

	return &TrustedSetup{
		srs:       srs,
		domain:    fft.NewDomain(size),
		k:         k,
		nbColumns: nbCurrencies + 1,
	}, nil
}

// LoadTrustedSetup reads an SRS artifact from disk; k is parsed from the file name,
// extension excluded.
func LoadTrustedSetup(path string, nbCurrencies int) (*TrustedSetup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trusted setup artifact: %w", err)
	}
	defer f.Close()

	var srs kzg.SRS
	if _, err := srs.ReadFrom(bufio.NewReader(f)); err != nil {
		return nil, fmt.Errorf("read trusted setup artifact: %w", err)
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return NewTrustedSetup(&srs, name, nbCurrencies)
}

// K returns the domain-size exponent.
func (ts *TrustedSetup) K() uint64 {
	return ts.k
}

// NbColumns returns the declared circuit width, currencies plus the identity column.
func (ts *TrustedSetup) NbColumns() int {
	return ts.nbColumns
}

// Domain returns the evaluation domain; row i of the witness corresponds to the
// point Generator^i.
func (ts *TrustedSetup) Domain() *fft.Domain {
	return ts.domain
}

func parseDomainExponent(provenanceID string) (uint64, error) {
	i := strings.LastIndex(provenanceID, "-")
	if i < 0 || i == len(provenanceID)-1 {
		return 0, fmt.Errorf("%w: %q has no exponent segment", ErrInvalidSetupID, provenanceID)
	}
	k, err := strconv.ParseUint(provenanceID[i+1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSetupID, provenanceID, err)
	}
	if k == 0 || k > maxDomainExponent {
		return 0, fmt.Errorf("%w: exponent %d out of range", ErrInvalidSetupID, k)
	}
	return k, nil
}
