// Copyright 2020-2025 Consensys Software Inc.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

package round

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// InclusionProof is the per-user KZG inclusion proof for one epoch.
//
// ProofCalldata concatenates, per column in column order, the opening proof point's
// x then y coordinate as 32-byte big-endian strings. PublicInputs is an extension
// point for binding (root commitment, epoch timestamp) into on-chain verification;
// it is empty today and the wire format already carries it.
type InclusionProof struct {
	PublicInputs  []*big.Int
	ProofCalldata []byte
}

// inclusionProofRaw is the cbor wire form; public inputs travel as 32-byte
// big-endian strings.
type inclusionProofRaw struct {
	PublicInputs  [][]byte `cbor:"1,keyasint"`
	ProofCalldata []byte   `cbor:"2,keyasint"`
}

// WriteTo implements io.WriterTo, encoding the proof with cbor.
func (p *InclusionProof) WriteTo(w io.Writer) (int64, error) {
	raw := inclusionProofRaw{
		PublicInputs:  make([][]byte, len(p.PublicInputs)),
		ProofCalldata: p.ProofCalldata,
	}
	for i, v := range p.PublicInputs {
		if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
			return 0, fmt.Errorf("public input %d is not a 256-bit unsigned integer", i)
		}
		buf := make([]byte, 32)
		v.FillBytes(buf)
		raw.PublicInputs[i] = buf
	}

	data, err := cbor.Marshal(raw)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom.
func (p *InclusionProof) ReadFrom(r io.Reader) (int64, error) {
	dec := cbor.NewDecoder(r)

	var raw inclusionProofRaw
	if err := dec.Decode(&raw); err != nil {
		return int64(dec.NumBytesRead()), err
	}

	p.PublicInputs = make([]*big.Int, len(raw.PublicInputs))
	for i, b := range raw.PublicInputs {
		if len(b) != 32 {
			return int64(dec.NumBytesRead()), fmt.Errorf("public input %d: expected 32 bytes, got %d", i, len(b))
		}
		p.PublicInputs[i] = new(big.Int).SetBytes(b)
	}
	p.ProofCalldata = raw.ProofCalldata

	return int64(dec.NumBytesRead()), nil
}
