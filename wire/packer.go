// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire packs and unpacks the fixed-layout byte encodings used for
// call arguments, call results, and persisted contract state.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/ids"

	"github.com/luxfi/minter/balance"
)

const (
	ByteLen = 1
	LongLen = 8
)

var (
	ErrInsufficientLength = errors.New("packer has insufficient length for input")
	ErrExtraBytes         = errors.New("unexpected trailing bytes")
)

// Packer packs and unpacks byte arrays from/to the wire types used by
// contracts. The first error encountered sticks; later operations are
// no-ops.
type Packer struct {
	// The current byte array
	Bytes []byte
	// The offset that is being read from or written to
	Offset int

	err error
}

// New returns a Packer for building a new byte array.
func New(sizeHint int) *Packer {
	return &Packer{Bytes: make([]byte, 0, sizeHint)}
}

// NewReader returns a Packer for unpacking the provided byte array.
func NewReader(b []byte) *Packer {
	return &Packer{Bytes: b}
}

func (p *Packer) Err() error {
	return p.err
}

// Done returns an error if unpacking finished before consuming the whole
// input.
func (p *Packer) Done() error {
	if p.err != nil {
		return p.err
	}
	if p.Offset != len(p.Bytes) {
		return ErrExtraBytes
	}
	return nil
}

func (p *Packer) PackByte(val byte) {
	if p.err != nil {
		return
	}
	p.Bytes = append(p.Bytes, val)
	p.Offset += ByteLen
}

func (p *Packer) UnpackByte() byte {
	if !p.checkSpace(ByteLen) {
		return 0
	}
	val := p.Bytes[p.Offset]
	p.Offset += ByteLen
	return val
}

func (p *Packer) PackLong(val uint64) {
	if p.err != nil {
		return
	}
	p.Bytes = binary.BigEndian.AppendUint64(p.Bytes, val)
	p.Offset += LongLen
}

func (p *Packer) UnpackLong() uint64 {
	if !p.checkSpace(LongLen) {
		return 0
	}
	val := binary.BigEndian.Uint64(p.Bytes[p.Offset:])
	p.Offset += LongLen
	return val
}

func (p *Packer) PackID(id ids.ID) {
	if p.err != nil {
		return
	}
	p.Bytes = append(p.Bytes, id[:]...)
	p.Offset += ids.IDLen
}

func (p *Packer) UnpackID() ids.ID {
	if !p.checkSpace(ids.IDLen) {
		return ids.Empty
	}
	var id ids.ID
	copy(id[:], p.Bytes[p.Offset:])
	p.Offset += ids.IDLen
	return id
}

func (p *Packer) PackBalance(b balance.Balance) {
	if p.err != nil {
		return
	}
	encoded := b.Bytes()
	p.Bytes = append(p.Bytes, encoded[:]...)
	p.Offset += balance.Size
}

func (p *Packer) UnpackBalance() balance.Balance {
	if !p.checkSpace(balance.Size) {
		return balance.Zero
	}
	b, err := balance.FromBytes(p.Bytes[p.Offset : p.Offset+balance.Size])
	if err != nil {
		p.err = err
		return balance.Zero
	}
	p.Offset += balance.Size
	return b
}

func (p *Packer) checkSpace(bytes int) bool {
	if p.err != nil {
		return false
	}
	if p.Offset+bytes > len(p.Bytes) {
		p.err = ErrInsufficientLength
		return false
	}
	return true
}
