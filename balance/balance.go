// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package balance implements the unsigned 128-bit amounts used for native
// currency and token units. Amounts are denominated in the smallest native
// denomination. All arithmetic is checked against the 128-bit range.
package balance

import (
	"errors"
	"strconv"

	"github.com/holiman/uint256"
	safemath "github.com/luxfi/math"
)

// Size is the wire length of an encoded balance in bytes.
const Size = 16

const maxBits = 128

var (
	ErrBadBalanceLen = errors.New("balance must be 16 bytes")
	ErrOutOfRange    = errors.New("value does not fit in 128 bits")

	// Zero is the additive identity.
	Zero Balance
)

// Balance is an unsigned 128-bit integer. The zero value is usable and equal
// to Zero.
type Balance struct {
	v uint256.Int
}

// New64 returns the balance with the given uint64 value.
func New64(v uint64) Balance {
	var b Balance
	b.v.SetUint64(v)
	return b
}

// Max returns the largest representable balance, 2^128 - 1.
func Max() Balance {
	var b Balance
	b.v.SetAllOne()
	b.v.Rsh(&b.v, maxBits)
	return b
}

// FromString parses a decimal string into a balance.
func FromString(s string) (Balance, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Zero, err
	}
	if v.BitLen() > maxBits {
		return Zero, ErrOutOfRange
	}
	return Balance{v: *v}, nil
}

// FromBytes parses a 16-byte big-endian encoding into a balance.
func FromBytes(b []byte) (Balance, error) {
	if len(b) != Size {
		return Zero, ErrBadBalanceLen
	}
	var out Balance
	out.v.SetBytes(b)
	return out, nil
}

// Add returns a + b, or safemath.ErrOverflow if the sum exceeds 128 bits.
func Add(a, b Balance) (Balance, error) {
	var sum Balance
	sum.v.Add(&a.v, &b.v)
	if sum.v.BitLen() > maxBits {
		return Zero, safemath.ErrOverflow
	}
	return sum, nil
}

// Sub returns a - b, or safemath.ErrUnderflow if b > a.
func Sub(a, b Balance) (Balance, error) {
	var diff Balance
	if _, borrow := diff.v.SubOverflow(&a.v, &b.v); borrow {
		return Zero, safemath.ErrUnderflow
	}
	return diff, nil
}

// Mul returns a * b, or safemath.ErrOverflow if the product exceeds 128
// bits. Since both operands fit in 128 bits the full product fits in 256
// bits, so the intermediate multiplication cannot wrap.
func Mul(a, b Balance) (Balance, error) {
	var prod Balance
	prod.v.Mul(&a.v, &b.v)
	if prod.v.BitLen() > maxBits {
		return Zero, safemath.ErrOverflow
	}
	return prod, nil
}

// Cmp returns -1, 0, or 1 depending on whether b is less than, equal to, or
// greater than o.
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Uint64 returns the balance as a uint64, or ErrOutOfRange if it does not
// fit.
func (b Balance) Uint64() (uint64, error) {
	if !b.v.IsUint64() {
		return 0, ErrOutOfRange
	}
	return b.v.Uint64(), nil
}

// Bytes returns the 16-byte big-endian encoding.
func (b Balance) Bytes() [Size]byte {
	full := b.v.Bytes32()

	var out [Size]byte
	copy(out[:], full[Size:])
	return out
}

func (b Balance) String() string {
	return b.v.Dec()
}

// MarshalJSON encodes the balance as a quoted decimal string so that
// 128-bit values survive JSON number precision limits.
func (b Balance) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.v.Dec())), nil
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := FromString(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
