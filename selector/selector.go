// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package selector implements the 4-byte message selectors used to route
// cross-contract calls. A selector is the first four bytes of the
// BLAKE2b-256 hash of the trait-qualified method name.
package selector

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// Len is the length of a selector in bytes.
const Len = 4

var ErrBadSelectorLen = errors.New("selector must be 4 bytes")

// Selector identifies a single message entry point on a contract.
type Selector [Len]byte

// Compute derives the selector for a trait-qualified method name, e.g.
// "PSP22Mintable::mint".
func Compute(name string) Selector {
	hash := blake2b.Sum256([]byte(name))

	var s Selector
	copy(s[:], hash[:Len])
	return s
}

// FromBytes converts a 4-byte slice into a Selector.
func FromBytes(b []byte) (Selector, error) {
	var s Selector
	if len(b) != Len {
		return s, ErrBadSelectorLen
	}
	copy(s[:], b)
	return s, nil
}

func (s Selector) Bytes() []byte {
	return s[:]
}

func (s Selector) String() string {
	return "0x" + hex.EncodeToString(s[:])
}
