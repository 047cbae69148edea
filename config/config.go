// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "time"

// Config contains all the foundational parameters of the minting runtime.
type Config struct {
	// Gas charged for every message dispatch, including nested calls
	BaseCallGas uint64

	// Upper bound on the gas budget of a single externally submitted call
	MaxCallGas uint64

	// Maximum nesting depth of cross-contract calls
	MaxCallDepth int

	// Host and port the JSON-RPC API listens on
	HTTPHost string
	HTTPPort uint16

	// Grace period for draining in-flight API requests on shutdown
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		BaseCallGas:     1_000_000,
		MaxCallGas:      100_000_000_000,
		MaxCallDepth:    8,
		HTTPHost:        "127.0.0.1",
		HTTPPort:        9750,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate ensures the configuration is valid, correcting out-of-range
// values to their defaults.
func (c *Config) Validate() error {
	if c.BaseCallGas == 0 {
		c.BaseCallGas = 1_000_000
	}
	if c.MaxCallGas < c.BaseCallGas {
		c.MaxCallGas = 100_000_000_000
	}
	if c.MaxCallDepth <= 0 {
		c.MaxCallDepth = 8
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return nil
}
