// SPDX-License-Identifier: MIT
// Package: gcbfs/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng = nil (stochastic constructors fail with ErrNeedRandSource)

package builder

import "math/rand"

// builderConfig aggregates the knobs used by constructors. It is passed by
// value to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
}

// newBuilderConfig applies all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
