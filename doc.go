// Package simplestark demonstrates how to arithmetize small computations as an
// AIR (Algebraic Intermediate Representation) and prove them with a STARK-style
// backend built on gnark-crypto primitives.
//
// Two computations are arithmetized:
//   - a two-term linear recurrence (Fibonacci), width-2 trace rows
//   - a fixed arithmetic identity a + c*d = e, a single width-4 row
//
// Each computation ships a row schema, a trace generator and a stateless
// constraint evaluator (see the fibonacci and arithmetic packages). The
// backend/stark package turns an AIR plus its execution trace into a succinct
// proof using FFT interpolation, Merkle vector commitments, a Fiat-Shamir
// transcript and FRI low degree testing, all provided by
// github.com/consensys/gnark-crypto.
package simplestark

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
