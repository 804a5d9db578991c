package fibonacci

import (
	"fmt"
	"math/bits"

	"github.com/Annkkitaaa/plonky3-simple-implementations/trace"
	"github.com/consensys/gnark-crypto/ecc"
)

// MinRows is the default floor on the trace height. The floor is imposed by
// the proving backend (a minimum evaluation domain size), not by the
// recurrence itself; WithMinRows overrides it.
const MinRows = 256

// Option configures trace generation.
type Option func(*config) error

type config struct {
	minRows int
}

// WithMinRows overrides the floor on the trace height. k must be a power of
// two >= 1.
func WithMinRows(k int) Option {
	return func(c *config) error {
		if k < 1 || bits.OnesCount(uint(k)) != 1 {
			return fmt.Errorf("row floor must be a power of two >= 1, got %d", k)
		}
		c.minRows = k
		return nil
	}
}

// GenerateTrace produces the execution trace covering the first numSteps
// terms of the recurrence. The table height is
// max(next_power_of_two(numSteps), floor), and the recurrence is applied
// through the very last row so that rows past numSteps keep satisfying the
// transition constraints of Air.
//
// numSteps <= 1 is a defined edge case: the seed row is always materialized
// and numSteps then only influences the table height.
func GenerateTrace(numSteps int, opts ...Option) (*trace.Trace, error) {
	if numSteps < 0 {
		return nil, fmt.Errorf("numSteps must be >= 0, got %d", numSteps)
	}
	cfg := config{minRows: MinRows}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n := int(ecc.NextPowerOfTwo(uint64(numSteps)))
	if n < cfg.minRows {
		n = cfg.minRows
	}

	t := trace.New(n, Width)

	// seed (0, 1); the table is zero initialized
	mustRow(t.Row(0)).Curr().SetOne()

	for i := 1; i < n; i++ {
		prev := mustRow(t.Row(i - 1))
		row := mustRow(t.Row(i))
		*row.Prev() = *prev.Curr()
		row.Curr().Add(prev.Prev(), prev.Curr())
	}

	return t, nil
}
