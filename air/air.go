// Package air defines the contract between a computation's constraint
// evaluator (its Algebraic Intermediate Representation) and the proving
// backend, along with a concrete evaluation path used to check traces.
package air

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrInvalidRowWidth is returned when a flat cell slice does not match
	// the width a row schema declares.
	ErrInvalidRowWidth = errors.New("invalid row width")

	// ErrUnsatisfiedConstraint is returned when a trace does not satisfy an
	// AIR constraint.
	ErrUnsatisfiedConstraint = errors.New("unsatisfied constraint")
)

// Air describes a computation as polynomial constraints over pairs of
// adjacent trace rows. Implementations are stateless and reusable across any
// trace matching their declared width.
type Air interface {
	// Width returns the number of columns of the execution trace.
	Width() int

	// Eval emits the constraints of the computation through b. It must be
	// deterministic: for a given row pair it asserts the same values in the
	// same order.
	Eval(b Builder) error
}

// Builder gives an Air symbolic access to two consecutive trace rows and
// collects its zero assertions.
type Builder interface {
	// Local returns the cells of the current row.
	Local() []fr.Element

	// Next returns the cells of the following row; on the last row it wraps
	// around to row 0.
	Next() []fr.Element

	// AssertZero records a constraint enforced on every row of the trace.
	AssertZero(v fr.Element)

	// WhenTransition returns a view of the builder whose assertions are
	// enforced on row pairs (i, i+1) for i in [0, n-2] only, never on the
	// wraparound pair (n-1, 0).
	WhenTransition() Builder
}
