package arithmetic

import (
	"github.com/Annkkitaaa/plonky3-simple-implementations/trace"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// GenerateTrace materializes the single-row trace holding the four operands.
// No padding applies: the identity relates no adjacent rows, so a one-row
// table is a valid evaluation domain.
//
// Any operand assignment yields a well-formed trace; whether it satisfies
// Air is the prover's concern.
func GenerateTrace(a, c, d, e fr.Element) *trace.Trace {
	t := trace.New(1, Width)
	row := mustRow(t.Row(0))
	*row.A() = a
	*row.C() = c
	*row.D() = d
	*row.E() = e
	return t
}
