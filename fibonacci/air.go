package fibonacci

import (
	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Air is the constraint evaluator of the recurrence. It is stateless and can
// be reused across traces.
type Air struct{}

var _ air.Air = Air{}

// Width implements air.Air.
func (Air) Width() int { return Width }

// Eval asserts, for every adjacent row pair, that the newer term is the sum
// of the two terms before it and that the older term shifts forward:
//
//	next.curr - local.prev - local.curr == 0
//	next.prev - local.curr == 0
func (Air) Eval(b air.Builder) error {
	local, err := AsRow(b.Local())
	if err != nil {
		return err
	}
	next, err := AsRow(b.Next())
	if err != nil {
		return err
	}

	transition := b.WhenTransition()

	var recurrence fr.Element
	recurrence.Sub(next.Curr(), local.Prev()).Sub(&recurrence, local.Curr())
	transition.AssertZero(recurrence)

	var propagation fr.Element
	propagation.Sub(next.Prev(), local.Curr())
	transition.AssertZero(propagation)

	return nil
}
