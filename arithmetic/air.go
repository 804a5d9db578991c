package arithmetic

import (
	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Air is the constraint evaluator of the identity. It is stateless and can
// be reused across traces.
type Air struct{}

var _ air.Air = Air{}

// Width implements air.Air.
func (Air) Width() int { return Width }

// Eval asserts local.a + local.c*local.d - local.e == 0 on every row. The
// identity relates no adjacent rows, so the next row is never read.
func (Air) Eval(b air.Builder) error {
	local, err := AsRow(b.Local())
	if err != nil {
		return err
	}

	var identity fr.Element
	identity.Mul(local.C(), local.D()).
		Add(&identity, local.A()).
		Sub(&identity, local.E())
	b.AssertZero(identity)

	return nil
}
