// Package arithmetic arithmetizes a fixed arithmetic identity: a single
// width-4 trace row holds the operands and result of a + c*d = e.
package arithmetic

import (
	"fmt"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Width is the number of columns of the identity trace.
const Width = 4

const (
	colA = iota
	colC
	colD
	colE
)

// Row is a named view over one width-4 row. It aliases the cells it was
// built from: writing through the accessors writes the underlying trace.
type Row struct {
	cells []fr.Element
}

// AsRow views a flat cell slice as an identity row. It fails unless the
// slice holds exactly Width cells.
func AsRow(cells []fr.Element) (Row, error) {
	if len(cells) != Width {
		return Row{}, fmt.Errorf("%w: want %d cells, got %d", air.ErrInvalidRowWidth, Width, len(cells))
	}
	return Row{cells: cells}, nil
}

func mustRow(cells []fr.Element) Row {
	r, err := AsRow(cells)
	if err != nil {
		panic(err)
	}
	return r
}

// A is the additive operand.
func (r Row) A() *fr.Element { return &r.cells[colA] }

// C is the first multiplicative operand.
func (r Row) C() *fr.Element { return &r.cells[colC] }

// D is the second multiplicative operand.
func (r Row) D() *fr.Element { return &r.cells[colD] }

// E is the expected result.
func (r Row) E() *fr.Element { return &r.cells[colE] }
