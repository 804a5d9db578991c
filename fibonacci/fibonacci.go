// Package fibonacci arithmetizes a two-term linear recurrence: each trace row
// holds two consecutive terms, and adjacent rows are related by
// curr(n) = prev(n-1) + curr(n-1) with seed (0, 1).
package fibonacci

import (
	"fmt"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Width is the number of columns of the recurrence trace.
const Width = 2

const (
	colPrev = iota
	colCurr
)

// Row is a named view over one width-2 row. It aliases the cells it was built
// from: writing through the accessors writes the underlying trace.
type Row struct {
	cells []fr.Element
}

// AsRow views a flat cell slice as a recurrence row. It fails unless the
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

// Prev is the older of the two recurrence terms held by the row.
func (r Row) Prev() *fr.Element { return &r.cells[colPrev] }

// Curr is the newer of the two recurrence terms held by the row.
func (r Row) Curr() *fr.Element { return &r.cells[colCurr] }
