// Package trace defines the execution trace consumed by the proving backend:
// a rectangular table of field elements stored row-major in a single flat
// slice.
package trace

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Trace is an execution trace: a fixed number of rows of Width field elements
// each. A trace is built once by a generator and must be treated as immutable
// once handed to the backend.
type Trace struct {
	values []fr.Element
	width  int
}

// New allocates a zero-initialized trace. It panics if nbRows or width is not
// positive; sizes come from code, not from user data.
func New(nbRows, width int) *Trace {
	if nbRows <= 0 || width <= 0 {
		panic(fmt.Sprintf("trace: invalid dimensions %dx%d", nbRows, width))
	}
	return &Trace{values: make([]fr.Element, nbRows*width), width: width}
}

// FromValues wraps an existing flat row-major slice as a trace. The slice
// length must be a nonzero multiple of width.
func FromValues(values []fr.Element, width int) (*Trace, error) {
	if width <= 0 {
		return nil, fmt.Errorf("trace: width must be positive, got %d", width)
	}
	if len(values) == 0 || len(values)%width != 0 {
		return nil, fmt.Errorf("trace: length %d is not a nonzero multiple of width %d", len(values), width)
	}
	return &Trace{values: values, width: width}, nil
}

// NbRows returns the number of rows.
func (t *Trace) NbRows() int { return len(t.values) / t.width }

// Width returns the number of columns.
func (t *Trace) Width() int { return t.width }

// Row returns the i-th row as a subslice aliasing the trace storage; writing
// the returned cells writes the trace.
func (t *Trace) Row(i int) []fr.Element {
	return t.values[i*t.width : (i+1)*t.width]
}

// Column returns a copy of the j-th column.
func (t *Trace) Column(j int) []fr.Element {
	col := make([]fr.Element, t.NbRows())
	for i := range col {
		col[i] = t.values[i*t.width+j]
	}
	return col
}

// Values returns the backing row-major slice.
func (t *Trace) Values() []fr.Element { return t.values }
