package air

import (
	"fmt"

	"github.com/Annkkitaaa/plonky3-simple-implementations/debug"
	"github.com/Annkkitaaa/plonky3-simple-implementations/trace"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Assertion is one constraint value recorded during an Eval run.
type Assertion struct {
	Value fr.Element

	// Transition is set for assertions made under Builder.WhenTransition;
	// they are not enforced on the wraparound row pair.
	Transition bool
}

type recorder struct {
	local, next []fr.Element
	assertions  *[]Assertion
	transition  bool
}

func (r recorder) Local() []fr.Element { return r.local }
func (r recorder) Next() []fr.Element  { return r.next }

func (r recorder) AssertZero(v fr.Element) {
	*r.assertions = append(*r.assertions, Assertion{Value: v, Transition: r.transition})
}

func (r recorder) WhenTransition() Builder {
	r.transition = true
	return r
}

// Evaluate runs a.Eval against one (local, next) row pair and returns the
// asserted constraint values in assertion order. Panics escaping the Eval
// code are recovered and returned as errors.
func Evaluate(a Air, local, next []fr.Element) (assertions []Assertion, err error) {
	if len(local) != a.Width() || len(next) != a.Width() {
		return nil, fmt.Errorf("%w: air wants %d cells, got local %d and next %d",
			ErrInvalidRowWidth, a.Width(), len(local), len(next))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	if err := a.Eval(recorder{local: local, next: next, assertions: &assertions}); err != nil {
		return nil, err
	}
	return assertions, nil
}

// IsSatisfied checks a full trace against an Air: every-row assertions must
// vanish on all cyclic row pairs, transition assertions on the pairs
// (i, i+1) for i in [0, n-2]. The first violation is reported with its row
// and constraint index, wrapping ErrUnsatisfiedConstraint.
func IsSatisfied(a Air, t *trace.Trace) error {
	if t.Width() != a.Width() {
		return fmt.Errorf("%w: air wants width %d, trace has width %d",
			ErrInvalidRowWidth, a.Width(), t.Width())
	}

	n := t.NbRows()
	for i := 0; i < n; i++ {
		assertions, err := Evaluate(a, t.Row(i), t.Row((i+1)%n))
		if err != nil {
			return err
		}
		wraparound := i == n-1
		for k := range assertions {
			if assertions[k].Transition && wraparound {
				continue
			}
			if !assertions[k].Value.IsZero() {
				return fmt.Errorf("%w: constraint %d at row %d", ErrUnsatisfiedConstraint, k, i)
			}
		}
	}
	return nil
}
