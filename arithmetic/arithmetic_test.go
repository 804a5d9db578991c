package arithmetic

import (
	"testing"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func newElement(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func TestGenerateTrace(t *testing.T) {
	assert := require.New(t)

	tr := GenerateTrace(newElement(3), newElement(4), newElement(5), newElement(23))
	assert.Equal(1, tr.NbRows())
	assert.Equal(Width, tr.Width())

	row := mustRow(tr.Row(0))
	want := newElement(3)
	assert.True(row.A().Equal(&want))
	want = newElement(4)
	assert.True(row.C().Equal(&want))
	want = newElement(5)
	assert.True(row.D().Equal(&want))
	want = newElement(23)
	assert.True(row.E().Equal(&want))
}

func TestIdentitySatisfied(t *testing.T) {
	assert := require.New(t)

	// 3 + 4*5 == 23
	tr := GenerateTrace(newElement(3), newElement(4), newElement(5), newElement(23))
	assert.NoError(air.IsSatisfied(Air{}, tr))
}

func TestIdentityUnsatisfied(t *testing.T) {
	assert := require.New(t)

	tr := GenerateTrace(newElement(3), newElement(4), newElement(5), newElement(24))
	err := air.IsSatisfied(Air{}, tr)
	assert.ErrorIs(err, air.ErrUnsatisfiedConstraint)
}

func TestIdentityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("a + c*d == e satisfies the constraint", prop.ForAll(
		func(a, c, d uint64) bool {
			ea, ec, ed := newElement(a), newElement(c), newElement(d)
			var ee fr.Element
			ee.Mul(&ec, &ed).Add(&ee, &ea)
			return air.IsSatisfied(Air{}, GenerateTrace(ea, ec, ed, ee)) == nil
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("a + c*d != e breaks the constraint", prop.ForAll(
		func(a, c, d uint64) bool {
			ea, ec, ed := newElement(a), newElement(c), newElement(d)
			var ee fr.Element
			ee.Mul(&ec, &ed).Add(&ee, &ea)
			one := fr.One()
			ee.Add(&ee, &one)
			return air.IsSatisfied(Air{}, GenerateTrace(ea, ec, ed, ee)) != nil
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAsRow(t *testing.T) {
	assert := require.New(t)

	_, err := AsRow(make([]fr.Element, 2))
	assert.ErrorIs(err, air.ErrInvalidRowWidth)

	row, err := AsRow(make([]fr.Element, Width))
	assert.NoError(err)
	row.E().SetUint64(23)
	want := newElement(23)
	assert.True(row.E().Equal(&want))
}

func TestAirWidthMismatch(t *testing.T) {
	assert := require.New(t)

	_, err := air.Evaluate(Air{}, make([]fr.Element, 2), make([]fr.Element, 2))
	assert.ErrorIs(err, air.ErrInvalidRowWidth)
}
