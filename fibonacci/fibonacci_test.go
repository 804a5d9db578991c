package fibonacci

import (
	"testing"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestGenerateTraceGoldenValues(t *testing.T) {
	assert := require.New(t)

	tr, err := GenerateTrace(8, WithMinRows(8))
	assert.NoError(err)
	assert.Equal(8, tr.NbRows())
	assert.Equal(Width, tr.Width())

	want := [][2]uint64{
		{0, 1},
		{1, 1},
		{1, 2},
		{2, 3},
		{3, 5},
		{5, 8},
		{8, 13},
		{13, 21},
	}
	for i := range want {
		row := mustRow(tr.Row(i))
		var prev, curr fr.Element
		prev.SetUint64(want[i][0])
		curr.SetUint64(want[i][1])
		assert.True(row.Prev().Equal(&prev), "prev at row %d", i)
		assert.True(row.Curr().Equal(&curr), "curr at row %d", i)
	}
}

func TestGenerateTraceSizing(t *testing.T) {
	assert := require.New(t)

	cases := []struct {
		numSteps int
		opts     []Option
		want     int
	}{
		{numSteps: 0, want: MinRows},
		{numSteps: 1, want: MinRows},
		{numSteps: 100, want: MinRows},
		{numSteps: 256, want: 256},
		{numSteps: 257, want: 512},
		{numSteps: 1000, want: 1024},
		{numSteps: 0, opts: []Option{WithMinRows(1)}, want: 1},
		{numSteps: 3, opts: []Option{WithMinRows(1)}, want: 4},
		{numSteps: 100, opts: []Option{WithMinRows(16)}, want: 128},
		{numSteps: 5, opts: []Option{WithMinRows(1024)}, want: 1024},
	}
	for _, tc := range cases {
		tr, err := GenerateTrace(tc.numSteps, tc.opts...)
		assert.NoError(err)
		assert.Equal(tc.want, tr.NbRows(), "numSteps=%d", tc.numSteps)
		assert.Equal(Width, tr.Width())
	}
}

func TestGenerateTraceErrors(t *testing.T) {
	assert := require.New(t)

	_, err := GenerateTrace(-1)
	assert.Error(err)

	_, err = GenerateTrace(4, WithMinRows(0))
	assert.Error(err)
	_, err = GenerateTrace(4, WithMinRows(3))
	assert.Error(err)
	_, err = GenerateTrace(4, WithMinRows(-8))
	assert.Error(err)
}

func TestTraceSatisfiesAir(t *testing.T) {
	assert := require.New(t)

	// padding continues the recurrence, so the full table satisfies the
	// constraints whatever the requested step count
	for _, numSteps := range []int{0, 1, 2, 31, 256, 1000} {
		tr, err := GenerateTrace(numSteps, WithMinRows(16))
		assert.NoError(err)
		assert.NoError(air.IsSatisfied(Air{}, tr), "numSteps=%d", numSteps)
	}
}

func TestGenerateTraceDeterministic(t *testing.T) {
	assert := require.New(t)

	a, err := GenerateTrace(500)
	assert.NoError(err)
	b, err := GenerateTrace(500)
	assert.NoError(err)

	diff := cmp.Diff(a.Values(), b.Values(), cmp.Comparer(func(x, y fr.Element) bool {
		return x.Equal(&y)
	}))
	assert.Empty(diff)
}

func TestRecurrenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("every adjacent row pair follows the recurrence", prop.ForAll(
		func(numSteps int) bool {
			tr, err := GenerateTrace(numSteps, WithMinRows(4))
			if err != nil {
				return false
			}
			for i := 0; i+1 < tr.NbRows(); i++ {
				local := mustRow(tr.Row(i))
				next := mustRow(tr.Row(i + 1))

				var sum fr.Element
				sum.Add(local.Prev(), local.Curr())
				if !next.Curr().Equal(&sum) || !next.Prev().Equal(local.Curr()) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 2048),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAsRow(t *testing.T) {
	assert := require.New(t)

	_, err := AsRow(make([]fr.Element, 3))
	assert.ErrorIs(err, air.ErrInvalidRowWidth)
	_, err = AsRow(nil)
	assert.ErrorIs(err, air.ErrInvalidRowWidth)

	row, err := AsRow(make([]fr.Element, Width))
	assert.NoError(err)
	row.Curr().SetOne()
	assert.True(row.Curr().IsOne())
}

func TestAirWidthMismatch(t *testing.T) {
	assert := require.New(t)

	_, err := air.Evaluate(Air{}, make([]fr.Element, 3), make([]fr.Element, 3))
	assert.ErrorIs(err, air.ErrInvalidRowWidth)
}
