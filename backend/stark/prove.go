package stark

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"time"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/Annkkitaaa/plonky3-simple-implementations/logger"
	"github.com/Annkkitaaa/plonky3-simple-implementations/trace"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fri"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
	"golang.org/x/sync/errgroup"
)

// Prove generates a proof that t satisfies a. The trace height must be a
// power of two. The trace is checked against the AIR before anything is
// committed, so an unsatisfying trace fails here rather than producing a
// proof that cannot verify.
func Prove(cfg *Config, a air.Air, t *trace.Trace, publicInputs []fr.Element) (*Proof, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	w := t.Width()
	if w != a.Width() {
		return nil, fmt.Errorf("%w: air wants width %d, trace has width %d", air.ErrInvalidRowWidth, a.Width(), w)
	}
	n := t.NbRows()
	if bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("trace height must be a power of two, got %d", n)
	}
	if n > maxLDESize/cfg.blowupFactor {
		return nil, fmt.Errorf("trace height %d exceeds the supported domain at blowup %d", n, cfg.blowupFactor)
	}

	log := logger.Logger().With().Str("backend", "stark").Int("nbRows", n).Int("width", w).Logger()
	log.Debug().Msg("prove")
	start := time.Now()

	if err := air.IsSatisfied(a, t); err != nil {
		return nil, err
	}

	blowup := cfg.blowupFactor
	N := n * blowup
	smallDomain := fft.NewDomain(uint64(n))
	bigDomain := fft.NewDomain(uint64(N))

	// low degree extension of every column onto a coset of the big domain
	ldeCols := make([][]fr.Element, w)
	g, _ := errgroup.WithContext(context.TODO())
	for j := 0; j < w; j++ {
		j := j // per-iteration copy: the go directive predates Go 1.22 loopvar scoping
		g.Go(func() error {
			coeffs := t.Column(j)
			smallDomain.FFTInverse(coeffs, fft.DIF)
			fft.BitReverse(coeffs)

			evals := make([]fr.Element, N)
			copy(evals, coeffs)
			bigDomain.FFT(evals, fft.DIF, fft.OnCoset())
			fft.BitReverse(evals)

			ldeCols[j] = evals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// commit to the extended trace, one leaf per row
	rowSize := w * fr.Bytes
	traceLeaves := make([]byte, 0, N*rowSize)
	row := make([]fr.Element, w)
	for i := 0; i < N; i++ {
		for j := 0; j < w; j++ {
			row[j] = ldeCols[j][i]
		}
		traceLeaves = append(traceLeaves, rowBytes(row)...)
	}
	traceRoot := merkleRoot(cfg, traceLeaves, rowSize)

	fs := fiatshamir.NewTranscript(cfg.hashFunc(), challengeIDs(cfg.nbQueries)...)
	alpha, err := deriveAlpha(fs, traceRoot, publicInputs)
	if err != nil {
		return nil, err
	}

	qEvals, err := quotientEvals(a, ldeCols, alpha, smallDomain, bigDomain)
	if err != nil {
		return nil, err
	}

	// interpolate the quotient and enforce its degree bound
	qCoeffs := make([]fr.Element, N)
	copy(qCoeffs, qEvals)
	bigDomain.FFTInverse(qCoeffs, fft.DIF, fft.OnCoset())
	fft.BitReverse(qCoeffs)
	for k := n; k < N; k++ {
		if !qCoeffs[k].IsZero() {
			return nil, fmt.Errorf("quotient degree exceeds bound: coefficient %d is nonzero", k)
		}
	}

	fsize := friSize(n)
	friPoly := make([]fr.Element, fsize)
	copy(friPoly, qCoeffs[:n])
	iopp := fri.RADIX_2_FRI.New(uint64(fsize), cfg.hashFunc())
	proximity, err := iopp.BuildProofOfProximity(friPoly)
	if err != nil {
		return nil, err
	}

	// commit to the quotient evaluations, then derive the query positions
	quotientLeaves := make([]byte, 0, N*fr.Bytes)
	for i := range qEvals {
		b := qEvals[i].Bytes()
		quotientLeaves = append(quotientLeaves, b[:]...)
	}
	quotientRoot := merkleRoot(cfg, quotientLeaves, fr.Bytes)

	queries, err := deriveQueries(fs, cfg.nbQueries, quotientRoot, uint64(N))
	if err != nil {
		return nil, err
	}

	openings := make([]QueryOpening, len(queries))
	g, _ = errgroup.WithContext(context.TODO())
	for qi, idx := range queries {
		qi, idx := qi, idx // per-iteration copies: the go directive predates Go 1.22 loopvar scoping
		g.Go(func() error {
			var err error
			if openings[qi].Local, err = openSegment(cfg, traceLeaves, rowSize, idx); err != nil {
				return err
			}
			nextIdx := (idx + uint64(blowup)) % uint64(N)
			if openings[qi].Next, err = openSegment(cfg, traceLeaves, rowSize, nextIdx); err != nil {
				return err
			}
			openings[qi].Quotient, err = openSegment(cfg, quotientLeaves, fr.Bytes, idx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")

	return &Proof{
		TraceRoot:    traceRoot,
		QuotientRoot: quotientRoot,
		NbRows:       uint64(n),
		Width:        uint64(w),
		Openings:     openings,
		Proximity:    proximity,
	}, nil
}

// quotientEvals evaluates, on the extension coset, the alpha-folded
// constraints divided by the vanishing polynomial of the trace domain.
// Transition assertions carry the selector (x - ω^{n-1}) that excludes the
// wraparound row pair from enforcement.
func quotientEvals(a air.Air, ldeCols [][]fr.Element, alpha fr.Element, smallDomain, bigDomain *fft.Domain) ([]fr.Element, error) {
	n := int(smallDomain.Cardinality)
	N := int(bigDomain.Cardinality)
	blowup := N / n
	w := len(ldeCols)

	// Z_H(x) = x^n - 1 takes only blowup distinct values on the coset
	one := fr.One()
	var gn, wn fr.Element
	gn.Exp(bigDomain.FrMultiplicativeGen, big.NewInt(int64(n)))
	wn.Exp(bigDomain.Generator, big.NewInt(int64(n)))
	zhInv := make([]fr.Element, blowup)
	cur := gn
	for i := range zhInv {
		zhInv[i].Sub(&cur, &one)
		cur.Mul(&cur, &wn)
	}
	zhInv = fr.BatchInvert(zhInv)

	lastRoot := smallDomain.GeneratorInv // ω^{n-1}

	qEvals := make([]fr.Element, N)
	local := make([]fr.Element, w)
	next := make([]fr.Element, w)
	x := bigDomain.FrMultiplicativeGen
	for i := 0; i < N; i++ {
		for j := 0; j < w; j++ {
			local[j] = ldeCols[j][i]
			next[j] = ldeCols[j][(i+blowup)%N]
		}
		assertions, err := air.Evaluate(a, local, next)
		if err != nil {
			return nil, err
		}

		var sel fr.Element
		sel.Sub(&x, &lastRoot)

		var acc fr.Element
		pow := fr.One()
		for k := range assertions {
			v := assertions[k].Value
			if assertions[k].Transition {
				v.Mul(&v, &sel)
			}
			v.Mul(&v, &pow)
			acc.Add(&acc, &v)
			pow.Mul(&pow, &alpha)
		}
		acc.Mul(&acc, &zhInv[i%blowup])
		qEvals[i] = acc

		x.Mul(&x, &bigDomain.Generator)
	}
	return qEvals, nil
}
