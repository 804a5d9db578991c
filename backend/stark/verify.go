package stark

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"time"

	"github.com/Annkkitaaa/plonky3-simple-implementations/air"
	"github.com/Annkkitaaa/plonky3-simple-implementations/logger"
	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fri"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// Verify checks a proof against an AIR and the public inputs it was produced
// with. It returns nil for a valid proof and an error wrapping
// ErrInvalidProof otherwise; a failed check is never reported as success.
func Verify(cfg *Config, a air.Air, proof *Proof, publicInputs []fr.Element) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if proof == nil {
		return fmt.Errorf("%w: nil proof", ErrInvalidProof)
	}
	if proof.Width != uint64(a.Width()) {
		return fmt.Errorf("%w: air wants width %d, proof has width %d", air.ErrInvalidRowWidth, a.Width(), proof.Width)
	}
	blowup := cfg.blowupFactor
	if proof.NbRows == 0 || bits.OnesCount64(proof.NbRows) != 1 {
		return fmt.Errorf("%w: trace height %d is not a power of two", ErrInvalidProof, proof.NbRows)
	}
	if proof.NbRows > maxLDESize/uint64(blowup) {
		return fmt.Errorf("%w: trace height %d exceeds the supported domain", ErrInvalidProof, proof.NbRows)
	}
	if len(proof.Openings) == 0 || len(proof.Openings) > cfg.nbQueries {
		return fmt.Errorf("%w: got %d openings, want at most %d", ErrInvalidProof, len(proof.Openings), cfg.nbQueries)
	}

	n := int(proof.NbRows)
	w := int(proof.Width)
	N := n * blowup

	log := logger.Logger().With().Str("backend", "stark").Int("nbRows", n).Int("width", w).Logger()
	log.Debug().Msg("verify")
	start := time.Now()

	// replay the transcript
	fs := fiatshamir.NewTranscript(cfg.hashFunc(), challengeIDs(cfg.nbQueries)...)
	alpha, err := deriveAlpha(fs, proof.TraceRoot, publicInputs)
	if err != nil {
		return err
	}
	queries, err := deriveQueries(fs, cfg.nbQueries, proof.QuotientRoot, uint64(N))
	if err != nil {
		return err
	}
	if len(proof.Openings) != len(queries) {
		return fmt.Errorf("%w: got %d openings, want %d", ErrInvalidProof, len(proof.Openings), len(queries))
	}

	smallDomain := fft.NewDomain(uint64(n))
	bigDomain := fft.NewDomain(uint64(N))

	one := fr.One()
	lastRoot := smallDomain.GeneratorInv // ω^{n-1}
	nBig := big.NewInt(int64(n))

	for qi, idx := range queries {
		op := &proof.Openings[qi]
		nextIdx := (idx + uint64(blowup)) % uint64(N)

		if !merkletree.VerifyProof(cfg.hashFunc(), proof.TraceRoot, op.Local, idx, uint64(N)) {
			return fmt.Errorf("%w: trace opening at index %d", ErrInvalidProof, idx)
		}
		if !merkletree.VerifyProof(cfg.hashFunc(), proof.TraceRoot, op.Next, nextIdx, uint64(N)) {
			return fmt.Errorf("%w: trace opening at index %d", ErrInvalidProof, nextIdx)
		}
		if !merkletree.VerifyProof(cfg.hashFunc(), proof.QuotientRoot, op.Quotient, idx, uint64(N)) {
			return fmt.Errorf("%w: quotient opening at index %d", ErrInvalidProof, idx)
		}

		local, err := parseRow(op.Local[0], w)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProof, err)
		}
		next, err := parseRow(op.Next[0], w)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProof, err)
		}
		var qVal fr.Element
		if err := qVal.SetBytesCanonical(op.Quotient[0]); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProof, err)
		}

		// recompute the folded constraints at the query point
		assertions, err := air.Evaluate(a, local, next)
		if err != nil {
			return err
		}

		var x fr.Element
		x.Exp(bigDomain.Generator, new(big.Int).SetUint64(idx))
		x.Mul(&x, &bigDomain.FrMultiplicativeGen)

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

		// the folded value must match Q(x) * Z_H(x)
		var zh, rhs fr.Element
		zh.Exp(x, nBig).Sub(&zh, &one)
		rhs.Mul(&qVal, &zh)
		if !acc.Equal(&rhs) {
			return fmt.Errorf("%w: constraint check failed at index %d", ErrInvalidProof, idx)
		}
	}

	// low degree test on the quotient
	iopp := fri.RADIX_2_FRI.New(uint64(friSize(n)), cfg.hashFunc())
	if err := iopp.VerifyProofOfProximity(proof.Proximity); err != nil {
		return fmt.Errorf("%w: proximity test: %v", ErrInvalidProof, err)
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}
