// Package stark implements a small STARK proving backend over BN254: the
// execution trace is interpolated and low degree extended with FFTs,
// committed with Merkle trees, constraint satisfaction is reduced to a
// quotient polynomial whose low degree is established with FRI, and all
// challenges are drawn from a Fiat-Shamir transcript. Every cryptographic
// primitive comes from github.com/consensys/gnark-crypto; this package only
// composes them around the air contract.
//
// The backend is demonstration grade: parameters default to the smallest
// values that support the shipped AIRs, favoring clarity and speed over a
// hardened security margin.
package stark

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fri"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// ErrInvalidProof is returned by Verify when the proof does not check
// against the given AIR and public inputs.
var ErrInvalidProof = errors.New("invalid proof")

// Proof attests that a committed execution trace satisfies an AIR. Callers
// treat it as opaque.
type Proof struct {
	// TraceRoot and QuotientRoot commit to the low degree extensions of the
	// trace rows and of the quotient polynomial.
	TraceRoot    []byte
	QuotientRoot []byte

	// NbRows is the trace height the proof was produced for; it must be a
	// power of two.
	NbRows uint64

	// Width is the trace width, cross-checked against the AIR at
	// verification time.
	Width uint64

	// Openings holds one opening per derived query index, in derivation
	// order.
	Openings []QueryOpening

	// Proximity establishes that the quotient is a low degree polynomial.
	Proximity fri.ProofOfProximity
}

// QueryOpening opens one spot-check position: the two adjacent trace rows
// related by the constraints, and the quotient evaluation at the same
// position. Each member is a Merkle authentication path whose first element
// carries the raw opened bytes.
type QueryOpening struct {
	Local    [][]byte
	Next     [][]byte
	Quotient [][]byte
}

// Challenge identifiers are fixed-size canonical field encodings so that
// block-aligned hashes over the scalar field (MiMC) accept them: the value
// fits well below the modulus, with the distinguishing bytes at the end.
func challengeID(tag byte, index int) string {
	var id [fr.Bytes]byte
	id[fr.Bytes-5] = tag
	binary.BigEndian.PutUint32(id[fr.Bytes-4:], uint32(index))
	return string(id[:])
}

func alphaID() string { return challengeID('a', 0) }

func queryID(i int) string { return challengeID('q', i) }

func challengeIDs(nbQueries int) []string {
	ids := make([]string, 0, nbQueries+1)
	ids = append(ids, alphaID())
	for i := 0; i < nbQueries; i++ {
		ids = append(ids, queryID(i))
	}
	return ids
}

// deriveAlpha binds the trace commitment and the public inputs, then samples
// the constraint folding challenge.
func deriveAlpha(fs *fiatshamir.Transcript, traceRoot []byte, publicInputs []fr.Element) (fr.Element, error) {
	var alpha fr.Element
	if err := fs.Bind(alphaID(), traceRoot); err != nil {
		return alpha, err
	}
	for i := range publicInputs {
		if err := fs.Bind(alphaID(), publicInputs[i].Marshal()); err != nil {
			return alpha, err
		}
	}
	b, err := fs.ComputeChallenge(alphaID())
	if err != nil {
		return alpha, err
	}
	alpha.SetBytes(b)
	return alpha, nil
}

// deriveQueries binds the quotient commitment and samples nbQueries indices
// over the extended domain, deduplicated in derivation order. Prover and
// verifier run it with identical transcripts and obtain the same set.
func deriveQueries(fs *fiatshamir.Transcript, nbQueries int, quotientRoot []byte, ldeSize uint64) ([]uint64, error) {
	seen := bitset.New(uint(ldeSize))
	queries := make([]uint64, 0, nbQueries)
	size := new(big.Int).SetUint64(ldeSize)

	for i := 0; i < nbQueries; i++ {
		if err := fs.Bind(queryID(i), quotientRoot); err != nil {
			return nil, err
		}
		b, err := fs.ComputeChallenge(queryID(i))
		if err != nil {
			return nil, err
		}
		var z big.Int
		z.SetBytes(b)
		idx := z.Mod(&z, size).Uint64()
		if seen.Test(uint(idx)) {
			continue
		}
		seen.Set(uint(idx))
		queries = append(queries, idx)
	}
	return queries, nil
}

// merkleRoot commits to a stream of fixed-size segments, one leaf per
// segment.
func merkleRoot(cfg *Config, stream []byte, segmentSize int) []byte {
	tree := merkletree.New(cfg.hashFunc())
	for off := 0; off < len(stream); off += segmentSize {
		tree.Push(stream[off : off+segmentSize])
	}
	return tree.Root()
}

// openSegment builds the Merkle authentication path of one segment of the
// stream; the returned path carries the raw segment bytes at index 0.
func openSegment(cfg *Config, stream []byte, segmentSize int, index uint64) ([][]byte, error) {
	_, proofSet, _, err := merkletree.BuildReaderProof(bytes.NewReader(stream), cfg.hashFunc(), segmentSize, index)
	return proofSet, err
}

// maxLDESize caps the extended evaluation domain. The BN254 scalar field has
// two-adicity 28, so no power-of-two subgroup larger than 1<<28 exists.
const maxLDESize = 1 << 28

// friSize returns the domain size of the proximity test for a trace of
// height n: the quotient degree bound, floored at the smallest domain the
// folding supports.
func friSize(n int) int {
	const minFriSize = 16
	if n < minFriSize {
		return minFriSize
	}
	return n
}

// rowBytes serializes trace cells as concatenated canonical encodings.
func rowBytes(cells []fr.Element) []byte {
	out := make([]byte, 0, len(cells)*fr.Bytes)
	for i := range cells {
		b := cells[i].Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// parseRow is the inverse of rowBytes; it rejects non-canonical encodings.
func parseRow(b []byte, width int) ([]fr.Element, error) {
	if len(b) != width*fr.Bytes {
		return nil, fmt.Errorf("malformed row opening: %d bytes for width %d", len(b), width)
	}
	cells := make([]fr.Element, width)
	for i := range cells {
		if err := cells[i].SetBytesCanonical(b[i*fr.Bytes : (i+1)*fr.Bytes]); err != nil {
			return nil, err
		}
	}
	return cells, nil
}
