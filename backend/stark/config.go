package stark

import (
	"errors"
	"fmt"
	"hash"
	"math/bits"

	_ "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc" // register MIMC_BN254
	gchash "github.com/consensys/gnark-crypto/hash"
)

const (
	// DefaultBlowupFactor is the default low degree extension rate. It bounds
	// the constraint degree the backend can carry: an AIR with constraints of
	// algebraic degree d needs a blowup factor >= d.
	DefaultBlowupFactor = 2

	// DefaultNbQueries is the default number of spot-check openings.
	DefaultNbQueries = 32
)

// Config is the deterministic cryptographic configuration shared by prover
// and verifier: the hash backing commitments and the Fiat-Shamir transcript,
// the low degree extension rate, and the query count. Both sides must use
// identical configurations.
type Config struct {
	hashFunc     func() hash.Hash
	blowupFactor int
	nbQueries    int
}

// Option configures the backend.
type Option func(*Config) error

// WithHashFunction sets the constructor of the hash used for Merkle
// commitments and the transcript. The default is MiMC over the BN254 scalar
// field, which keeps every commitment a canonical field element.
func WithHashFunction(f func() hash.Hash) Option {
	return func(cfg *Config) error {
		if f == nil {
			return errors.New("nil hash constructor")
		}
		cfg.hashFunc = f
		return nil
	}
}

// WithBlowupFactor sets the low degree extension rate. It must be a power of
// two >= 2; higher rates support higher-degree constraints and improve
// soundness at the cost of prover work.
func WithBlowupFactor(k int) Option {
	return func(cfg *Config) error {
		if k < 2 || bits.OnesCount(uint(k)) != 1 {
			return fmt.Errorf("blowup factor must be a power of two >= 2, got %d", k)
		}
		cfg.blowupFactor = k
		return nil
	}
}

// WithNbQueries sets the number of spot-check openings.
func WithNbQueries(k int) Option {
	return func(cfg *Config) error {
		if k < 1 {
			return fmt.Errorf("number of queries must be >= 1, got %d", k)
		}
		cfg.nbQueries = k
		return nil
	}
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		hashFunc:     gchash.MIMC_BN254.New,
		blowupFactor: DefaultBlowupFactor,
		nbQueries:    DefaultNbQueries,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
