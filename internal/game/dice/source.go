package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is safe for concurrent use.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0 or crypto/rand fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource implements Source with a PCG generator so a duel can be replayed.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source. Two sources built from the same seed
// produce the same sequence. It is not safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0. Panics if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}
