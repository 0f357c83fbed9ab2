package flagquiz

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	IntN(n int) int
}

// NewChooser returns a PCG-backed chooser. A zero seed is replaced by one
// read from crypto/rand, so runs are not reproducible unless a seed is given.
func NewChooser(seed uint64) (*rand.Rand, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil
}

// Select picks one entry of the given tier uniformly at random.
func Select(tier Tier, catalog Catalog, chooser Chooser) (Entry, error) {
	if !tier.Valid() {
		return Entry{}, fmt.Errorf("%w: %d, expected 1, 2, or 3", ErrInvalidTier, int(tier))
	}
	entries := catalog[tier]
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w %q", ErrEmptyTier, tier.Key())
	}
	return entries[chooser.IntN(len(entries))], nil
}
