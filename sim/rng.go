package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === ShotKey ===

// ShotKey seeds a reproducible run. Two runs with the same ShotKey and an
// identical program MUST produce bit-for-bit identical outcomes, however the
// shots are scheduled across workers.
type ShotKey int64

// NewShotKey creates a ShotKey from a seed value.
func NewShotKey(seed int64) ShotKey {
	return ShotKey(seed)
}

// === FateSource ===

// FateSource derives an isolated uniform-sample stream per shot. A shot's
// stream is a pure function of (key, shot index), so running shots in
// parallel cannot perturb the fate sequence any given shot observes.
//
// Derivation formula: masterSeed XOR fnv1a64("shot_<n>").
type FateSource struct {
	key ShotKey
}

// NewFateSource creates a FateSource from a ShotKey.
func NewFateSource(key ShotKey) *FateSource {
	return &FateSource{key: key}
}

// ForShot returns a deterministically-seeded stream for shot n. Each
// Float64 drawn from it is a valid measurement fate in [0, 1).
func (f *FateSource) ForShot(n int) *rand.Rand {
	seed := int64(f.key) ^ fnv1a64(fmt.Sprintf("shot_%d", n))
	return rand.New(rand.NewSource(seed))
}

// Key returns the ShotKey used to create this FateSource.
func (f *FateSource) Key() ShotKey {
	return f.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
