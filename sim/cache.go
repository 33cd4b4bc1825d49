// sim/cache.go
package sim

import (
	"math"
	"math/cmplx"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// indexPair couples the two basis indices a gate mixes.
type indexPair struct {
	a, b int
}

type cnotKey struct {
	width, control, target int
}

type uPairKey struct {
	width, target int
}

// angleKey is the exact bit pattern of a (theta, phi, lambda) triple.
// Keying on Float64bits sidesteps float equality entirely: two angles hit
// the same entry iff they are the same bits.
type angleKey [3]uint64

// uMatrix is a 2x2 complex matrix in row-major order.
type uMatrix struct {
	m00, m01, m10, m11 complex128
}

// Angles are continuous in principle, but circuits reuse a small set of
// discrete values (0, pi, pi/2, ...) across gates and shots, so a small LRU
// keeps the hit rate high while bounding memory.
const uMatrixCacheSize = 20

// GateCache memoizes the basis-index pairings for cnot and u gates and the
// 2x2 rotation matrices. It is a pure optimization: results never depend on
// its presence, only throughput does. One cache may be shared by every
// StateVector of a run; all methods are safe for concurrent use.
type GateCache struct {
	mu        sync.Mutex
	cnotPairs map[cnotKey][]indexPair
	uPairs    map[uPairKey][]indexPair
	matrices  *lru.Cache[angleKey, uMatrix]

	matrixHits   uint64
	matrixMisses uint64
}

// NewGateCache creates an empty cache.
func NewGateCache() *GateCache {
	matrices, err := lru.New[angleKey, uMatrix](uMatrixCacheSize)
	if err != nil {
		panic(err)
	}
	return &GateCache{
		cnotPairs: make(map[cnotKey][]indexPair),
		uPairs:    make(map[uPairKey][]indexPair),
		matrices:  matrices,
	}
}

// CNotPairs returns the 2^(width-2) basis-index pairs that differ only in
// the target bit while the control bit is 1. The pairing is a pure function
// of its integer arguments, so entries are cached for the process lifetime.
func (c *GateCache) CNotPairs(width, control, target int) []indexPair {
	key := cnotKey{width, control, target}
	c.mu.Lock()
	defer c.mu.Unlock()
	if pairs, ok := c.cnotPairs[key]; ok {
		return pairs
	}
	pairs := computeCNotPairs(width, control, target)
	c.cnotPairs[key] = pairs
	return pairs
}

// UPairs returns the 2^(width-1) basis-index pairs that differ only in the
// target bit. Cached unboundedly, like CNotPairs.
func (c *GateCache) UPairs(width, target int) []indexPair {
	key := uPairKey{width, target}
	c.mu.Lock()
	defer c.mu.Unlock()
	if pairs, ok := c.uPairs[key]; ok {
		return pairs
	}
	pairs := computeUPairs(width, target)
	c.uPairs[key] = pairs
	return pairs
}

// UMatrix returns the rotation matrix for the angle triple, from the LRU
// when the exact bit pattern has been seen recently.
func (c *GateCache) UMatrix(theta, phi, lambda float64) uMatrix {
	key := angleKey{
		math.Float64bits(theta),
		math.Float64bits(phi),
		math.Float64bits(lambda),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.matrices.Get(key); ok {
		c.matrixHits++
		return m
	}
	m := buildU(theta, phi, lambda)
	c.matrices.Add(key, m)
	c.matrixMisses++
	return m
}

// MatrixCounters reports hit/miss totals for the rotation-matrix LRU.
func (c *GateCache) MatrixCounters() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matrixHits, c.matrixMisses
}

func computeCNotPairs(width, control, target int) []indexPair {
	contextRange := 1 << (width - 2)
	pairs := make([]indexPair, 0, contextRange)
	for n := 0; n < contextRange; n++ {
		mask := 1
		index10 := 0
		index11 := 0
		for i := 0; i < width; i++ {
			switch i {
			case target:
				index11 += 1 << target
			case control:
				index10 += 1 << control
				index11 += 1 << control
			default:
				if n&mask != 0 {
					index10 += 1 << i
					index11 += 1 << i
				}
				mask <<= 1
			}
		}
		pairs = append(pairs, indexPair{index10, index11})
	}
	return pairs
}

func computeUPairs(width, target int) []indexPair {
	contextRange := 1 << (width - 1)
	pairs := make([]indexPair, 0, contextRange)
	for n := 0; n < contextRange; n++ {
		mask := 1
		index0 := 0
		index1 := 0
		for i := 0; i < width; i++ {
			if i == target {
				index1 += 1 << target
			} else {
				if n&mask != 0 {
					index0 += 1 << i
					index1 += 1 << i
				}
				mask <<= 1
			}
		}
		pairs = append(pairs, indexPair{index0, index1})
	}
	return pairs
}

// buildU assembles [[cos(t/2), -e^{il}sin(t/2)], [e^{ip}sin(t/2), e^{i(p+l)}cos(t/2)]].
func buildU(theta, phi, lambda float64) uMatrix {
	sin, cos := math.Sincos(theta / 2)
	return uMatrix{
		m00: complex(cos, 0),
		m01: -eiTimes(lambda) * complex(sin, 0),
		m10: eiTimes(phi) * complex(sin, 0),
		m11: eiTimes(phi+lambda) * complex(cos, 0),
	}
}

func eiTimes(x float64) complex128 {
	return cmplx.Exp(complex(0, x))
}
