package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantum-sim/quantum-sim/sim/internal/testutil"
)

func TestCNotPairs(t *testing.T) {
	tests := []struct {
		name            string
		width           int
		control, target int
		want            []indexPair
	}{
		{"width 2 c0 t1", 2, 0, 1, []indexPair{{1, 3}}},
		{"width 2 c1 t0", 2, 1, 0, []indexPair{{2, 3}}},
		{"width 3 c2 t0", 3, 2, 0, []indexPair{{4, 5}, {6, 7}}},
		{"width 3 c0 t2", 3, 0, 2, []indexPair{{1, 5}, {3, 7}}},
	}
	cache := NewGateCache()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.CNotPairs(tt.width, tt.control, tt.target)
			require.Equal(t, tt.want, got)
			// Every pair differs only in the target bit, with control set.
			for _, pair := range got {
				assert.Equal(t, pair.a|1<<tt.target, pair.b)
				assert.NotZero(t, pair.a&(1<<tt.control))
			}
		})
	}
}

func TestUPairs(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		target int
		want   []indexPair
	}{
		{"width 1 t0", 1, 0, []indexPair{{0, 1}}},
		{"width 2 t0", 2, 0, []indexPair{{0, 1}, {2, 3}}},
		{"width 2 t1", 2, 1, []indexPair{{0, 2}, {1, 3}}},
	}
	cache := NewGateCache()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.UPairs(tt.width, tt.target)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPairs_Memoized(t *testing.T) {
	cache := NewGateCache()
	first := cache.CNotPairs(4, 0, 1)
	second := cache.CNotPairs(4, 0, 1)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "expected the cached slice back")

	firstU := cache.UPairs(4, 2)
	secondU := cache.UPairs(4, 2)
	assert.Same(t, &firstU[0], &secondU[0], "expected the cached slice back")
}

func TestUMatrix_Counters(t *testing.T) {
	cache := NewGateCache()
	cache.UMatrix(math.Pi/2, 0, math.Pi)
	cache.UMatrix(math.Pi/2, 0, math.Pi)
	cache.UMatrix(math.Pi, 0, math.Pi)

	hits, misses := cache.MatrixCounters()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestUMatrix_ExactBitPatternKeying(t *testing.T) {
	// -0.0 and 0.0 compare equal as floats but have different bit patterns,
	// so they must occupy distinct cache entries.
	cache := NewGateCache()
	cache.UMatrix(0, 0, 0)
	cache.UMatrix(math.Copysign(0, -1), 0, 0)

	hits, misses := cache.MatrixCounters()
	assert.Equal(t, uint64(0), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestUMatrix_EvictionKeepsCorrectness(t *testing.T) {
	// Blow past the LRU capacity and verify the evicted entry is simply
	// recomputed: the cache is a throughput optimization, never a
	// correctness dependency.
	cache := NewGateCache()
	identity := cache.UMatrix(0, 0, 0)
	for i := 1; i <= uMatrixCacheSize+5; i++ {
		cache.UMatrix(float64(i), 0, 0)
	}
	again := cache.UMatrix(0, 0, 0)
	require.Equal(t, identity, again)

	_, misses := cache.MatrixCounters()
	assert.Greater(t, misses, uint64(uMatrixCacheSize))
}

func TestBuildU(t *testing.T) {
	assertMatrix := func(t *testing.T, want [4]complex128, got uMatrix) {
		t.Helper()
		gotElems := [4]complex128{got.m00, got.m01, got.m10, got.m11}
		for i := range want {
			if !testutil.ApproxEqual(want[i], gotElems[i], testutil.Tolerance) {
				t.Errorf("element %d = %v, want %v", i, gotElems[i], want[i])
			}
		}
	}

	t.Run("identity at zero angles", func(t *testing.T) {
		assertMatrix(t, [4]complex128{1, 0, 0, 1}, buildU(0, 0, 0))
	})
	t.Run("pauli X at (pi, 0, pi)", func(t *testing.T) {
		assertMatrix(t, [4]complex128{0, 1, 1, 0}, buildU(math.Pi, 0, math.Pi))
	})
	t.Run("hadamard at (pi/2, 0, pi)", func(t *testing.T) {
		h := complex(1/math.Sqrt2, 0)
		assertMatrix(t, [4]complex128{h, h, h, -h}, buildU(math.Pi/2, 0, math.Pi))
	})
}
