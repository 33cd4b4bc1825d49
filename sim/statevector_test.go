package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantum-sim/quantum-sim/sim/internal/testutil"
)

func TestNewStateVector_GroundState(t *testing.T) {
	sv := NewStateVector(3, nil)
	require.Equal(t, 8, sv.Len())
	require.Equal(t, 3, sv.QubitWidth())
	assert.Equal(t, complex128(1), sv.Amplitudes()[0])
	testutil.AssertProbabilities(t, []float64{1, 0, 0, 0, 0, 0, 0, 0}, sv.Probabilities())
}

func TestFromAmplitudes_Width(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantWidth int
	}{
		{"one amplitude", 1, 0},
		{"two amplitudes", 2, 1},
		{"four amplitudes", 4, 2},
		{"sixteen amplitudes", 16, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := FromAmplitudes(make([]complex128, tt.length), nil)
			if sv.QubitWidth() != tt.wantWidth {
				t.Errorf("QubitWidth() = %d, want %d", sv.QubitWidth(), tt.wantWidth)
			}
		})
	}
}

func TestCNot(t *testing.T) {
	a := complex(1.0, 0.0)
	b := complex(0.0, 1.0)
	tests := []struct {
		name            string
		control, target int
		in, want        []complex128
	}{
		{"c0 t1 of 2 qubits", 0, 1, []complex128{0, a, 0, b}, []complex128{0, b, 0, a}},
		{"c1 t0 of 2 qubits", 1, 0, []complex128{0, 0, a, b}, []complex128{0, 0, b, a}},
		{"c2 t0 of 3 qubits", 2, 0, []complex128{0, 0, 0, 0, a, b, a, b}, []complex128{0, 0, 0, 0, b, a, b, a}},
		{"c0 t2 of 3 qubits", 0, 2, []complex128{0, a, 0, a, 0, b, 0, b}, []complex128{0, b, 0, b, 0, a, 0, a}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := FromAmplitudes(tt.in, nil)
			sv.CNot(tt.control, tt.target)
			testutil.AssertAmplitudes(t, tt.want, sv.Amplitudes())
		})
	}
}

func TestCNot_Reversible(t *testing.T) {
	// cnot is a permutation of amplitudes, so a double application must
	// restore the prior state bit for bit, not just approximately.
	sv := FromAmplitudes([]complex128{0, 1, 0, complex(0, 1)}, nil)
	before := append([]complex128(nil), sv.Amplitudes()...)
	sv.CNot(0, 1)
	sv.CNot(0, 1)
	require.Equal(t, before, sv.Amplitudes())
}

func TestU_Identity(t *testing.T) {
	sv := FromAmplitudes([]complex128{complex(0.6, 0), complex(0, 0.8)}, nil)
	sv.U(0, 0, 0, 0)
	testutil.AssertAmplitudes(t, []complex128{complex(0.6, 0), complex(0, 0.8)}, sv.Amplitudes())
}

func TestU_HadamardProbabilities(t *testing.T) {
	sv := NewStateVector(1, nil)
	sv.U(math.Pi/2, 0, math.Pi, 0)
	probabilities := sv.Probabilities()
	assert.InDelta(t, 0.5, probabilities[0], testutil.Tolerance)
	assert.InDelta(t, 0.5, probabilities[1], testutil.Tolerance)
}

func TestU_BellPair(t *testing.T) {
	sv := NewStateVector(2, nil)
	sv.U(math.Pi/2, 0, math.Pi, 0)
	sv.CNot(0, 1)
	probabilities := sv.Probabilities()
	assert.InDelta(t, 0.5, probabilities[0], testutil.Tolerance)
	assert.InDelta(t, 0.0, probabilities[1], testutil.Tolerance)
	assert.InDelta(t, 0.0, probabilities[2], testutil.Tolerance)
	assert.InDelta(t, 0.5, probabilities[3], testutil.Tolerance)
}

func TestUnitarity_RandomGateSequence(t *testing.T) {
	// Any sequence of cnot/u applications must keep the total probability
	// mass at 1 within tolerance.
	rng := rand.New(rand.NewSource(7))
	sv := NewStateVector(3, nil)
	for i := 0; i < 100; i++ {
		if rng.Intn(3) == 0 {
			control := rng.Intn(3)
			target := (control + 1 + rng.Intn(2)) % 3
			sv.CNot(control, target)
		} else {
			sv.U(rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi, rng.Intn(3))
		}
		require.InDelta(t, 1.0, sv.Norm(), testutil.Tolerance, "norm drifted after %d gates", i+1)
	}
}

func TestMeasure_BasisState(t *testing.T) {
	tests := []struct {
		name string
		fate float64
	}{
		{"fate zero", 0.0},
		{"fate middle", 0.5},
		{"fate near one", 1 - 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Measuring a basis state returns the bit already encoded in it
			// and leaves the vector untouched.
			zero := NewStateVector(1, nil)
			require.False(t, zero.Measure(0, tt.fate))
			testutil.AssertAmplitudes(t, []complex128{1, 0}, zero.Amplitudes())

			one := FromAmplitudes([]complex128{0, 1}, nil)
			require.True(t, one.Measure(0, tt.fate))
			testutil.AssertAmplitudes(t, []complex128{0, 1}, one.Amplitudes())
		})
	}
}

func TestExpectationValues(t *testing.T) {
	invSqrt2 := complex(1/math.Sqrt2, 0)
	tests := []struct {
		name       string
		amplitudes []complex128
		want       []float64
	}{
		{"ground state", []complex128{1, 0}, []float64{-1}},
		{"excited state", []complex128{0, 1}, []float64{1}},
		{"equal superposition", []complex128{invSqrt2, invSqrt2}, []float64{0}},
		{"two qubits mixed", []complex128{0, 0, 1, 0}, []float64{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := FromAmplitudes(tt.amplitudes, nil)
			got := sv.ExpectationValues()
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], testutil.Tolerance)
			}
		})
	}
}

func TestExpectationValues_Clamped(t *testing.T) {
	// A slightly over-unit vector must still land inside [-1, 1].
	sv := FromAmplitudes([]complex128{complex(1+1e-12, 0), 0}, nil)
	got := sv.ExpectationValues()
	require.Len(t, got, 1)
	assert.GreaterOrEqual(t, got[0], -1.0)
	assert.LessOrEqual(t, got[0], 1.0)
}

func TestReset(t *testing.T) {
	sv := NewStateVector(2, nil)
	sv.U(math.Pi/2, 0, math.Pi, 0)
	sv.CNot(0, 1)
	sv.Reset()
	require.Equal(t, []complex128{1, 0, 0, 0}, sv.Amplitudes())
}

func TestClone_Independent(t *testing.T) {
	sv := NewStateVector(1, nil)
	clone := sv.Clone()
	clone.U(math.Pi/2, 0, math.Pi, 0)
	assert.Equal(t, complex128(1), sv.Amplitudes()[0])
	assert.NotEqual(t, sv.Amplitudes(), clone.Amplitudes())
}

func TestContractViolations_Panic(t *testing.T) {
	sv := NewStateVector(2, nil)
	assert.Panics(t, func() { sv.CNot(0, 0) }, "cnot with control == target")
	assert.Panics(t, func() { sv.CNot(0, 2) }, "cnot target out of range")
	assert.Panics(t, func() { sv.U(0, 0, 0, -1) }, "u target negative")
	assert.Panics(t, func() { sv.Measure(2, 0.5) }, "measure target out of range")
}

func BenchmarkU(b *testing.B) {
	sv := NewStateVector(10, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.U(math.Pi/2, 0, math.Pi, i%10)
	}
}

func BenchmarkCNot(b *testing.B) {
	sv := NewStateVector(10, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sv.CNot(i%10, (i+1)%10)
	}
}
