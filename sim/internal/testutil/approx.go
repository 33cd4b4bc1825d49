// Package testutil provides shared assertion helpers for the simulator's
// tests: approximate equality over amplitude and probability vectors.
package testutil

import (
	"math"
	"testing"
)

// Tolerance is the default margin for amplitude comparisons.
const Tolerance = 1e-9

// ApproxEqual reports whether two complex amplitudes agree within tol in
// both components.
func ApproxEqual(a, b complex128, tol float64) bool {
	return math.Abs(real(a)-real(b)) <= tol && math.Abs(imag(a)-imag(b)) <= tol
}

// AssertAmplitudes fails the test unless got matches want element-wise
// within Tolerance.
func AssertAmplitudes(t *testing.T, want, got []complex128) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("amplitude count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !ApproxEqual(want[i], got[i], Tolerance) {
			t.Errorf("amplitude[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// AssertProbabilities fails the test unless got matches want element-wise
// within Tolerance.
func AssertProbabilities(t *testing.T, want, got []float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("probability count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(want[i]-got[i]) > Tolerance {
			t.Errorf("probability[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
