// sim/statevector.go
package sim

import (
	"fmt"
	"math/bits"

	"gonum.org/v1/gonum/floats"
)

// StateVector holds the amplitudes of a simulated quantum system. Amplitude
// i weights the basis state whose bits encode each qubit's classical value
// (qubit q is bit q of i). The vector is owned by a single run and mutated
// in place by every gate instruction.
type StateVector struct {
	amplitudes []complex128
	qubitWidth int
	cache      *GateCache
}

// NewStateVector allocates a 2^width amplitude vector in the ground state
// (all weight on the all-zeroes outcome). The cache may be shared between
// vectors; passing nil gives the vector a private one.
func NewStateVector(width int, cache *GateCache) *StateVector {
	if cache == nil {
		cache = NewGateCache()
	}
	sv := &StateVector{
		amplitudes: make([]complex128, 1<<width),
		qubitWidth: width,
		cache:      cache,
	}
	sv.amplitudes[0] = 1
	return sv
}

// FromAmplitudes builds a StateVector over the supplied amplitudes. Neither
// the power-of-two length nor the unit norm is checked; both are the
// caller's contract.
func FromAmplitudes(amplitudes []complex128, cache *GateCache) *StateVector {
	if cache == nil {
		cache = NewGateCache()
	}
	return &StateVector{
		amplitudes: amplitudes,
		qubitWidth: bits.Len(uint(len(amplitudes))) - 1,
		cache:      cache,
	}
}

// Amplitudes returns the amplitude slice backing the vector. Callers must
// treat it as read-only.
func (sv *StateVector) Amplitudes() []complex128 {
	return sv.amplitudes
}

// QubitWidth returns the number of simulated qubits.
func (sv *StateVector) QubitWidth() int {
	return sv.qubitWidth
}

// Len returns the number of amplitudes, 2^QubitWidth.
func (sv *StateVector) Len() int {
	return len(sv.amplitudes)
}

// Clone returns an independent copy sharing the same gate cache.
func (sv *StateVector) Clone() *StateVector {
	amplitudes := make([]complex128, len(sv.amplitudes))
	copy(amplitudes, sv.amplitudes)
	return &StateVector{amplitudes: amplitudes, qubitWidth: sv.qubitWidth, cache: sv.cache}
}

// CNot applies a controlled-not: for every basis-index pair differing only
// in the target bit while the control bit is 1, the two amplitudes are
// swapped. Applying it twice restores the prior state exactly.
func (sv *StateVector) CNot(control, target int) {
	sv.checkQubit("cnot control", control)
	sv.checkQubit("cnot target", target)
	if control == target {
		panic(fmt.Sprintf("sim: cnot control and target are both qubit %d", control))
	}
	for _, pair := range sv.cache.CNotPairs(sv.qubitWidth, control, target) {
		sv.amplitudes[pair.a], sv.amplitudes[pair.b] = sv.amplitudes[pair.b], sv.amplitudes[pair.a]
	}
}

// U applies the general single-qubit rotation RZ(phi)RY(theta)RZ(lambda) to
// the target qubit. The 2x2 matrix comes from the cache, keyed by the exact
// bit pattern of the angle triple.
func (sv *StateVector) U(theta, phi, lambda float64, target int) {
	sv.checkQubit("u target", target)
	m := sv.cache.UMatrix(theta, phi, lambda)
	for _, pair := range sv.cache.UPairs(sv.qubitWidth, target) {
		a0, a1 := sv.amplitudes[pair.a], sv.amplitudes[pair.b]
		sv.amplitudes[pair.a] = m.m00*a0 + m.m01*a1
		sv.amplitudes[pair.b] = m.m10*a0 + m.m11*a1
	}
}

// Measure performs a Z-axis measurement of the target qubit, collapsing and
// renormalizing the vector. The uniform sample fate in [0, 1) is supplied by
// the caller so the engine itself stays deterministic.
func (sv *StateVector) Measure(target int, fate float64) bool {
	sv.checkQubit("measure target", target)
	return newMeasurement(sv.amplitudes, target).Collapse(fate)
}

// Probabilities returns the Born-rule probability |amplitude|^2 for each
// basis index, in amplitude order.
func (sv *StateVector) Probabilities() []float64 {
	probabilities := make([]float64, len(sv.amplitudes))
	for i, amplitude := range sv.amplitudes {
		probabilities[i] = normSqr(amplitude)
	}
	return probabilities
}

// Norm returns the total probability mass. It stays 1 (within floating
// tolerance) under any sequence of unitary operations.
func (sv *StateVector) Norm() float64 {
	return floats.Sum(sv.Probabilities())
}

// ExpectationValues returns the per-qubit Z expectation: the signed sum of
// probabilities according to that qubit's bit in each basis index, clamped
// into [-1, 1] to absorb accumulated floating error at the extremes.
func (sv *StateVector) ExpectationValues() []float64 {
	probabilities := sv.Probabilities()
	expectations := make([]float64, sv.qubitWidth)
	for q := 0; q < sv.qubitWidth; q++ {
		sum := 0.0
		mask := 1 << q
		for index, probability := range probabilities {
			if index&mask != 0 {
				sum += probability
			} else {
				sum -= probability
			}
		}
		expectations[q] = max(-1.0, min(1.0, sum))
	}
	return expectations
}

// Reset returns the vector to the ground state in place.
func (sv *StateVector) Reset() {
	for i := range sv.amplitudes {
		sv.amplitudes[i] = 0
	}
	sv.amplitudes[0] = 1
}

func (sv *StateVector) checkQubit(what string, q int) {
	if q < 0 || q >= sv.qubitWidth {
		panic(fmt.Sprintf("sim: %s qubit %d out of range for %d-qubit statevector", what, q, sv.qubitWidth))
	}
}

func normSqr(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
