// sim/computation.go
package sim

// Computation is the immutable outcome of one simulation run: the final
// statevector, the probabilities derived from it, and the classical side of
// the run — the last shot's memory always, plus histogram and joint-outcome
// stats when the run had more than one shot.
type Computation struct {
	statevector   *StateVector
	probabilities []float64
	memory        ClassicalMemory
	histogram     Histogram
	stats         map[string]int
}

// NewComputation snapshots a completed run. Probabilities are always derived
// from the statevector here; there is no path to supply them independently.
// histogram and stats are nil for single-shot runs.
func NewComputation(statevector *StateVector, memory ClassicalMemory, histogram Histogram, stats map[string]int) *Computation {
	return &Computation{
		statevector:   statevector,
		probabilities: statevector.Probabilities(),
		memory:        memory,
		histogram:     histogram,
		stats:         stats,
	}
}

// Statevector returns the final quantum state. Read-only.
func (c *Computation) Statevector() *StateVector {
	return c.statevector
}

// Probabilities returns the Born-rule probabilities of the final state.
func (c *Computation) Probabilities() []float64 {
	return c.probabilities
}

// Memory returns the classical memory of the last executed shot.
func (c *Computation) Memory() ClassicalMemory {
	return c.memory
}

// Histogram returns the per-register distributions, or nil for a
// single-shot run.
func (c *Computation) Histogram() Histogram {
	return c.histogram
}

// Stats returns the joint-outcome bitstring counts, or nil for a
// single-shot run.
func (c *Computation) Stats() map[string]int {
	return c.stats
}

// ExecutionTimes records wall-clock milliseconds spent loading the program
// and simulating it.
type ExecutionTimes struct {
	LoadMillis       int64
	SimulationMillis int64
}

// Execution is a Computation plus run metadata: timing and auxiliary
// counters. The counters are unrelated to the joint-outcome stats map
// despite both being "statistics" of a sort.
type Execution struct {
	Computation
	times    ExecutionTimes
	counters RunCounters
}

// NewExecution wraps a finished computation with its metadata.
func NewExecution(computation *Computation, times ExecutionTimes, counters RunCounters) *Execution {
	return &Execution{
		Computation: *computation,
		times:       times,
		counters:    counters,
	}
}

// Times returns the load and simulation wall-clock times.
func (e *Execution) Times() ExecutionTimes {
	return e.times
}

// Counters returns the auxiliary run counters.
func (e *Execution) Counters() RunCounters {
	return e.counters
}
