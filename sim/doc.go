// Package sim provides the amplitude-vector quantum circuit simulation
// engine: gate application, probabilistic measurement collapse, and
// aggregation of classical outcomes over repeated randomized shots.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - statevector.go: the amplitude array and the cnot/u/measure operations
//   - cache.go: memoized basis-index pairings and the LRU'd rotation matrices
//   - runner.go: shot execution, classical memory write-back, worker fan-out
//
// # Architecture
//
// A StateVector owns 2^width complex128 amplitudes and mutates them in place
// per gate. The index pairings each gate needs and the 2x2 rotation matrices
// are memoized in a GateCache, an explicitly owned object that may be shared
// across the statevectors of a run; it is a throughput optimization only.
// Measurement randomness is always an injected uniform sample ("fate"), so
// gate evolution plus a fixed fate sequence is fully deterministic.
//
// The Runner drives a resolved instruction stream (Program) against fresh
// statevectors, one per shot, writing measurement outcomes into classical
// memory. HistogramBuilder folds per-shot memories into per-register
// histograms and joint-outcome counts; Computation and Execution snapshot
// the finished run for the reporting layer.
//
// Parsing and semantic validation of circuit source, and all result
// formatting, live outside this package. The Program type is the already
// resolved hand-off from that frontend.
package sim
