// sim/runner.go
package sim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes a resolved program for one or more shots. Every shot
// starts from a fresh ground state and consumes its own fate stream, so
// shots are mutually independent; the runner exploits that by optionally
// spreading shots across workers, each owning a private StateVector and
// folding outcomes into a private HistogramBuilder merged after the wait.
// All workers share one GateCache.
type Runner struct {
	program *Program
	cache   *GateCache
	fates   *FateSource
	workers int
}

// NewRunner creates a runner for a validated program. workers below 2 means
// sequential shot execution.
func NewRunner(program *Program, key ShotKey, workers int) *Runner {
	return &Runner{
		program: program,
		cache:   NewGateCache(),
		fates:   NewFateSource(key),
		workers: workers,
	}
}

// Run executes the program for the given number of shots and snapshots the
// outcome. Runs with more than one shot carry a histogram and joint-outcome
// stats; single-shot runs carry only classical memory. The statevector and
// memory in the result are the last shot's.
func (r *Runner) Run(shots int) (*Computation, RunCounters) {
	if shots <= 1 {
		return r.runSingle()
	}
	return r.runShots(shots)
}

func (r *Runner) runSingle() (*Computation, RunCounters) {
	sv := NewStateVector(r.program.QubitWidth, r.cache)
	memory := r.program.newMemory()
	counters := RunCounters{Shots: 1}
	r.runShot(sv, r.fates.ForShot(0), memory, &counters)
	counters.MatrixCacheHits, counters.MatrixCacheMisses = r.cache.MatrixCounters()
	return NewComputation(sv, memory, nil, nil), counters
}

func (r *Runner) runShots(shots int) (*Computation, RunCounters) {
	start := time.Now()
	workers := r.workers
	if workers < 1 {
		workers = 1
	}
	if workers > shots {
		workers = shots
	}

	type workerState struct {
		sv       *StateVector
		memory   ClassicalMemory
		builder  *HistogramBuilder
		counters RunCounters
	}
	states := make([]*workerState, workers)

	// Worker w owns shots w, w+workers, w+2*workers, ... Fate streams are
	// derived from the shot index, and the histogram merge is commutative,
	// so the outcome is identical for any worker count.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		state := &workerState{
			sv:      NewStateVector(r.program.QubitWidth, r.cache),
			builder: NewHistogramBuilder(),
		}
		states[w] = state
		wg.Add(1)
		go func(w int, state *workerState) {
			defer wg.Done()
			for n := w; n < shots; n += workers {
				state.sv.Reset()
				state.memory = r.program.newMemory()
				r.runShot(state.sv, r.fates.ForShot(n), state.memory, &state.counters)
				state.builder.Update(state.memory)
				state.counters.Shots++
				logrus.Debugf("[shot %d] complete", n)
			}
		}(w, state)
	}
	wg.Wait()

	builder := states[0].builder
	var total RunCounters
	for i, state := range states {
		total.add(state.counters)
		if i > 0 {
			builder.Merge(state.builder)
		}
	}
	total.MatrixCacheHits, total.MatrixCacheMisses = r.cache.MatrixCounters()

	// The worker holding the overall last shot ended on it, so its vector
	// and memory are the run's final state.
	last := states[(shots-1)%workers]
	histogram, stats := builder.Finalize()
	logrus.Infof("executed %d shots across %d workers in %s", shots, workers, time.Since(start))
	return NewComputation(last.sv, last.memory, histogram, stats), total
}

// runShot executes every instruction of the program once against sv,
// writing measurement outcomes into memory.
func (r *Runner) runShot(sv *StateVector, fates *rand.Rand, memory ClassicalMemory, counters *RunCounters) {
	for i := range r.program.Instructions {
		inst := &r.program.Instructions[i]
		if inst.Conditional && memory[inst.Guard].Value != inst.GuardValue {
			continue
		}
		switch inst.Op {
		case OpUnitary:
			sv.U(inst.Theta, inst.Phi, inst.Lambda, inst.Target)
			counters.GatesApplied++
		case OpCNot:
			sv.CNot(inst.Control, inst.Target)
			counters.GatesApplied++
		case OpMeasure:
			outcome := sv.Measure(inst.Target, fates.Float64())
			reg := memory[inst.Register]
			if outcome {
				reg.Value |= 1 << inst.Bit
			} else {
				reg.Value &^= 1 << inst.Bit
			}
			memory[inst.Register] = reg
			counters.Measurements++
		default:
			// Validate rejects unknown ops at the boundary; reaching this
			// is a contract violation.
			panic(fmt.Sprintf("sim: unknown op %q", inst.Op))
		}
	}
}

// Run loads a program file and executes it for the given shots, measuring
// load and simulation wall-clock time separately.
func Run(path string, key ShotKey, shots, workers int) (*Execution, error) {
	loadStart := time.Now()
	program, err := LoadProgram(path)
	if err != nil {
		return nil, err
	}
	loadMillis := time.Since(loadStart).Milliseconds()

	runner := NewRunner(program, key, workers)
	simStart := time.Now()
	computation, counters := runner.Run(shots)
	simMillis := time.Since(simStart).Milliseconds()

	times := ExecutionTimes{LoadMillis: loadMillis, SimulationMillis: simMillis}
	return NewExecution(computation, times, counters), nil
}
