// sim/measurement.go
package sim

import (
	"fmt"
	"math"
)

// measurement is a two-phase, single-use collapse of one qubit. The
// constructor sums the probability mass of the target-bit-0 branch; Collapse
// consumes one externally supplied uniform sample and rewrites the
// amplitudes for the chosen branch.
type measurement struct {
	amplitudes []complex128
	chances    [2]float64
	target     int
}

func newMeasurement(amplitudes []complex128, target int) *measurement {
	p0 := 0.0
	for index, amplitude := range amplitudes {
		if index&(1<<target) == 0 {
			p0 += normSqr(amplitude)
		}
	}
	return &measurement{
		amplitudes: amplitudes,
		chances:    [2]float64{p0, 1 - p0},
		target:     target,
	}
}

// Collapse selects branch 1 iff fate >= p0, zeroes every amplitude
// inconsistent with the chosen branch and divides the survivors by
// sqrt(p_chosen). fate outside [0, 1) is a contract violation.
func (m *measurement) Collapse(fate float64) bool {
	if !(fate >= 0 && fate < 1) {
		panic(fmt.Sprintf("sim: measurement fate %v outside [0, 1)", fate))
	}
	branch := 0
	if fate >= m.chances[0] {
		branch = 1
	}
	normalization := complex(math.Sqrt(m.chances[branch]), 0)
	for index := range m.amplitudes {
		if (index>>m.target)&1 == branch {
			m.amplitudes[index] /= normalization
		} else {
			m.amplitudes[index] = 0
		}
	}
	return branch == 1
}
