// Tracks auxiliary run-wide counters for final reporting.

package sim

import "fmt"

// RunCounters aggregates bookkeeping totals about one run. Useful for
// judging cache effectiveness and debugging behavior over time. These are
// deliberately separate from the joint-outcome stats map on Computation.
type RunCounters struct {
	Shots             int    // Number of shots executed
	GatesApplied      uint64 // Total cnot and u applications across shots
	Measurements      uint64 // Total measurement collapses across shots
	MatrixCacheHits   uint64 // Rotation-matrix LRU hits
	MatrixCacheMisses uint64 // Rotation-matrix LRU misses
}

// add folds one worker's totals into the receiver.
func (c *RunCounters) add(other RunCounters) {
	c.Shots += other.Shots
	c.GatesApplied += other.GatesApplied
	c.Measurements += other.Measurements
}

// Print displays the counters at the end of a run.
func (c RunCounters) Print() {
	fmt.Println("=== Run Counters ===")
	fmt.Printf("Shots                : %d\n", c.Shots)
	fmt.Printf("Gates Applied        : %d\n", c.GatesApplied)
	fmt.Printf("Measurements         : %d\n", c.Measurements)
	total := c.MatrixCacheHits + c.MatrixCacheMisses
	if total > 0 {
		hitRate := float64(c.MatrixCacheHits) / float64(total)
		fmt.Printf("Matrix Cache Hit Rate: %.2f (%d/%d)\n", hitRate, c.MatrixCacheHits, total)
	}
}
