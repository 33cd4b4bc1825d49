// sim/histogram.go
package sim

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// RegisterOutcome is one classical register's state at the end of a shot.
type RegisterOutcome struct {
	Value uint64
	Width int // declared bit width
	Order int // declaration order; later-declared registers lead the joint bitstring
}

// ClassicalMemory maps register names to end-of-shot outcomes.
type ClassicalMemory map[string]RegisterOutcome

// ValueCount is one observed register value and how often it occurred.
type ValueCount struct {
	Value uint64
	Count int
}

// RegisterHistogram is the distribution of a register's observed values
// across shots, ordered by value.
type RegisterHistogram struct {
	Counts []ValueCount
	Width  int
}

// Histogram maps register names to their observed-value distributions.
type Histogram map[string]RegisterHistogram

// HistogramBuilder accumulates per-shot classical outcomes into per-register
// histograms and joint-outcome counts. It is consumed exactly once via
// Finalize. Not safe for concurrent use; parallel shot execution gives each
// worker its own builder and folds them with Merge.
type HistogramBuilder struct {
	histogram Histogram
	stats     map[string]int
}

// NewHistogramBuilder creates an empty builder.
func NewHistogramBuilder() *HistogramBuilder {
	return &HistogramBuilder{
		histogram: make(Histogram),
		stats:     make(map[string]int),
	}
}

// Update folds one shot's classical memory into the histogram and the
// joint-outcome counts.
func (b *HistogramBuilder) Update(memory ClassicalMemory) {
	b.checkLive()
	for name, outcome := range memory {
		b.addCount(name, outcome.Width, outcome.Value, 1)
	}
	b.stats[jointKey(memory)]++
}

// Merge folds another builder's counts into this one. Counts for the same
// register/value pair and for the same joint key are additive, so merging
// per-worker builders in any order equals interleaved updates.
func (b *HistogramBuilder) Merge(other *HistogramBuilder) {
	b.checkLive()
	other.checkLive()
	for name, reg := range other.histogram {
		for _, vc := range reg.Counts {
			b.addCount(name, reg.Width, vc.Value, vc.Count)
		}
	}
	for key, count := range other.stats {
		b.stats[key] += count
	}
}

// Finalize transfers ownership of the accumulated maps to the caller. The
// builder is dead afterwards; a second call is a contract violation.
func (b *HistogramBuilder) Finalize() (Histogram, map[string]int) {
	b.checkLive()
	histogram, stats := b.histogram, b.stats
	b.histogram, b.stats = nil, nil
	return histogram, stats
}

// addCount inserts or bumps the (value, count) entry for a register,
// keeping the list ordered by value via binary search.
func (b *HistogramBuilder) addCount(name string, width int, value uint64, delta int) {
	reg, ok := b.histogram[name]
	if !ok {
		reg = RegisterHistogram{Width: width}
	} else if reg.Width != width {
		panic(fmt.Sprintf("sim: register %q width changed from %d to %d", name, reg.Width, width))
	}
	idx := sort.Search(len(reg.Counts), func(i int) bool {
		return reg.Counts[i].Value >= value
	})
	if idx < len(reg.Counts) && reg.Counts[idx].Value == value {
		reg.Counts[idx].Count += delta
	} else {
		reg.Counts = append(reg.Counts, ValueCount{})
		copy(reg.Counts[idx+1:], reg.Counts[idx:])
		reg.Counts[idx] = ValueCount{Value: value, Count: delta}
	}
	b.histogram[name] = reg
}

func (b *HistogramBuilder) checkLive() {
	if b.histogram == nil {
		panic("sim: histogram builder used after Finalize")
	}
}

// jointKey concatenates every register's value as a zero-padded binary
// string of its declared width, registers ordered by descending declaration
// order, so later-declared registers appear first.
func jointKey(memory ClassicalMemory) string {
	names := make([]string, 0, len(memory))
	for name := range memory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return memory[names[i]].Order > memory[names[j]].Order
	})
	var key strings.Builder
	for _, name := range names {
		outcome := memory[name]
		fmt.Fprintf(&key, "%0*b", outcome.Width, outcome.Value)
	}
	return key.String()
}

// RegisterSummary carries weighted moments of one register's distribution
// for end-of-run reporting.
type RegisterSummary struct {
	Shots  int
	Unique int
	Mean   float64
	StdDev float64
}

// Summarize computes per-register weighted mean and standard deviation over
// the observed values. Safe for nil or empty histograms.
func Summarize(h Histogram) map[string]RegisterSummary {
	summaries := make(map[string]RegisterSummary, len(h))
	for name, reg := range h {
		values := make([]float64, len(reg.Counts))
		weights := make([]float64, len(reg.Counts))
		shots := 0
		for i, vc := range reg.Counts {
			values[i] = float64(vc.Value)
			weights[i] = float64(vc.Count)
			shots += vc.Count
		}
		mean, stddev := stat.MeanStdDev(values, weights)
		summaries[name] = RegisterSummary{
			Shots:  shots,
			Unique: len(reg.Counts),
			Mean:   mean,
			StdDev: stddev,
		}
	}
	return summaries
}
