package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/quantum-sim/quantum-sim/sim"
)

var (
	// CLI flags for the simulation run
	shots    int    // Number of independent shots to execute
	seed     int64  // Seed for the per-shot fate streams
	workers  int    // Number of parallel shot workers
	logLevel string // Log verbosity level

	// CLI flags selecting what gets printed
	showProbabilities bool // Print the probabilities vector (single-shot runs)
	showStatevector   bool // Print the amplitude vector (single-shot runs)
	showTimes         bool // Print load/simulation times and run counters
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "quantum-sim",
	Short: "Statevector simulator for resolved quantum circuit programs",
}

// runCmd executes a resolved program file using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [program.yaml]",
	Short: "Run a resolved circuit program",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		logrus.Infof("Starting run: program=%s shots=%d seed=%d workers=%d", args[0], shots, seed, workers)

		execution, err := sim.Run(args[0], sim.NewShotKey(seed), shots, workers)
		if err != nil {
			logrus.Fatalf("unable to run program: %v", err)
		}

		printExecution(execution)
		logrus.Info("Run complete.")
	},
}

// printExecution writes the run outcome to stdout. Anything fancier than
// this (tables, JSON, CSV files) belongs to an external reporting layer.
func printExecution(execution *sim.Execution) {
	if histogram := execution.Histogram(); histogram != nil {
		fmt.Println("=== Histogram ===")
		for _, name := range sortedKeys(histogram) {
			reg := histogram[name]
			for _, vc := range reg.Counts {
				fmt.Printf("%s[%d] = %d  x%d\n", name, reg.Width, vc.Value, vc.Count)
			}
		}
		stats := execution.Stats()
		fmt.Println("=== Joint Outcomes ===")
		for _, key := range sortedKeys(stats) {
			fmt.Printf("%s  x%d\n", key, stats[key])
		}
	} else {
		fmt.Println("=== Memory ===")
		memory := execution.Memory()
		for _, name := range sortedKeys(memory) {
			outcome := memory[name]
			fmt.Printf("%s[%d] = %d\n", name, outcome.Width, outcome.Value)
		}
	}

	if showProbabilities {
		fmt.Println("=== Probabilities ===")
		for i, p := range execution.Probabilities() {
			fmt.Printf("%0*b: %.6f\n", execution.Statevector().QubitWidth(), i, p)
		}
	}
	if showStatevector {
		fmt.Println("=== Statevector ===")
		for i, amplitude := range execution.Statevector().Amplitudes() {
			fmt.Printf("%0*b: %v\n", execution.Statevector().QubitWidth(), i, amplitude)
		}
	}
	if showTimes {
		times := execution.Times()
		fmt.Println("=== Times ===")
		fmt.Printf("Load      : %d ms\n", times.LoadMillis)
		fmt.Printf("Simulation: %d ms\n", times.SimulationMillis)
		execution.Counters().Print()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	runCmd.Flags().IntVar(&shots, "shots", 1, "Number of independent shots to simulate")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for measurement randomness")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Number of parallel shot workers")
	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&showProbabilities, "probabilities", false, "Print the probabilities vector")
	runCmd.Flags().BoolVar(&showStatevector, "statevector", false, "Print the amplitude vector")
	runCmd.Flags().BoolVar(&showTimes, "times", false, "Print timing and run counters")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
