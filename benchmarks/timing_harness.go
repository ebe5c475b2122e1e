// Package benchmarks provides timing benchmark infrastructure for the
// pipeline hazard model.
package benchmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/loader"
	"github.com/sarchlab/mipsim/timing/core"
	"github.com/sarchlab/mipsim/timing/latency"
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// SimulatedCycles is the estimated total cycle count
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// Bubbles is the number of stall cycles inserted for data hazards
	Bubbles uint64 `json:"bubbles"`

	// DataHazards is the number of instructions that stalled
	DataHazards uint64 `json:"data_hazards"`

	// Flushes is the number of cycles lost to control transfers
	Flushes uint64 `json:"flushes"`

	// FinalPC is the program counter when the run ended
	FinalPC uint32 `json:"final_pc"`

	// Output is everything the program printed
	Output string `json:"output"`

	// EstimatedSeconds is SimulatedCycles at the configured clock
	EstimatedSeconds float64 `json:"estimated_seconds"`

	// Error is set if the program ended on a fatal condition
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Expectation holds the known timing of a benchmark.
type Expectation struct {
	Instructions uint64
	Bubbles      uint64
	Flushes      uint64
	Output       string
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state (e.g., initialize registers, memory)
	Setup func(regFile *emu.RegFile, memory *emu.Memory)

	// Program is the MIPS machine code, placed at the start of the text segment
	Program []uint32

	// Input is fed to the read_int trap
	Input string

	// Expected is the timing the default stage model must produce
	Expected Expectation
}

// Image returns the benchmark as a loadable program image.
func (b Benchmark) Image() *loader.Program {
	return &loader.Program{Entry: emu.TextBase, Words: b.Program}
}

// Check compares a result against the expected timing.
func (b Benchmark) Check(r BenchmarkResult) error {
	if r.Error != "" {
		return fmt.Errorf("%s: run failed: %s", b.Name, r.Error)
	}

	var mismatches []string
	if r.InstructionsRetired != b.Expected.Instructions {
		mismatches = append(mismatches,
			fmt.Sprintf("instructions %d, want %d", r.InstructionsRetired, b.Expected.Instructions))
	}
	if r.Bubbles != b.Expected.Bubbles {
		mismatches = append(mismatches, fmt.Sprintf("bubbles %d, want %d", r.Bubbles, b.Expected.Bubbles))
	}
	if r.Flushes != b.Expected.Flushes {
		mismatches = append(mismatches, fmt.Sprintf("flushes %d, want %d", r.Flushes, b.Expected.Flushes))
	}
	if r.Output != b.Expected.Output {
		mismatches = append(mismatches, fmt.Sprintf("output %q, want %q", r.Output, b.Expected.Output))
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%s: %s", b.Name, strings.Join(mismatches, "; "))
	}
	return nil
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Timing is the stage model used for every benchmark
	Timing *latency.TimingConfig

	// MaxInstructions bounds each run (0 means no limit)
	MaxInstructions uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Timing:          latency.DefaultTimingConfig(),
		MaxInstructions: 1_000_000,
		Output:          os.Stdout,
		Verbose:         false,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// Benchmarks returns the benchmarks added so far.
func (h *Harness) Benchmarks() []Benchmark {
	return h.benchmarks
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh core.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	stdout := &bytes.Buffer{}

	c := core.NewCore(
		core.WithLatencyTable(latency.NewTableWithConfig(h.config.Timing)),
		core.WithMaxInstructions(h.config.MaxInstructions),
		core.WithEmulatorOptions(
			emu.WithStdout(stdout),
			emu.WithStdin(strings.NewReader(bench.Input)),
			emu.WithPrompt(false),
		),
	)
	c.LoadProgram(emu.TextBase, bench.Program)

	if bench.Setup != nil {
		bench.Setup(c.Emulator.RegFile(), c.Emulator.Memory())
	}

	// Run simulation and measure time
	start := time.Now()
	run, err := c.Run()
	wallTime := time.Since(start)

	stats := run.Stats
	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles(),
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		Bubbles:             stats.Bubbles,
		DataHazards:         stats.DataHazards,
		Flushes:             stats.Flushes,
		FinalPC:             run.PC,
		Output:              stdout.String(),
		EstimatedSeconds:    h.config.Timing.Seconds(stats.Cycles()),
		WallTime:            wallTime,
	}
	if err != nil {
		result.Error = err.Error()
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== Pipeline Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Final PC: 0x%x\n", r.FinalPC)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Simulated Cycles:     %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions Retired: %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:                  %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Bubbles:              %d\n", r.Bubbles)
		_, _ = fmt.Fprintf(h.config.Output, "  Data Hazards:         %d\n", r.DataHazards)
		_, _ = fmt.Fprintf(h.config.Output, "  Flushes:              %d\n", r.Flushes)
		_, _ = fmt.Fprintf(h.config.Output, "  Estimated Time:       %.3g s\n", r.EstimatedSeconds)

		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "  Output: %q\n", r.Output)
			_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		}
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,bubbles,data_hazards,flushes,final_pc,error")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,0x%x,%s\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.Bubbles,
			r.DataHazards,
			r.Flushes,
			r.FinalPC,
			strings.ReplaceAll(r.Error, ",", ";"),
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`

	// Timing is the stage model used
	Timing *latency.TimingConfig `json:"timing"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// Failed is the number of benchmarks that ended on an error
	Failed int `json:"failed"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageCPI is the aggregate cycles per instruction
	AverageCPI float64 `json:"average_cpi"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Version is reported in JSON output.
const Version = "0.1.0"

// Summarize aggregates results.
func Summarize(results []BenchmarkResult) ReportSummary {
	var totalCycles, totalInstructions uint64
	var totalWallTime time.Duration
	failed := 0
	for _, r := range results {
		totalCycles += r.SimulatedCycles
		totalInstructions += r.InstructionsRetired
		totalWallTime += r.WallTime
		if r.Error != "" {
			failed++
		}
	}

	avgCPI := float64(0)
	if totalInstructions > 0 {
		avgCPI = float64(totalCycles) / float64(totalInstructions)
	}

	return ReportSummary{
		TotalBenchmarks:   len(results),
		Failed:            failed,
		TotalCycles:       totalCycles,
		TotalInstructions: totalInstructions,
		AverageCPI:        avgCPI,
		TotalWallTime:     totalWallTime,
	}
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
			Timing:    h.config.Timing,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
