package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/benchmarks"
	"github.com/sarchlab/mipsim/loader"
)

type benchOptions struct {
	csv      bool
	json     bool
	coreOnly bool
	check    bool
	emitDir  string
}

func newBenchCmd(root *rootOptions) *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the timing microbenchmarks",
		Long: `Bench runs hand-assembled programs that isolate one hazard class each
and reports cycles, bubbles, flushes and CPI. With --check it fails if any
benchmark departs from its expected timing.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.csv, "csv", false, "output results in CSV format")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results in JSON format")
	cmd.Flags().BoolVar(&opts.coreOnly, "core", false, "run only the core benchmark subset")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail if a benchmark misses its expected timing")
	cmd.Flags().StringVar(&opts.emitDir, "emit", "", "also write each benchmark as an image into this directory")
	cmd.MarkFlagsMutuallyExclusive("csv", "json")

	return cmd
}

func runBench(cmd *cobra.Command, root *rootOptions, opts *benchOptions) error {
	timing, err := root.timingConfig()
	if err != nil {
		return err
	}

	config := benchmarks.DefaultConfig()
	config.Timing = timing
	config.Output = cmd.OutOrStdout()
	config.Verbose = root.verbose

	harness := benchmarks.NewHarness(config)
	if opts.coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	if opts.emitDir != "" {
		if err := emitImages(opts.emitDir, harness.Benchmarks()); err != nil {
			return err
		}
	}

	results := harness.RunAll()

	switch {
	case opts.json:
		if err := harness.PrintJSON(results); err != nil {
			return fmt.Errorf("failed to write JSON results: %w", err)
		}
	case opts.csv:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	if !opts.check {
		return nil
	}

	failed := 0
	for i, r := range results {
		if err := harness.Benchmarks()[i].Check(r); err != nil {
			logrus.WithField("benchmark", r.Name).Error(err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d benchmarks missed their expected timing", failed, len(results))
	}
	return nil
}

func emitImages(dir string, benches []benchmarks.Benchmark) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	for _, b := range benches {
		path := filepath.Join(dir, b.Name+".img")
		if err := loader.Save(path, b.Image()); err != nil {
			return err
		}
		logrus.WithField("path", path).Debug("wrote benchmark image")
	}
	return nil
}
