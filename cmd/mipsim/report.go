package main

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsim/timing/core"
	"github.com/sarchlab/mipsim/timing/latency"
)

// writeReport prints the end-of-run summary.
func writeReport(w io.Writer, result core.Result, config *latency.TimingConfig) {
	stats := result.Stats

	_, _ = fmt.Fprintf(w, "\nprogram finished at pc = 0x%x  (%d instructions executed)\n",
		result.PC, stats.Instructions)
	_, _ = fmt.Fprintf(w, "Number of cycles: %d\n", stats.Cycles())
	_, _ = fmt.Fprintf(w, "Number of bubbles: %d\n", stats.Bubbles)
	_, _ = fmt.Fprintf(w, "Number of flushes: %d\n", stats.Flushes)

	if config.ClockFreq > 0 {
		_, _ = fmt.Fprintf(w, "Estimated time: %.3g s at %.0f MHz\n",
			config.Seconds(stats.Cycles()), float64(config.ClockFreq/sim.MHz))
	}
}
