// Package pipeline estimates the cycle cost of a retired instruction stream
// on a 5-stage in-order pipeline with forwarding.
//
// The model is not cycle-driven. Each instruction is charged bubbles for
// read-after-write hazards found by the HazardTracker and a flush penalty
// for every control transfer.
package pipeline

import (
	"github.com/sarchlab/mipsim/insts"
	"github.com/sarchlab/mipsim/timing/latency"
)

// Statistics holds pipeline performance statistics.
type Statistics struct {
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Bubbles is the number of stall cycles inserted for data hazards.
	Bubbles uint64
	// Flushes is the number of cycles lost to control transfers.
	Flushes uint64
	// DataHazards is the number of instructions that stalled at least once.
	DataHazards uint64
	// Redirects is the number of control transfers.
	Redirects uint64
	// PipelineFill is the fixed fill/drain overhead.
	PipelineFill uint64
}

// Cycles returns the estimated total cycle count.
func (s Statistics) Cycles() uint64 {
	return s.Instructions + s.PipelineFill + s.Bubbles + s.Flushes
}

// CPI returns the cycles per instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles()) / float64(s.Instructions)
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithLatencyTable sets a custom latency table for instruction timing.
func WithLatencyTable(table *latency.Table) PipelineOption {
	return func(p *Pipeline) {
		p.latencyTable = table
	}
}

// Pipeline charges hazard and flush cycles to a stream of instructions.
// Each instruction goes through Issue and then, if it retired, Retire.
type Pipeline struct {
	hazards      *HazardTracker
	latencyTable *latency.Table
	stats        Statistics
}

// NewPipeline creates a new timing model with an empty tracker.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		hazards:      NewHazardTracker(),
		latencyTable: latency.NewTable(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.stats.PipelineFill = p.latencyTable.Config().PipelineFill

	return p
}

// Issue checks every register operand of inst in order and inserts the
// bubbles each one needs before the next is checked. It returns the
// number of bubbles inserted.
func (p *Pipeline) Issue(inst *insts.Instruction) uint64 {
	var total uint64

	for _, op := range p.latencyTable.Sources(inst) {
		stall := p.hazards.CheckDependency(op.Reg, op.Stage)
		if stall == 0 {
			continue
		}
		p.hazards.Stall(stall)
		total += stall
	}

	p.stats.Bubbles += total
	if total > 0 {
		p.stats.DataHazards++
	}

	return total
}

// Retire records the destination of inst in the tracker and, if it
// redirected control, charges the flush penalty. It returns the number of
// flush cycles charged.
func (p *Pipeline) Retire(inst *insts.Instruction, redirected bool) uint64 {
	dest := p.latencyTable.Destination(inst)
	p.hazards.Advance(dest.Reg, dest.Stage)
	p.stats.Instructions++

	if !redirected {
		return 0
	}

	penalty := p.latencyTable.Config().FlushPenalty
	p.hazards.Stall(penalty)
	p.stats.Flushes += penalty
	p.stats.Redirects++

	return penalty
}

// Stats returns the pipeline statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// Hazards returns the hazard tracker.
func (p *Pipeline) Hazards() *HazardTracker {
	return p.hazards
}

// LatencyTable returns the latency table used by the pipeline.
func (p *Pipeline) LatencyTable() *latency.Table {
	return p.latencyTable
}

// Reset clears the tracker and statistics.
func (p *Pipeline) Reset() {
	p.hazards.Reset()
	p.stats = Statistics{PipelineFill: p.latencyTable.Config().PipelineFill}
}
