// Package core provides the instruction-driven CPU core model.
// It runs the functional emulator and charges every instruction to the
// pipeline timing model.
package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
	"github.com/sarchlab/mipsim/timing/latency"
	"github.com/sarchlab/mipsim/timing/pipeline"
)

// HookPosRetire marks the point at which an instruction retires. The hook
// item is a RetireRecord.
var HookPosRetire = &sim.HookPos{Name: "Retire"}

// RetireRecord describes one retired instruction.
type RetireRecord struct {
	PC      uint32
	Inst    *insts.Instruction
	Bubbles uint64
	// Flushed is the number of flush cycles charged for a redirect.
	Flushed uint64
}

// Result is the outcome of a run. Stats are valid up to the last retired
// instruction even when the run ended with an error.
type Result struct {
	Stats pipeline.Statistics
	// PC is the final program counter. After a fault it points at the
	// faulting instruction.
	PC uint32
}

// CoreOption is a functional option for configuring the Core.
type CoreOption func(*Core)

// WithMaxInstructions stops the run with a KindLimit error after n
// retired instructions. A value of 0 means no limit.
func WithMaxInstructions(n uint64) CoreOption {
	return func(c *Core) {
		c.maxInstructions = n
	}
}

// WithLatencyTable sets the stage table used by the timing model.
func WithLatencyTable(table *latency.Table) CoreOption {
	return func(c *Core) {
		c.latencyTable = table
	}
}

// WithEmulatorOptions passes options through to the functional emulator.
func WithEmulatorOptions(opts ...emu.EmulatorOption) CoreOption {
	return func(c *Core) {
		c.emuOpts = append(c.emuOpts, opts...)
	}
}

// Core couples the functional emulator with the pipeline timing model.
// It is an akita Hookable; hooks see every retired instruction at
// HookPosRetire.
type Core struct {
	sim.HookableBase

	// Emulator executes the architectural effect of each instruction.
	Emulator *emu.Emulator
	// Pipeline charges bubbles and flushes.
	Pipeline *pipeline.Pipeline

	latencyTable    *latency.Table
	emuOpts         []emu.EmulatorOption
	maxInstructions uint64
	entry           uint32
	halted          bool
}

// NewCore creates a new Core with an empty program.
func NewCore(opts ...CoreOption) *Core {
	c := &Core{
		latencyTable: latency.NewTable(),
		entry:        emu.TextBase,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Emulator = emu.NewEmulator(c.emuOpts...)
	c.Pipeline = pipeline.NewPipeline(pipeline.WithLatencyTable(c.latencyTable))

	return c
}

// LoadProgram installs the instruction image and sets the entry point.
func (c *Core) LoadProgram(entry uint32, words []uint32) {
	c.entry = entry
	c.Emulator.LoadProgram(entry, words)
	c.halted = false
}

// PC returns the current program counter.
func (c *Core) PC() uint32 {
	return c.Emulator.RegFile().PC
}

// Halted returns true once the halt trap has retired.
func (c *Core) Halted() bool {
	return c.halted
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() pipeline.Statistics {
	return c.Pipeline.Stats()
}

// Tick executes one instruction. It returns a non-nil error if the
// instruction raised a fatal condition; the instruction does not retire.
func (c *Core) Tick() error {
	if c.halted {
		return nil
	}

	if c.maxInstructions > 0 && c.Pipeline.Stats().Instructions >= c.maxInstructions {
		return &emu.Error{
			Kind: emu.KindLimit,
			PC:   c.PC(),
			Msg:  "instruction limit reached",
		}
	}

	result := c.Emulator.Step()

	// Operand hazards are charged before the architectural effect, so a
	// faulting instruction still pays for its stalls.
	var bubbles uint64
	if result.Inst != nil {
		bubbles = c.Pipeline.Issue(result.Inst)
	}

	if result.Err != nil {
		return result.Err
	}

	flushed := c.Pipeline.Retire(result.Inst, result.Redirected)

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosRetire,
			Item: RetireRecord{
				PC:      result.PC,
				Inst:    result.Inst,
				Bubbles: bubbles,
				Flushed: flushed,
			},
		})
	}

	if result.Halted {
		c.halted = true
	}

	return nil
}

// Run executes the core until it halts or faults.
func (c *Core) Run() (Result, error) {
	for !c.halted {
		if err := c.Tick(); err != nil {
			return c.result(), err
		}
	}

	return c.result(), nil
}

func (c *Core) result() Result {
	return Result{
		Stats: c.Pipeline.Stats(),
		PC:    c.PC(),
	}
}

// Reset restores the core to its state right after LoadProgram.
func (c *Core) Reset() {
	c.Emulator.RegFile().PC = c.entry
	c.Emulator.Reset()
	c.Pipeline.Reset()
	c.halted = false
}
