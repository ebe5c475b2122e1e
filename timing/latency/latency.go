// Package latency provides the operand-read and result-available stage
// model used for hazard detection.
//
// The stage values come from a TimingConfig and can be overridden from a
// JSON file.
package latency

import (
	"github.com/sarchlab/mipsim/insts"
)

// Pseudo-registers seen by the hazard model.
const (
	// RegHILO stands for the HI/LO accumulator pair.
	RegHILO uint8 = 32
	// NoReg marks an instruction (or bubble) with nothing to write. It
	// never matches a source operand.
	NoReg uint8 = 0xFF
)

// Operand is a register read at a given pipeline stage.
type Operand struct {
	Reg   uint8
	Stage uint64
}

// Result is a register written and the stage it becomes available at.
// Reg is NoReg when the instruction writes nothing visible.
type Result struct {
	Reg   uint8
	Stage uint64
}

// None is the Result of an instruction without a destination.
var None = Result{Reg: NoReg}

// Table provides per-instruction stage lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// Sources returns the register operands inst reads, in the order the
// hazard check visits them. Reads of $0 are omitted since $0 is never
// pending.
func (t *Table) Sources(inst *insts.Instruction) []Operand {
	if inst == nil {
		return nil
	}

	read := t.config.ALUReadStage
	var ops []Operand

	switch inst.Op {
	case insts.OpSLL, insts.OpSRA:
		ops = []Operand{{inst.Rt, read}}
	case insts.OpMFHI, insts.OpMFLO:
		ops = []Operand{{RegHILO, read}}
	case insts.OpMULT, insts.OpDIV, insts.OpADDU, insts.OpSUBU, insts.OpSLT,
		insts.OpBEQ, insts.OpBNE:
		ops = []Operand{{inst.Rs, read}, {inst.Rt, read}}
	case insts.OpJR, insts.OpADDIU, insts.OpANDI, insts.OpLW:
		ops = []Operand{{inst.Rs, read}}
	case insts.OpSW:
		ops = []Operand{{inst.Rs, read}, {inst.Rt, t.config.StoreDataReadStage}}
	case insts.OpTRAP:
		if inst.Trap == insts.TrapPrintInt {
			ops = []Operand{{inst.Rs, read}}
		}
	}

	filtered := ops[:0]
	for _, op := range ops {
		if op.Reg != insts.RegZero {
			filtered = append(filtered, op)
		}
	}
	return filtered
}

// Destination returns the register inst writes and the stage at which the
// value becomes available. Writes to $0 are reported as None.
func (t *Table) Destination(inst *insts.Instruction) Result {
	if inst == nil {
		return None
	}

	var res Result
	switch inst.Op {
	case insts.OpSLL, insts.OpSRA, insts.OpMFHI, insts.OpMFLO,
		insts.OpADDU, insts.OpSUBU, insts.OpSLT:
		res = Result{inst.Rd, t.config.ALUResultStage}
	case insts.OpMULT, insts.OpDIV:
		return Result{RegHILO, t.config.MulDivResultStage}
	case insts.OpJAL:
		res = Result{insts.RegRA, t.config.ALUResultStage}
	case insts.OpADDIU, insts.OpANDI, insts.OpLUI:
		res = Result{inst.Rt, t.config.ALUResultStage}
	case insts.OpLW:
		res = Result{inst.Rt, t.config.LoadResultStage}
	case insts.OpTRAP:
		if inst.Trap != insts.TrapReadInt {
			return None
		}
		res = Result{inst.Rt, t.config.ALUResultStage}
	default:
		return None
	}

	if res.Reg == insts.RegZero {
		return None
	}
	return res
}

// IsLoadOp returns true if the instruction is a load operation.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	return inst != nil && inst.Op == insts.OpLW
}

// IsStoreOp returns true if the instruction is a store operation.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	return inst != nil && inst.Op == insts.OpSW
}

// IsBranchOp returns true if the instruction can transfer control.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpJ, insts.OpJAL, insts.OpJR, insts.OpBEQ, insts.OpBNE:
		return true
	default:
		return false
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
