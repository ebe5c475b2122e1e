// Package emu provides functional MIPS32 emulation.
package emu

import (
	"errors"
	"io"
	"os"

	"github.com/sarchlab/mipsim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Inst is the decoded instruction. It is nil if the fetch failed.
	Inst *insts.Instruction

	// PC is the address the instruction was fetched from.
	PC uint32

	// Redirected is true if the instruction changed control flow
	// (j, jal, jr, or a taken beq/bne).
	Redirected bool

	// Halted is true if the program executed the halt trap.
	Halted bool

	// Err is set if the instruction raised a fatal error. The instruction
	// did not retire.
	Err error
}

// Emulator executes MIPS instructions functionally.
type Emulator struct {
	regFile     *RegFile
	memory      *Memory
	imem        *InstructionMemory
	decoder     *insts.Decoder
	trapHandler TrapHandler
	ownsTraps   bool

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	// I/O
	stdin  io.Reader
	stdout io.Writer
	prompt bool

	// Execution state
	instructionCount uint64
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom console writer for the print traps.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithStdin sets a custom console reader for the read_int trap.
func WithStdin(r io.Reader) EmulatorOption {
	return func(e *Emulator) {
		e.stdin = r
	}
}

// WithPrompt controls whether read_int prints its prompt.
func WithPrompt(prompt bool) EmulatorOption {
	return func(e *Emulator) {
		e.prompt = prompt
	}
}

// WithTrapHandler sets a custom trap handler.
func WithTrapHandler(handler TrapHandler) EmulatorOption {
	return func(e *Emulator) {
		e.trapHandler = handler
	}
}

// NewEmulator creates a new MIPS emulator with an empty instruction image.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := NewRegFile()
	memory := NewMemory()

	e := &Emulator{
		regFile: regFile,
		memory:  memory,
		imem:    NewInstructionMemory(TextBase, nil),
		decoder: insts.NewDecoder(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		prompt:  true,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buildUnits()

	return e
}

func (e *Emulator) buildUnits() {
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)

	if e.trapHandler == nil || e.ownsTraps {
		h := NewDefaultTrapHandler(e.regFile, e.stdin, e.stdout)
		h.SetPrompt(e.prompt)
		e.trapHandler = h
		e.ownsTraps = true
	}
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's data memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions retired.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram installs the instruction image at TextBase and sets the PC
// to entry.
func (e *Emulator) LoadProgram(entry uint32, words []uint32) {
	e.imem = NewInstructionMemory(TextBase, words)
	e.regFile.PC = entry
}

// Reset restores registers and data memory to their start state and clears
// the instruction count. The loaded program and entry point are kept.
func (e *Emulator) Reset() {
	entry := e.regFile.PC
	e.regFile.Reset()
	e.regFile.PC = entry
	e.memory = NewMemory()
	e.instructionCount = 0
	e.buildUnits()
}

// Peek decodes the instruction at the current PC without executing it.
func (e *Emulator) Peek() (*insts.Instruction, error) {
	word, err := e.imem.Fetch(e.regFile.PC)
	if err != nil {
		return nil, err
	}
	return e.decoder.Decode(word), nil
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	// $zero is re-forced every iteration.
	e.regFile.ClearZero()

	pc := e.regFile.PC
	result := StepResult{PC: pc}

	// 1. Fetch
	word, err := e.imem.Fetch(pc)
	if err != nil {
		result.Err = err
		return result
	}

	// 2. Decode
	result.Inst = e.decoder.Decode(word)

	// 3. Execute
	e.regFile.PC = pc + 4
	result.Redirected, result.Halted, err = e.execute(result.Inst)
	if err != nil {
		var simErr *Error
		if errors.As(err, &simErr) {
			simErr.PC = pc
		}
		e.regFile.PC = pc
		result.Err = err
		return result
	}

	e.instructionCount++

	return result
}

// execute dispatches and executes a decoded instruction.
func (e *Emulator) execute(inst *insts.Instruction) (redirected, halted bool, err error) {
	switch inst.Op {
	case insts.OpSLL:
		e.alu.SLL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRA:
		e.alu.SRA(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpJR:
		redirected = e.branchUnit.JR(inst.Rs)
	case insts.OpMFHI:
		e.alu.MFHI(inst.Rd)
	case insts.OpMFLO:
		e.alu.MFLO(inst.Rd)
	case insts.OpMULT:
		e.alu.MULT(inst.Rs, inst.Rt)
	case insts.OpDIV:
		if !e.alu.DIV(inst.Rs, inst.Rt) {
			err = &Error{Kind: KindArithmetic, Msg: "division by zero"}
		}
	case insts.OpADDU:
		e.alu.ADDU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUBU:
		e.alu.SUBU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		e.alu.SLT(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpJ:
		redirected = e.branchUnit.J(inst.JumpOffset())
	case insts.OpJAL:
		redirected = e.branchUnit.JAL(inst.JumpOffset())
	case insts.OpBEQ:
		redirected = e.branchUnit.BEQ(inst.Rs, inst.Rt, inst.BranchOffset())
	case insts.OpBNE:
		redirected = e.branchUnit.BNE(inst.Rs, inst.Rt, inst.BranchOffset())
	case insts.OpADDIU:
		e.alu.ADDIU(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpANDI:
		e.alu.ANDI(inst.Rt, inst.Rs, inst.UImm)
	case insts.OpLUI:
		e.alu.LUI(inst.Rt, inst.UImm)
	case insts.OpLW:
		err = e.lsu.LW(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpSW:
		err = e.lsu.SW(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpTRAP:
		var tr TrapResult
		tr, err = e.trapHandler.Handle(inst)
		halted = tr.Halted
	default:
		err = &Error{Kind: KindUnsupported, Msg: "unimplemented instruction"}
	}

	return redirected, halted, err
}
