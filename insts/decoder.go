// Package insts provides MIPS32 instruction definitions and decoding.
package insts

// Op represents a decoded MIPS operation.
type Op uint16

// MIPS operations.
const (
	OpUnknown Op = iota
	OpSLL
	OpSRA
	OpJR
	OpMFHI
	OpMFLO
	OpMULT
	OpDIV
	OpADDU
	OpSUBU
	OpSLT
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpADDIU
	OpANDI
	OpLUI
	OpTRAP
	OpLW
	OpSW
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // Register: opcode | rs | rt | rd | shamt | funct
	FormatI              // Immediate: opcode | rs | rt | imm16
	FormatJ              // Jump: opcode | target26
	FormatTrap           // Trap: opcode | code (low 4 bits of target26)
)

// Primary opcodes (bits [31:26]).
const (
	OpcodeSpecial uint8 = 0x00
	OpcodeJ       uint8 = 0x02
	OpcodeJAL     uint8 = 0x03
	OpcodeBEQ     uint8 = 0x04
	OpcodeBNE     uint8 = 0x05
	OpcodeADDIU   uint8 = 0x09
	OpcodeANDI    uint8 = 0x0c
	OpcodeLUI     uint8 = 0x0f
	OpcodeTRAP    uint8 = 0x1a
	OpcodeLW      uint8 = 0x23
	OpcodeSW      uint8 = 0x2b
)

// Function codes (bits [5:0]) for OpcodeSpecial.
const (
	FunctSLL  uint8 = 0x00
	FunctSRA  uint8 = 0x03
	FunctJR   uint8 = 0x08
	FunctMFHI uint8 = 0x10
	FunctMFLO uint8 = 0x12
	FunctMULT uint8 = 0x18
	FunctDIV  uint8 = 0x1a
	FunctADDU uint8 = 0x21
	FunctSUBU uint8 = 0x23
	FunctSLT  uint8 = 0x2a
)

// TrapCode selects the console or halt service of a TRAP instruction.
type TrapCode uint8

// Trap codes.
const (
	TrapPrintNewline TrapCode = 0x00
	TrapPrintInt     TrapCode = 0x01
	TrapReadInt      TrapCode = 0x05
	TrapHalt         TrapCode = 0x0a
)

// Well-known registers.
const (
	RegZero uint8 = 0
	RegGP   uint8 = 28
	RegSP   uint8 = 29
	RegRA   uint8 = 31
)

// Instruction represents a decoded MIPS instruction.
// All fields are extracted for every word; which of them are meaningful
// depends on Op.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Encoding format

	Opcode uint8 // bits [31:26]
	Rs     uint8 // bits [25:21]
	Rt     uint8 // bits [20:16]
	Rd     uint8 // bits [15:11]
	Shamt  uint8 // bits [10:6]
	Funct  uint8 // bits [5:0]

	UImm   uint32 // zero-extended imm16
	SImm   int32  // sign-extended imm16
	Target uint32 // bits [25:0]

	Trap TrapCode // Target & 0xf, for OpTRAP
}

// JumpOffset returns the jump target field as a byte offset within the
// current 256 MiB region.
func (i *Instruction) JumpOffset() uint32 {
	return i.Target << 2
}

// BranchOffset returns the branch displacement in bytes, relative to the
// address of the following instruction.
func (i *Instruction) BranchOffset() int32 {
	return i.SImm << 2
}

// Decoder decodes MIPS machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS instruction word. Every word decodes to some
// instruction; unsupported encodings come back as OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{
		Opcode: uint8(word >> 26),
		Rs:     uint8((word >> 21) & 0x1F),
		Rt:     uint8((word >> 16) & 0x1F),
		Rd:     uint8((word >> 11) & 0x1F),
		Shamt:  uint8((word >> 6) & 0x1F),
		Funct:  uint8(word & 0x3F),
		UImm:   word & 0xFFFF,
		SImm:   int32(int16(word & 0xFFFF)),
		Target: word & 0x3FFFFFF,
	}

	switch inst.Opcode {
	case OpcodeSpecial:
		d.decodeSpecial(inst)
	case OpcodeJ:
		inst.Format = FormatJ
		inst.Op = OpJ
	case OpcodeJAL:
		inst.Format = FormatJ
		inst.Op = OpJAL
	case OpcodeTRAP:
		d.decodeTrap(inst)
	default:
		d.decodeImm(inst)
	}

	return inst
}

// decodeSpecial decodes register-format instructions selected by funct.
func (d *Decoder) decodeSpecial(inst *Instruction) {
	inst.Format = FormatR

	switch inst.Funct {
	case FunctSLL:
		inst.Op = OpSLL
	case FunctSRA:
		inst.Op = OpSRA
	case FunctJR:
		inst.Op = OpJR
	case FunctMFHI:
		inst.Op = OpMFHI
	case FunctMFLO:
		inst.Op = OpMFLO
	case FunctMULT:
		inst.Op = OpMULT
	case FunctDIV:
		inst.Op = OpDIV
	case FunctADDU:
		inst.Op = OpADDU
	case FunctSUBU:
		inst.Op = OpSUBU
	case FunctSLT:
		inst.Op = OpSLT
	default:
		inst.Op = OpUnknown
	}
}

// decodeImm decodes immediate-format instructions.
func (d *Decoder) decodeImm(inst *Instruction) {
	inst.Format = FormatI

	switch inst.Opcode {
	case OpcodeBEQ:
		inst.Op = OpBEQ
	case OpcodeBNE:
		inst.Op = OpBNE
	case OpcodeADDIU:
		inst.Op = OpADDIU
	case OpcodeANDI:
		inst.Op = OpANDI
	case OpcodeLUI:
		inst.Op = OpLUI
	case OpcodeLW:
		inst.Op = OpLW
	case OpcodeSW:
		inst.Op = OpSW
	default:
		inst.Op = OpUnknown
		inst.Format = FormatUnknown
	}
}

// decodeTrap decodes the TRAP instruction. The trap code lives in the low
// four bits of the 26-bit field; validity is judged at execution.
func (d *Decoder) decodeTrap(inst *Instruction) {
	inst.Format = FormatTrap
	inst.Op = OpTRAP
	inst.Trap = TrapCode(inst.Target & 0xF)
}

// IsSupported reports whether the trap code names an implemented service.
func (t TrapCode) IsSupported() bool {
	switch t {
	case TrapPrintNewline, TrapPrintInt, TrapReadInt, TrapHalt:
		return true
	default:
		return false
	}
}
