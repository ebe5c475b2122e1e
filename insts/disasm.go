package insts

import "fmt"

var opNames = map[Op]string{
	OpSLL:   "sll",
	OpSRA:   "sra",
	OpJR:    "jr",
	OpMFHI:  "mfhi",
	OpMFLO:  "mflo",
	OpMULT:  "mult",
	OpDIV:   "div",
	OpADDU:  "addu",
	OpSUBU:  "subu",
	OpSLT:   "slt",
	OpJ:     "j",
	OpJAL:   "jal",
	OpBEQ:   "beq",
	OpBNE:   "bne",
	OpADDIU: "addiu",
	OpANDI:  "andi",
	OpLUI:   "lui",
	OpTRAP:  "trap",
	OpLW:    "lw",
	OpSW:    "sw",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// String returns the trap service name.
func (t TrapCode) String() string {
	switch t {
	case TrapPrintNewline:
		return "newline"
	case TrapPrintInt:
		return "print_int"
	case TrapReadInt:
		return "read_int"
	case TrapHalt:
		return "halt"
	default:
		return fmt.Sprintf("0x%x", uint8(t))
	}
}

// String disassembles the instruction in MIPS assembler syntax.
// Jump targets are printed as the raw region offset since the PC is unknown.
func (i *Instruction) String() string {
	switch i.Op {
	case OpSLL, OpSRA:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rd, i.Rt, i.Shamt)
	case OpJR:
		return fmt.Sprintf("jr $%d", i.Rs)
	case OpMFHI, OpMFLO:
		return fmt.Sprintf("%s $%d", i.Op, i.Rd)
	case OpMULT, OpDIV:
		return fmt.Sprintf("%s $%d, $%d", i.Op, i.Rs, i.Rt)
	case OpADDU, OpSUBU, OpSLT:
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Op, i.Rd, i.Rs, i.Rt)
	case OpJ, OpJAL:
		return fmt.Sprintf("%s 0x%x", i.Op, i.JumpOffset())
	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rs, i.Rt, i.SImm)
	case OpADDIU:
		return fmt.Sprintf("addiu $%d, $%d, %d", i.Rt, i.Rs, i.SImm)
	case OpANDI:
		return fmt.Sprintf("andi $%d, $%d, 0x%x", i.Rt, i.Rs, i.UImm)
	case OpLUI:
		return fmt.Sprintf("lui $%d, 0x%x", i.Rt, i.UImm)
	case OpLW, OpSW:
		return fmt.Sprintf("%s $%d, %d($%d)", i.Op, i.Rt, i.SImm, i.Rs)
	case OpTRAP:
		return fmt.Sprintf("trap %s", i.Trap)
	default:
		return fmt.Sprintf("unknown (opcode 0x%02x, funct 0x%02x)", i.Opcode, i.Funct)
	}
}
