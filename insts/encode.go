package insts

// Instruction encoding helpers. These build machine words for tests,
// benchmark programs and the disassembler command; they do no range
// checking beyond masking each field to its width.

// EncodeR encodes a register-format instruction.
func EncodeR(funct, rs, rt, rd, shamt uint8) uint32 {
	var inst uint32
	inst |= uint32(OpcodeSpecial) << 26
	inst |= uint32(rs&0x1F) << 21
	inst |= uint32(rt&0x1F) << 16
	inst |= uint32(rd&0x1F) << 11
	inst |= uint32(shamt&0x1F) << 6
	inst |= uint32(funct & 0x3F)
	return inst
}

// EncodeI encodes an immediate-format instruction.
func EncodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	var inst uint32
	inst |= uint32(opcode&0x3F) << 26
	inst |= uint32(rs&0x1F) << 21
	inst |= uint32(rt&0x1F) << 16
	inst |= uint32(imm)
	return inst
}

// EncodeJ encodes a jump-format instruction. target is a byte address;
// only bits [27:2] are kept.
func EncodeJ(opcode uint8, target uint32) uint32 {
	return uint32(opcode&0x3F)<<26 | (target>>2)&0x3FFFFFF
}

// EncodeSLL encodes sll rd, rt, shamt.
func EncodeSLL(rd, rt, shamt uint8) uint32 { return EncodeR(FunctSLL, 0, rt, rd, shamt) }

// EncodeSRA encodes sra rd, rt, shamt.
func EncodeSRA(rd, rt, shamt uint8) uint32 { return EncodeR(FunctSRA, 0, rt, rd, shamt) }

// EncodeJR encodes jr rs.
func EncodeJR(rs uint8) uint32 { return EncodeR(FunctJR, rs, 0, 0, 0) }

// EncodeMFHI encodes mfhi rd.
func EncodeMFHI(rd uint8) uint32 { return EncodeR(FunctMFHI, 0, 0, rd, 0) }

// EncodeMFLO encodes mflo rd.
func EncodeMFLO(rd uint8) uint32 { return EncodeR(FunctMFLO, 0, 0, rd, 0) }

// EncodeMULT encodes mult rs, rt.
func EncodeMULT(rs, rt uint8) uint32 { return EncodeR(FunctMULT, rs, rt, 0, 0) }

// EncodeDIV encodes div rs, rt.
func EncodeDIV(rs, rt uint8) uint32 { return EncodeR(FunctDIV, rs, rt, 0, 0) }

// EncodeADDU encodes addu rd, rs, rt.
func EncodeADDU(rd, rs, rt uint8) uint32 { return EncodeR(FunctADDU, rs, rt, rd, 0) }

// EncodeSUBU encodes subu rd, rs, rt.
func EncodeSUBU(rd, rs, rt uint8) uint32 { return EncodeR(FunctSUBU, rs, rt, rd, 0) }

// EncodeSLT encodes slt rd, rs, rt.
func EncodeSLT(rd, rs, rt uint8) uint32 { return EncodeR(FunctSLT, rs, rt, rd, 0) }

// EncodeADDIU encodes addiu rt, rs, imm.
func EncodeADDIU(rt, rs uint8, imm int16) uint32 {
	return EncodeI(OpcodeADDIU, rs, rt, uint16(imm))
}

// EncodeANDI encodes andi rt, rs, imm.
func EncodeANDI(rt, rs uint8, imm uint16) uint32 { return EncodeI(OpcodeANDI, rs, rt, imm) }

// EncodeLUI encodes lui rt, imm.
func EncodeLUI(rt uint8, imm uint16) uint32 { return EncodeI(OpcodeLUI, 0, rt, imm) }

// EncodeLW encodes lw rt, offset(rs).
func EncodeLW(rt, rs uint8, offset int16) uint32 {
	return EncodeI(OpcodeLW, rs, rt, uint16(offset))
}

// EncodeSW encodes sw rt, offset(rs).
func EncodeSW(rt, rs uint8, offset int16) uint32 {
	return EncodeI(OpcodeSW, rs, rt, uint16(offset))
}

// EncodeBEQ encodes beq rs, rt, offset where offset counts instructions
// relative to the following instruction.
func EncodeBEQ(rs, rt uint8, offset int16) uint32 {
	return EncodeI(OpcodeBEQ, rs, rt, uint16(offset))
}

// EncodeBNE encodes bne rs, rt, offset.
func EncodeBNE(rs, rt uint8, offset int16) uint32 {
	return EncodeI(OpcodeBNE, rs, rt, uint16(offset))
}

// EncodeJ26 encodes j target.
func EncodeJ26(target uint32) uint32 { return EncodeJ(OpcodeJ, target) }

// EncodeJAL encodes jal target.
func EncodeJAL(target uint32) uint32 { return EncodeJ(OpcodeJAL, target) }

// EncodeTrap encodes a trap with the given service code. The register
// operand is used by print_int (rs) and read_int (rt).
func EncodeTrap(code TrapCode, reg uint8) uint32 {
	var inst uint32
	inst |= uint32(OpcodeTRAP) << 26
	inst |= uint32(reg&0x1F) << 21
	inst |= uint32(reg&0x1F) << 16
	inst |= uint32(code & 0xF)
	return inst
}

// EncodeHalt encodes the halt trap.
func EncodeHalt() uint32 { return EncodeTrap(TrapHalt, 0) }

// EncodeNOP encodes the canonical nop (sll $0, $0, 0).
func EncodeNOP() uint32 { return 0 }
