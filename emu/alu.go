// Package emu provides functional MIPS32 emulation.
package emu

// ALU implements MIPS arithmetic, logic, shift and multiply/divide
// operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// SLL performs a logical left shift: rd = rt << shamt
func (a *ALU) SLL(rd, rt, shamt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rt)<<(shamt&0x1F))
}

// SRA performs an arithmetic right shift: rd = rt >> shamt
func (a *ALU) SRA(rd, rt, shamt uint8) {
	a.regFile.WriteReg(rd, uint32(a.regFile.ReadRegSigned(rt)>>(shamt&0x1F)))
}

// ADDU performs wrapping addition: rd = rs + rt
func (a *ALU) ADDU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)+a.regFile.ReadReg(rt))
}

// SUBU performs wrapping subtraction: rd = rs - rt
func (a *ALU) SUBU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)-a.regFile.ReadReg(rt))
}

// SLT sets rd to 1 if rs < rt as signed values, otherwise 0.
func (a *ALU) SLT(rd, rs, rt uint8) {
	var result uint32
	if a.regFile.ReadRegSigned(rs) < a.regFile.ReadRegSigned(rt) {
		result = 1
	}
	a.regFile.WriteReg(rd, result)
}

// ADDIU adds a sign-extended immediate: rt = rs + imm
func (a *ALU) ADDIU(rt, rs uint8, imm int32) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)+uint32(imm))
}

// ANDI ands with a zero-extended immediate: rt = rs & imm
func (a *ALU) ANDI(rt, rs uint8, imm uint32) {
	a.regFile.WriteReg(rt, a.regFile.ReadReg(rs)&imm)
}

// LUI loads the immediate into the upper half: rt = imm << 16
func (a *ALU) LUI(rt uint8, imm uint32) {
	a.regFile.WriteReg(rt, imm<<16)
}

// MFHI copies HI into rd.
func (a *ALU) MFHI(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.HI)
}

// MFLO copies LO into rd.
func (a *ALU) MFLO(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.LO)
}

// MULT forms the signed 64-bit product of rs and rt and splits it into
// HI (upper 32 bits) and LO (lower 32 bits).
func (a *ALU) MULT(rs, rt uint8) {
	product := int64(a.regFile.ReadRegSigned(rs)) * int64(a.regFile.ReadRegSigned(rt))
	a.regFile.LO = uint32(product)
	a.regFile.HI = uint32(uint64(product) >> 32)
}

// DIV performs signed division: LO = rs / rt, HI = rs % rt.
// It returns false without touching HI/LO when rt is zero.
func (a *ALU) DIV(rs, rt uint8) bool {
	divisor := a.regFile.ReadRegSigned(rt)
	if divisor == 0 {
		return false
	}
	dividend := a.regFile.ReadRegSigned(rs)
	a.regFile.LO = uint32(dividend / divisor)
	a.regFile.HI = uint32(dividend % divisor)
	return true
}
