// Package emu provides functional MIPS32 emulation.
package emu

// BranchUnit implements MIPS jumps and branches. All operations expect the
// register file's PC to already point at the following instruction, and
// return true when they redirect control flow.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// J jumps to the given offset within the current 256 MiB region.
func (b *BranchUnit) J(offset uint32) bool {
	b.regFile.PC = (b.regFile.PC & 0xF0000000) + offset
	return true
}

// JAL saves the return address to $ra, then jumps like J.
func (b *BranchUnit) JAL(offset uint32) bool {
	b.regFile.WriteReg(31, b.regFile.PC)
	return b.J(offset)
}

// JR jumps to the address held in rs.
func (b *BranchUnit) JR(rs uint8) bool {
	b.regFile.PC = b.regFile.ReadReg(rs)
	return true
}

// BEQ branches by offset bytes when rs equals rt.
func (b *BranchUnit) BEQ(rs, rt uint8, offset int32) bool {
	if b.regFile.ReadReg(rs) != b.regFile.ReadReg(rt) {
		return false
	}
	b.regFile.PC += uint32(offset)
	return true
}

// BNE branches by offset bytes when rs differs from rt.
func (b *BranchUnit) BNE(rs, rt uint8, offset int32) bool {
	if b.regFile.ReadReg(rs) == b.regFile.ReadReg(rt) {
		return false
	}
	b.regFile.PC += uint32(offset)
	return true
}
