// Package emu provides functional MIPS32 emulation.
package emu

// LoadStoreUnit implements MIPS word loads and stores.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// EffectiveAddress computes rs + offset.
func (lsu *LoadStoreUnit) EffectiveAddress(rs uint8, offset int32) uint32 {
	return lsu.regFile.ReadReg(rs) + uint32(offset)
}

// LW performs a word load: rt = mem[rs + offset]
func (lsu *LoadStoreUnit) LW(rt, rs uint8, offset int32) error {
	value, err := lsu.memory.LoadWord(lsu.EffectiveAddress(rs, offset))
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rt, value)
	return nil
}

// SW performs a word store: mem[rs + offset] = rt
func (lsu *LoadStoreUnit) SW(rt, rs uint8, offset int32) error {
	return lsu.memory.StoreWord(lsu.regFile.ReadReg(rt), lsu.EffectiveAddress(rs, offset))
}
