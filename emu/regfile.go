// Package emu provides functional MIPS32 emulation.
package emu

import "github.com/sarchlab/mipsim/insts"

// Initial values of the global and stack pointers.
const (
	InitialGP uint32 = 0x10008000
	InitialSP uint32 = DataBase + DataSize
)

// RegFile represents the MIPS register file.
// It contains 32 general-purpose registers, the HI/LO multiply/divide
// accumulators and the program counter.
type RegFile struct {
	// R holds general-purpose registers $0-$31.
	// R[0] is hard-wired to zero; writes to it are dropped.
	R [32]uint32

	// HI and LO hold multiply/divide results.
	HI uint32
	LO uint32

	// PC is the program counter.
	PC uint32
}

// NewRegFile creates a register file in its architectural reset state.
func NewRegFile() *RegFile {
	r := &RegFile{}
	r.Reset()
	return r
}

// Reset clears all registers and sets $gp and $sp to their start values.
func (r *RegFile) Reset() {
	*r = RegFile{}
	r.R[insts.RegGP] = InitialGP
	r.R[insts.RegSP] = InitialSP
}

// ReadReg reads a register value. Register 0 always returns 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == insts.RegZero || reg >= 32 {
		return 0
	}
	return r.R[reg]
}

// ReadRegSigned reads a register as a two's-complement value.
func (r *RegFile) ReadRegSigned(reg uint8) int32 {
	return int32(r.ReadReg(reg))
}

// WriteReg writes a value to a register. Writes to register 0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == insts.RegZero || reg >= 32 {
		return
	}
	r.R[reg] = value
}

// ClearZero forces $0 back to zero.
func (r *RegFile) ClearZero() {
	r.R[insts.RegZero] = 0
}
