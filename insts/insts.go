// Package insts provides MIPS32 instruction definitions and decoding.
//
// This package implements decoding of MIPS32 machine code into structured
// instruction representations. It supports the subset executed by the
// simulator:
//   - Register format: SLL, SRA, JR, MFHI, MFLO, MULT, DIV, ADDU, SUBU, SLT
//   - Immediate format: BEQ, BNE, ADDIU, ANDI, LUI, LW, SW
//   - Jump format: J, JAL
//   - TRAP with the console/halt trap codes
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00432021) // addu $4, $2, $3
//	fmt.Printf("Op: %v, Rd: %d, Rs: %d, Rt: %d\n", inst.Op, inst.Rd, inst.Rs, inst.Rt)
package insts
