package benchmarks

import (
	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

// GetMicrobenchmarks returns the standard set of microbenchmarks.
// Each benchmark isolates one hazard class and carries its expected timing
// under the default stage model.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		independentALU(),
		dependencyChain(),
		loadUse(),
		loadUsePadded(),
		multiplyLow(),
		branchLoop(),
		callReturn(),
		storeHalt(),
		readEcho(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 core benchmarks for quick
// validation: load-use, multiply latency and a branch-heavy loop.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		loadUse(),
		multiplyLow(),
		branchLoop(),
	}
}

// GetBenchmark returns the named microbenchmark.
func GetBenchmark(name string) (Benchmark, bool) {
	for _, b := range GetMicrobenchmarks() {
		if b.Name == name {
			return b, true
		}
	}
	return Benchmark{}, false
}

// 1. Independent ALU - no operand is produced by a recent instruction
func independentALU() Benchmark {
	program := make([]uint32, 0, 9)
	for reg := uint8(8); reg < 16; reg++ {
		program = append(program, insts.EncodeADDIU(reg, 0, int16(reg)))
	}
	program = append(program, insts.EncodeHalt())

	return Benchmark{
		Name:        "independent_alu",
		Description: "8 independent addiu - no hazards, CPI approaches 1",
		Program:     program,
		Expected:    Expectation{Instructions: 9},
	}
}

// 2. Dependency Chain - each addiu needs the previous result
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "10 dependent addiu ($2 = $2 + 1) - one bubble each",
		Program:     buildDependencyChain(10),
		Expected: Expectation{
			Instructions: 13,
			Bubbles:      11,
			Output:       " 11 ",
		},
	}
}

func buildDependencyChain(n int) []uint32 {
	program := make([]uint32, 0, n+3)
	program = append(program, insts.EncodeADDIU(2, 0, 1))
	for i := 0; i < n; i++ {
		program = append(program, insts.EncodeADDIU(2, 2, 1))
	}
	return append(program,
		insts.EncodeTrap(insts.TrapPrintInt, 2),
		insts.EncodeHalt(),
	)
}

// 3. Load Use - an ALU op consumes a load result immediately
func loadUse() Benchmark {
	return Benchmark{
		Name:        "load_use",
		Description: "lw followed by a dependent addu - three bubbles",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			_ = memory.StoreWord(5, emu.InitialGP)
		},
		Program: []uint32{
			insts.EncodeLW(2, insts.RegGP, 0),
			insts.EncodeADDU(3, 2, 2),
			insts.EncodeSW(3, insts.RegGP, 4),
			insts.EncodeTrap(insts.TrapPrintInt, 3),
			insts.EncodeHalt(),
		},
		Expected: Expectation{
			Instructions: 5,
			Bubbles:      3,
			Output:       " 10 ",
		},
	}
}

// 4. Load Use Padded - three independent instructions hide the load
func loadUsePadded() Benchmark {
	return Benchmark{
		Name:        "load_use_padded",
		Description: "lw, 3 independent addiu, then the dependent addu - no bubbles",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			_ = memory.StoreWord(5, emu.InitialGP)
		},
		Program: []uint32{
			insts.EncodeLW(2, insts.RegGP, 0),
			insts.EncodeADDIU(8, 0, 1),
			insts.EncodeADDIU(9, 0, 1),
			insts.EncodeADDIU(10, 0, 1),
			insts.EncodeADDU(3, 2, 2),
			insts.EncodeSW(3, insts.RegGP, 4),
			insts.EncodeHalt(),
		},
		Expected: Expectation{Instructions: 7},
	}
}

// 5. Multiply Low - mflo waits for the long-latency multiplier
func multiplyLow() Benchmark {
	return Benchmark{
		Name:        "mult_mflo",
		Description: "6 * 7 through mult/mflo - HI/LO latency",
		Program: []uint32{
			insts.EncodeADDIU(2, 0, 6),
			insts.EncodeADDIU(3, 0, 7),
			insts.EncodeMULT(2, 3),
			insts.EncodeMFLO(4),
			insts.EncodeTrap(insts.TrapPrintInt, 4),
			insts.EncodeHalt(),
		},
		Expected: Expectation{
			Instructions: 6,
			Bubbles:      6,
			Output:       " 42 ",
		},
	}
}

// 6. Branch Loop - a countdown loop with a taken bne per iteration
func branchLoop() Benchmark {
	return Benchmark{
		Name:        "branch_loop",
		Description: "5-iteration countdown loop - flush per taken branch",
		Program: []uint32{
			insts.EncodeADDIU(2, 0, 5),  // $2 = 5
			insts.EncodeADDIU(2, 2, -1), // loop: $2--
			insts.EncodeBNE(2, 0, -2),   // bne $2, $0, loop
			insts.EncodeHalt(),
		},
		Expected: Expectation{
			Instructions: 12,
			Bubbles:      6,
			Flushes:      8,
		},
	}
}

// 7. Call Return - jal to a leaf function and jr back
func callReturn() Benchmark {
	return Benchmark{
		Name:        "call_return",
		Description: "jal/jr round trip - two flushes",
		Program: []uint32{
			insts.EncodeJAL(emu.TextBase + 12),      // 0: call leaf
			insts.EncodeTrap(insts.TrapPrintInt, 2), // 4
			insts.EncodeHalt(),                      // 8
			insts.EncodeADDIU(2, 0, 7),              // 12: leaf
			insts.EncodeJR(insts.RegRA),             // 16
		},
		Expected: Expectation{
			Instructions: 5,
			Flushes:      4,
			Output:       " 7 ",
		},
	}
}

// 8. Store Halt - straight-line code ending in halt has no flush
func storeHalt() Benchmark {
	return Benchmark{
		Name:        "store_halt",
		Description: "addiu, sw, halt - store data read late, no flush",
		Program: []uint32{
			insts.EncodeADDIU(2, 0, 9),
			insts.EncodeSW(2, insts.RegGP, 0),
			insts.EncodeHalt(),
		},
		Expected: Expectation{Instructions: 3},
	}
}

// 9. Read Echo - print a value read from the console
func readEcho() Benchmark {
	return Benchmark{
		Name:        "read_echo",
		Description: "read_int then print_int of the same register",
		Input:       "12\n",
		Program: []uint32{
			insts.EncodeTrap(insts.TrapReadInt, 4),
			insts.EncodeTrap(insts.TrapPrintInt, 4),
			insts.EncodeHalt(),
		},
		Expected: Expectation{
			Instructions: 3,
			Bubbles:      1,
			Output:       " 12 ",
		},
	}
}
