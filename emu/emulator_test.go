package emu_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

var _ = Describe("Emulator", func() {
	var (
		e         *emu.Emulator
		stdoutBuf *bytes.Buffer
	)

	BeforeEach(func() {
		stdoutBuf = &bytes.Buffer{}
		e = emu.NewEmulator(
			emu.WithStdout(stdoutBuf),
			emu.WithStdin(bytes.NewBufferString("9\n")),
			emu.WithPrompt(false),
		)
	})

	load := func(words ...uint32) {
		e.LoadProgram(emu.TextBase, words)
	}

	run := func() emu.StepResult {
		for {
			result := e.Step()
			if result.Halted || result.Err != nil {
				return result
			}
		}
	}

	Describe("NewEmulator", func() {
		It("should create an emulator with initialized components", func() {
			Expect(e).NotTo(BeNil())
			Expect(e.RegFile()).NotTo(BeNil())
			Expect(e.Memory()).NotTo(BeNil())
			Expect(e.RegFile().ReadReg(29)).To(Equal(emu.InitialSP))
		})
	})

	Describe("LoadProgram", func() {
		It("should set the PC to the entry point", func() {
			load(insts.EncodeHalt())
			Expect(e.RegFile().PC).To(Equal(emu.TextBase))
		})
	})

	Describe("Step", func() {
		It("should execute addiu and advance the PC", func() {
			load(insts.EncodeADDIU(2, 0, 5))

			result := e.Step()

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Inst.Op).To(Equal(insts.OpADDIU))
			Expect(result.PC).To(Equal(emu.TextBase))
			Expect(result.Redirected).To(BeFalse())
			Expect(e.RegFile().ReadReg(2)).To(Equal(uint32(5)))
			Expect(e.RegFile().PC).To(Equal(emu.TextBase + 4))
			Expect(e.InstructionCount()).To(Equal(uint64(1)))
		})

		It("should keep $0 at zero after an attempted write", func() {
			load(insts.EncodeADDIU(0, 0, 5), insts.EncodeADDU(3, 0, 0))

			e.Step()
			Expect(e.RegFile().ReadReg(0)).To(BeZero())

			e.Step()
			Expect(e.RegFile().ReadReg(3)).To(BeZero())
		})

		It("should report a taken branch as a redirect", func() {
			load(insts.EncodeBEQ(0, 0, 1), insts.EncodeHalt(), insts.EncodeHalt())

			result := e.Step()

			Expect(result.Redirected).To(BeTrue())
			Expect(e.RegFile().PC).To(Equal(emu.TextBase + 8))
		})

		It("should not report an untaken branch as a redirect", func() {
			load(insts.EncodeBNE(0, 0, 1), insts.EncodeHalt())

			result := e.Step()

			Expect(result.Redirected).To(BeFalse())
			Expect(e.RegFile().PC).To(Equal(emu.TextBase + 4))
		})

		It("should store and load a word through $gp", func() {
			load(
				insts.EncodeADDIU(2, 0, 77),
				insts.EncodeSW(2, 28, 16),
				insts.EncodeLW(3, 28, 16),
				insts.EncodeHalt(),
			)

			result := run()

			Expect(result.Halted).To(BeTrue())
			Expect(e.RegFile().ReadReg(3)).To(Equal(uint32(77)))
			value, err := e.Memory().LoadWord(emu.InitialGP + 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(uint32(77)))
		})

		It("should read an integer from the console", func() {
			load(insts.EncodeTrap(insts.TrapReadInt, 4), insts.EncodeTrap(insts.TrapPrintInt, 4), insts.EncodeHalt())

			result := run()

			Expect(result.Halted).To(BeTrue())
			Expect(stdoutBuf.String()).To(Equal(" 9 "))
		})

		It("should call and return with jal/jr", func() {
			load(
				insts.EncodeJAL(emu.TextBase+12), // 0: call
				insts.EncodeADDIU(5, 5, 1),       // 4: after return
				insts.EncodeHalt(),               // 8
				insts.EncodeADDIU(6, 0, 3),       // 12: callee
				insts.EncodeJR(31),               // 16
			)

			result := run()

			Expect(result.Halted).To(BeTrue())
			Expect(e.RegFile().ReadReg(5)).To(Equal(uint32(1)))
			Expect(e.RegFile().ReadReg(6)).To(Equal(uint32(3)))
			Expect(e.RegFile().ReadReg(31)).To(Equal(emu.TextBase + 4))
		})

		It("should leave the PC past the halt trap", func() {
			load(insts.EncodeHalt())

			result := e.Step()

			Expect(result.Halted).To(BeTrue())
			Expect(e.RegFile().PC).To(Equal(emu.TextBase + 4))
		})
	})

	Describe("fatal errors", func() {
		It("should fail a fetch outside the image", func() {
			load()

			result := e.Step()

			Expect(result.Inst).To(BeNil())
			Expect(emu.KindOf(result.Err)).To(Equal(emu.KindFetchRange))
		})

		It("should fail division by zero without retiring", func() {
			load(insts.EncodeADDIU(1, 0, 8), insts.EncodeDIV(1, 0), insts.EncodeHalt())

			e.Step()
			result := e.Step()

			var simErr *emu.Error
			Expect(errors.As(result.Err, &simErr)).To(BeTrue())
			Expect(simErr.Kind).To(Equal(emu.KindArithmetic))
			Expect(simErr.PC).To(Equal(emu.TextBase + 4))
			Expect(e.InstructionCount()).To(Equal(uint64(1)))
			Expect(e.RegFile().PC).To(Equal(emu.TextBase + 4))
		})

		It("should fail an unaligned load with the offending address", func() {
			load(insts.EncodeLW(2, 28, 2))

			result := e.Step()

			var simErr *emu.Error
			Expect(errors.As(result.Err, &simErr)).To(BeTrue())
			Expect(simErr.Kind).To(Equal(emu.KindDataAccess))
			Expect(simErr.Addr).To(Equal(emu.InitialGP + 2))
			Expect(simErr.PC).To(Equal(emu.TextBase))
		})

		It("should fail an unimplemented opcode", func() {
			load(0xFC000000)

			result := e.Step()

			Expect(emu.KindOf(result.Err)).To(Equal(emu.KindUnsupported))
			Expect(result.Err.Error()).To(ContainSubstring("unimplemented instruction: pc = 0x400000"))
		})
	})

	Describe("Reset", func() {
		It("should restore registers and memory but keep the program", func() {
			load(insts.EncodeADDIU(2, 0, 5), insts.EncodeSW(2, 28, 0), insts.EncodeHalt())
			run()

			e.RegFile().PC = emu.TextBase
			e.Reset()

			Expect(e.RegFile().ReadReg(2)).To(BeZero())
			Expect(e.InstructionCount()).To(BeZero())
			value, _ := e.Memory().LoadWord(emu.InitialGP)
			Expect(value).To(BeZero())

			Expect(run().Halted).To(BeTrue())
			Expect(e.RegFile().ReadReg(2)).To(Equal(uint32(5)))
		})
	})
})
