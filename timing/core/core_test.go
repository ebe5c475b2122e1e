package core_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
	"github.com/sarchlab/mipsim/timing/core"
	"github.com/sarchlab/mipsim/timing/latency"
)

type retireRecorder struct {
	records []core.RetireRecord
}

func (r *retireRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosRetire {
		return
	}
	r.records = append(r.records, ctx.Item.(core.RetireRecord))
}

var _ = Describe("Core", func() {
	var (
		c      *core.Core
		stdout *bytes.Buffer
	)

	BeforeEach(func() {
		stdout = &bytes.Buffer{}
		c = core.NewCore(core.WithEmulatorOptions(
			emu.WithStdout(stdout),
			emu.WithStdin(bytes.NewBufferString("")),
			emu.WithPrompt(false),
		))
	})

	load := func(words ...uint32) {
		c.LoadProgram(emu.TextBase, words)
	}

	It("should create a core with emulator and pipeline", func() {
		Expect(c.Emulator).NotTo(BeNil())
		Expect(c.Pipeline).NotTo(BeNil())
		Expect(c.Halted()).To(BeFalse())
	})

	It("should charge one bubble to a back-to-back dependency", func() {
		load(
			insts.EncodeADDIU(2, 0, 1),
			insts.EncodeADDIU(3, 0, 2),
			insts.EncodeADDU(4, 2, 3),
			insts.EncodeHalt(),
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(c.Halted()).To(BeTrue())
		Expect(result.Stats.Instructions).To(Equal(uint64(4)))
		Expect(result.Stats.Bubbles).To(Equal(uint64(1)))
		Expect(result.Stats.Flushes).To(BeZero())
		Expect(result.Stats.Cycles()).To(Equal(uint64(4 + 7 + 1)))
		Expect(result.PC).To(Equal(emu.TextBase + 16))
		Expect(c.Emulator.RegFile().ReadReg(4)).To(Equal(uint32(3)))
	})

	It("should charge three bubbles when a branch uses a fresh load", func() {
		load(
			insts.EncodeLW(2, 28, 0),
			insts.EncodeBEQ(2, 0, 0),
			insts.EncodeHalt(),
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Bubbles).To(Equal(uint64(3)))
		// beq $2, $0 is taken since memory is zero; offset 0 lands on halt.
		Expect(result.Stats.Flushes).To(Equal(uint64(2)))
	})

	It("should not stall a load use separated by three instructions", func() {
		load(
			insts.EncodeLW(2, 28, 0),
			insts.EncodeADDIU(8, 0, 1),
			insts.EncodeADDIU(9, 0, 1),
			insts.EncodeADDIU(10, 0, 1),
			insts.EncodeBNE(2, 0, 0),
			insts.EncodeHalt(),
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Bubbles).To(BeZero())
		Expect(result.Stats.Flushes).To(BeZero())
	})

	It("should charge flushes to every taken branch of a loop", func() {
		load(
			insts.EncodeADDIU(2, 0, 3),  // 0
			insts.EncodeADDIU(2, 2, -1), // 4: loop
			insts.EncodeBNE(2, 0, -2),   // 8
			insts.EncodeHalt(),          // 12
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Instructions).To(Equal(uint64(8)))
		Expect(result.Stats.Bubbles).To(Equal(uint64(4)))
		Expect(result.Stats.Flushes).To(Equal(uint64(4)))
		Expect(result.Stats.Cycles()).To(Equal(uint64(8 + 7 + 4 + 4)))
	})

	It("should add 5 and 7 with a bubble on the dependent addu", func() {
		load(
			insts.EncodeADDIU(2, 0, 5),
			insts.EncodeADDIU(3, 0, 7),
			insts.EncodeADDU(4, 2, 3),
			insts.EncodeHalt(),
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Bubbles).To(BeNumerically(">=", 1))
		Expect(c.Emulator.RegFile().ReadReg(4)).To(Equal(uint32(12)))
	})

	It("should charge more bubbles to a load used at once than to a padded one", func() {
		load(insts.EncodeLW(2, 28, 0), insts.EncodeBNE(2, 0, 0), insts.EncodeHalt())
		immediate, err := c.Run()
		Expect(err).NotTo(HaveOccurred())

		c = core.NewCore()
		c.LoadProgram(emu.TextBase, []uint32{
			insts.EncodeLW(2, 28, 0),
			insts.EncodeADDIU(8, 0, 1),
			insts.EncodeADDIU(9, 0, 1),
			insts.EncodeADDIU(10, 0, 1),
			insts.EncodeBNE(2, 0, 0),
			insts.EncodeHalt(),
		})
		padded, err := c.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(immediate.Stats.Bubbles).To(BeNumerically(">", padded.Stats.Bubbles))
	})

	It("should count no flush for a straight-line store and halt", func() {
		load(insts.EncodeADDIU(2, 0, 31), insts.EncodeSW(2, 28, 0), insts.EncodeHalt())

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Flushes).To(BeZero())
		Expect(result.Stats.Cycles()).To(Equal(uint64(3 + 7)))
		value, err := c.Emulator.Memory().LoadWord(emu.InitialGP)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(uint32(31)))
	})

	It("should charge flushes for call and return", func() {
		load(
			insts.EncodeJAL(emu.TextBase+8),
			insts.EncodeHalt(),
			insts.EncodeJR(31),
		)

		result, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Stats.Instructions).To(Equal(uint64(3)))
		Expect(result.Stats.Flushes).To(Equal(uint64(4)))
	})

	It("should write console output", func() {
		load(insts.EncodeADDIU(4, 0, 9), insts.EncodeTrap(insts.TrapPrintInt, 4), insts.EncodeHalt())

		_, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(stdout.String()).To(Equal(" 9 "))
	})

	Context("when an instruction faults", func() {
		It("should stop at division by zero without retiring it", func() {
			load(insts.EncodeADDIU(1, 0, 8), insts.EncodeDIV(1, 0), insts.EncodeHalt())

			result, err := c.Run()

			Expect(emu.KindOf(err)).To(Equal(emu.KindArithmetic))
			Expect(result.Stats.Instructions).To(Equal(uint64(1)))
			Expect(result.PC).To(Equal(emu.TextBase + 4))
			Expect(c.Halted()).To(BeFalse())
		})

		It("should stop when the PC runs off the image", func() {
			load(insts.EncodeADDIU(1, 0, 8))

			result, err := c.Run()

			Expect(emu.KindOf(err)).To(Equal(emu.KindFetchRange))
			Expect(result.Stats.Instructions).To(Equal(uint64(1)))
		})

		It("should stop when read_int has no input", func() {
			load(insts.EncodeTrap(insts.TrapReadInt, 4), insts.EncodeHalt())

			_, err := c.Run()

			Expect(emu.KindOf(err)).To(Equal(emu.KindTrapIO))
		})
	})

	Context("with an instruction limit", func() {
		It("should stop an endless loop", func() {
			c = core.NewCore(core.WithMaxInstructions(10))
			c.LoadProgram(emu.TextBase, []uint32{insts.EncodeJ26(emu.TextBase)})

			result, err := c.Run()

			Expect(emu.KindOf(err)).To(Equal(emu.KindLimit))
			Expect(result.Stats.Instructions).To(Equal(uint64(10)))
			Expect(result.Stats.Flushes).To(Equal(uint64(20)))
		})
	})

	Context("with a custom latency table", func() {
		It("should use the configured penalties", func() {
			config := latency.DefaultTimingConfig()
			config.FlushPenalty = 1
			config.PipelineFill = 4
			c = core.NewCore(core.WithLatencyTable(latency.NewTableWithConfig(config)))
			c.LoadProgram(emu.TextBase, []uint32{insts.EncodeJ26(emu.TextBase + 4), insts.EncodeHalt()})

			result, err := c.Run()

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Stats.Flushes).To(Equal(uint64(1)))
			Expect(result.Stats.Cycles()).To(Equal(uint64(2 + 4 + 1)))
		})
	})

	Describe("hooks", func() {
		It("should report every retired instruction", func() {
			recorder := &retireRecorder{}
			c.AcceptHook(recorder)
			load(
				insts.EncodeADDIU(2, 0, 1),
				insts.EncodeADDIU(3, 0, 2),
				insts.EncodeADDU(4, 2, 3),
				insts.EncodeJ26(emu.TextBase+16),
				insts.EncodeHalt(),
			)

			_, err := c.Run()

			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.records).To(HaveLen(5))
			Expect(recorder.records[2].PC).To(Equal(emu.TextBase + 8))
			Expect(recorder.records[2].Inst.Op).To(Equal(insts.OpADDU))
			Expect(recorder.records[2].Bubbles).To(Equal(uint64(1)))
			Expect(recorder.records[3].Flushed).To(Equal(uint64(2)))
			Expect(recorder.records[4].Inst.Op).To(Equal(insts.OpTRAP))
		})
	})

	Describe("Reset", func() {
		It("should reproduce the same run", func() {
			load(
				insts.EncodeADDIU(2, 0, 3),
				insts.EncodeADDIU(2, 2, -1),
				insts.EncodeBNE(2, 0, -2),
				insts.EncodeHalt(),
			)
			first, err := c.Run()
			Expect(err).NotTo(HaveOccurred())

			c.Reset()
			Expect(c.Halted()).To(BeFalse())
			Expect(c.PC()).To(Equal(emu.TextBase))

			second, err := c.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})
})
