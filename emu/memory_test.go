package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/emu"
)

var _ = Describe("Memory", func() {
	var memory *emu.Memory

	BeforeEach(func() {
		memory = emu.NewMemory()
	})

	It("should span DataSize bytes from DataBase", func() {
		Expect(memory.Base()).To(Equal(uint32(0x10000000)))
		Expect(memory.Size()).To(Equal(uint32(1048576)))
	})

	It("should start zeroed", func() {
		value, err := memory.LoadWord(emu.DataBase)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(BeZero())
	})

	It("should read back a stored word", func() {
		Expect(memory.StoreWord(0xDEADBEEF, 0x10000040)).To(Succeed())

		value, err := memory.LoadWord(0x10000040)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal(uint32(0xDEADBEEF)))
	})

	It("should accept the last word of the segment", func() {
		last := emu.DataBase + emu.DataSize - 4
		Expect(memory.StoreWord(7, last)).To(Succeed())
	})

	DescribeTable("rejected addresses",
		func(addr uint32, msg string) {
			_, err := memory.LoadWord(addr)
			Expect(err).To(HaveOccurred())
			Expect(emu.KindOf(err)).To(Equal(emu.KindDataAccess))
			Expect(err.Error()).To(ContainSubstring(msg))

			err = memory.StoreWord(1, addr)
			Expect(emu.KindOf(err)).To(Equal(emu.KindDataAccess))
		},
		Entry("odd address", uint32(0x10000001), "unaligned"),
		Entry("half-word aligned address", uint32(0x10000002), "unaligned"),
		Entry("below the segment", uint32(0x0FFFFFFC), "out of range"),
		Entry("one past the end", emu.DataBase+emu.DataSize, "out of range"),
	)

	It("should leave memory untouched after a rejected store", func() {
		Expect(memory.StoreWord(5, 0x10000002)).NotTo(Succeed())

		value, err := memory.LoadWord(0x10000000)
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(BeZero())
	})
})

var _ = Describe("InstructionMemory", func() {
	var imem *emu.InstructionMemory

	BeforeEach(func() {
		imem = emu.NewInstructionMemory(emu.TextBase, []uint32{0x11, 0x22, 0x33})
	})

	It("should fetch words relative to the text base", func() {
		word, err := imem.Fetch(emu.TextBase + 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(word).To(Equal(uint32(0x33)))
		Expect(imem.Len()).To(Equal(3))
	})

	It("should reject a PC past the image", func() {
		_, err := imem.Fetch(emu.TextBase + 12)
		Expect(emu.KindOf(err)).To(Equal(emu.KindFetchRange))
	})

	It("should reject a PC below the text base", func() {
		_, err := imem.Fetch(emu.TextBase - 4)
		Expect(emu.KindOf(err)).To(Equal(emu.KindFetchRange))
	})
})
