package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/timing/latency"
	"github.com/sarchlab/mipsim/timing/pipeline"
)

var _ = Describe("HazardTracker", func() {
	var tracker *pipeline.HazardTracker

	BeforeEach(func() {
		tracker = pipeline.NewHazardTracker()
	})

	Describe("NewHazardTracker", func() {
		It("should start with every slot empty", func() {
			for i := 0; i < pipeline.Depth; i++ {
				Expect(tracker.Slot(i)).To(Equal(pipeline.Slot{Dest: latency.NoReg}))
			}
		})
	})

	Describe("Advance", func() {
		It("should place the new entry at slot 0", func() {
			tracker.Advance(5, 4)

			Expect(tracker.Slot(0)).To(Equal(pipeline.Slot{Dest: 5, Cycles: 4}))
		})

		It("should age and shift older entries", func() {
			tracker.Advance(5, 4)
			tracker.Advance(6, 6)

			Expect(tracker.Slot(0)).To(Equal(pipeline.Slot{Dest: 6, Cycles: 6}))
			Expect(tracker.Slot(1)).To(Equal(pipeline.Slot{Dest: 5, Cycles: 3}))
		})

		It("should floor remaining cycles at zero", func() {
			tracker.Advance(5, 1)
			tracker.Advance(latency.NoReg, 0)
			tracker.Advance(latency.NoReg, 0)

			Expect(tracker.Slot(2)).To(Equal(pipeline.Slot{Dest: 5, Cycles: 0}))
		})

		It("should discard the oldest entry after Depth advances", func() {
			tracker.Advance(5, 7)
			for i := 0; i < pipeline.Depth-1; i++ {
				tracker.Advance(latency.NoReg, 0)
			}
			Expect(tracker.Slot(pipeline.Depth - 1).Dest).To(Equal(uint8(5)))

			tracker.Advance(latency.NoReg, 0)
			for i := 0; i < pipeline.Depth; i++ {
				Expect(tracker.Slot(i).Dest).To(Equal(latency.NoReg))
			}
		})
	})

	Describe("CheckDependency", func() {
		It("should report no stall when nothing is pending", func() {
			Expect(tracker.CheckDependency(5, 3)).To(BeZero())
		})

		It("should report the deficit for a young writer", func() {
			tracker.Advance(5, 6)

			Expect(tracker.CheckDependency(5, 3)).To(Equal(uint64(3)))
		})

		It("should report no stall once the value is available", func() {
			tracker.Advance(5, 4)
			tracker.Advance(latency.NoReg, 0)

			Expect(tracker.CheckDependency(5, 3)).To(BeZero())
		})

		It("should let the youngest writer shadow older ones", func() {
			tracker.Advance(5, 7)
			tracker.Advance(5, 4)

			// Slot 1 still needs 6 cycles, but slot 0 is the live writer.
			Expect(tracker.CheckDependency(5, 3)).To(Equal(uint64(1)))
		})

		It("should never match the empty sentinel", func() {
			tracker.Advance(latency.NoReg, 7)

			Expect(tracker.CheckDependency(latency.NoReg, 0)).To(BeZero())
		})

		It("should ignore other registers", func() {
			tracker.Advance(5, 6)

			Expect(tracker.CheckDependency(6, 3)).To(BeZero())
		})
	})

	Describe("Stall", func() {
		It("should insert empty entries and age pending writes", func() {
			tracker.Advance(5, 6)
			tracker.Stall(3)

			Expect(tracker.Slot(0).Dest).To(Equal(latency.NoReg))
			Expect(tracker.Slot(3)).To(Equal(pipeline.Slot{Dest: 5, Cycles: 3}))
			Expect(tracker.CheckDependency(5, 3)).To(BeZero())
		})

		It("should do nothing for zero", func() {
			tracker.Advance(5, 6)
			tracker.Stall(0)

			Expect(tracker.Slot(0)).To(Equal(pipeline.Slot{Dest: 5, Cycles: 6}))
		})
	})

	Describe("Reset", func() {
		It("should clear pending writes", func() {
			tracker.Advance(5, 6)
			tracker.Reset()

			Expect(tracker.CheckDependency(5, 0)).To(BeZero())
		})
	})
})
