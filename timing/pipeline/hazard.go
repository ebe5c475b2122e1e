package pipeline

import "github.com/sarchlab/mipsim/timing/latency"

// Depth is the number of in-flight writes the tracker remembers. It exceeds
// the longest modeled result latency, so the entry falling off the end has
// always completed.
const Depth = 8

// Slot is one in-flight write.
type Slot struct {
	// Dest is the register awaiting the write, or latency.NoReg.
	Dest uint8
	// Cycles is the number of stages left before the value is visible.
	Cycles uint64
}

// HazardTracker is a fixed-depth shift register of pending register writes.
// Slot 0 always holds the most recently issued instruction; slot i is i
// issue slots older.
type HazardTracker struct {
	slots [Depth]Slot
}

// NewHazardTracker creates an empty hazard tracker.
func NewHazardTracker() *HazardTracker {
	h := &HazardTracker{}
	h.Reset()
	return h
}

// Reset empties every slot.
func (h *HazardTracker) Reset() {
	for i := range h.slots {
		h.slots[i] = Slot{Dest: latency.NoReg}
	}
}

// Slot returns the entry i issue slots behind the youngest.
func (h *HazardTracker) Slot(i int) Slot {
	return h.slots[i]
}

// Advance ages every entry by one stage, shifts them one slot older, and
// records dest as the youngest entry, available in availableInStage stages.
func (h *HazardTracker) Advance(dest uint8, availableInStage uint64) {
	for i := Depth - 1; i > 0; i-- {
		prev := h.slots[i-1]
		if prev.Cycles > 0 {
			prev.Cycles--
		}
		h.slots[i] = prev
	}
	h.slots[0] = Slot{Dest: dest, Cycles: availableInStage}
}

// CheckDependency returns the number of stall cycles a read of src at
// neededAtStage must wait for. Only the youngest pending writer of src is
// considered.
func (h *HazardTracker) CheckDependency(src uint8, neededAtStage uint64) uint64 {
	if src == latency.NoReg {
		return 0
	}

	for _, s := range h.slots {
		if s.Dest != src {
			continue
		}
		if s.Cycles > neededAtStage {
			return s.Cycles - neededAtStage
		}
		return 0
	}

	return 0
}

// Stall inserts n bubbles.
func (h *HazardTracker) Stall(n uint64) {
	for i := uint64(0); i < n; i++ {
		h.Advance(latency.NoReg, 0)
	}
}
