package emu

// Data and text segment layout.
const (
	// DataBase is the address of the first data word.
	DataBase uint32 = 0x10000000
	// DataSize is the size of the data segment in bytes.
	DataSize uint32 = 1048576
	// TextBase is the address of the first instruction word.
	TextBase uint32 = 0x00400000
)

// Memory is the flat, word-addressed data segment.
type Memory struct {
	base  uint32
	words []uint32
}

// NewMemory creates a zeroed data segment of DataSize bytes at DataBase.
func NewMemory() *Memory {
	return &Memory{
		base:  DataBase,
		words: make([]uint32, DataSize/4),
	}
}

// Base returns the address of the first data word.
func (m *Memory) Base() uint32 {
	return m.base
}

// Size returns the segment size in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.words)) * 4
}

// index validates addr and converts it to a word index.
func (m *Memory) index(addr uint32) (uint32, *Error) {
	if addr&3 != 0 {
		return 0, &Error{Kind: KindDataAccess, Addr: addr, Msg: "unaligned data access"}
	}
	offset := addr - m.base
	if offset >= m.Size() {
		return 0, &Error{Kind: KindDataAccess, Addr: addr, Msg: "data access out of range"}
	}
	return offset / 4, nil
}

// LoadWord reads the word at addr.
func (m *Memory) LoadWord(addr uint32) (uint32, error) {
	i, err := m.index(addr)
	if err != nil {
		return 0, err
	}
	return m.words[i], nil
}

// StoreWord writes value to the word at addr.
func (m *Memory) StoreWord(value, addr uint32) error {
	i, err := m.index(addr)
	if err != nil {
		return err
	}
	m.words[i] = value
	return nil
}

// InstructionMemory holds the loaded instruction image.
type InstructionMemory struct {
	base  uint32
	words []uint32
}

// NewInstructionMemory creates an instruction image whose first word sits
// at base.
func NewInstructionMemory(base uint32, words []uint32) *InstructionMemory {
	return &InstructionMemory{base: base, words: words}
}

// Len returns the number of instruction words in the image.
func (im *InstructionMemory) Len() int {
	return len(im.words)
}

// Fetch returns the instruction word at pc.
func (im *InstructionMemory) Fetch(pc uint32) (uint32, error) {
	i := (pc - im.base) >> 2
	if uint64(i) >= uint64(len(im.words)) {
		return 0, newError(KindFetchRange, pc, "instruction fetch out of range")
	}
	return im.words[i], nil
}
