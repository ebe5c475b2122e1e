// Package loader reads MIPS program images.
//
// An image is a sequence of big-endian 32-bit words: the instruction
// count, the entry PC, then count instruction words to be placed at the
// start of the text segment.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxWords bounds the instruction count accepted from an image header.
const MaxWords = 1 << 20

// Program represents a loaded image ready for execution.
type Program struct {
	// Entry is the address where execution should begin.
	Entry uint32
	// Words holds the instruction image, in address order.
	Words []uint32
}

// Load reads a program image from a file.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return prog, nil
}

// Read parses a program image from r.
func Read(r io.Reader) (*Program, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	count, entry := header[0], header[1]
	if count > MaxWords {
		return nil, fmt.Errorf("image too large: %d words (max %d)", count, MaxWords)
	}

	words := make([]uint32, count)
	if count == 0 {
		return &Program{Entry: entry, Words: words}, nil
	}
	if err := binary.Read(r, binary.BigEndian, words); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("truncated image: expected %d words: %w", count, err)
	}

	return &Program{Entry: entry, Words: words}, nil
}

// Write serializes prog in image format.
func Write(w io.Writer, prog *Program) error {
	header := [2]uint32{uint32(len(prog.Words)), prog.Entry}
	if err := binary.Write(w, binary.BigEndian, header); err != nil {
		return fmt.Errorf("failed to write image header: %w", err)
	}
	if len(prog.Words) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.BigEndian, prog.Words); err != nil {
		return fmt.Errorf("failed to write image words: %w", err)
	}
	return nil
}

// Save writes prog to a file.
func Save(path string, prog *Program) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := Write(f, prog); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
