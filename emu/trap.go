package emu

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sarchlab/mipsim/insts"
)

// ReadPrompt is written before the read_int trap waits for input.
const ReadPrompt = "\n? "

// TrapResult represents the result of a trap execution.
type TrapResult struct {
	// Halted is true if the trap ended the program.
	Halted bool
}

// TrapHandler is the interface for handling TRAP instructions.
type TrapHandler interface {
	// Handle executes the trap service selected by inst.Trap.
	// print_int reads inst.Rs; read_int writes inst.Rt.
	Handle(inst *insts.Instruction) (TrapResult, error)
}

// DefaultTrapHandler serves traps from a console reader and writer.
type DefaultTrapHandler struct {
	regFile *RegFile
	stdin   *bufio.Reader
	stdout  io.Writer
	prompt  bool
}

// NewDefaultTrapHandler creates a default trap handler. A nil stdin makes
// read_int fail with end of input.
func NewDefaultTrapHandler(regFile *RegFile, stdin io.Reader, stdout io.Writer) *DefaultTrapHandler {
	h := &DefaultTrapHandler{
		regFile: regFile,
		stdout:  stdout,
		prompt:  true,
	}
	h.SetStdin(stdin)
	return h
}

// SetStdin sets the input reader used by read_int.
func (h *DefaultTrapHandler) SetStdin(stdin io.Reader) {
	if stdin == nil {
		h.stdin = nil
		return
	}
	if br, ok := stdin.(*bufio.Reader); ok {
		h.stdin = br
		return
	}
	h.stdin = bufio.NewReader(stdin)
}

// SetPrompt controls whether read_int writes ReadPrompt first.
func (h *DefaultTrapHandler) SetPrompt(prompt bool) {
	h.prompt = prompt
}

// Handle executes the trap service selected by inst.Trap.
func (h *DefaultTrapHandler) Handle(inst *insts.Instruction) (TrapResult, error) {
	switch inst.Trap {
	case insts.TrapPrintNewline:
		return TrapResult{}, h.write("\n")
	case insts.TrapPrintInt:
		return TrapResult{}, h.write(fmt.Sprintf(" %d ", h.regFile.ReadRegSigned(inst.Rs)))
	case insts.TrapReadInt:
		return TrapResult{}, h.handleReadInt(inst.Rt)
	case insts.TrapHalt:
		return TrapResult{Halted: true}, nil
	default:
		return TrapResult{}, &Error{Kind: KindUnsupported, Msg: "unimplemented trap"}
	}
}

func (h *DefaultTrapHandler) handleReadInt(rt uint8) error {
	if h.prompt {
		if err := h.write(ReadPrompt); err != nil {
			return err
		}
	}

	if h.stdin == nil {
		return &Error{Kind: KindTrapIO, Msg: "no console input", Err: io.EOF}
	}

	var value int32
	if _, err := fmt.Fscan(h.stdin, &value); err != nil {
		return &Error{Kind: KindTrapIO, Msg: "could not read integer", Err: err}
	}

	h.regFile.WriteReg(rt, uint32(value))
	return nil
}

func (h *DefaultTrapHandler) write(s string) error {
	if _, err := io.WriteString(h.stdout, s); err != nil {
		return &Error{Kind: KindTrapIO, Msg: "console write failed", Err: err}
	}
	return nil
}
