package emu

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal simulation error.
type Kind uint8

// Error kinds. All of them end the run; none is retried.
const (
	KindFetchRange  Kind = iota + 1 // PC outside the instruction image
	KindDataAccess                  // unaligned or out-of-range load/store
	KindArithmetic                  // division by zero
	KindUnsupported                 // unimplemented opcode, funct or trap code
	KindTrapIO                      // console input could not be read as an integer
	KindLimit                       // instruction limit reached
)

func (k Kind) String() string {
	switch k {
	case KindFetchRange:
		return "fetch range"
	case KindDataAccess:
		return "data access"
	case KindArithmetic:
		return "arithmetic"
	case KindUnsupported:
		return "unsupported instruction"
	case KindTrapIO:
		return "trap i/o"
	case KindLimit:
		return "instruction limit"
	default:
		return "unknown"
	}
}

// Error is a fatal condition raised while executing an instruction.
type Error struct {
	Kind Kind
	// PC is the address of the instruction that raised the error.
	PC uint32
	// Addr is the offending data address for KindDataAccess.
	Addr uint32
	Msg  string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: pc = 0x%x", e.Msg, e.PC)
	if e.Kind == KindDataAccess {
		msg += fmt.Sprintf(", addr = 0x%x", e.Addr)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// KindOf returns the Kind of err if it wraps an *Error, otherwise 0.
func KindOf(err error) Kind {
	var simErr *Error
	if errors.As(err, &simErr) {
		return simErr.Kind
	}
	return 0
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, pc uint32, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, PC: pc, Msg: fmt.Sprintf(format, args...)}
}
