// Command mipsim runs MIPS program images on a functional simulator and
// estimates their cycle count on a 5-stage in-order pipeline.
//
// Usage:
//
//	mipsim run [flags] <image>
//	mipsim bench [flags]
//	mipsim disasm <image>
//	mipsim config [flags]
//
// An image is a big-endian word stream: instruction count, entry PC, then
// the instruction words.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipsim/emu"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logrus.SetOutput(stderr)

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		logError(err)
		return 1
	}
	return 0
}

// logError logs err once, with kind and pc fields for simulation faults.
func logError(err error) {
	var simErr *emu.Error
	if !errors.As(err, &simErr) {
		logrus.Error(err)
		return
	}

	fields := logrus.Fields{
		"kind": simErr.Kind.String(),
		"pc":   fmt.Sprintf("0x%x", simErr.PC),
	}
	if simErr.Kind == emu.KindDataAccess {
		fields["addr"] = fmt.Sprintf("0x%x", simErr.Addr)
	}
	logrus.WithFields(fields).Error(simErr.Error())
}
