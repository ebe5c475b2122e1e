package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/loader"
	"github.com/sarchlab/mipsim/timing/core"
	"github.com/sarchlab/mipsim/timing/latency"
)

// Prompt modes for the read_int trap.
const (
	promptAuto   = "auto"
	promptAlways = "always"
	promptNever  = "never"
)

type runOptions struct {
	trace           bool
	maxInstructions uint64
	prompt          string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Run a program image and report its cycle estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log every retired instruction")
	cmd.Flags().Uint64Var(&opts.maxInstructions, "max-instructions", 0,
		"stop after this many instructions (0 means no limit)")
	cmd.Flags().StringVar(&opts.prompt, "prompt", promptAuto,
		"read_int prompt: auto (only on a terminal), always or never")

	return cmd
}

func runImage(cmd *cobra.Command, root *rootOptions, opts *runOptions, path string) error {
	config, err := root.timingConfig()
	if err != nil {
		return err
	}

	prompt, err := promptEnabled(opts.prompt, cmd.InOrStdin())
	if err != nil {
		return err
	}

	prog, err := loader.Load(path)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"image": path,
		"words": len(prog.Words),
		"entry": fmt.Sprintf("0x%x", prog.Entry),
	}).Debug("loaded image")

	out := cmd.OutOrStdout()
	c := core.NewCore(
		core.WithLatencyTable(latency.NewTableWithConfig(config)),
		core.WithMaxInstructions(opts.maxInstructions),
		core.WithEmulatorOptions(
			emu.WithStdin(cmd.InOrStdin()),
			emu.WithStdout(out),
			emu.WithPrompt(prompt),
		),
	)
	c.LoadProgram(prog.Entry, prog.Words)

	if opts.trace {
		logrus.SetLevel(logrus.DebugLevel)
		c.AcceptHook(newRetireTracer(logrus.StandardLogger()))
	}

	_, _ = fmt.Fprintf(out, "running %s\n\n", path)

	result, runErr := c.Run()
	writeReport(out, result, config)

	return runErr
}

// promptEnabled decides whether read_int writes its prompt.
func promptEnabled(mode string, in io.Reader) (bool, error) {
	switch mode {
	case promptAlways:
		return true, nil
	case promptNever:
		return false, nil
	case promptAuto:
		f, ok := in.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --prompt %q: want %s, %s or %s",
			mode, promptAuto, promptAlways, promptNever)
	}
}
