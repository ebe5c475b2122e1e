package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
	"github.com/sarchlab/mipsim/loader"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			decoder := insts.NewDecoder()
			for i, word := range prog.Words {
				addr := emu.TextBase + uint32(i)*4
				marker := "  "
				if addr == prog.Entry {
					marker = "> "
				}
				_, _ = fmt.Fprintf(out, "%s0x%08x:  %08x  %s\n", marker, addr, word, decoder.Decode(word))
			}
			return nil
		},
	}
}
