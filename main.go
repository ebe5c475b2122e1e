// Package main provides the entry point for mipsim.
// Mipsim is a MIPS functional simulator with a 5-stage pipeline hazard
// model, built on Akita.
//
// For the full CLI, use: go run ./cmd/mipsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipsim - MIPS simulator with pipeline hazard estimates")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: mipsim <command> [flags]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run <image>   Run a program image and report cycles, bubbles and flushes")
	fmt.Println("  bench         Run the timing microbenchmarks")
	fmt.Println("  disasm <image> Disassemble a program image")
	fmt.Println("  config        Print or save the timing configuration")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipsim' instead.")
	}
}
