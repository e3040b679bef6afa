package main

import (
	"fmt"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/disassembler"
)

// mipsgen reads a syntax tree dumped by the parser as JSON, generates code
// for it and prints the result.
func main() {
	opt := arg.New("mipsgen")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Pretty-print the generated program structure.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "m", "memory", "Print only a hex dump of the data image.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "t", "trace", "Trace generation to stderr.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the raw data image to this file.", "", false, arg.VarString, nil)
	opt.SetPositional("TREE", "JSON syntax tree to generate code for.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}

	tree, err := assembler.ReadTreeFile(opt.GetPosString("TREE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading tree: %v\n", err)
		os.Exit(1)
	}

	symbols := assembler.NewSymbolTable()
	gen := assembler.New(symbols)
	if opt.GetBool("trace") {
		gen.Trace = os.Stderr
	}
	if err := gen.Generate(tree); err != nil {
		fmt.Fprintf(os.Stderr, "Code generation failed: %v\n", err)
		os.Exit(1)
	}
	prog := gen.Program()

	if out := opt.GetString("output"); out != "" {
		if err := os.WriteFile(out, prog.Data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Data image (%d bytes) written to %s\n", len(prog.Data), out)
	}

	switch {
	case opt.GetBool("dump"):
		pp.Println(prog)
	case opt.GetBool("memory"):
		fmt.Print(disassembler.DumpMemory(prog.Data))
	default:
		fmt.Print(disassembler.Program(prog))
	}
}
