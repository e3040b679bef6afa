package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
)

// Listing renders instructions in program order. Code labels from symbols
// are printed on their own line in front of the instruction they name.
// symbols may be nil.
func Listing(instructions []cpu.Instruction, symbols *assembler.SymbolTable) string {
	labels := make(map[int][]string)
	if symbols != nil {
		for _, s := range symbols.Symbols(assembler.SymbolCode) {
			labels[s.Address] = append(labels[s.Address], s.Name)
		}
	}

	var b strings.Builder
	for i, inst := range instructions {
		for _, name := range labels[i] {
			fmt.Fprintf(&b, "%s:\n", name)
		}
		fmt.Fprintf(&b, "\t%04d  %-32s ; line %d\n", i, inst.String(), inst.Line)
	}
	return b.String()
}

// Program renders a full listing: segment markers, code, data labels and a
// dump of the data image.
func Program(p assembler.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "; text segment line %s, data segment line %s\n", marker(p.TextStart), marker(p.DataStart))
	b.WriteString(".text\n")
	b.WriteString(Listing(p.Instructions, p.Symbols))

	fmt.Fprintf(&b, ".data ; %d bytes\n", p.DataEnd)
	if p.Symbols != nil {
		for _, s := range p.Symbols.Symbols(assembler.SymbolData) {
			fmt.Fprintf(&b, "%s: %08x\n", s.Name, s.Address)
		}
	}
	b.WriteString(DumpMemory(p.Data))
	return b.String()
}

func marker(line int) string {
	if line < 0 {
		return "unset"
	}
	return fmt.Sprint(line)
}
