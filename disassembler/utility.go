package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/mips/cpu"
)

const bytesPerRow = 16

// DumpMemory renders a data image as rows of 16 bytes grouped into
// big-endian words, followed by the printable characters.
func DumpMemory(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += bytesPerRow {
		end := min(off+bytesPerRow, len(data))
		row := data[off:end]

		fmt.Fprintf(&b, "%08x ", off)
		words := cpu.BytesToWords(row)
		for i, w := range words {
			// Only print the bytes of the last word that exist.
			n := min(4, len(row)-i*4)
			fmt.Fprintf(&b, " %0*x", n*2, w>>(uint(4-n)*8))
		}
		pad := (bytesPerRow - len(row)) * 2
		pad += (bytesPerRow/4 - len(words))
		b.WriteString(strings.Repeat(" ", pad))
		fmt.Fprintf(&b, "  |%s|\n", printable(row))
	}
	return b.String()
}

func printable(row []byte) string {
	out := make([]byte, len(row))
	for i, c := range row {
		if isPrintable(c) {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}
