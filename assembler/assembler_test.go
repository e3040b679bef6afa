package assembler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
)

func leaf(c assembler.Construct, line int, token string) *assembler.Node {
	return assembler.Leaf(c, line, token)
}

func expr(line int, ts ...string) *assembler.Node {
	children := make([]*assembler.Node, len(ts))
	for i, s := range ts {
		children[i] = leaf(assembler.NodeOther, line, s)
	}
	return assembler.Branch(assembler.NodeExpr, line, children...)
}

func reg(line int, name string) *assembler.Node {
	return leaf(assembler.NodeRegister, line, name)
}

// inst wraps an operand-count construct in an INSTRUCTION node.
func inst(line int, c assembler.Construct, mnemonic string, operands ...*assembler.Node) *assembler.Node {
	children := append([]*assembler.Node{leaf(assembler.NodeOpcode, line, mnemonic)}, operands...)
	return assembler.Branch(assembler.NodeInstruction, line, assembler.Branch(c, line, children...))
}

// labelled wraps an instruction in a TEXTDECL with a leading label.
func labelled(line int, label string, instruction *assembler.Node) *assembler.Node {
	return assembler.Branch(assembler.NodeTextDecl, line, leaf(assembler.NodeLabel, line, label), instruction)
}

func plain(instruction *assembler.Node) *assembler.Node {
	return assembler.Branch(assembler.NodeTextDecl, instruction.Line, instruction)
}

// sampleProgram is:
//
//	.data
//	x: .word 10, 2*3+4
//	s: .asciiz "hi\n"
//	.text
//	main: lw t0, 4(sp)
//	      addi t1, t0, -8
//	loop: beq t0, t1, main
//	      ext t2, t1, 1, 3
//	      syscall
func sampleProgram() *assembler.Node {
	data := assembler.Branch(assembler.NodeDataSeg, 1,
		leaf(assembler.NodeOther, 1, ".data"),
		dataDecl(2, "x", "word", "10"),
		dataDecl(3, "s", "asciiz", `"hi\n"`),
	)
	// second value of x is an expression
	data.Children[1].Children = append(data.Children[1].Children, expr(2, "2", "*", "3", "+", "4"))

	text := assembler.Branch(assembler.NodeTextSeg, 4,
		leaf(assembler.NodeOther, 4, ".text"),
		labelled(5, "main", inst(5, assembler.NodeTwoOp, "lw", reg(5, "t0"),
			assembler.Branch(assembler.NodeOperand, 5, expr(5, "4"), reg(5, "sp")))),
		plain(inst(6, assembler.NodeThreeOp, "addi", reg(6, "t1"), reg(6, "t0"), expr(6, "-", "8"))),
		labelled(7, "loop", inst(7, assembler.NodeThreeOp, "beq", reg(7, "t0"), reg(7, "t1"), expr(7, "main"))),
		plain(inst(8, assembler.NodeFourOp, "ext", reg(8, "t2"), reg(8, "t1"), expr(8, "1"), expr(8, "3"))),
		plain(inst(9, assembler.NodeZeroOp, "syscall")),
	)
	return assembler.Branch(assembler.NodeProgram, 1, data, text)
}

func TestGenerateProgram(t *testing.T) {
	symbols := assembler.NewSymbolTable()
	g := assembler.New(symbols)
	if err := g.Generate(sampleProgram()); err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := []string{
		"lw $t0, 4($sp)",
		"addi $t1, $t0, -8",
		"beq $t0, $t1, main",
		"ext $t2, $t1, 1, 3",
		"syscall",
	}
	insts := g.Instructions()
	if len(insts) != len(want) {
		t.Fatalf("got %d instructions, want %d: %v", len(insts), len(want), insts)
	}
	for i, w := range want {
		if insts[i].String() != w {
			t.Errorf("instruction %d = %q, want %q", i, insts[i].String(), w)
		}
		if insts[i].Line != 5+i {
			t.Errorf("instruction %d line = %d, want %d", i, insts[i].Line, 5+i)
		}
	}

	if l, ok := insts[2].Label(); !ok || l != "main" {
		t.Errorf("beq target = %q, %v; labels stay unresolved", l, ok)
	}

	symbolWant := map[string]int{"x": 0, "s": 8, "main": 0, "loop": 2}
	for name, addr := range symbolWant {
		got, ok := symbols.Lookup(name)
		if !ok || got != addr {
			t.Errorf("symbol %s = %d, %v; want %d", name, got, ok, addr)
		}
	}

	image := []byte{0, 0, 0, 10, 0, 0, 0, 10, 'h', 'i', '\n', 0}
	if got := g.Memory().Bytes(); !bytes.Equal(got, image) {
		t.Errorf("image\nexpected: % X\ngot:      % X", image, got)
	}
	if g.DataEnd() != 12 {
		t.Errorf("data end = %d", g.DataEnd())
	}
	if g.DataStart() != 1 || g.TextStart() != 4 {
		t.Errorf("markers = data %d, text %d", g.DataStart(), g.TextStart())
	}

	p := g.Program()
	if len(p.Instructions) != 5 || p.DataEnd != 12 || !bytes.Equal(p.Data, image) || p.Symbols != symbols {
		t.Errorf("program snapshot: %+v", p)
	}
}

func TestTextDeclLabelIndex(t *testing.T) {
	for prior := 0; prior < 5; prior++ {
		var decls []*assembler.Node
		for i := 0; i < prior; i++ {
			decls = append(decls, plain(inst(i+1, assembler.NodeZeroOp, "nop")))
		}
		decls = append(decls, labelled(prior+1, "target", inst(prior+1, assembler.NodeOneOp, "jr", reg(prior+1, "ra"))))
		decls = append(decls, plain(inst(prior+2, assembler.NodeZeroOp, "nop")))

		symbols := assembler.NewSymbolTable()
		g := assembler.New(symbols)
		if err := g.Generate(assembler.Branch(assembler.NodeTextSeg, 1, decls...)); err != nil {
			t.Fatalf("[%d] generate: %v", prior, err)
		}
		addr, ok := symbols.Lookup("target")
		if !ok || addr != prior {
			t.Errorf("[%d prior] target = %d, %v; want %d", prior, addr, ok, prior)
		}
		if g.Instructions()[addr].Opcode != cpu.OpJR {
			t.Errorf("[%d prior] target points at %v", prior, g.Instructions()[addr])
		}
		sym, _ := symbols.Get("target")
		if sym.Kind != assembler.SymbolCode {
			t.Errorf("target kind = %v", sym.Kind)
		}
	}
}

func TestTextStartMarker(t *testing.T) {
	// Without a TEXTSEG node the first INSTRUCTION sets the marker.
	g := assembler.New(nil)
	root := assembler.Branch(assembler.NodeProgram, 1,
		plain(inst(3, assembler.NodeZeroOp, "nop")),
		plain(inst(4, assembler.NodeZeroOp, "nop")),
	)
	if err := g.Generate(root); err != nil {
		t.Fatal(err)
	}
	if g.TextStart() != 3 {
		t.Errorf("text start = %d, want 3", g.TextStart())
	}
	if g.DataStart() != -1 {
		t.Errorf("data start = %d, want -1", g.DataStart())
	}
}

func TestFlush(t *testing.T) {
	symbols := assembler.NewSymbolTable()
	g := assembler.New(symbols)
	if err := g.Generate(sampleProgram()); err != nil {
		t.Fatal(err)
	}

	g.Flush()
	if len(g.Instructions()) != 0 {
		t.Errorf("instructions after flush: %v", g.Instructions())
	}
	if g.Memory().Len() != 0 || g.DataEnd() != 0 {
		t.Errorf("memory after flush: %d bytes, cursor %d", g.Memory().Len(), g.DataEnd())
	}
	if g.TextStart() != -1 || g.DataStart() != -1 {
		t.Errorf("markers after flush: text %d, data %d", g.TextStart(), g.DataStart())
	}
	// The caller owns the symbol table.
	if symbols.Len() == 0 {
		t.Error("flush cleared the symbol table")
	}
	symbols.Reset()
	if symbols.Len() != 0 {
		t.Error("reset left symbols behind")
	}

	// A flushed generator starts from scratch.
	if err := g.Generate(assembler.Branch(assembler.NodeDataSeg, 1, dataDecl(1, "y", "byte", "5"))); err != nil {
		t.Fatal(err)
	}
	if got := g.Memory().Bytes(); !bytes.Equal(got, []byte{5}) {
		t.Errorf("image after flush and regenerate = % X", got)
	}
	if addr, _ := symbols.Lookup("y"); addr != 0 {
		t.Errorf("y = %d", addr)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		root *assembler.Node
		want error
	}{
		{"UnknownOpcode", inst(7, assembler.NodeZeroOp, "frob"), assembler.ErrUnknownOpcode},
		{"DivideByZero", inst(7, assembler.NodeOneOp, "b", expr(7, "6", "/", "0")), assembler.ErrDivideByZero},
		{"BadOffset", inst(7, assembler.NodeTwoOp, "lw", reg(7, "t0"),
			assembler.Branch(assembler.NodeOperand, 7, leaf(assembler.NodeOther, 7, "x"), reg(7, "sp"))), assembler.ErrBadOffset},
		{"BadBitField", inst(7, assembler.NodeFourOp, "ext", reg(7, "t0"), reg(7, "t1"), expr(7, "a"), expr(7, "1")), assembler.ErrBadInteger},
		{"UnknownStorage", dataDecl(7, "a", "float", "1"), assembler.ErrUnknownStorage},
		{"MissingChildren", assembler.Branch(assembler.NodeTwoOp, 7, leaf(assembler.NodeOpcode, 7, "add")), assembler.ErrMalformedNode},
	}
	for _, tc := range tests {
		g := assembler.New(nil)
		err := g.Generate(tc.root)
		if !errors.Is(err, tc.want) {
			t.Errorf("[%s] error = %v, want %v", tc.name, err, tc.want)
			continue
		}
		if !strings.Contains(err.Error(), "line 7") {
			t.Errorf("[%s] error %q does not name the line", tc.name, err)
		}
	}
}

func TestLabelFallback(t *testing.T) {
	// An operand that is neither a register nor a number becomes a label,
	// even when it looks like a broken number.
	g := assembler.New(nil)
	if err := g.Generate(inst(1, assembler.NodeTwoOp, "li", reg(1, "t0"), leaf(assembler.NodeOther, 1, "0x1G"))); err != nil {
		t.Fatal(err)
	}
	if l, ok := g.Instructions()[0].Label(); !ok || l != "0x1G" {
		t.Errorf("got %+v", g.Instructions()[0])
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	g := assembler.New(nil)
	g.Trace = &buf
	if err := g.Generate(sampleProgram()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"inst", "symbol", "data", "main", "asciiz"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace lacks %q:\n%s", want, out)
		}
	}
}
