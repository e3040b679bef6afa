package assembler

import (
	"fmt"
	"io"

	"github.com/Urethramancer/mips/cpu"
)

// Generator holds the state of one code generation pass. It is not safe for
// concurrent use; run one pass at a time and Flush between programs.
type Generator struct {
	symbols      *SymbolTable
	memory       *cpu.Memory
	instructions []cpu.Instruction
	cursor       int
	textStart    int
	dataStart    int

	// Trace receives a line for every instruction, data write and symbol
	// when set.
	Trace io.Writer
}

// Program is a snapshot of everything a pass produced, for the loader.
type Program struct {
	Instructions []cpu.Instruction
	Symbols      *SymbolTable
	Data         []byte
	// DataEnd is the write cursor after the last declaration. It can be
	// past len(Data) when the image ends in reserved space.
	DataEnd   int
	TextStart int
	DataStart int
}

// New creates a Generator that records labels in symbols. A nil table gets
// a fresh one.
func New(symbols *SymbolTable) *Generator {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Generator{
		symbols:   symbols,
		memory:    cpu.NewMemory(cpu.DefaultMemorySize),
		textStart: -1,
		dataStart: -1,
	}
}

// Generate walks the tree depth first. Each node's children are generated
// and their values joined into the node's value, then the node's construct
// decides what happens to it. On error the pass must be discarded with Flush.
func (g *Generator) Generate(root *Node) error {
	if root == nil {
		return nil
	}
	for _, child := range root.Children {
		if child == nil {
			continue
		}
		if err := g.Generate(child); err != nil {
			return err
		}
		root.Value = Join(root.Value, child.Value)
	}

	if root.Kind != NonTerminal {
		return nil
	}
	if err := g.dispatch(root); err != nil {
		return fmt.Errorf("line %d: %w", root.Line, err)
	}
	return nil
}

func (g *Generator) dispatch(n *Node) error {
	switch n.Construct {
	case NodeTerm, NodeExpr:
		v, err := Fold(n.Value)
		if err != nil {
			return err
		}
		n.Value = v

	case NodeZeroOp, NodeOneOp, NodeTwoOp, NodeThreeOp, NodeFourOp:
		return g.emit(n)

	case NodeDataDecl:
		return g.loadMemory(n.Value)

	case NodeInstruction:
		if g.textStart < 0 {
			g.textStart = n.Line
		}

	case NodeTextDecl:
		// Post-order: the instruction this label belongs to was appended
		// while generating the children.
		if label := n.Child(0); label != nil && label.Construct == NodeLabel {
			g.define(label.Value.String(), len(g.instructions)-1, SymbolCode)
		}

	case NodeTextSeg:
		g.textStart = n.Line

	case NodeDataSeg:
		g.dataStart = n.Line
	}
	return nil
}

// emit builds the instruction for an operand-count construct. Child 0 is the
// opcode, the rest are operands in order.
func (g *Generator) emit(n *Node) error {
	count, _ := n.Construct.operandCount()
	if len(n.Children) < count+1 || n.Children[0] == nil {
		return fmt.Errorf("%w: %s needs %d children, has %d", ErrMalformedNode, n.Construct, count+1, len(n.Children))
	}

	opcode := n.Children[0]
	operands := make([]Value, count)
	for i := range operands {
		if c := n.Children[i+1]; c != nil {
			operands[i] = c.Value
		}
	}

	inst, err := Build(opcode.Line, opcode.Value.String(), operands...)
	if err != nil {
		return err
	}
	g.instructions = append(g.instructions, inst)
	g.tracef("inst %v: %v (line %v)\n", len(g.instructions)-1, inst.String(), inst.Line)
	return nil
}

func (g *Generator) define(name string, addr int, kind SymbolKind) {
	g.symbols.Define(name, addr, kind)
	g.tracef("symbol %v = %v (%v)\n", name, addr, kind.String())
}

// Flush clears the data image, instruction list, write cursor and segment
// markers. The symbol table is left alone; its owner resets it.
func (g *Generator) Flush() {
	g.memory.Reset()
	g.instructions = nil
	g.cursor = 0
	g.textStart = -1
	g.dataStart = -1
}

// Instructions returns the generated instructions in program order.
func (g *Generator) Instructions() []cpu.Instruction {
	return g.instructions
}

// Memory returns the data image.
func (g *Generator) Memory() *cpu.Memory {
	return g.memory
}

// Symbols returns the symbol table the generator writes to.
func (g *Generator) Symbols() *SymbolTable {
	return g.symbols
}

// DataEnd is the byte offset where the data segment ends.
func (g *Generator) DataEnd() int {
	return g.cursor
}

// TextStart is the source line of the text segment, or -1.
func (g *Generator) TextStart() int {
	return g.textStart
}

// DataStart is the source line of the data segment, or -1.
func (g *Generator) DataStart() int {
	return g.dataStart
}

// Program returns a copy of the current output.
func (g *Generator) Program() Program {
	insts := make([]cpu.Instruction, len(g.instructions))
	copy(insts, g.instructions)
	return Program{
		Instructions: insts,
		Symbols:      g.symbols,
		Data:         g.memory.Bytes(),
		DataEnd:      g.cursor,
		TextStart:    g.textStart,
		DataStart:    g.dataStart,
	}
}
