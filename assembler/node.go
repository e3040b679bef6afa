package assembler

import (
	"fmt"
	"strings"
)

// NodeKind separates grammar leaves from interior nodes.
type NodeKind int

const (
	// Terminal nodes are leaves carrying a source token.
	Terminal NodeKind = iota
	// NonTerminal nodes are grammar productions.
	NonTerminal
)

func (k NodeKind) String() string {
	if k == NonTerminal {
		return "nonterminal"
	}
	return "terminal"
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "terminal":
		*k = Terminal
	case "nonterminal":
		*k = NonTerminal
	default:
		return fmt.Errorf("unknown node kind %q", b)
	}
	return nil
}

// Construct is the grammar tag of a node. The child order of each
// construct is fixed by the grammar.
type Construct int

const (
	// NodeOther is any tag the generator does not act on.
	NodeOther Construct = iota
	NodeProgram
	NodeSegment
	NodeTextSeg
	NodeDataSeg
	NodeTextDecl
	NodeDataDecl
	NodeInstruction
	NodeLabel
	NodeOpcode
	NodeRegister
	NodeOperand
	NodeStorage
	NodeString
	NodeTerm
	NodeExpr
	NodeFactor
	NodeZeroOp
	NodeOneOp
	NodeTwoOp
	NodeThreeOp
	NodeFourOp

	constructCount
)

var constructNames = [constructCount]string{
	NodeOther:       "OTHER",
	NodeProgram:     "PROGRAM",
	NodeSegment:     "SEGMENT",
	NodeTextSeg:     "TEXTSEG",
	NodeDataSeg:     "DATASEG",
	NodeTextDecl:    "TEXTDECL",
	NodeDataDecl:    "DATADECL",
	NodeInstruction: "INSTRUCTION",
	NodeLabel:       "LABEL",
	NodeOpcode:      "OPCODE",
	NodeRegister:    "REGISTER",
	NodeOperand:     "OPERAND",
	NodeStorage:     "STORAGE",
	NodeString:      "STRING",
	NodeTerm:        "TERM",
	NodeExpr:        "EXPR",
	NodeFactor:      "FACTOR",
	NodeZeroOp:      "ZEROOP",
	NodeOneOp:       "ONEOP",
	NodeTwoOp:       "TWOOP",
	NodeThreeOp:     "THREEOP",
	NodeFourOp:      "FOUROP",
}

func (c Construct) String() string {
	if c < 0 || c >= constructCount {
		return fmt.Sprintf("CONSTRUCT(%d)", int(c))
	}
	return constructNames[c]
}

// ParseConstruct maps a tag name to its Construct, ignoring case.
// Unknown names map to NodeOther.
func ParseConstruct(s string) Construct {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, name := range constructNames {
		if name == s {
			return Construct(c)
		}
	}
	return NodeOther
}

// MarshalText implements encoding.TextMarshaler.
func (c Construct) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Construct) UnmarshalText(b []byte) error {
	*c = ParseConstruct(string(b))
	return nil
}

// operandCount is the number of operands an instruction construct carries.
func (c Construct) operandCount() (int, bool) {
	switch c {
	case NodeZeroOp:
		return 0, true
	case NodeOneOp:
		return 1, true
	case NodeTwoOp:
		return 2, true
	case NodeThreeOp:
		return 3, true
	case NodeFourOp:
		return 4, true
	}
	return 0, false
}

// Node is one element of the syntax tree handed over by the parser. The
// generator rewrites Value in place while walking.
type Node struct {
	Kind      NodeKind  `json:"kind"`
	Construct Construct `json:"construct"`
	Line      int       `json:"line,omitempty"`
	Value     Value     `json:"value,omitzero"`
	Children  []*Node   `json:"children,omitempty"`
}

// Leaf creates a terminal node holding a raw token.
func Leaf(c Construct, line int, token string) *Node {
	return &Node{Kind: Terminal, Construct: c, Line: line, Value: TokenValue(token)}
}

// Branch creates a non-terminal node.
func Branch(c Construct, line int, children ...*Node) *Node {
	return &Node{Kind: NonTerminal, Construct: c, Line: line, Children: children}
}

// Child returns the i'th child, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}
