package assembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Urethramancer/mips/assembler"
)

const treeJSON = `{
  "construct": "TEXTDECL",
  "line": 3,
  "children": [
    {"kind": "terminal", "construct": "LABEL", "line": 3, "value": "main"},
    {
      "construct": "INSTRUCTION",
      "line": 3,
      "children": [
        {
          "construct": "TWOOP",
          "line": 3,
          "children": [
            {"construct": "OPCODE", "line": 3, "value": "lw"},
            {"construct": "REGISTER", "line": 3, "value": "t0"},
            {"construct": "OPERAND", "line": 3, "value": [4, "sp"]}
          ]
        }
      ]
    }
  ]
}`

func TestReadTree(t *testing.T) {
	root, err := assembler.ReadTree(strings.NewReader(treeJSON))
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if root.Kind != assembler.NonTerminal || root.Construct != assembler.NodeTextDecl {
		t.Fatalf("root = %v %v", root.Kind, root.Construct)
	}
	operand := root.Child(1).Child(0).Child(2)
	if operand.Value.String() != "4#sp" {
		t.Errorf("operand value = %q", operand.Value)
	}

	symbols := assembler.NewSymbolTable()
	g := assembler.New(symbols)
	if err := g.Generate(root); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(g.Instructions()) != 1 || g.Instructions()[0].String() != "lw $t0, 4($sp)" {
		t.Errorf("instructions = %v", g.Instructions())
	}
	if addr, ok := symbols.Lookup("main"); !ok || addr != 0 {
		t.Errorf("main = %d, %v", addr, ok)
	}
}

func TestWriteTreeRoundTrip(t *testing.T) {
	root := assembler.Branch(assembler.NodeDataDecl, 2,
		assembler.Leaf(assembler.NodeLabel, 2, "x"),
		assembler.Leaf(assembler.NodeStorage, 2, "word"),
		assembler.Leaf(assembler.NodeOther, 2, "10"),
	)
	var buf bytes.Buffer
	if err := assembler.WriteTree(&buf, root); err != nil {
		t.Fatal(err)
	}
	back, err := assembler.ReadTree(&buf)
	if err != nil {
		t.Fatalf("ReadTree: %v\n%s", err, buf.String())
	}
	if back.Construct != assembler.NodeDataDecl || len(back.Children) != 3 || back.Child(2).Value.String() != "10" {
		t.Errorf("round trip lost data: %+v", back)
	}
	if back.Child(0).Kind != assembler.Terminal {
		t.Errorf("leaf kind = %v", back.Child(0).Kind)
	}
}

func TestReadTreeErrors(t *testing.T) {
	for _, in := range []string{
		`{"construct": "EXPR", "value": 1.5}`,
		`{"construct": "EXPR", "bogus": true}`,
		`not json`,
	} {
		if _, err := assembler.ReadTree(strings.NewReader(in)); err == nil {
			t.Errorf("ReadTree(%s) succeeded", in)
		}
	}
}
