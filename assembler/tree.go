package assembler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadTree decodes a JSON syntax tree as written by WriteTree. A node with
// children is always treated as a non-terminal.
func ReadTree(r io.Reader) (*Node, error) {
	var root Node
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding syntax tree: %w", err)
	}
	normalize(&root)
	return &root, nil
}

// ReadTreeFile reads a JSON syntax tree from a file.
func ReadTreeFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTree(f)
}

// WriteTree encodes a syntax tree as indented JSON.
func WriteTree(w io.Writer, root *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

func normalize(n *Node) {
	if len(n.Children) > 0 {
		n.Kind = NonTerminal
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		normalize(c)
	}
}
