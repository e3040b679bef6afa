package assembler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates tokens when a sequence is collapsed to a string.
const Delimiter = '#'

// ValueKind says which alternative a Value holds.
type ValueKind uint8

const (
	// ValueEmpty is a node that has produced nothing yet.
	ValueEmpty ValueKind = iota
	// ValueToken is an unprocessed source token.
	ValueToken
	// ValueInt is a folded integer.
	ValueInt
	// ValueSeq is an ordered list of tokens and integers.
	ValueSeq
)

func (k ValueKind) String() string {
	switch k {
	case ValueToken:
		return "token"
	case ValueInt:
		return "int"
	case ValueSeq:
		return "sequence"
	default:
		return "empty"
	}
}

// Value is the slot a syntax node carries up the tree. A sequence only ever
// holds tokens and integers, never nested sequences.
type Value struct {
	kind  ValueKind
	text  string
	num   int32
	items []Value
}

// TokenValue wraps a raw token. The empty string is the empty value.
func TokenValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: ValueToken, text: s}
}

// IntValue wraps a folded integer.
func IntValue(n int32) Value {
	return Value{kind: ValueInt, num: n}
}

// SeqValue builds a value from the atoms of vs in order. Empty values are
// skipped, a single atom is returned as itself.
func SeqValue(vs ...Value) Value {
	var items []Value
	for _, v := range vs {
		items = append(items, v.Atoms()...)
	}
	switch len(items) {
	case 0:
		return Value{}
	case 1:
		return items[0]
	}
	return Value{kind: ValueSeq, items: items}
}

// Join concatenates two values. If either side is empty the other is
// returned unchanged.
func Join(a, b Value) Value {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	return SeqValue(a, b)
}

// Kind returns the alternative held.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsZero reports whether v is empty.
func (v Value) IsZero() bool {
	return v.kind == ValueEmpty
}

// Text returns the token text of a token value.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == ValueToken
}

// Int returns the number held by an integer value, or parses a token as a
// decimal 32-bit integer.
func (v Value) Int() (int32, bool) {
	switch v.kind {
	case ValueInt:
		return v.num, true
	case ValueToken:
		n, err := strconv.ParseInt(v.text, 10, 32)
		if err != nil {
			return 0, false
		}
		return int32(n), true
	}
	return 0, false
}

// Atoms returns the tokens and integers of v in order.
func (v Value) Atoms() []Value {
	switch v.kind {
	case ValueEmpty:
		return nil
	case ValueSeq:
		return v.items
	}
	return []Value{v}
}

// Len is the number of atoms in v.
func (v Value) Len() int {
	switch v.kind {
	case ValueEmpty:
		return 0
	case ValueSeq:
		return len(v.items)
	}
	return 1
}

// String collapses v to its delimited text form.
func (v Value) String() string {
	switch v.kind {
	case ValueToken:
		return v.text
	case ValueInt:
		return strconv.FormatInt(int64(v.num), 10)
	case ValueSeq:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return strings.Join(parts, string(Delimiter))
	}
	return ""
}

// MarshalJSON encodes tokens as strings, integers as numbers and sequences as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueToken:
		return json.Marshal(v.text)
	case ValueInt:
		return json.Marshal(v.num)
	case ValueSeq:
		return json.Marshal(v.items)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := valueFromJSON(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func valueFromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return TokenValue(x), nil
	case float64:
		if x != math.Trunc(x) || x < math.MinInt32 || x > math.MaxInt32 {
			return Value{}, fmt.Errorf("%w: %v", ErrBadInteger, x)
		}
		return IntValue(int32(x)), nil
	case []any:
		items := make([]Value, 0, len(x))
		for _, it := range x {
			val, err := valueFromJSON(it)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return SeqValue(items...), nil
	}
	return Value{}, fmt.Errorf("unsupported value %T", raw)
}
