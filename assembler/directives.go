package assembler

import (
	"fmt"
	"math"
	"strings"
)

// StorageType is the keyword of a data declaration.
type StorageType int

const (
	StorageSpace StorageType = iota
	StorageWord
	StorageInt
	StorageByte
	StorageChar
	StorageHalf
	StorageASCII
	StorageASCIIZ
)

var storageNames = map[string]StorageType{
	"space":  StorageSpace,
	"word":   StorageWord,
	"int":    StorageInt,
	"byte":   StorageByte,
	"char":   StorageChar,
	"half":   StorageHalf,
	"ascii":  StorageASCII,
	"asciiz": StorageASCIIZ,
}

// ParseStorageType resolves a storage keyword. Case and a leading '.' are ignored.
func ParseStorageType(s string) (StorageType, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	st, ok := storageNames[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStorage, s)
	}
	return st, nil
}

func (st StorageType) String() string {
	for name, v := range storageNames {
		if v == st {
			return name
		}
	}
	return fmt.Sprintf("storage(%d)", int(st))
}

// elementSize is the width in bytes of one numeric value, or 0 for types
// that are not written value by value.
func (st StorageType) elementSize() int {
	switch st {
	case StorageWord, StorageInt:
		return 4
	case StorageHalf:
		return 2
	case StorageByte, StorageChar:
		return 1
	}
	return 0
}

// loadMemory writes one data declaration: label, storage keyword, values.
// The label is bound to the cursor before anything is written.
func (g *Generator) loadMemory(record Value) error {
	atoms := record.Atoms()
	if len(atoms) < 2 {
		return fmt.Errorf("%w: data declaration %q needs a label and a storage type", ErrMalformedNode, record)
	}

	label := atoms[0].String()
	st, err := ParseStorageType(atoms[1].String())
	if err != nil {
		return err
	}
	values := atoms[2:]

	g.define(label, g.cursor, SymbolData)
	start := g.cursor

	switch st {
	case StorageSpace:
		if len(values) == 0 {
			return fmt.Errorf("%w: space needs a size", ErrBadInteger)
		}
		n, ok := values[0].Int()
		if !ok {
			return fmt.Errorf("%w: space size %q", ErrBadInteger, values[0])
		}
		if n < 0 {
			return fmt.Errorf("%w: negative space size %d", ErrValueRange, n)
		}
		g.cursor += int(n)

	case StorageWord, StorageInt, StorageHalf, StorageByte, StorageChar:
		for _, v := range values {
			if err := g.storeValue(st, v); err != nil {
				return err
			}
		}

	case StorageASCII, StorageASCIIZ:
		if len(values) == 0 {
			return fmt.Errorf("%w: %s needs a string", ErrBadString, st)
		}
		text, err := unquote(values[0].String())
		if err != nil {
			return err
		}
		g.cursor += g.memory.StoreString(text, g.cursor)
		if st == StorageASCIIZ {
			g.memory.Store(0, g.cursor)
			g.cursor++
		}
	}

	g.tracef("data %v %v @ %v..%v\n", label, st.String(), start, g.cursor)
	return nil
}

// storeValue writes one numeric value at the cursor and advances it.
func (g *Generator) storeValue(st StorageType, v Value) error {
	n, ok := v.Int()
	if !ok && (st == StorageChar || st == StorageByte) {
		n, ok = charLiteral(v)
	}
	if !ok {
		return fmt.Errorf("%w: %s value %q", ErrBadInteger, st, v)
	}

	switch st.elementSize() {
	case 4:
		g.memory.StoreWord(n, g.cursor)
	case 2:
		if n < math.MinInt16 || n > math.MaxUint16 {
			return fmt.Errorf("%w: %d does not fit a half", ErrValueRange, n)
		}
		g.memory.StoreHalf(int16(n), g.cursor)
	case 1:
		if n < math.MinInt8 || n > math.MaxUint8 {
			return fmt.Errorf("%w: %d does not fit a byte", ErrValueRange, n)
		}
		g.memory.Store(byte(n), g.cursor)
	}
	g.cursor += st.elementSize()
	return nil
}

// charLiteral reads a quoted single character such as 'a' or '\n'.
func charLiteral(v Value) (int32, bool) {
	s, ok := v.Text()
	if !ok || len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, false
	}
	body := unescapeChar(s[1 : len(s)-1])
	if len(body) != 1 {
		return 0, false
	}
	return int32(body[0]), true
}

// unquote returns the text between the first and last double quote. The
// only escape translated is \n; every other byte is written as is.
func unquote(s string) (string, error) {
	first := strings.IndexByte(s, '"')
	last := strings.LastIndexByte(s, '"')
	if first < 0 || last <= first {
		return "", fmt.Errorf("%w: %s", ErrBadString, s)
	}
	return strings.ReplaceAll(s[first+1:last], `\n`, "\n"), nil
}

// unescapeChar translates \n, \t, \0, \\ and \' in a character literal.
// Other backslashes are kept.
func unescapeChar(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}
