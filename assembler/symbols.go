package assembler

import (
	"cmp"
	"slices"
)

// SymbolKind records what a symbol's address counts.
type SymbolKind uint8

const (
	// SymbolUnknown is a symbol inserted without a kind.
	SymbolUnknown SymbolKind = iota
	// SymbolCode addresses are indices into the instruction list.
	SymbolCode
	// SymbolData addresses are byte offsets into the data image.
	SymbolData
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolCode:
		return "code"
	case SymbolData:
		return "data"
	default:
		return "unknown"
	}
}

// Symbol is one entry of a SymbolTable.
type Symbol struct {
	Name    string
	Address int
	Kind    SymbolKind
}

// SymbolTable maps label names to addresses. Code and data labels share one
// namespace; inserting an existing name overwrites it. The table belongs to
// the caller, who must Reset it between compilation units: Generator.Flush
// leaves it alone.
type SymbolTable struct {
	symbols map[string]Symbol
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Insert binds name to addr.
func (st *SymbolTable) Insert(name string, addr int) {
	st.Define(name, addr, SymbolUnknown)
}

// Define binds name to addr and records what kind of address it is.
func (st *SymbolTable) Define(name string, addr int, kind SymbolKind) {
	if st.symbols == nil {
		st.symbols = make(map[string]Symbol)
	}
	st.symbols[name] = Symbol{Name: name, Address: addr, Kind: kind}
}

// Lookup returns the address bound to name.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	s, ok := st.symbols[name]
	return s.Address, ok
}

// Get returns the full entry for name.
func (st *SymbolTable) Get(name string) (Symbol, bool) {
	s, ok := st.symbols[name]
	return s, ok
}

// Len is the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns all symbol names in sorted order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symbols))
	for name := range st.symbols {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Symbols returns the entries of the given kind ordered by address, then name.
func (st *SymbolTable) Symbols(kind SymbolKind) []Symbol {
	var list []Symbol
	for _, s := range st.symbols {
		if s.Kind == kind {
			list = append(list, s)
		}
	}
	slices.SortFunc(list, func(a, b Symbol) int {
		if c := cmp.Compare(a.Address, b.Address); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return list
}

// Reset removes every symbol.
func (st *SymbolTable) Reset() {
	clear(st.symbols)
}
