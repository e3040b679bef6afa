package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// operandMode is the addressing mode an operand was classified as.
type operandMode int

const (
	modeRegister operandMode = iota
	modeImmediate
	modeLabel
	modeBaseOffset
)

// parsedOperand is a classified operand.
type parsedOperand struct {
	Mode     operandMode
	Register cpu.Register
	Value    int32
	Label    string
}

// parseOperand classifies an operand as a register, an immediate or a label.
// When offsets is set, a two-token operand is read as offset#register.
//
// Anything that is neither a register nor an integer is taken to be a label.
// This also turns malformed numbers into labels; the loader reports them as
// unresolved symbols.
func parseOperand(v Value, offsets bool) (parsedOperand, error) {
	if op, ok := tryParseRegister(v); ok {
		return op, nil
	}
	if offsets && v.Len() > 1 {
		return parseBaseOffset(v)
	}
	if op, ok := tryParseImmediate(v); ok {
		return op, nil
	}
	return parsedOperand{Mode: modeLabel, Register: cpu.NoRegister, Label: v.String()}, nil
}

// tryParseRegister matches a single token naming a register.
func tryParseRegister(v Value) (parsedOperand, bool) {
	r, ok := register(v)
	if !ok {
		return parsedOperand{}, false
	}
	return parsedOperand{Mode: modeRegister, Register: r}, true
}

// tryParseImmediate matches a single integer.
func tryParseImmediate(v Value) (parsedOperand, bool) {
	if v.Len() != 1 {
		return parsedOperand{}, false
	}
	n, ok := v.Atoms()[0].Int()
	if !ok {
		return parsedOperand{}, false
	}
	return parsedOperand{Mode: modeImmediate, Register: cpu.NoRegister, Value: n}, true
}

// parseBaseOffset splits offset#register.
func parseBaseOffset(v Value) (parsedOperand, error) {
	atoms := v.Atoms()
	if len(atoms) != 2 {
		return parsedOperand{}, fmt.Errorf("%w: %s", ErrBadOffset, v)
	}
	off, ok := atoms[0].Int()
	if !ok {
		return parsedOperand{}, fmt.Errorf("%w: %s: offset %q is not an integer", ErrBadOffset, v, atoms[0])
	}
	base, ok := register(atoms[1])
	if !ok {
		return parsedOperand{}, fmt.Errorf("%w: %s: base %q", ErrBadRegister, v, atoms[1])
	}
	return parsedOperand{Mode: modeBaseOffset, Register: base, Value: off}, nil
}

// register returns the register named by a single-token value.
func register(v Value) (cpu.Register, bool) {
	s, ok := v.Text()
	if !ok {
		return cpu.NoRegister, false
	}
	return cpu.ParseRegister(s)
}

// requireRegister is register for slots where nothing else is allowed.
func requireRegister(v Value) (cpu.Register, error) {
	r, ok := register(v)
	if !ok {
		return cpu.NoRegister, fmt.Errorf("%w, got %q", ErrBadRegister, v)
	}
	return r, nil
}

// requireInt is for operand slots that only take an integer.
func requireInt(v Value) (int32, error) {
	if v.Len() == 1 {
		if n, ok := v.Atoms()[0].Int(); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadInteger, v)
}
