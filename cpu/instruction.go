package cpu

import (
	"strconv"
	"strings"
)

// OperandKind says which alternative an Operand holds.
type OperandKind uint8

const (
	// OperandNone means no immediate, label or offset.
	OperandNone OperandKind = iota
	// OperandImmediate is a constant.
	OperandImmediate
	// OperandLabel is an unresolved symbolic reference.
	OperandLabel
	// OperandOffset is a displacement from the base register held in Rs or Rt.
	OperandOffset
)

func (k OperandKind) String() string {
	switch k {
	case OperandImmediate:
		return "immediate"
	case OperandLabel:
		return "label"
	case OperandOffset:
		return "offset"
	default:
		return "none"
	}
}

// Operand is the value part of an instruction. Only one of its alternatives
// is ever populated.
type Operand struct {
	Kind  OperandKind
	Value int32
	Label string
}

// Immediate returns an immediate operand.
func Immediate(v int32) Operand {
	return Operand{Kind: OperandImmediate, Value: v}
}

// Label returns a label reference operand.
func Label(name string) Operand {
	return Operand{Kind: OperandLabel, Label: name}
}

// Offset returns a base-offset displacement operand.
func Offset(v int32) Operand {
	return Operand{Kind: OperandOffset, Value: v}
}

// Instruction is one generated machine instruction. Registers not used by
// the form are NoRegister. Pos and Size are only meaningful for the
// bit-field form (four operands).
type Instruction struct {
	Opcode  Opcode
	Line    int
	Rd      Register
	Rs      Register
	Rt      Register
	Operand Operand
	Pos     int32
	Size    int32
	// Operands is how many operands the source form supplied (0-4).
	Operands int
}

// Immediate returns the immediate value and whether one is present.
func (i Instruction) Immediate() (int32, bool) {
	return i.Operand.Value, i.Operand.Kind == OperandImmediate
}

// Label returns the referenced label and whether one is present.
func (i Instruction) Label() (string, bool) {
	return i.Operand.Label, i.Operand.Kind == OperandLabel
}

// Offset returns the base-offset displacement and whether one is present.
func (i Instruction) Offset() (int32, bool) {
	return i.Operand.Value, i.Operand.Kind == OperandOffset
}

// String renders the instruction as assembly text.
func (i Instruction) String() string {
	var parts []string
	addReg := func(r Register) {
		if r != NoRegister {
			parts = append(parts, r.String())
		}
	}

	switch {
	case i.Operands == 4:
		addReg(i.Rd)
		addReg(i.Rs)
		parts = append(parts, strconv.Itoa(int(i.Pos)), strconv.Itoa(int(i.Size)))

	case i.Operand.Kind == OperandOffset:
		addReg(i.Rd)
		base := i.Rt
		if i.Operands == 2 {
			base = i.Rs
		} else {
			addReg(i.Rs)
		}
		parts = append(parts, strconv.Itoa(int(i.Operand.Value))+"("+base.String()+")")

	default:
		addReg(i.Rd)
		addReg(i.Rs)
		addReg(i.Rt)
		switch i.Operand.Kind {
		case OperandImmediate:
			parts = append(parts, strconv.Itoa(int(i.Operand.Value)))
		case OperandLabel:
			parts = append(parts, i.Operand.Label)
		}
	}

	if len(parts) == 0 {
		return i.Opcode.String()
	}
	return i.Opcode.String() + " " + strings.Join(parts, ", ")
}
