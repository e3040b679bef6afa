package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// Build creates an instruction from a mnemonic and up to four operands.
// The arity is the number of leading non-empty operands; anything after the
// first empty operand is ignored.
func Build(line int, mnemonic string, operands ...Value) (cpu.Instruction, error) {
	op, err := cpu.ParseOpcode(mnemonic)
	if err != nil {
		return cpu.Instruction{}, err
	}

	n := 0
	for n < len(operands) && !operands[n].IsZero() {
		n++
	}

	switch n {
	case 0:
		return buildZero(line, op), nil
	case 1:
		return buildOne(line, op, operands[0])
	case 2:
		return buildTwo(line, op, operands[0], operands[1])
	case 3:
		return buildThree(line, op, operands[0], operands[1], operands[2])
	case 4:
		return buildFour(line, op, operands[0], operands[1], operands[2], operands[3])
	default:
		return cpu.Instruction{}, fmt.Errorf("%w: %s takes at most 4, got %d", ErrArity, op, n)
	}
}

func blank(line int, op cpu.Opcode, arity int) cpu.Instruction {
	return cpu.Instruction{
		Opcode:   op,
		Line:     line,
		Rd:       cpu.NoRegister,
		Rs:       cpu.NoRegister,
		Rt:       cpu.NoRegister,
		Operands: arity,
	}
}

// buildZero: syscall, nop
func buildZero(line int, op cpu.Opcode) cpu.Instruction {
	return blank(line, op, 0)
}

// buildOne: jr ra, j label, b 12
func buildOne(line int, op cpu.Opcode, a Value) (cpu.Instruction, error) {
	inst := blank(line, op, 1)
	p, err := parseOperand(a, false)
	if err != nil {
		return cpu.Instruction{}, err
	}
	switch p.Mode {
	case modeRegister:
		inst.Rd = p.Register
	case modeImmediate:
		inst.Operand = cpu.Immediate(p.Value)
	default:
		inst.Operand = cpu.Label(p.Label)
	}
	return inst, nil
}

// buildTwo: move t0, t1; li t0, 5; la t0, label; lw t0, 4(sp)
//
// A first operand that is not a register is dropped.
func buildTwo(line int, op cpu.Opcode, a, b Value) (cpu.Instruction, error) {
	inst := blank(line, op, 2)
	if r, ok := register(a); ok {
		inst.Rd = r
	}

	p, err := parseOperand(b, true)
	if err != nil {
		return cpu.Instruction{}, err
	}
	switch p.Mode {
	case modeRegister:
		inst.Rs = p.Register
	case modeBaseOffset:
		inst.Rs = p.Register
		inst.Operand = cpu.Offset(p.Value)
	case modeImmediate:
		inst.Operand = cpu.Immediate(p.Value)
	default:
		inst.Operand = cpu.Label(p.Label)
	}
	return inst, nil
}

// buildThree: add t0, t1, t2; addi t0, t1, 4; beq t0, t1, label
//
// Non-register first and second operands are dropped.
func buildThree(line int, op cpu.Opcode, a, b, c Value) (cpu.Instruction, error) {
	inst := blank(line, op, 3)
	if r, ok := register(a); ok {
		inst.Rd = r
	}
	if r, ok := register(b); ok {
		inst.Rs = r
	}

	p, err := parseOperand(c, true)
	if err != nil {
		return cpu.Instruction{}, err
	}
	switch p.Mode {
	case modeRegister:
		inst.Rt = p.Register
	case modeBaseOffset:
		inst.Rt = p.Register
		inst.Operand = cpu.Offset(p.Value)
	case modeImmediate:
		inst.Operand = cpu.Immediate(p.Value)
	default:
		inst.Operand = cpu.Label(p.Label)
	}
	return inst, nil
}

// buildFour: ext t0, t1, pos, size
func buildFour(line int, op cpu.Opcode, a, b, pos, size Value) (cpu.Instruction, error) {
	inst := blank(line, op, 4)
	var err error
	if inst.Rd, err = requireRegister(a); err != nil {
		return cpu.Instruction{}, err
	}
	if inst.Rs, err = requireRegister(b); err != nil {
		return cpu.Instruction{}, err
	}
	if inst.Pos, err = requireInt(pos); err != nil {
		return cpu.Instruction{}, fmt.Errorf("position: %w", err)
	}
	if inst.Size, err = requireInt(size); err != nil {
		return cpu.Instruction{}, fmt.Errorf("size: %w", err)
	}
	return inst, nil
}
