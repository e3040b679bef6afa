package cpu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOpcode is returned when a mnemonic has no matching opcode.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Opcode identifies an instruction kind.
type Opcode int

const (
	// OpInvalid is the zero value and never produced by ParseOpcode.
	OpInvalid Opcode = iota

	// Arithmetic
	OpADD
	OpADDU
	OpADDI
	OpADDIU
	OpSUB
	OpSUBU
	OpMUL
	OpMULT
	OpMULTU
	OpMADD
	OpMSUB
	OpDIV
	OpDIVU
	OpCLO
	OpCLZ
	OpSEB
	OpSEH

	// Logical
	OpAND
	OpANDI
	OpOR
	OpORI
	OpXOR
	OpXORI
	OpNOR

	// Shifts
	OpSLL
	OpSLLV
	OpSRL
	OpSRLV
	OpSRA
	OpSRAV
	OpROTR
	OpROTRV

	// Set on condition
	OpSLT
	OpSLTU
	OpSLTI
	OpSLTIU

	// Moves
	OpLUI
	OpMFHI
	OpMFLO
	OpMTHI
	OpMTLO
	OpMOVN
	OpMOVZ

	// Memory access
	OpLB
	OpLBU
	OpLH
	OpLHU
	OpLW
	OpLL
	OpSB
	OpSH
	OpSW
	OpSC

	// Branches and jumps
	OpBEQ
	OpBNE
	OpBGEZ
	OpBGEZAL
	OpBGTZ
	OpBLEZ
	OpBLTZ
	OpBLTZAL
	OpJ
	OpJAL
	OpJR
	OpJALR

	// Bit field
	OpEXT
	OpINS

	// System
	OpSYSCALL
	OpBREAK
	OpNOP
	OpERET

	// Pseudo-instructions
	OpLI
	OpLA
	OpMOVE
	OpNEG
	OpNOT
	OpB
	OpBAL
	OpBEQZ
	OpBNEZ
	OpBLT
	OpBGT
	OpBLE
	OpBGE

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpInvalid: "invalid",
	OpADD:     "add",
	OpADDU:    "addu",
	OpADDI:    "addi",
	OpADDIU:   "addiu",
	OpSUB:     "sub",
	OpSUBU:    "subu",
	OpMUL:     "mul",
	OpMULT:    "mult",
	OpMULTU:   "multu",
	OpMADD:    "madd",
	OpMSUB:    "msub",
	OpDIV:     "div",
	OpDIVU:    "divu",
	OpCLO:     "clo",
	OpCLZ:     "clz",
	OpSEB:     "seb",
	OpSEH:     "seh",
	OpAND:     "and",
	OpANDI:    "andi",
	OpOR:      "or",
	OpORI:     "ori",
	OpXOR:     "xor",
	OpXORI:    "xori",
	OpNOR:     "nor",
	OpSLL:     "sll",
	OpSLLV:    "sllv",
	OpSRL:     "srl",
	OpSRLV:    "srlv",
	OpSRA:     "sra",
	OpSRAV:    "srav",
	OpROTR:    "rotr",
	OpROTRV:   "rotrv",
	OpSLT:     "slt",
	OpSLTU:    "sltu",
	OpSLTI:    "slti",
	OpSLTIU:   "sltiu",
	OpLUI:     "lui",
	OpMFHI:    "mfhi",
	OpMFLO:    "mflo",
	OpMTHI:    "mthi",
	OpMTLO:    "mtlo",
	OpMOVN:    "movn",
	OpMOVZ:    "movz",
	OpLB:      "lb",
	OpLBU:     "lbu",
	OpLH:      "lh",
	OpLHU:     "lhu",
	OpLW:      "lw",
	OpLL:      "ll",
	OpSB:      "sb",
	OpSH:      "sh",
	OpSW:      "sw",
	OpSC:      "sc",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpBGEZ:    "bgez",
	OpBGEZAL:  "bgezal",
	OpBGTZ:    "bgtz",
	OpBLEZ:    "blez",
	OpBLTZ:    "bltz",
	OpBLTZAL:  "bltzal",
	OpJ:       "j",
	OpJAL:     "jal",
	OpJR:      "jr",
	OpJALR:    "jalr",
	OpEXT:     "ext",
	OpINS:     "ins",
	OpSYSCALL: "syscall",
	OpBREAK:   "break",
	OpNOP:     "nop",
	OpERET:    "eret",
	OpLI:      "li",
	OpLA:      "la",
	OpMOVE:    "move",
	OpNEG:     "neg",
	OpNOT:     "not",
	OpB:       "b",
	OpBAL:     "bal",
	OpBEQZ:    "beqz",
	OpBNEZ:    "bnez",
	OpBLT:     "blt",
	OpBGT:     "bgt",
	OpBLE:     "ble",
	OpBGE:     "bge",
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, opcodeCount)
	for op := OpInvalid + 1; op < opcodeCount; op++ {
		m[opcodeNames[op]] = op
	}
	return m
}()

// ParseOpcode resolves a mnemonic, ignoring case.
func ParseOpcode(s string) (Opcode, error) {
	op, ok := opcodeByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return OpInvalid, fmt.Errorf("%w: %q", ErrUnknownOpcode, s)
	}
	return op, nil
}

// String returns the lower-case mnemonic.
func (op Opcode) String() string {
	if op < 0 || op >= opcodeCount {
		return fmt.Sprintf("opcode(%d)", int(op))
	}
	return opcodeNames[op]
}
