package assembler

import (
	"errors"

	"github.com/Urethramancer/mips/cpu"
)

// Fatal generation errors. Callers match them with errors.Is; the
// generator wraps them with the offending source line.
var (
	ErrUnknownOpcode  = cpu.ErrUnknownOpcode
	ErrUnknownStorage = errors.New("unknown storage type")
	ErrDivideByZero   = errors.New("division by zero")
	ErrBadOffset      = errors.New("malformed base-offset operand")
	ErrBadInteger     = errors.New("malformed integer")
	ErrBadRegister    = errors.New("expected register")
	ErrBadExpression  = errors.New("malformed expression")
	ErrBadString      = errors.New("malformed string literal")
	ErrValueRange     = errors.New("value out of range")
	ErrArity          = errors.New("too many operands")
	ErrMalformedNode  = errors.New("malformed syntax node")
)
