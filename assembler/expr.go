package assembler

import (
	"fmt"
)

// Fold reduces a constant expression to an integer. Operators are applied
// strictly left to right with no precedence; the grammar has already
// reduced every sub-expression to a single token. A leading '-' negates the
// first number, and a '-' directly in front of a right operand negates it.
//
// A lone non-numeric token (a register or label name) is returned as is.
func Fold(v Value) (Value, error) {
	atoms := v.Atoms()
	switch len(atoms) {
	case 0:
		return v, nil
	case 1:
		if n, ok := atoms[0].Int(); ok {
			return IntValue(n), nil
		}
		return atoms[0], nil
	}

	var stack []int32
	negate := false
	for i := 0; i < len(atoms); i++ {
		tok := atoms[i]
		op, isOp := operator(tok)
		switch {
		case isOp && op == '-' && i == 0:
			negate = true

		case isOp:
			if len(stack) == 0 {
				return Value{}, fmt.Errorf("%w: %s: missing left operand for '%c'", ErrBadExpression, v, op)
			}
			l := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			r, used, err := rightOperand(atoms[i+1:])
			if err != nil {
				return Value{}, fmt.Errorf("%w: %s", err, v)
			}
			i += used

			res, err := apply(op, l, r)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %s", err, v)
			}
			stack = append(stack, res)

		default:
			n, ok := tok.Int()
			if !ok {
				return Value{}, fmt.Errorf("%w: %s: %q is not a number", ErrBadExpression, v, tok)
			}
			if negate {
				n = -n
				negate = false
			}
			stack = append(stack, n)
		}
	}

	if negate || len(stack) != 1 {
		return Value{}, fmt.Errorf("%w: %s", ErrBadExpression, v)
	}
	return IntValue(stack[0]), nil
}

// operator reports whether tok is one of + - * /.
func operator(tok Value) (byte, bool) {
	s, ok := tok.Text()
	if !ok || len(s) != 1 {
		return 0, false
	}
	switch s[0] {
	case '+', '-', '*', '/':
		return s[0], true
	}
	return 0, false
}

// rightOperand parses the operand following an operator and returns how
// many atoms it used.
func rightOperand(rest []Value) (int32, int, error) {
	if len(rest) == 0 {
		return 0, 0, fmt.Errorf("%w: missing right operand", ErrBadExpression)
	}
	if op, ok := operator(rest[0]); ok && op == '-' && len(rest) > 1 {
		if n, ok := rest[1].Int(); ok {
			return -n, 2, nil
		}
	}
	n, ok := rest[0].Int()
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not a number", ErrBadExpression, rest[0])
	}
	return n, 1, nil
}

func apply(op byte, l, r int32) (int32, error) {
	switch op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	}
	if r == 0 {
		return 0, ErrDivideByZero
	}
	return l / r, nil
}
