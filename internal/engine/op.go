package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Op is a binary arithmetic operator. The zero value means no operator.
type Op int

const (
	OpNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNonFiniteResult  = errors.New("non-finite result")
	ErrUnknownOperation = errors.New("unknown operation")
)

// String returns the glyph used in the expression trail.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Name returns the operation name used by the HTTP API and in telemetry.
func (op Op) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// ParseOp maps an operation name ("add", "subtract", "multiply", "divide")
// to its Op.
func ParseOp(name string) (Op, error) {
	switch name {
	case "add":
		return OpAdd, nil
	case "subtract":
		return OpSubtract, nil
	case "multiply":
		return OpMultiply, nil
	case "divide":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Evaluate applies op to left and right.
func Evaluate(left float64, op Op, right float64) (float64, error) {
	var result float64

	switch op {
	case OpAdd:
		result = left + right
	case OpSubtract:
		result = left - right
	case OpMultiply:
		result = left * right
	case OpDivide:
		if right == 0 {
			return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, left, right)
		}
		result = left / right
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: %g %s %g", ErrNonFiniteResult, left, op, right)
	}
	return result, nil
}

// Round rounds v to 12 significant decimal digits, which strips binary
// floating-point noise such as 0.1+0.2 = 0.30000000000000004.
func Round(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}
