package engine

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		op          Op
		want        float64
	}{
		{name: "add", left: 2, op: OpAdd, right: 3, want: 5},
		{name: "subtract", left: 2, op: OpSubtract, right: 3, want: -1},
		{name: "multiply", left: -4, op: OpMultiply, right: 2.5, want: -10},
		{name: "divide", left: 9, op: OpDivide, right: 4, want: 2.25},
		{name: "zero numerator", left: 0, op: OpDivide, right: 7, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.left, tc.op, tc.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %g, got %g", tc.want, got)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		op          Op
		want        error
	}{
		{name: "divide by zero", left: 5, op: OpDivide, right: 0, want: ErrDivisionByZero},
		{name: "divide by negative zero", left: 5, op: OpDivide, right: math.Copysign(0, -1), want: ErrDivisionByZero},
		{name: "overflow", left: math.MaxFloat64, op: OpMultiply, right: 10, want: ErrNonFiniteResult},
		{name: "overflow on add", left: math.MaxFloat64, op: OpAdd, right: math.MaxFloat64, want: ErrNonFiniteResult},
		{name: "nan operand", left: math.NaN(), op: OpAdd, right: 1, want: ErrNonFiniteResult},
		{name: "no operator", left: 1, op: OpNone, right: 1, want: ErrUnknownOperation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.left, tc.op, tc.right)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEvaluateFiniteOperandsNeverFail(t *testing.T) {
	values := []float64{0, 1, -1, 0.1, 0.2, 123456.789, -9.87e-5, 1e15, -3e9}
	ops := []Op{OpAdd, OpSubtract, OpMultiply}

	for _, a := range values {
		for _, b := range values {
			for _, op := range ops {
				if _, err := Evaluate(a, op, b); err != nil {
					t.Fatalf("%g %s %g: unexpected error: %v", a, op, b, err)
				}
			}
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.1 + 0.2, want: 0.3},
		{in: 1.0 / 3.0, want: 0.333333333333},
		{in: 2.0 / 3.0, want: 0.666666666667},
		{in: 123456789012345, want: 123456789012000},
		{in: 0, want: 0},
		{in: -1.1 * 3, want: -3.3},
	}

	for _, tc := range tests {
		if got := Round(tc.in); got != tc.want {
			t.Fatalf("Round(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseOp(t *testing.T) {
	for _, op := range []Op{OpAdd, OpSubtract, OpMultiply, OpDivide} {
		got, err := ParseOp(op.Name())
		if err != nil {
			t.Fatalf("ParseOp(%q): unexpected error: %v", op.Name(), err)
		}
		if got != op {
			t.Fatalf("ParseOp(%q): expected %v, got %v", op.Name(), op, got)
		}
	}

	if _, err := ParseOp("modulo"); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}
