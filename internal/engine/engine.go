// Package engine implements the calculator's input state machine: it consumes
// key events one at a time, chains binary operations strictly left to right,
// and keeps the live display value and the expression trail in step.
//
// The package is pure. It performs no I/O and never returns errors to its
// caller; evaluation failures move the engine into its error state, from which
// the next digit, decimal point or clear recovers.
package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type mode int

const (
	// modeEntering: digits append to the display value.
	modeEntering mode = iota
	// modeAwaiting: the next digit starts a fresh operand.
	modeAwaiting
	// modeFailed: the last evaluation failed and the display shows ErrorToken.
	modeFailed
)

// pending is the captured left-hand operand and the operator waiting for its
// right-hand operand. op == OpNone means nothing is pending.
type pending struct {
	operand float64
	op      Op
}

// Snapshot is the read-only view of the engine handed to front ends.
type Snapshot struct {
	// Display is the formatted value, ErrorToken when IsError is set.
	Display string
	// Expression is the human-readable trail of the current chain.
	Expression string
	IsError    bool
	// PendingOp is the operator waiting for its right operand, OpNone if none.
	PendingOp Op
}

// Engine is a single calculator session. It is not safe for concurrent use.
type Engine struct {
	mode    mode
	display string
	pending pending

	trail string
	// operandStart is the byte offset in trail where the operand that mirrors
	// the display begins.
	operandStart int
}

// New returns an engine in its default state.
func New() *Engine {
	e := &Engine{}
	e.reset()
	return e
}

// Replay runs events on a fresh engine and returns the final snapshot.
func Replay(events ...Event) Snapshot {
	e := New()
	for _, ev := range events {
		e.Dispatch(ev)
	}
	return e.Snapshot()
}

// Snapshot returns the current display state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:    FormatDisplay(e.display, e.mode == modeFailed),
		Expression: e.trail,
		IsError:    e.mode == modeFailed,
		PendingOp:  e.pending.op,
	}
}

// Dispatch applies one input event.
func (e *Engine) Dispatch(ev Event) {
	switch ev.Kind {
	case KindDigit:
		e.enter(string(ev.Digit))
	case KindDecimal:
		e.decimal()
	case KindClear:
		e.reset()
	case KindOperator:
		e.operate(ev.Op)
	case KindEquals:
		e.equals()
	case KindSignToggle:
		e.signToggle()
	case KindPercent:
		e.percent()
	}
}

// Digit, Decimal, Clear, Operator, Equals, SignToggle and Percent build the
// matching event and Dispatch it.
func (e *Engine) Digit(d byte) { e.Dispatch(DigitEvent(d)) }
func (e *Engine) Decimal() { e.Dispatch(DecimalEvent()) }
func (e *Engine) Clear() { e.Dispatch(ClearEvent()) }
func (e *Engine) Operator(op Op) { e.Dispatch(OperatorEvent(op)) }
func (e *Engine) Equals() { e.Dispatch(EqualsEvent()) }
func (e *Engine) SignToggle() { e.Dispatch(SignToggleEvent()) }
func (e *Engine) Percent() { e.Dispatch(PercentEvent()) }

func (e *Engine) reset() {
	e.mode = modeEntering
	e.display = "0"
	e.pending = pending{}
	e.trail = ""
	e.operandStart = 0
}

// startOperand prepares the trail for a new operand typed after an operator,
// after equals, or after an error. With no operation pending the previous
// chain is finished, so the trail restarts with the new operand instead of
// appending to "12+34=46"; the trail then always ends with the display value.
func (e *Engine) startOperand() {
	switch {
	case e.mode == modeFailed || e.pending.op == OpNone:
		// A finished chain or an error: the new operand starts a new trail.
		e.trail = ""
		e.operandStart = 0
	default:
		e.trail = e.trail[:e.operandStart]
	}
	e.mode = modeEntering
}

// setOperand replaces the display value and the operand it mirrors in trail.
func (e *Engine) setOperand(text string) {
	e.display = text
	e.trail = e.trail[:e.operandStart] + text
}

func (e *Engine) enter(d string) {
	if e.mode != modeEntering {
		e.startOperand()
		e.setOperand(d)
		return
	}
	if e.display == "0" {
		e.setOperand(d)
		return
	}
	e.setOperand(e.display + d)
}

func (e *Engine) decimal() {
	if e.mode != modeEntering {
		e.startOperand()
		e.setOperand("0.")
		return
	}
	// An exponent ("5e-7") takes no decimal point either.
	if strings.ContainsAny(e.display, ".e") {
		return
	}
	e.setOperand(e.display + ".")
}

// operate evaluates any pending operation against the display value and makes
// next the pending operator. next == OpNone only comes from equals.
func (e *Engine) operate(next Op) {
	if e.mode == modeFailed {
		return
	}
	input := e.inputValue()

	if e.pending.op == OpNone {
		if next != OpNone {
			e.pending = pending{operand: input, op: next}
			e.trail = NumberString(input) + next.String()
			e.operandStart = len(e.trail)
		}
		e.mode = modeAwaiting
		return
	}

	left, op := e.pending.operand, e.pending.op
	result, err := Evaluate(left, op, input)
	if err != nil {
		e.fail()
		return
	}
	result = Round(result)
	text := NumberString(result)

	e.display = text
	e.pending = pending{operand: result, op: next}
	if next != OpNone {
		e.trail = text + next.String()
		e.operandStart = len(e.trail)
	} else {
		e.trail = NumberString(left) + op.String() + NumberString(input) + "="
		e.operandStart = len(e.trail)
		e.trail += text
	}
	e.mode = modeAwaiting
}

func (e *Engine) equals() {
	if e.mode == modeFailed {
		return
	}
	e.operate(OpNone)
	if e.mode == modeFailed {
		return
	}
	e.pending = pending{}
	e.mode = modeAwaiting
}

func (e *Engine) signToggle() {
	if e.display == "0" || e.mode == modeFailed {
		return
	}
	if strings.HasPrefix(e.display, "-") {
		e.setOperand(e.display[1:])
	} else {
		e.setOperand("-" + e.display)
	}
}

// percent divides the display value by 100. A pending operand is left as is.
func (e *Engine) percent() {
	if e.display == "0" || e.mode == modeFailed {
		return
	}
	v := e.inputValue() / 100
	if math.IsInf(v, 0) {
		e.fail()
		return
	}
	e.setOperand(NumberString(v))
}

func (e *Engine) fail() {
	e.mode = modeFailed
	e.display = ErrorToken
	e.pending = pending{}
	e.trail = ErrorToken
	e.operandStart = len(e.trail)
}

// inputValue parses the display. Entries too large for a float64 come back as
// ±Inf so that evaluating them fails with ErrNonFiniteResult.
func (e *Engine) inputValue() float64 {
	v, err := strconv.ParseFloat(e.display, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}
