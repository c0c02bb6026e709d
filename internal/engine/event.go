package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies an input event.
type Kind int

const (
	KindDigit Kind = iota
	KindDecimal
	KindClear
	KindOperator
	KindEquals
	KindSignToggle
	KindPercent
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindClear:
		return "clear"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindSignToggle:
		return "sign_toggle"
	case KindPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Event is a single key press delivered to the engine. Digit is set only for
// KindDigit and Op only for KindOperator.
type Event struct {
	Kind  Kind
	Digit byte
	Op    Op
}

// ErrUnknownKey is returned by ParseKey for text that maps to no event.
var ErrUnknownKey = errors.New("unknown key")

func DigitEvent(d byte) Event { return Event{Kind: KindDigit, Digit: d} }
func DecimalEvent() Event { return Event{Kind: KindDecimal} }
func ClearEvent() Event { return Event{Kind: KindClear} }
func OperatorEvent(op Op) Event { return Event{Kind: KindOperator, Op: op} }
func EqualsEvent() Event { return Event{Kind: KindEquals} }
func SignToggleEvent() Event { return Event{Kind: KindSignToggle} }
func PercentEvent() Event { return Event{Kind: KindPercent} }

// String returns the canonical key text for the event, the inverse of ParseKey.
func (e Event) String() string {
	switch e.Kind {
	case KindDigit:
		return string(e.Digit)
	case KindDecimal:
		return "."
	case KindClear:
		return "AC"
	case KindOperator:
		return e.Op.String()
	case KindEquals:
		return "="
	case KindSignToggle:
		return "±"
	case KindPercent:
		return "%"
	default:
		return "?"
	}
}

// ParseKey maps the text of a calculator key to its event. Both ASCII and
// keypad glyphs are accepted for operators.
func ParseKey(key string) (Event, error) {
	k := strings.TrimSpace(key)
	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		return DigitEvent(k[0]), nil
	}

	switch strings.ToLower(k) {
	case ".", ",":
		return DecimalEvent(), nil
	case "ac", "c", "clear":
		return ClearEvent(), nil
	case "+":
		return OperatorEvent(OpAdd), nil
	case "-", "−":
		return OperatorEvent(OpSubtract), nil
	case "*", "x", "×":
		return OperatorEvent(OpMultiply), nil
	case "/", "÷":
		return OperatorEvent(OpDivide), nil
	case "=", "enter":
		return EqualsEvent(), nil
	case "±", "+/-", "neg", "n":
		return SignToggleEvent(), nil
	case "%":
		return PercentEvent(), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// ParseKeys parses every key, stopping at the first unknown one.
func ParseKeys(keys []string) ([]Event, error) {
	events := make([]Event, 0, len(keys))
	for i, k := range keys {
		ev, err := ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
