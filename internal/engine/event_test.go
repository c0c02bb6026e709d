package engine

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Event
	}{
		{key: "0", want: DigitEvent('0')},
		{key: "9", want: DigitEvent('9')},
		{key: ".", want: DecimalEvent()},
		{key: "AC", want: ClearEvent()},
		{key: "c", want: ClearEvent()},
		{key: "+", want: OperatorEvent(OpAdd)},
		{key: "−", want: OperatorEvent(OpSubtract)},
		{key: "-", want: OperatorEvent(OpSubtract)},
		{key: "x", want: OperatorEvent(OpMultiply)},
		{key: "×", want: OperatorEvent(OpMultiply)},
		{key: "/", want: OperatorEvent(OpDivide)},
		{key: "÷", want: OperatorEvent(OpDivide)},
		{key: " = ", want: EqualsEvent()},
		{key: "±", want: SignToggleEvent()},
		{key: "neg", want: SignToggleEvent()},
		{key: "%", want: PercentEvent()},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, err := ParseKey(tc.key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseKeyUnknown(t *testing.T) {
	for _, key := range []string{"", "12", "sqrt", "^"} {
		if _, err := ParseKey(key); !errors.Is(err, ErrUnknownKey) {
			t.Fatalf("ParseKey(%q): expected ErrUnknownKey, got %v", key, err)
		}
	}
}

func TestParseKeysStopsAtFirstUnknown(t *testing.T) {
	events, err := ParseKeys([]string{"1", "+", "?", "2"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if events != nil {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestEventStringRoundTrip(t *testing.T) {
	events := []Event{
		DigitEvent('4'), DecimalEvent(), ClearEvent(), OperatorEvent(OpAdd),
		OperatorEvent(OpSubtract), OperatorEvent(OpMultiply), OperatorEvent(OpDivide),
		EqualsEvent(), SignToggleEvent(), PercentEvent(),
	}

	for _, ev := range events {
		got, err := ParseKey(ev.String())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", ev.String(), err)
		}
		if got != ev {
			t.Fatalf("expected %+v, got %+v", ev, got)
		}
	}
}
