package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeKeys(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func TestModelDispatchesKeys(t *testing.T) {
	m := typeKeys(NewModel(), runes("12+34")...)
	m = typeKeys(m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := m.Snapshot()
	if snap.Display != "46" || snap.Expression != "12+34=46" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestModelClearKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyBackspace}} {
		m := typeKeys(NewModel(), runes("5/0=")...)
		if !m.Snapshot().IsError {
			t.Fatal("expected error state after dividing by zero")
		}

		m = typeKeys(m, k)
		snap := m.Snapshot()
		if snap.Display != "0" || snap.Expression != "" || snap.IsError {
			t.Fatalf("%s: expected default snapshot, got %+v", k, snap)
		}
	}
}

func TestModelIgnoresUnknownKeys(t *testing.T) {
	m := typeKeys(NewModel(), runes("7?z")...)

	if got := m.Snapshot().Display; got != "7" {
		t.Fatalf("expected display %q, got %q", "7", got)
	}
}

func TestModelQuit(t *testing.T) {
	_, cmd := NewModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelViewShowsDisplayAndExpression(t *testing.T) {
	m := typeKeys(NewModel(), runes("7n")...)

	view := m.View()
	if !strings.Contains(view, "-7") {
		t.Fatalf("expected view to contain %q, got:\n%s", "-7", view)
	}
}
