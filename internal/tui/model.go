package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/engine"
)

var (
	expressionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
	displayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	keyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	activeKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B")).Italic(true)
	frameStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const panelWidth = 24

var keypad = [][]string{
	{"AC", "±", "%", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "="},
}

// Model is a Bubble Tea model driving one calculator engine from the
// keyboard. It does no arithmetic of its own.
type Model struct {
	calc *engine.Engine
}

func NewModel() Model {
	return Model{calc: engine.New()}
}

// Snapshot exposes the engine state the view renders.
func (m Model) Snapshot() engine.Snapshot {
	return m.calc.Snapshot()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace", "delete":
		m.calc.Clear()
		return m, nil
	}

	if ev, err := engine.ParseKey(key.String()); err == nil {
		m.calc.Dispatch(ev)
	}
	return m, nil
}

func (m Model) View() string {
	snap := m.calc.Snapshot()

	sb := &strings.Builder{}
	sb.WriteString(expressionStyle.Render(alignRight(snap.Expression)))
	sb.WriteString("\n")

	value := alignRight(snap.Display)
	if snap.IsError {
		sb.WriteString(errorStyle.Render(value))
	} else {
		sb.WriteString(displayStyle.Render(value))
	}
	sb.WriteString("\n\n")

	for _, row := range keypad {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			style := keyStyle
			if k == snap.PendingOp.String() {
				style = activeKeyStyle
			}
			cells = append(cells, style.Render(lipgloss.PlaceHorizontal(5, lipgloss.Center, k)))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	body := frameStyle.Render(sb.String())
	return body + "\n" + footerStyle.Render("n: ±  esc: AC  enter: =  q: quit") + "\n"
}

func alignRight(s string) string {
	return lipgloss.PlaceHorizontal(panelWidth, lipgloss.Right, s)
}
