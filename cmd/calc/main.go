package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"go-chi-calculator/internal/tui"
)

func main() {
	prog := tea.NewProgram(tui.NewModel())
	if _, err := prog.Run(); err != nil {
		log.Fatalf("calculator failed: %v", err)
	}
}
