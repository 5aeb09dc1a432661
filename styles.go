package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW        = 11 // width of each circuit column in characters
	labelVisualW = 7  // visual width of qubit label area
	gateNameW    = 5  // width of gate name inside box
	gateBoxW     = 7  // ┤ + gateNameW + ├ = 1 + 5 + 1
	probBarW     = 16 // width of a probability bar in the state panel
	minWidth     = 80 // smallest terminal the panels are laid out for
	minHeight    = 24
)

// palette is the semantic colour set the styles are built from.
type palette struct {
	Circuit lipgloss.Color
	State   lipgloss.Color
	QASM    lipgloss.Color
	Help    lipgloss.Color
	Accent  lipgloss.Color
	Select  lipgloss.Color
	Warm    lipgloss.Color
	Error   lipgloss.Color
	Label   lipgloss.Color
	Gate    lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
}

// Tokyo Night.
var colors = palette{
	Circuit: lipgloss.Color("#7aa2f7"),
	State:   lipgloss.Color("#7dcfff"),
	QASM:    lipgloss.Color("#bb9af7"),
	Help:    lipgloss.Color("#9ece6a"),
	Accent:  lipgloss.Color("#ff9e64"),
	Select:  lipgloss.Color("#bb9af7"),
	Warm:    lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Label:   lipgloss.Color("#7dcfff"),
	Gate:    lipgloss.Color("#73daca"),
	Muted:   lipgloss.Color("#565f89"),
	Text:    lipgloss.Color("#c0caf5"),
}

// panel is a rounded, bordered box. pad follows lipgloss Padding.
func panel(border lipgloss.Color, pad ...int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(pad...)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	circuitStyle    = panel(colors.Circuit, 1)
	stateStyle      = panel(colors.State, 0, 1)
	qasmStyle       = panel(colors.QASM, 1)
	controlsStyle   = panel(colors.Help, 0, 1)
	menuBorderStyle = panel(colors.Accent, 0, 1)

	titleStyle        = fg(colors.Accent).Bold(true)
	cursorBoxStyle    = fg(colors.Accent).Bold(true)
	targetSelectStyle = fg(colors.Select).Bold(true)
	menuSelectedStyle = fg(colors.Accent).Bold(true)
	errorStyle        = fg(colors.Error).Bold(true)
	gateStyle         = fg(colors.Gate).Bold(true)

	activeGateStyle = fg(colors.Warm)
	qubitLabelStyle = fg(colors.Label)
	dimStyle        = fg(colors.Muted)
	probBarStyle    = fg(colors.Help)
	menuNormalStyle = fg(colors.Text)
)
