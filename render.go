package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	figure "github.com/common-nighthawk/go-figure"

	"qcircsim/internal/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	switch gateType {
	case "SDG":
		return "S†"
	case "TDG":
		return "T†"
	case "SX":
		return "√X"
	default:
		return gateType
	}
}

// controlSymbol returns the wire symbol for the control qubit of a two-qubit gate.
func controlSymbol(gateType string) string {
	if gateType == "SWAP" {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit gate.
func targetSymbol(gateType string) string {
	if gateType == "SWAP" {
		return "×"
	}
	return "⊕"
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// cellInfo describes what one log entry draws on one qubit wire.
type cellInfo struct {
	name        string // boxed gate name, single-qubit gates only
	symbol      string // control/target glyph, two-qubit gates only
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// cellInfoFor returns what entry e draws on qubit's wire. A nil entry is an
// empty wire.
func cellInfoFor(e *quantum.LogEntry, qubit int) cellInfo {
	var info cellInfo
	if e == nil {
		return info
	}

	if e.Kind != quantum.Controlled {
		if e.Target() == qubit {
			info.name = gateDisplayName(e.Gate)
		}
		return info
	}

	c, t := e.Control(), e.Target()
	switch qubit {
	case c:
		info.symbol = controlSymbol(e.Gate)
	case t:
		info.symbol = targetSymbol(e.Gate)
	}
	lo, hi := min(c, t), max(c, t)
	if qubit >= lo && qubit <= hi {
		info.vertAbove = qubit > lo
		info.vertBelow = qubit < hi
		info.passThrough = info.symbol == ""
	}
	return info
}

// renderCell returns 3 lines (top, mid, bot) for a single cell, each exactly
// cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	if hl != hlNone {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1
		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		if info.passThrough {
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		}
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1
	margin := (cellW - gateBoxW) / 2
	rightMargin := cellW - margin - gateBoxW

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.name != "":
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padCenter(info.name, gateNameW)+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case info.symbol != "":
		mid = strings.Repeat("─", dashL) + gateStyle.Render(info.symbol) + strings.Repeat("─", dashR)
	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// visibleColumns returns the first column shown and how many fit in width.
// The column after the last applied gate (where the next gate lands) is
// always counted.
func (m Model) visibleColumns(width int) (start, count int) {
	count = max((width-labelVisualW-4)/cellW, 1)
	total := len(m.history) + 1
	start = max(total-count-m.scroll, 0)
	return start, count
}

// renderCircuitPanel renders the circuit grid, one column per applied gate.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	fmt.Fprintf(&sb, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d qubit(s), %d gate(s)", m.session.NumQubits(), len(m.history))))

	start, count := m.visibleColumns(width)
	if start > 0 {
		fmt.Fprintf(&sb, "  ◀ showing columns %d–%d\n", start, start+count-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for col := start; col < start+count; col++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", col), cellW))
	}
	sb.WriteString(header + "\n")

	next := len(m.history)
	for qubit, n := 0, m.session.NumQubits(); qubit < n; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for col := start; col < start+count; col++ {
			var entry *quantum.LogEntry
			if col < len(m.history) {
				entry = &m.history[col]
			}
			info := cellInfoFor(entry, qubit)

			hl := hlNone
			if col == next && qubit == m.cursorQubit && m.focus != focusQASM {
				hl = hlCursor
			} else if col == next && qubit == m.targetQubit && m.focus == focusSelectTarget {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if m.focus == focusSelectTarget {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingGate))
		fmt.Fprintf(&sb, "  control q[%d], select target: ", m.cursorQubit)
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Qubit %d", m.cursorQubit)
		if m.statusMsg != "" {
			style := activeGateStyle
			if m.statusErr {
				style = errorStyle
			}
			fmt.Fprintf(&sb, "  │  %s", style.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// formatAmplitude prints a + bi with four decimals.
func formatAmplitude(a quantum.Amplitude) string {
	return fmt.Sprintf("%+.4f %+.4fi", real(a), imag(a))
}

// probBar draws p in [0,1] as a bar of probBarW cells.
func probBar(p float64) string {
	filled := min(max(int(math.Round(p*probBarW)), 0), probBarW)
	return probBarStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", probBarW-filled))
}

// renderStatePanel lists basis states with their amplitudes. When the
// register has more basis states than rows, only non-zero amplitudes are
// listed.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("State Vector"))
	sb.WriteString("\n")

	rows := max(height-4, 1)
	basis := m.session.CurrentState()
	shown := basis
	if len(basis) > rows {
		shown = nil
		for _, b := range basis {
			if b.Probability > 1e-10 {
				shown = append(shown, b)
			}
		}
	}

	for i, b := range shown {
		if i == rows {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more\n", len(shown)-rows)))
			break
		}
		label := qubitLabelStyle.Render("|" + b.Bits + "⟩")
		amp := formatAmplitude(b.Amplitude)
		if b.Probability <= 1e-10 {
			amp = dimStyle.Render(amp)
		}
		fmt.Fprintf(&sb, "%s  %s  %s %5.1f%%\n", label, amp, probBar(b.Probability), 100*b.Probability)
	}

	sb.WriteString("\n")
	for q, p := range m.session.State().QubitProbabilities() {
		if q > 0 {
			sb.WriteString(dimStyle.Render("  "))
		}
		fmt.Fprintf(&sb, "q%d:%s", q, activeGateStyle.Render(fmt.Sprintf("%.2f", p.Prob1)))
	}

	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM"
	if m.focus == focusQASM {
		title += " [EDITING]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Select qubit  ←→/hl Scroll  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Edit QASM  u Undo  ^R Reset  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderSplash is shown instead of the panels when the terminal is too small.
func renderSplash(width, height int) string {
	banner := strings.Join(figure.NewFigure("qsim", "standard", true).Slicify(), "\n")
	msg := dimStyle.Render(fmt.Sprintf("terminal is %dx%d, need at least %dx%d", width, height, minWidth, minHeight))
	body := lipgloss.JoinVertical(lipgloss.Center, titleStyle.Render(banner), "", msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// visible position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceLineAt(bgLines[row], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay, keeping the escape sequences on either side intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return left + overlay + right
}
