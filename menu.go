package main

import (
	"fmt"
	"strings"

	"qcircsim/internal/quantum"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateType    string
	symbol      string
	needsTarget bool
	params      int
	paramHint   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu is built from the gate catalog once at startup.
var gateMenu = buildGateMenu(quantum.Catalog())

// buildGateMenu sorts catalog entries into the picker's tabs: fixed
// single-qubit gates, rotations, and two-qubit gates.
func buildGateMenu(gates []quantum.GateDef) []menuCategory {
	single := menuCategory{name: "Single Qubit"}
	rotation := menuCategory{name: "Rotation"}
	multi := menuCategory{name: "Multi Qubit"}

	for _, g := range gates {
		item := menuItem{
			name:     g.Description,
			gateType: g.Name,
			symbol:   gateDisplayName(g.Name),
			params:   g.Params,
		}
		switch {
		case g.Kind == quantum.Controlled:
			item.needsTarget = true
			item.symbol = controlSymbol(g.Name) + "─" + targetSymbol(g.Name)
			multi.items = append(multi.items, item)
		case g.Params > 0:
			item.paramHint = "pi/2"
			rotation.items = append(rotation.items, item)
		default:
			single.items = append(single.items, item)
		}
	}

	var menu []menuCategory
	for _, cat := range []menuCategory{single, rotation, multi} {
		if len(cat.items) > 0 {
			menu = append(menu, cat)
		}
	}
	return menu
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  on q[%d]", m.cursorQubit)))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.params > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// renderParamInput renders the angle prompt overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Angle"))
	sb.WriteString(dimStyle.Render("  " + m.pendingGate))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "θ: %s_", m.paramInput)
	sb.WriteString("\n\n")
	if m.statusErr {
		sb.WriteString(errorStyle.Render(m.statusMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
