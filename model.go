package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"qcircsim/internal/config"
	"qcircsim/internal/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusInputParam
	focusSelectTarget
)

// Model represents the TUI application state. The session is the single
// source of truth; history is its log, cached for rendering.
type Model struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *quantum.Session
	history []quantum.LogEntry

	cursorQubit int
	scroll      int // columns scrolled back from the newest
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string
	statusErr   bool

	// Menu state
	menuCat  int
	menuItem int

	// Pending gate state, filled in by the menu, angle prompt and target picker
	pendingGate string
	targetQubit int
	paramInput  string
	params      []float64
}

func newModel(cfg *config.Config, log zerolog.Logger) (Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		cfg:        cfg,
		log:        log,
		qasmEditor: ta,
		focus:      focusCircuit,
	}

	s, err := quantum.NewSession(cfg.Qubits, m.sessionOptions()...)
	if err != nil {
		return m, err
	}
	m.setSession(s)
	return m, nil
}

func (m *Model) sessionOptions() []quantum.Option {
	return m.cfg.SessionOptions(m.log)
}

// setSession swaps in s and refreshes everything derived from it.
func (m *Model) setSession(s *quantum.Session) {
	m.session = s
	m.history = s.History()
	m.cursorQubit = min(m.cursorQubit, s.NumQubits()-1)
	m.scroll = 0
	m.syncEditor()
}

// syncEditor rewrites the QASM panel from the session history.
func (m *Model) syncEditor() {
	qasm := ToQASM(m.session.NumQubits(), m.history)
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.statusMsg = err.Error()
	m.statusErr = true
}

func (m *Model) clearPending() {
	m.pendingGate = ""
	m.paramInput = ""
	m.params = nil
}

// applyPending applies the pending gate on qubits and returns to the circuit.
func (m *Model) applyPending(qubits []int) {
	defer func() {
		m.clearPending()
		m.focus = focusCircuit
	}()

	if err := m.session.Apply(m.pendingGate, qubits, m.params...); err != nil {
		m.setError(err)
		return
	}
	m.history = m.session.History()
	m.scroll = 0
	m.syncEditor()
	m.setStatus(fmt.Sprintf("Applied %s", gateDisplayName(m.pendingGate)))
}

// startTargetSelect moves to target selection for a two-qubit gate, with
// the cursor qubit as control.
func (m *Model) startTargetSelect() {
	if m.session.NumQubits() < 2 {
		m.setError(fmt.Errorf("%w: %s needs at least 2 qubits", quantum.ErrInvalidQubitPair, m.pendingGate))
		m.clearPending()
		m.focus = focusCircuit
		return
	}
	m.focus = focusSelectTarget
	m.targetQubit = m.cursorQubit + 1
	if m.targetQubit >= m.session.NumQubits() {
		m.targetQubit = m.cursorQubit - 1
	}
}

// replay rebuilds the session over n qubits from entries and adopts it on
// success.
func (m *Model) replay(n int, entries []quantum.LogEntry) error {
	s, err := quantum.Replay(n, entries, m.sessionOptions()...)
	if err != nil {
		return err
	}
	m.setSession(s)
	return nil
}

func (m *Model) undo() {
	if len(m.history) == 0 {
		m.setStatus("Nothing to undo")
		return
	}
	last := m.history[len(m.history)-1]
	if err := m.replay(m.session.NumQubits(), m.history[:len(m.history)-1]); err != nil {
		m.setError(err)
		return
	}
	m.log.Info().Str("gate", last.Gate).Int("column", last.Column).Msg("undo")
	m.setStatus(fmt.Sprintf("Undid %s", gateDisplayName(last.Gate)))
}

func (m *Model) reset() {
	s, err := quantum.NewSession(m.session.NumQubits(), m.sessionOptions()...)
	if err != nil {
		m.setError(err)
		return
	}
	m.setSession(s)
	m.log.Info().Int("qubits", s.NumQubits()).Msg("reset")
	m.setStatus("Reset to |0…0⟩")
}

// resize changes the register to n qubits. Growing keeps every gate;
// shrinking drops the gates that touched the removed qubit.
func (m *Model) resize(n int) {
	cur := m.session.NumQubits()
	if n < 1 || n > m.cfg.MaxQubits {
		m.setError(fmt.Errorf("%w: register size must stay between 1 and %d", quantum.ErrInvalidDimension, m.cfg.MaxQubits))
		return
	}

	entries := m.history
	if n < cur {
		entries = m.session.HistoryWithout(n)
	}
	if err := m.replay(n, entries); err != nil {
		m.setError(err)
		return
	}
	m.log.Info().Int("from", cur).Int("to", n).Msg("resize register")
}

// parseQASMInput replays the editor contents whenever they change. Parse
// errors are shown without touching the session so editing can continue.
func (m *Model) parseQASMInput() {
	text := m.qasmEditor.Value()
	if text == m.lastQASM {
		return
	}
	m.lastQASM = text

	prog, err := ParseQASM(text)
	if err != nil {
		m.setError(err)
		return
	}
	s, err := quantum.Replay(prog.NumQubits, prog.Entries, m.sessionOptions()...)
	if err != nil {
		m.setError(err)
		return
	}
	m.session = s
	m.history = s.History()
	m.cursorQubit = min(m.cursorQubit, s.NumQubits()-1)
	m.setStatus(fmt.Sprintf("Loaded %d gate(s)", len(m.history)))
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		editorH := max(msg.Height-ctrlH-10, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			m.setStatus("")
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.reset()
			case "u":
				m.undo()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.session.NumQubits()-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.scroll < len(m.history) {
					m.scroll++
				}
			case "right", "l":
				if m.scroll > 0 {
					m.scroll--
				}
			case "+", "=":
				m.resize(m.session.NumQubits() + 1)
			case "-":
				m.resize(m.session.NumQubits() - 1)
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingGate = item.gateType
				switch {
				case item.params > 0:
					m.paramInput = ""
					m.focus = focusInputParam
				case item.needsTarget:
					m.startTargetSelect()
				default:
					m.applyPending([]int{m.cursorQubit})
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				params := parseAngles(m.paramInput)
				if params == nil {
					m.setError(fmt.Errorf("%w: use numbers or pi expressions (e.g. pi/2, 3*pi/4)", quantum.ErrInvalidParams))
					break
				}
				m.params = params
				if gateMenu[m.menuCat].items[m.menuItem].needsTarget {
					m.startTargetSelect()
				} else {
					m.applyPending([]int{m.cursorQubit})
				}
			default:
				if len(key) == 1 && isAngleRune(key[0]) {
					m.paramInput += key
				}
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.session.NumQubits(); next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.applyPending([]int{m.cursorQubit, m.targetQubit})
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
				if !m.statusErr {
					m.syncEditor()
				}
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return renderSplash(m.width, m.height)
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	topHeight := max(m.height-controlsHeight-2, 12)
	circuitHeight := min(3*m.session.NumQubits()+10, topHeight*3/5)
	stateHeight := max(topHeight-circuitHeight-2, 4)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCircuitPanel(leftWidth, circuitHeight),
		m.renderStatePanel(leftWidth, stateHeight),
	)
	qasmPanel := m.renderQASMPanel(qasmWidth, topHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, left, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}
