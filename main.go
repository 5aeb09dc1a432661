package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qcircsim/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "qcircsim:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := newModel(cfg, log)
	if err != nil {
		return err
	}
	log.Info().Str("session", m.session.ID()).Int("qubits", cfg.Qubits).Msg("starting")

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
