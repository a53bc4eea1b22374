// Package tui is the interactive planner grid: a bubbletea app over an open
// planner session. All board mutation goes through the session's command
// executor, so the grid gets undo/redo and persistence for free.
package tui

import (
	"context"
	"fmt"
	"os"

	"listical-cli/internal/bus"
	"listical-cli/internal/planner"

	tea "github.com/charmbracelet/bubbletea"
)

// Run blocks until the user quits.
func Run(ses *planner.Session) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// External edits to the workspace reload the board under us.
	if err := ses.Watch(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tui: watch disabled: %v\n", err)
	}

	events := ses.Bus.Subscribe(bus.TopicStateReloaded, bus.TopicStateSaved)

	m := newGridModel(ses, events)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()

	m.saveUIState()
	return err
}
