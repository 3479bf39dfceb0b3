package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arxos/cadtool/pkg/floorplan"
)

// Viewer wraps a bubbletea program running the layout Model (teacher's
// internal/tui.TUI.RunDashboard shape, adapted to a single-shot CAD viewer
// instead of a config-gated, repository-backed dashboard).
type Viewer struct {
	plan      floorplan.ProcessedPlan
	settings  floorplan.Settings
	recompute RecomputeFunc
}

// NewViewer builds a Viewer for plan/settings, using recompute to
// (re)run placement and routing whenever the viewer needs a layout.
func NewViewer(plan floorplan.ProcessedPlan, settings floorplan.Settings, recompute RecomputeFunc) *Viewer {
	return &Viewer{plan: plan, settings: settings, recompute: recompute}
}

// Run starts the interactive terminal viewer and blocks until the user
// quits.
func (v *Viewer) Run() error {
	model := NewModel(v.plan, v.settings, v.recompute)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
