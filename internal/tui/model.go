package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arxos/cadtool/pkg/floorplan"
)

// RecomputeFunc reruns placement and routing for the current plan and
// settings. The viewer calls it on startup and whenever the user presses
// "r" to recompute. Kept as an injected closure (teacher's DashboardModel
// takes a *services.DataService the same way) so this package never
// imports internal/placement or internal/corridor directly.
type RecomputeFunc func(ctx context.Context) (floorplan.Layout, error)

type layoutMsg struct {
	layout floorplan.Layout
}

type errMsg struct {
	err error
}

const (
	tabLayout = iota
	tabMetrics
	tabCount
)

var tabNames = [tabCount]string{"layout", "metrics"}

// Model is the bubbletea model for `cadtool view` (teacher's
// cmd/arx/tui/models.DashboardModel Init/Update/View shape, adapted from a
// live building dashboard to a one-shot CAD layout viewer).
type Model struct {
	plan     floorplan.ProcessedPlan
	settings floorplan.Settings
	layout   floorplan.Layout
	recompute RecomputeFunc

	styles Styles

	width, height int
	selectedTab   int
	loading       bool
	err           error
	lastRun       time.Time
}

// NewModel builds the initial viewer model. The plan and settings are
// fixed for the session; recompute supplies a fresh layout on demand.
func NewModel(plan floorplan.ProcessedPlan, settings floorplan.Settings, recompute RecomputeFunc) Model {
	return Model{
		plan:      plan,
		settings:  settings,
		recompute: recompute,
		styles:    NewStyles(DefaultTheme),
		loading:   true,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.runRecompute()
}

func (m Model) runRecompute() tea.Cmd {
	return func() tea.Msg {
		layout, err := m.recompute(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return layoutMsg{layout: layout}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.selectedTab = (m.selectedTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.selectedTab = (m.selectedTab - 1 + tabCount) % tabCount
			return m, nil
		case "r":
			m.loading = true
			m.err = nil
			return m, m.runRecompute()
		}

	case layoutMsg:
		m.layout = msg.layout
		m.loading = false
		m.err = nil
		m.lastRun = time.Now()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var content strings.Builder
	content.WriteString(m.renderHeader())
	content.WriteString("\n\n")

	switch {
	case m.loading:
		content.WriteString(m.styles.Muted.Render("computing layout..."))
	case m.err != nil:
		content.WriteString(m.styles.Door.Render(fmt.Sprintf("error: %v", m.err)))
	case m.selectedTab == tabMetrics:
		content.WriteString(m.renderMetrics())
	default:
		content.WriteString(m.renderLayout())
	}

	content.WriteString("\n\n")
	content.WriteString(m.renderFooter())
	return content.String()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("cadtool view — tab: %s", tabNames[m.selectedTab])
	if !m.lastRun.IsZero() {
		title += fmt.Sprintf(" (last run %s ago)", time.Since(m.lastRun).Round(time.Second))
	}
	return m.styles.Header.Render(title)
}

func (m Model) renderLayout() string {
	renderer := NewRenderer(m.width, m.height, m.plan.Bounds, m.styles)
	return renderer.Render(m.plan, m.layout)
}

func (m Model) renderMetrics() string {
	lm := m.layout.Metrics
	body := fmt.Sprintf(
		"îlots placed:      %d\n"+
			"total îlot area:   %.1f m²\n"+
			"corridor length:   %.1f mm\n"+
			"occupancy:         %.1f%%\n"+
			"accessibility:     %.2f\n"+
			"fire compliance:   %.2f\n"+
			"flow efficiency:   %.2f\n"+
			"overall score:     %.2f\n",
		lm.IlotCount, lm.TotalIlotAreaM2, lm.TotalCorridorLengthMM,
		lm.OccupancyPct, lm.AccessibilityScore, lm.FireComplianceScore,
		lm.FlowEfficiencyScore, lm.OverallScore,
	)
	return m.styles.Border.Render(body)
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render("tab: switch view  r: recompute  q: quit")
}
