package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme is the palette a renderer draws from (teacher's
// cmd/arx/tui/utils.ColorScheme, trimmed to what a floor plan view needs).
type ColorScheme struct {
	Wall     lipgloss.Color
	Small    lipgloss.Color
	Medium   lipgloss.Color
	Large    lipgloss.Color
	XLarge   lipgloss.Color
	Corridor lipgloss.Color
	Door     lipgloss.Color
	Muted    lipgloss.Color
	Header   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal palette.
var DefaultTheme = ColorScheme{
	Wall:     lipgloss.Color("#888"),
	Small:    lipgloss.Color("#42"),
	Medium:   lipgloss.Color("#214"),
	Large:    lipgloss.Color("#196"),
	XLarge:   lipgloss.Color("#160"),
	Corridor: lipgloss.Color("#06B"),
	Door:     lipgloss.Color("#CC6600"),
	Muted:    lipgloss.Color("#666"),
	Header:   lipgloss.Color("#0066CC"),
}

// Styles holds the rendered lipgloss.Style values for a ColorScheme.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Muted    lipgloss.Style
	Wall     lipgloss.Style
	Small    lipgloss.Style
	Medium   lipgloss.Style
	Large    lipgloss.Style
	XLarge   lipgloss.Style
	Corridor lipgloss.Style
	Door     lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles builds Styles from a ColorScheme.
func NewStyles(c ColorScheme) Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(c.Header).Bold(true),
		Footer:   lipgloss.NewStyle().Foreground(c.Muted),
		Muted:    lipgloss.NewStyle().Foreground(c.Muted),
		Wall:     lipgloss.NewStyle().Foreground(c.Wall),
		Small:    lipgloss.NewStyle().Foreground(c.Small).Bold(true),
		Medium:   lipgloss.NewStyle().Foreground(c.Medium).Bold(true),
		Large:    lipgloss.NewStyle().Foreground(c.Large).Bold(true),
		XLarge:   lipgloss.NewStyle().Foreground(c.XLarge).Bold(true),
		Corridor: lipgloss.NewStyle().Foreground(c.Corridor),
		Door:     lipgloss.NewStyle().Foreground(c.Door).Bold(true),
		Border:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(0, 1),
	}
}
