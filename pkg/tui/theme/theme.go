package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Grid   GridTheme
	Panel  PanelTheme
	Modal  ModalTheme
	Footer FooterTheme
}

// GridTheme styles the month grid cells.
type GridTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	HasEvent lipgloss.Style
	Span     lipgloss.Style
	Summary  lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// ModalTheme styles centered modal overlays (detail panes, forms).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Error lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("212")).
		Padding(0, 1)

	return Theme{
		Grid: GridTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			HasEvent: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Span:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true),
			Summary:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
		Panel: PanelTheme{
			Frame: frame,
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Modal: ModalTheme{
			Frame: frame,
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("117")),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
