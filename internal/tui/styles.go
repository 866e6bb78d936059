package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/complykit/compmap/internal/model"
)

// Colors (theme-aware - updated by theme.go)
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	WarningColor   = lipgloss.Color("#FFCC00")
	ErrorColor     = lipgloss.Color("#FF5F56")
	SubtleColor    = lipgloss.Color("#626262")
	// Control severity colors
	CriticalColor = lipgloss.Color("#9B0000")
	HighColor     = lipgloss.Color("#FF5F56")
	MediumColor   = lipgloss.Color("#FFCC00")
	LowColor      = lipgloss.Color("#04B575")
	// Coverage colors
	CoveredColor = lipgloss.Color("#04B575")
	MissingColor = lipgloss.Color("#FF5F56")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(PrimaryColor).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Detail view styles
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC")).
				Width(80)

	// Badge styles
	CoveredBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(CoveredColor).
			Padding(0, 1)

	MissingBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(MissingColor).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	SelectedItemStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(PrimaryColor).
				PaddingLeft(1)

	NormalItemStyle = lipgloss.NewStyle().
				PaddingLeft(2)
)

// SeverityStyle returns the style for a control severity
func SeverityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityCritical:
		return lipgloss.NewStyle().Foreground(CriticalColor).Bold(true)
	case model.SeverityHigh:
		return lipgloss.NewStyle().Foreground(HighColor)
	case model.SeverityLow:
		return lipgloss.NewStyle().Foreground(LowColor)
	default:
		return lipgloss.NewStyle().Foreground(MediumColor)
	}
}
