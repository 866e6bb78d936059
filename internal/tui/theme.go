package tui

import "github.com/charmbracelet/lipgloss"

// ThemeName identifies a color theme
type ThemeName string

const (
	ThemeDefault ThemeName = "default"
	ThemeDracula ThemeName = "dracula"
	ThemeNord    ThemeName = "nord"
)

// Theme holds color definitions for the TUI
type Theme struct {
	Name       ThemeName
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Subtle     lipgloss.Color
	Critical   lipgloss.Color
	High       lipgloss.Color
	Medium     lipgloss.Color
	Low        lipgloss.Color
	Covered    lipgloss.Color
	Missing    lipgloss.Color
	Foreground lipgloss.Color
}

// Themes available in the application
var Themes = map[ThemeName]Theme{
	ThemeDefault: {
		Name:       ThemeDefault,
		Primary:    lipgloss.Color("#7D56F4"),
		Secondary:  lipgloss.Color("#04B575"),
		Subtle:     lipgloss.Color("#626262"),
		Critical:   lipgloss.Color("#9B0000"),
		High:       lipgloss.Color("#FF5F56"),
		Medium:     lipgloss.Color("#FFCC00"),
		Low:        lipgloss.Color("#04B575"),
		Covered:    lipgloss.Color("#04B575"),
		Missing:    lipgloss.Color("#FF5F56"),
		Foreground: lipgloss.Color("#FFFFFF"),
	},
	ThemeDracula: {
		Name:       ThemeDracula,
		Primary:    lipgloss.Color("#bd93f9"), // Purple
		Secondary:  lipgloss.Color("#50fa7b"), // Green
		Subtle:     lipgloss.Color("#6272a4"), // Comment
		Critical:   lipgloss.Color("#ff5555"), // Red
		High:       lipgloss.Color("#ffb86c"), // Orange
		Medium:     lipgloss.Color("#f1fa8c"), // Yellow
		Low:        lipgloss.Color("#50fa7b"), // Green
		Covered:    lipgloss.Color("#50fa7b"), // Green
		Missing:    lipgloss.Color("#ff5555"), // Red
		Foreground: lipgloss.Color("#f8f8f2"),
	},
	ThemeNord: {
		Name:       ThemeNord,
		Primary:    lipgloss.Color("#5e81ac"), // Nord10
		Secondary:  lipgloss.Color("#a3be8c"), // Nord14
		Subtle:     lipgloss.Color("#4c566a"), // Nord3
		Critical:   lipgloss.Color("#bf616a"), // Nord11
		High:       lipgloss.Color("#d08770"), // Nord12
		Medium:     lipgloss.Color("#ebcb8b"), // Nord13
		Low:        lipgloss.Color("#a3be8c"), // Nord14
		Covered:    lipgloss.Color("#a3be8c"), // Nord14
		Missing:    lipgloss.Color("#bf616a"), // Nord11
		Foreground: lipgloss.Color("#eceff4"), // Nord6
	},
}

// CurrentTheme is the active theme
var CurrentTheme = Themes[ThemeDefault]

// SetTheme changes the active theme
func SetTheme(name ThemeName) {
	if theme, ok := Themes[name]; ok {
		CurrentTheme = theme
		updateStyles()
	}
}

// CycleTheme switches to the next theme
func CycleTheme() ThemeName {
	order := []ThemeName{ThemeDefault, ThemeDracula, ThemeNord}
	for i, name := range order {
		if name == CurrentTheme.Name {
			next := order[(i+1)%len(order)]
			SetTheme(next)
			return next
		}
	}
	SetTheme(ThemeDefault)
	return ThemeDefault
}

// updateStyles refreshes the global styles with current theme colors
func updateStyles() {
	PrimaryColor = CurrentTheme.Primary
	SecondaryColor = CurrentTheme.Secondary
	SubtleColor = CurrentTheme.Subtle
	CriticalColor = CurrentTheme.Critical
	HighColor = CurrentTheme.High
	MediumColor = CurrentTheme.Medium
	LowColor = CurrentTheme.Low
	CoveredColor = CurrentTheme.Covered
	MissingColor = CurrentTheme.Missing

	// Rebuild styles with new colors
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Foreground).
		Background(PrimaryColor).
		Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		Width(14)

	ValueStyle = lipgloss.NewStyle().
		Foreground(CurrentTheme.Foreground)

	CoveredBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Foreground).
		Background(CoveredColor).
		Padding(0, 1)

	MissingBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(CurrentTheme.Foreground).
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
}
