package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/complykit/compmap/internal/model"
)

// StandardDelegate is a custom delegate for rendering standard items
type StandardDelegate struct {
	ShowDescription bool
	Styles          StandardDelegateStyles
	// Coverage returns covered/total control counts for a standard id,
	// nil when no policy batch is loaded
	Coverage func(standardID string) (covered, total int)
}

// StandardDelegateStyles contains the styles for the delegate
type StandardDelegateStyles struct {
	NormalTitle   lipgloss.Style
	NormalDesc    lipgloss.Style
	SelectedTitle lipgloss.Style
	SelectedDesc  lipgloss.Style
	DimmedTitle   lipgloss.Style
	DimmedDesc    lipgloss.Style
	IDStyle       lipgloss.Style
}

// NewStandardDelegate creates a new delegate with default styles
func NewStandardDelegate() StandardDelegate {
	return StandardDelegate{
		ShowDescription: true,
		Styles: StandardDelegateStyles{
			NormalTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
			NormalDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			SelectedTitle: lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true),
			SelectedDesc:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
			DimmedTitle:   lipgloss.NewStyle().Foreground(SubtleColor),
			DimmedDesc:    lipgloss.NewStyle().Foreground(SubtleColor),
			IDStyle:       lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true),
		},
	}
}

// Height returns the height of each item
func (d StandardDelegate) Height() int {
	if d.ShowDescription {
		return 2
	}
	return 1
}

// Spacing returns the spacing between items
func (d StandardDelegate) Spacing() int {
	return 1
}

// Update handles item updates
func (d StandardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single item
func (d StandardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	std, ok := item.(model.StandardItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	isFiltering := m.FilterState() == list.Filtering

	var titleStyle, descStyle, idStyle lipgloss.Style
	if isFiltering {
		titleStyle = d.Styles.DimmedTitle
		descStyle = d.Styles.DimmedDesc
		idStyle = d.Styles.DimmedTitle
	} else if isSelected {
		titleStyle = d.Styles.SelectedTitle
		descStyle = d.Styles.SelectedDesc
		idStyle = d.Styles.IDStyle
	} else {
		titleStyle = d.Styles.NormalTitle
		descStyle = d.Styles.NormalDesc
		idStyle = d.Styles.IDStyle
	}

	idPrefix := idStyle.Render(fmt.Sprintf("[%s]", std.ID))
	title := titleStyle.Render(" " + std.Title())

	indicators := ""
	if d.Coverage != nil {
		covered, total := d.Coverage(std.ID)
		if total > 0 {
			indicators = " " + CoverageBadge(covered, total)
		}
	}

	line := idPrefix + title + indicators

	if isSelected {
		line = SelectedItemStyle.Render(line)
	} else {
		line = NormalItemStyle.Render(line)
	}

	fmt.Fprint(w, line)

	if d.ShowDescription {
		desc := descStyle.Render(std.Description())
		if isSelected {
			desc = SelectedItemStyle.Render(desc)
		} else {
			desc = NormalItemStyle.Render(desc)
		}
		fmt.Fprint(w, "\n"+desc)
	}
}

// CoverageBadge renders a colored covered/total badge
func CoverageBadge(covered, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(covered) / float64(total) * 100
	}

	color := MissingColor
	switch {
	case pct >= 80:
		color = CoveredColor
	case pct >= 40:
		color = WarningColor
	}

	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(fmt.Sprintf("%d/%d", covered, total))
}
