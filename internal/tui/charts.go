package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/mapping"
	"github.com/complykit/compmap/internal/model"
)

// StandardCoverage holds coverage data for a single standard
type StandardCoverage struct {
	StandardID string
	Covered    int
	Total      int
}

// Percentage returns the coverage percentage, 100 for a standard without
// controls
func (c StandardCoverage) Percentage() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Covered) / float64(c.Total) * 100
}

// GetCoverage computes per-standard coverage of the aggregated report
// against the full catalog, sorted by ascending coverage so the widest gaps
// lead
func GetCoverage(report *mapping.Report, cat *catalog.Catalog) []StandardCoverage {
	if report == nil || cat == nil {
		return nil
	}

	var stats []StandardCoverage
	for _, std := range cat.Standards() {
		covered := 0
		if controls, ok := report.Summary.ControlsCovered[std.ID]; ok {
			for _, c := range std.Controls {
				if controls.Has(c.ID) {
					covered++
				}
			}
		}
		stats = append(stats, StandardCoverage{
			StandardID: std.ID,
			Covered:    covered,
			Total:      len(std.Controls),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Percentage() != stats[j].Percentage() {
			return stats[i].Percentage() < stats[j].Percentage()
		}
		return stats[i].StandardID < stats[j].StandardID
	})
	return stats
}

// SeverityStats holds control counts per severity for the whole catalog
type SeverityStats struct {
	Severity model.Severity
	Count    int
}

// GetSeverityStats counts cataloged controls by severity, highest first
func GetSeverityStats(cat *catalog.Catalog) []SeverityStats {
	if cat == nil {
		return nil
	}

	counts := make(map[model.Severity]int)
	for _, std := range cat.Standards() {
		for _, c := range std.Controls {
			counts[c.Severity]++
		}
	}

	order := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
	}

	var stats []SeverityStats
	for _, sev := range order {
		if counts[sev] > 0 {
			stats = append(stats, SeverityStats{Severity: sev, Count: counts[sev]})
		}
	}
	return stats
}

// RenderCoverageChart renders a bar chart of coverage percentage per standard
func RenderCoverageChart(report *mapping.Report, cat *catalog.Catalog, width, height int) string {
	stats := GetCoverage(report, cat)
	if len(stats) == 0 {
		return "No coverage data available"
	}

	var b strings.Builder

	title := TitleStyle.Render("Control Coverage by Standard")
	b.WriteString(title)
	b.WriteString("\n\n")

	bc := barchart.New(width-4, height-8,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(4),
		barchart.WithBarGap(1),
	)

	var items []barchart.BarData
	for _, s := range stats {
		color := coverageColor(s.Percentage())
		items = append(items, barchart.BarData{
			Label: truncateString(s.StandardID, 12),
			Values: []barchart.BarValue{{
				Name:  s.StandardID,
				Value: s.Percentage(),
				Style: lipgloss.NewStyle().Foreground(color),
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	// Legend with exact counts
	for _, s := range stats {
		marker := lipgloss.NewStyle().Foreground(coverageColor(s.Percentage())).Render("█")
		b.WriteString(fmt.Sprintf("%s %s: %d/%d controls (%.1f%%)\n",
			marker, s.StandardID, s.Covered, s.Total, s.Percentage()))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("esc back • q quit"))

	return b.String()
}

// RenderSeverityChart renders a bar chart of cataloged controls by severity
func RenderSeverityChart(cat *catalog.Catalog, width, height int) string {
	stats := GetSeverityStats(cat)
	if len(stats) == 0 {
		return "No severity data available"
	}

	var b strings.Builder

	title := TitleStyle.Render("Cataloged Controls by Severity")
	b.WriteString(title)
	b.WriteString("\n\n")

	bc := barchart.New(width-4, height-8,
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(6),
		barchart.WithBarGap(2),
	)

	var items []barchart.BarData
	for _, s := range stats {
		style := SeverityStyle(s.Severity)
		items = append(items, barchart.BarData{
			Label: string(s.Severity),
			Values: []barchart.BarValue{{
				Name:  string(s.Severity),
				Value: float64(s.Count),
				Style: style,
			}},
		})
	}
	bc.PushAll(items)
	bc.Draw()

	b.WriteString(bc.View())
	b.WriteString("\n\n")

	for _, s := range stats {
		marker := SeverityStyle(s.Severity).Render("█")
		b.WriteString(fmt.Sprintf("%s %s: %d\n", marker, s.Severity, s.Count))
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("esc back • q quit"))

	return b.String()
}

func coverageColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return CoveredColor
	case pct >= 40:
		return WarningColor
	default:
		return MissingColor
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
