// Package tui implements the interactive standards browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/export"
	"github.com/complykit/compmap/internal/mapping"
	"github.com/complykit/compmap/internal/model"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewCoverageChart
	ViewSeverityChart
	ViewReportPreview
	ViewExportMenu
)

// Config tells the browser where to find definitions and where to export
type Config struct {
	StandardsDir string
	PoliciesDir  string
	OutputDir    string
}

// ExportOption represents an export menu entry
type ExportOption struct {
	Name   string
	Format export.Format
}

// Messages
type DataLoadedMsg struct {
	Catalog  *catalog.Catalog
	Policies []model.Policy
}

type ErrorMsg struct {
	Err error
}

type StatusMsg struct {
	Msg string
}

// Model is the main application model
type Model struct {
	cfg      Config
	list     list.Model
	catalog  *catalog.Catalog
	policies []model.Policy
	mapper   *mapping.Mapper
	report   *mapping.Report

	spinner       spinner.Model
	loading       bool
	err           error
	width         int
	height        int
	view          ViewState
	selected      *model.StandardItem
	keys          KeyMap
	help          help.Model
	showHelp      bool
	viewport      viewport.Model
	viewportReady bool
	statusMsg     string

	exportOptions       []ExportOption
	selectedExportIndex int
}

// NewModel creates a new application model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	h := help.New()
	h.ShowAll = false

	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	return Model{
		cfg:     cfg,
		spinner: s,
		loading: true,
		keys:    DefaultKeyMap(),
		help:    h,
		exportOptions: []ExportOption{
			{Name: "JSON report", Format: export.FormatJSON},
			{Name: "CSV report", Format: export.FormatCSV},
			{Name: "Markdown report", Format: export.FormatMarkdown},
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadData())
}

func (m Model) loadData() tea.Cmd {
	return func() tea.Msg {
		cat, err := catalog.LoadDir(m.cfg.StandardsDir)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		policies, err := catalog.LoadPolicies(m.cfg.PoliciesDir)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DataLoadedMsg{Catalog: cat, Policies: policies}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.statusMsg = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "?" {
			m.showHelp = !m.showHelp
			return m, nil
		}

		switch m.view {
		case ViewList:
			return m.updateList(msg)
		case ViewExportMenu:
			return m.updateExportMenu(msg)
		default:
			return m.updateSubView(msg)
		}

	case DataLoadedMsg:
		m.loading = false
		m.catalog = msg.Catalog
		m.policies = msg.Policies
		m.mapper = mapping.NewMapper(msg.Catalog)
		m.report = m.mapper.Aggregate(msg.Policies)

		items := make([]list.Item, 0, m.catalog.Len())
		for _, std := range m.catalog.Standards() {
			items = append(items, model.StandardItem{Standard: std})
		}

		delegate := NewStandardDelegate()
		delegate.Coverage = m.coverageCounts

		l := list.New(items, delegate, m.width, m.listHeight())
		l.Title = fmt.Sprintf("Compliance Standards (%d policies mapped)", m.report.Summary.TotalPolicies)
		l.Styles.Title = TitleStyle
		l.SetShowHelp(false)
		m.list = l
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Msg
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.loading && m.err == nil {
			m.list.SetSize(msg.Width, m.listHeight())
		}
		if m.viewportReady {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - 6
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.view == ViewList && !m.loading && m.err == nil {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.err != nil {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(model.StandardItem); ok {
				m.selected = &item
				m.view = ViewDetail
				m.viewport = viewport.New(m.width-4, m.height-6)
				m.viewport.SetContent(m.renderDetailContent())
				m.viewportReady = true
			}
			return m, nil
		case "c":
			m.view = ViewCoverageChart
			return m, nil
		case "v":
			m.view = ViewSeverityChart
			return m, nil
		case "p":
			m.view = ViewReportPreview
			m.viewport = viewport.New(m.width-4, m.height-6)
			m.viewport.SetContent(m.renderReportPreview())
			m.viewportReady = true
			return m, nil
		case "e":
			m.view = ViewExportMenu
			m.selectedExportIndex = 0
			return m, nil
		case "t":
			name := CycleTheme()
			m.statusMsg = fmt.Sprintf("Theme: %s", name)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateExportMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.view = ViewList
		return m, nil
	case "up", "k":
		if m.selectedExportIndex > 0 {
			m.selectedExportIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedExportIndex < len(m.exportOptions)-1 {
			m.selectedExportIndex++
		}
		return m, nil
	case "enter":
		option := m.exportOptions[m.selectedExportIndex]
		m.view = ViewList
		return m, m.runExport(option)
	}
	return m, nil
}

func (m Model) updateSubView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.view = ViewList
		m.selected = nil
		return m, nil
	case "q":
		return m, tea.Quit
	}

	if m.viewportReady && (m.view == ViewDetail || m.view == ViewReportPreview) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) runExport(option ExportOption) tea.Cmd {
	report := m.report
	outputDir := m.cfg.OutputDir
	return func() tea.Msg {
		result := export.ExportReport(report, option.Format, outputDir)
		if result.Err != nil {
			return StatusMsg{Msg: fmt.Sprintf("Export failed: %v", result.Err)}
		}
		return StatusMsg{Msg: fmt.Sprintf("Exported %s", result.FilePath)}
	}
}

// coverageCounts reports how many of a standard's controls any policy covers
func (m Model) coverageCounts(standardID string) (covered, total int) {
	if m.catalog == nil || m.report == nil {
		return 0, 0
	}
	std, ok := m.catalog.Get(standardID)
	if !ok {
		return 0, 0
	}
	controls := m.report.Summary.ControlsCovered[standardID]
	for _, c := range std.Controls {
		if controls.Has(c.ID) {
			covered++
		}
	}
	return covered, len(std.Controls)
}

func (m Model) listHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the current view
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading standards and policies...\n", m.spinner.View())
	}
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("\n  Error: %v\n\n  q to quit\n", m.err))
	}

	var body string
	switch m.view {
	case ViewDetail:
		body = m.renderDetailFrame()
	case ViewCoverageChart:
		body = RenderCoverageChart(m.report, m.catalog, m.width, m.height)
	case ViewSeverityChart:
		body = RenderSeverityChart(m.catalog, m.width, m.height)
	case ViewReportPreview:
		body = m.renderPreviewFrame()
	case ViewExportMenu:
		body = m.renderExportMenu()
	default:
		body = m.list.View()
	}

	footer := ""
	if m.statusMsg != "" {
		footer = "\n" + StatusStyle.Render(m.statusMsg)
	}
	if m.showHelp {
		footer += "\n" + m.help.View(m.keys)
	}

	return body + footer
}

func (m Model) renderDetailFrame() string {
	if !m.viewportReady {
		return "Loading..."
	}
	header := TitleStyle.Render("Standard Detail")
	footer := HelpStyle.Render("↑/↓ scroll • esc back • q quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.viewport.View(), footer)
}

func (m Model) renderPreviewFrame() string {
	if !m.viewportReady {
		return "Loading..."
	}
	header := TitleStyle.Render("Report Preview")
	footer := HelpStyle.Render("↑/↓ scroll • esc back • q quit")
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.viewport.View(), footer)
}

// renderDetailContent builds the control listing for the selected standard
func (m Model) renderDetailContent() string {
	if m.selected == nil {
		return ""
	}
	std := m.selected.Standard

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Standard") + ValueStyle.Render(std.Name) + "\n")
	b.WriteString(LabelStyle.Render("ID") + ValueStyle.Render(std.ID) + "\n")
	if std.Version != "" {
		b.WriteString(LabelStyle.Render("Version") + ValueStyle.Render(std.Version) + "\n")
	}
	covered, total := m.coverageCounts(std.ID)
	b.WriteString(LabelStyle.Render("Coverage") + CoverageBadge(covered, total) + "\n\n")

	controls := m.report.Summary.ControlsCovered[std.ID]
	for _, c := range std.Controls {
		badge := MissingBadge.Render("missing")
		if controls.Has(c.ID) {
			badge = CoveredBadge.Render("covered")
		}
		sev := SeverityStyle(c.Severity).Render(string(c.Severity))
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true).Render(c.ID),
			sev, badge, ValueStyle.Render(c.Title)))
		if c.Description != "" {
			b.WriteString(DescriptionStyle.Render(c.Description) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderReportPreview renders the aggregated report as styled markdown
func (m Model) renderReportPreview() string {
	md := export.ReportMarkdown(m.report)

	width := m.width - 8
	if width < 40 {
		width = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) renderExportMenu() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Export Report"))
	b.WriteString("\n\n")

	for i, option := range m.exportOptions {
		cursor := "  "
		style := ValueStyle
		if i == m.selectedExportIndex {
			cursor = "> "
			style = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
		}
		b.WriteString(cursor + style.Render(option.Name) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter export • esc back"))
	return b.String()
}
