package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/export"
	"github.com/complykit/compmap/internal/mapping"
	"github.com/complykit/compmap/internal/model"
)

// Shared compliance data, loaded once from the configured directories
var (
	dataCatalog  *catalog.Catalog
	dataPolicies []model.Policy
	dataMapper   *mapping.Mapper
	dataReport   *mapping.Report
	dataOnce     sync.Once
	dataErr      error
)

func standardsDir() string {
	if dir := os.Getenv("COMPMAP_STANDARDS_DIR"); dir != "" {
		return dir
	}
	return "standards"
}

func policiesDir() string {
	if dir := os.Getenv("COMPMAP_POLICIES_DIR"); dir != "" {
		return dir
	}
	return "policies"
}

// getExportDir returns the safe export directory for agent-generated files
func getExportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	exportDir := filepath.Join(homeDir, ".compmap-exports")
	if err := os.MkdirAll(exportDir, 0700); err != nil {
		return "."
	}
	return exportDir
}

// ensureData loads the catalog and policies if not already cached.
// Uses sync.Once for thread-safe initialization in concurrent server mode.
func ensureData() error {
	dataOnce.Do(func() {
		if dataCatalog != nil {
			return
		}
		cat, err := catalog.LoadDir(standardsDir())
		if err != nil {
			dataErr = err
			return
		}
		policies, err := catalog.LoadPolicies(policiesDir())
		if err != nil {
			dataErr = err
			return
		}
		setData(cat, policies)
	})
	return dataErr
}

func setData(cat *catalog.Catalog, policies []model.Policy) {
	dataCatalog = cat
	dataPolicies = policies
	dataMapper = mapping.NewMapper(cat)
	dataReport = dataMapper.Aggregate(policies)
}

// --- Tool Input/Output Types ---

// ListStandardsParams for list_standards tool
type ListStandardsParams struct{}

// StandardSummary is a condensed view of a standard
type StandardSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Controls int    `json:"controls"`
}

// ListStandardsResult for list_standards tool
type ListStandardsResult struct {
	Count     int               `json:"count"`
	Standards []StandardSummary `json:"standards"`
}

// ControlDetailsParams for get_control_details tool
type ControlDetailsParams struct {
	StandardID string `json:"standard_id" jsonschema:"Standard identifier (e.g., SOC-2, ISO-27001)"`
	ControlID  string `json:"control_id" jsonschema:"Control identifier within the standard (e.g., CC6.1, A.8.24)"`
}

// ControlDetailsResult for get_control_details tool
type ControlDetailsResult struct {
	Found       bool   `json:"found"`
	StandardID  string `json:"standard_id,omitempty"`
	ControlID   string `json:"control_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// MapPolicyParams for map_policy tool
type MapPolicyParams struct {
	PolicyName string `json:"policy_name" jsonschema:"Name of the policy document to map (as declared in its metadata)"`
}

// MappingEntry pairs a standard with the controls a policy references
type MappingEntry struct {
	StandardID string   `json:"standard_id"`
	Controls   []string `json:"controls"`
}

// MapPolicyResult for map_policy tool
type MapPolicyResult struct {
	Found      bool           `json:"found"`
	PolicyName string         `json:"policy_name,omitempty"`
	Mappings   []MappingEntry `json:"mappings,omitempty"`
}

// CoverageParams for coverage_report tool
type CoverageParams struct{}

// StandardCoverageSummary for coverage_report tool
type StandardCoverageSummary struct {
	StandardID string   `json:"standard_id"`
	Covered    int      `json:"covered"`
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
	Missing    []string `json:"missing,omitempty"`
}

// CoverageResult for coverage_report tool
type CoverageResult struct {
	TotalPolicies int                       `json:"total_policies"`
	Standards     []StandardCoverageSummary `json:"standards"`
}

// GapCheckParams for gap_check tool
type GapCheckParams struct {
	StandardID       string   `json:"standard_id" jsonschema:"Standard to check against (e.g., SOC-2)"`
	RequiredControls []string `json:"required_controls,omitempty" jsonschema:"Control IDs that must be covered; defaults to every control of the standard"`
}

// GapCheckResult for gap_check tool
type GapCheckResult struct {
	StandardID          string   `json:"standard_id"`
	CoveragePercentage  float64  `json:"coverage_percentage"`
	ImplementedControls []string `json:"implemented_controls"`
	MissingControls     []string `json:"missing_controls"`
}

// ExportParams for export_report tool
type ExportParams struct {
	Format string `json:"format" jsonschema:"Export format: json, csv, or markdown"`
}

// ExportResult for export_report tool
type ExportResult struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Count    int    `json:"count,omitempty"`
	Error    string `json:"error,omitempty"`
}

// --- Tool Implementations ---

func listStandards(ctx tool.Context, params ListStandardsParams) (ListStandardsResult, error) {
	if err := ensureData(); err != nil {
		return ListStandardsResult{}, fmt.Errorf("failed to load compliance data: %w", err)
	}

	var standards []StandardSummary
	for _, std := range dataCatalog.Standards() {
		standards = append(standards, StandardSummary{
			ID:       std.ID,
			Name:     std.Name,
			Version:  std.Version,
			Controls: len(std.Controls),
		})
	}

	return ListStandardsResult{
		Count:     len(standards),
		Standards: standards,
	}, nil
}

func getControlDetails(ctx tool.Context, params ControlDetailsParams) (ControlDetailsResult, error) {
	if err := ensureData(); err != nil {
		return ControlDetailsResult{}, fmt.Errorf("failed to load compliance data: %w", err)
	}

	std, ok := dataCatalog.Get(params.StandardID)
	if !ok {
		std, ok = dataCatalog.Get(strings.ToUpper(params.StandardID))
	}
	if !ok {
		return ControlDetailsResult{Found: false}, nil
	}
	control, ok := std.Control(params.ControlID)
	if !ok {
		return ControlDetailsResult{Found: false}, nil
	}

	return ControlDetailsResult{
		Found:       true,
		StandardID:  std.ID,
		ControlID:   control.ID,
		Title:       control.Title,
		Description: control.Description,
		Severity:    string(control.Severity),
	}, nil
}

func mapPolicy(ctx tool.Context, params MapPolicyParams) (MapPolicyResult, error) {
	if err := ensureData(); err != nil {
		return MapPolicyResult{}, fmt.Errorf("failed to load compliance data: %w", err)
	}

	for _, policy := range dataPolicies {
		if policy.Name() != params.PolicyName {
			continue
		}

		mappings := dataMapper.Map(policy)
		var entries []MappingEntry
		for _, standardID := range sortedMappingKeys(mappings) {
			entries = append(entries, MappingEntry{
				StandardID: standardID,
				Controls:   mappings[standardID].Sorted(),
			})
		}

		return MapPolicyResult{
			Found:      true,
			PolicyName: policy.Name(),
			Mappings:   entries,
		}, nil
	}

	return MapPolicyResult{Found: false}, nil
}

func coverageReport(ctx tool.Context, params CoverageParams) (CoverageResult, error) {
	if err := ensureData(); err != nil {
		return CoverageResult{}, fmt.Errorf("failed to load compliance data: %w", err)
	}

	var standards []StandardCoverageSummary
	for _, std := range dataCatalog.Standards() {
		covered := dataReport.Summary.ControlsCovered[std.ID]

		summary := StandardCoverageSummary{
			StandardID: std.ID,
			Total:      len(std.Controls),
			Percentage: 100.0,
		}
		for _, c := range std.Controls {
			if covered.Has(c.ID) {
				summary.Covered++
			} else {
				summary.Missing = append(summary.Missing, c.ID)
			}
		}
		if summary.Total > 0 {
			summary.Percentage = float64(summary.Covered) / float64(summary.Total) * 100
		}
		standards = append(standards, summary)
	}

	return CoverageResult{
		TotalPolicies: dataReport.Summary.TotalPolicies,
		Standards:     standards,
	}, nil
}

func gapCheck(ctx tool.Context, params GapCheckParams) (GapCheckResult, error) {
	if err := ensureData(); err != nil {
		return GapCheckResult{}, fmt.Errorf("failed to load compliance data: %w", err)
	}

	standardID := params.StandardID
	if !dataCatalog.Has(standardID) && dataCatalog.Has(strings.ToUpper(standardID)) {
		standardID = strings.ToUpper(standardID)
	}
	required := params.RequiredControls
	if len(required) == 0 {
		if std, ok := dataCatalog.Get(standardID); ok {
			required = std.ControlIDs()
		}
	}

	result, err := dataMapper.AnalyzeGap(standardID, required, dataPolicies)
	if err != nil {
		return GapCheckResult{}, err
	}

	return GapCheckResult{
		StandardID:          result.Standard,
		CoveragePercentage:  result.CoveragePercentage,
		ImplementedControls: result.ImplementedControls.Sorted(),
		MissingControls:     result.MissingControls.Sorted(),
	}, nil
}

func exportReport(ctx tool.Context, params ExportParams) (ExportResult, error) {
	if err := ensureData(); err != nil {
		return ExportResult{Success: false, Error: err.Error()}, nil
	}

	format, err := export.ParseFormat(params.Format)
	if err != nil {
		return ExportResult{Success: false, Error: "invalid format, use json, csv, or markdown"}, nil
	}

	result := export.ExportReport(dataReport, format, getExportDir())
	if result.Err != nil {
		return ExportResult{Success: false, Error: result.Err.Error()}, nil
	}

	return ExportResult{
		Success:  true,
		FilePath: result.FilePath,
		Count:    result.Count,
	}, nil
}

func sortedMappingKeys(m mapping.PolicyStandardMapping) []string {
	keys := mapping.NewControlSet()
	for k := range m {
		keys.Add(k)
	}
	return keys.Sorted()
}

// CreateTools creates all compliance tools for the agent
func CreateTools() ([]tool.Tool, error) {
	standardsTool, err := functiontool.New(
		functiontool.Config{
			Name:        "list_standards",
			Description: "List all compliance standards in the catalog with their control counts",
		},
		listStandards,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_standards tool: %w", err)
	}

	controlTool, err := functiontool.New(
		functiontool.Config{
			Name:        "get_control_details",
			Description: "Get title, description, and severity for a specific control of a standard",
		},
		getControlDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create get_control_details tool: %w", err)
	}

	mapTool, err := functiontool.New(
		functiontool.Config{
			Name:        "map_policy",
			Description: "Show which standards and controls a policy document references",
		},
		mapPolicy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create map_policy tool: %w", err)
	}

	coverageTool, err := functiontool.New(
		functiontool.Config{
			Name:        "coverage_report",
			Description: "Summarize control coverage per standard across all policy documents",
		},
		coverageReport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coverage_report tool: %w", err)
	}

	gapTool, err := functiontool.New(
		functiontool.Config{
			Name:        "gap_check",
			Description: "Compare implemented controls against a required control list for a standard",
		},
		gapCheck,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gap_check tool: %w", err)
	}

	exportTool, err := functiontool.New(
		functiontool.Config{
			Name:        "export_report",
			Description: "Export the aggregated compliance report to a file in JSON, CSV, or Markdown format",
		},
		exportReport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create export_report tool: %w", err)
	}

	return []tool.Tool{
		standardsTool,
		controlTool,
		mapTool,
		coverageTool,
		gapTool,
		exportTool,
	}, nil
}
