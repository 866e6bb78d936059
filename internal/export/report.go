package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/complykit/compmap/internal/mapping"
)

// reportJSON is the serialized shape of a compliance report. Set-valued
// fields become sorted arrays so runs are diffable.
type reportJSON struct {
	GeneratedAt string                `json:"generated_at"`
	Summary     summaryJSON           `json:"summary"`
	Details     map[string]detailJSON `json:"details"`
}

type summaryJSON struct {
	TotalPolicies    int                 `json:"total_policies"`
	StandardsCovered []string            `json:"standards_covered"`
	ControlsCovered  map[string][]string `json:"controls_covered"`
}

type detailJSON struct {
	PolicyName string              `json:"policy_name"`
	Standards  map[string][]string `json:"standards"`
}

func reportView(report *mapping.Report) reportJSON {
	view := reportJSON{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary: summaryJSON{
			TotalPolicies:    report.Summary.TotalPolicies,
			StandardsCovered: report.Summary.StandardsCovered.Sorted(),
			ControlsCovered:  make(map[string][]string, len(report.Summary.ControlsCovered)),
		},
		Details: make(map[string]detailJSON, len(report.Details)),
	}

	for standardID, controls := range report.Summary.ControlsCovered {
		view.Summary.ControlsCovered[standardID] = controls.Sorted()
	}
	for name, detail := range report.Details {
		standards := make(map[string][]string, len(detail.Standards))
		for standardID, controls := range detail.Standards {
			standards[standardID] = controls.Sorted()
		}
		view.Details[name] = detailJSON{PolicyName: detail.PolicyName, Standards: standards}
	}

	return view
}

func writeReportJSON(w io.Writer, report *mapping.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportView(report))
}

// writeReportCSV emits one row per policy and standard, with the control
// set joined by ";"
func writeReportCSV(w io.Writer, report *mapping.Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Policy", "Standard", "Controls"}); err != nil {
		return err
	}

	names := make([]string, 0, len(report.Details))
	for name := range report.Details {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		detail := report.Details[name]
		for _, standardID := range sortedKeys(detail.Standards) {
			row := []string{
				name,
				standardID,
				strings.Join(detail.Standards[standardID].Sorted(), ";"),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReportMarkdown renders the report as a Markdown document
func ReportMarkdown(report *mapping.Report) string {
	var b strings.Builder

	b.WriteString("# Compliance Mapping Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- **Policies:** %d\n", report.Summary.TotalPolicies))
	b.WriteString(fmt.Sprintf("- **Standards covered:** %d\n\n", len(report.Summary.StandardsCovered)))

	if len(report.Summary.ControlsCovered) > 0 {
		b.WriteString("| Standard | Controls Covered |\n")
		b.WriteString("|----------|------------------|\n")
		for _, standardID := range report.Summary.StandardsCovered.Sorted() {
			controls := report.Summary.ControlsCovered[standardID]
			b.WriteString(fmt.Sprintf("| %s | %s |\n", standardID, strings.Join(controls.Sorted(), ", ")))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Policies\n\n")

	names := make([]string, 0, len(report.Details))
	for name := range report.Details {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		detail := report.Details[name]
		b.WriteString(fmt.Sprintf("### %s\n\n", name))
		if len(detail.Standards) == 0 {
			b.WriteString("No cataloged control references.\n\n")
			continue
		}
		for _, standardID := range sortedKeys(detail.Standards) {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", standardID,
				strings.Join(detail.Standards[standardID].Sorted(), ", ")))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func sortedKeys(m mapping.PolicyStandardMapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
