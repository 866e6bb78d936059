// Package export renders compliance reports and gap results to JSON, CSV,
// and Markdown. Sets leave the core as sorted slices here, at the
// serialization boundary.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/complykit/compmap/internal/mapping"
)

// Format represents the export file format
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatCSV:
		return "CSV"
	case FormatMarkdown:
		return "Markdown"
	}
	return ""
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	}
	return ""
}

// ParseFormat resolves a format name from the CLI
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format %q (supported: json, csv, markdown)", name)
	}
}

// Result contains the result of an export operation
type Result struct {
	FilePath string
	Count    int
	Err      error
}

// WriteReport renders a compliance report to w in the given format
func WriteReport(w io.Writer, report *mapping.Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeReportJSON(w, report)
	case FormatCSV:
		return writeReportCSV(w, report)
	case FormatMarkdown:
		_, err := io.WriteString(w, ReportMarkdown(report))
		return err
	}
	return fmt.Errorf("unsupported report format %v", format)
}

// WriteGap renders a gap result to w in the given format
func WriteGap(w io.Writer, result mapping.GapResult, format Format) error {
	switch format {
	case FormatJSON:
		return writeGapJSON(w, result)
	case FormatMarkdown:
		_, err := io.WriteString(w, GapMarkdown(result))
		return err
	}
	return fmt.Errorf("unsupported gap format %v", format)
}

// ExportReport writes a compliance report to a timestamped file in outputDir
func ExportReport(report *mapping.Report, format Format, outputDir string) Result {
	timestamp := time.Now().Format("2006-01-02_150405")
	filename := fmt.Sprintf("compliance_report_%s%s", timestamp, format.Extension())
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return Result{Err: err}
	}

	if err := WriteReport(file, report, format); err != nil {
		file.Close()
		return Result{Err: err}
	}
	// Close errors surface a short write, e.g. on a full disk.
	if err := file.Close(); err != nil {
		return Result{Err: err}
	}

	return Result{FilePath: path, Count: report.Summary.TotalPolicies}
}
