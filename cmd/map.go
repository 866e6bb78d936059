package cmd

import (
	"flag"
	"fmt"

	"github.com/complykit/compmap/internal/export"
	"github.com/complykit/compmap/internal/mapping"
)

// RunMap maps policy documents to standards and writes the aggregated report
func RunMap(args []string) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	standardsDir := fs.String("standards", DefaultStandardsDir(), "Directory of standard definition files")
	policiesDir := fs.String("policies", DefaultPoliciesDir(), "Directory of policy documents")
	formatName := fs.String("format", "json", "Output format: json, csv, or markdown")
	output := fs.String("output", "", "Output file (default stdout)")
	fs.Parse(args)

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	cat, policies, err := loadAll(*standardsDir, *policiesDir)
	if err != nil {
		return err
	}

	mapper := mapping.NewMapper(cat)
	report := mapper.Aggregate(policies)

	w, closeFn, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := export.WriteReport(w, report, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
