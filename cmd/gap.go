package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/complykit/compmap/internal/export"
	"github.com/complykit/compmap/internal/mapping"
)

// RunGap checks implemented controls against a required control list
func RunGap(args []string) error {
	fs := flag.NewFlagSet("gap", flag.ExitOnError)
	standardsDir := fs.String("standards", DefaultStandardsDir(), "Directory of standard definition files")
	policiesDir := fs.String("policies", DefaultPoliciesDir(), "Directory of policy documents")
	standardID := fs.String("standard", "", "Standard to check against (e.g., SOC-2)")
	controls := fs.String("controls", "", "Comma-separated required control IDs (default: every control of the standard)")
	formatName := fs.String("format", "json", "Output format: json or markdown")
	output := fs.String("output", "", "Output file (default stdout)")
	fs.Parse(args)

	if *standardID == "" {
		return fmt.Errorf("-standard is required")
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	cat, policies, err := loadAll(*standardsDir, *policiesDir)
	if err != nil {
		return err
	}

	var required []string
	if *controls != "" {
		for _, c := range strings.Split(*controls, ",") {
			if c = strings.TrimSpace(c); c != "" {
				required = append(required, c)
			}
		}
	} else if std, ok := cat.Get(*standardID); ok {
		required = std.ControlIDs()
	}

	mapper := mapping.NewMapper(cat)
	result, err := mapper.AnalyzeGap(*standardID, required, policies)
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(*output)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := export.WriteGap(w, result, format); err != nil {
		return fmt.Errorf("writing gap result: %w", err)
	}
	return nil
}
