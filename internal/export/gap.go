package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/complykit/compmap/internal/mapping"
)

// gapJSON is the serialized shape of a gap analysis result
type gapJSON struct {
	Standard            string   `json:"standard"`
	RequiredControls    []string `json:"required_controls"`
	ImplementedControls []string `json:"implemented_controls"`
	MissingControls     []string `json:"missing_controls"`
	CoveragePercentage  float64  `json:"coverage_percentage"`
}

func gapView(result mapping.GapResult) gapJSON {
	return gapJSON{
		Standard:            result.Standard,
		RequiredControls:    result.RequiredControls,
		ImplementedControls: result.ImplementedControls.Sorted(),
		MissingControls:     result.MissingControls.Sorted(),
		CoveragePercentage:  result.CoveragePercentage,
	}
}

func writeGapJSON(w io.Writer, result mapping.GapResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(gapView(result))
}

// GapMarkdown renders a gap result as a Markdown document
func GapMarkdown(result mapping.GapResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Gap Analysis: %s\n\n", result.Standard))
	b.WriteString(fmt.Sprintf("**Coverage:** %.1f%%\n\n", result.CoveragePercentage))

	b.WriteString("| Control | Status |\n")
	b.WriteString("|---------|--------|\n")
	for _, id := range result.ImplementedControls.Sorted() {
		b.WriteString(fmt.Sprintf("| %s | implemented |\n", id))
	}
	for _, id := range result.MissingControls.Sorted() {
		b.WriteString(fmt.Sprintf("| %s | **missing** |\n", id))
	}
	b.WriteString("\n")

	if len(result.MissingControls) == 0 {
		b.WriteString("All required controls are implemented.\n")
	} else {
		b.WriteString(fmt.Sprintf("%d of %d required controls have no implementing policy.\n",
			len(result.MissingControls), len(result.ImplementedControls)+len(result.MissingControls)))
	}

	return b.String()
}
