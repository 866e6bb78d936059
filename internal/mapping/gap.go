package mapping

import (
	"fmt"

	"github.com/complykit/compmap/internal/model"
)

// UnknownStandardError reports a gap analysis against a standard the
// catalog does not contain. It is the one failure the engine surfaces to
// callers; everything else degrades to empty results.
type UnknownStandardError struct {
	StandardID string
}

func (e *UnknownStandardError) Error() string {
	return fmt.Sprintf("standard %s not found in catalog", e.StandardID)
}

// GapResult describes how a policy batch covers a required control set
type GapResult struct {
	Standard            string
	RequiredControls    []string // as given, duplicates preserved
	ImplementedControls ControlSet
	MissingControls     ControlSet
	CoveragePercentage  float64 // 0..100
}

// AnalyzeGap computes which of the required controls for a standard are
// implemented by at least one policy in the batch. An empty required list is
// vacuously satisfied and reports 100% coverage with empty sets.
func (m *Mapper) AnalyzeGap(standardID string, requiredControls []string, policies []model.Policy) (GapResult, error) {
	if !m.catalog.Has(standardID) {
		return GapResult{}, &UnknownStandardError{StandardID: standardID}
	}

	implemented := make(ControlSet)
	for _, policy := range policies {
		if controls, ok := m.Map(policy)[standardID]; ok {
			implemented.Union(controls)
		}
	}

	required := NewControlSet(requiredControls...)
	missing := required.Diff(implemented)
	implemented = required.Intersect(implemented)

	coverage := 100.0
	if len(required) > 0 {
		coverage = float64(len(implemented)) / float64(len(required)) * 100
	}

	return GapResult{
		Standard:            standardID,
		RequiredControls:    requiredControls,
		ImplementedControls: implemented,
		MissingControls:     missing,
		CoveragePercentage:  coverage,
	}, nil
}
