package mapping

import "github.com/complykit/compmap/internal/model"

// Summary is the cross-policy rollup of a compliance report
type Summary struct {
	TotalPolicies    int
	StandardsCovered ControlSet            // standard ids
	ControlsCovered  map[string]ControlSet // standard id -> control ids
}

// PolicyDetail is the per-policy view of a compliance report
type PolicyDetail struct {
	PolicyName string
	Standards  PolicyStandardMapping
}

// Report is the aggregated result of mapping a policy batch
type Report struct {
	Summary Summary
	Details map[string]PolicyDetail // keyed by policy name
}

// Aggregate maps every policy in the batch and accumulates the per-policy
// details plus the cross-policy summary. Two policies with the same name
// overwrite each other's detail entry (last write wins); TotalPolicies still
// counts inputs, so the two can diverge under name collisions.
func (m *Mapper) Aggregate(policies []model.Policy) *Report {
	report := &Report{
		Summary: Summary{
			TotalPolicies:    len(policies),
			StandardsCovered: make(ControlSet),
			ControlsCovered:  make(map[string]ControlSet),
		},
		Details: make(map[string]PolicyDetail),
	}

	for _, policy := range policies {
		name := policy.Name()
		standards := m.Map(policy)

		report.Details[name] = PolicyDetail{
			PolicyName: name,
			Standards:  standards,
		}

		for standardID, controls := range standards {
			report.Summary.StandardsCovered.Add(standardID)
			if _, ok := report.Summary.ControlsCovered[standardID]; !ok {
				report.Summary.ControlsCovered[standardID] = make(ControlSet)
			}
			report.Summary.ControlsCovered[standardID].Union(controls)
		}
	}

	return report
}
