package mapping

import (
	"testing"

	"github.com/complykit/compmap/internal/model"
)

func TestAggregateEndToEnd(t *testing.T) {
	m := NewMapper(testCatalog(t))

	policyA := policyWithRefs("policy-a", "SOC-2-CC6.1")
	policyB := policyWithRefs("policy-b", "SOC-2") // bare reference, no control

	report := m.Aggregate([]model.Policy{policyA, policyB})

	if report.Summary.TotalPolicies != 2 {
		t.Errorf("TotalPolicies = %d, want 2", report.Summary.TotalPolicies)
	}
	if !report.Summary.StandardsCovered.Equal(NewControlSet("SOC-2")) {
		t.Errorf("StandardsCovered = %v, want {SOC-2}", report.Summary.StandardsCovered.Sorted())
	}
	if !report.Summary.ControlsCovered["SOC-2"].Equal(NewControlSet("CC6.1")) {
		t.Errorf("ControlsCovered[SOC-2] = %v, want {CC6.1}", report.Summary.ControlsCovered["SOC-2"].Sorted())
	}

	detailA, ok := report.Details["policy-a"]
	if !ok {
		t.Fatal("policy-a detail missing")
	}
	if !detailA.Standards["SOC-2"].Equal(NewControlSet("CC6.1")) {
		t.Errorf("policy-a SOC-2 = %v, want {CC6.1}", detailA.Standards["SOC-2"].Sorted())
	}

	detailB, ok := report.Details["policy-b"]
	if !ok {
		t.Fatal("policy-b detail missing")
	}
	if len(detailB.Standards) != 0 {
		t.Errorf("policy-b mapping = %v, want empty", detailB.Standards)
	}
}

func TestAggregateUnionLaw(t *testing.T) {
	m := NewMapper(testCatalog(t))

	p1 := policyWithRefs("p1", "SOC-2-CC6.1", "ISO-27001-A.8.24")
	p2 := policyWithRefs("p2", "SOC-2-CC6.2")

	report := m.Aggregate([]model.Policy{p1, p2})

	union := make(ControlSet)
	union.Union(m.Map(p1)["SOC-2"])
	union.Union(m.Map(p2)["SOC-2"])

	if !report.Summary.ControlsCovered["SOC-2"].Equal(union) {
		t.Errorf("ControlsCovered[SOC-2] = %v, want union %v",
			report.Summary.ControlsCovered["SOC-2"].Sorted(), union.Sorted())
	}
}

func TestAggregateNameCollision(t *testing.T) {
	m := NewMapper(testCatalog(t))

	first := policyWithRefs("shared", "SOC-2-CC6.1")
	second := policyWithRefs("shared", "SOC-2-CC6.2")

	report := m.Aggregate([]model.Policy{first, second})

	// Detail entries collide last-write-wins, but TotalPolicies counts inputs
	// and the summary keeps both contributions.
	if report.Summary.TotalPolicies != 2 {
		t.Errorf("TotalPolicies = %d, want 2", report.Summary.TotalPolicies)
	}
	if len(report.Details) != 1 {
		t.Fatalf("details = %d entries, want 1", len(report.Details))
	}
	if !report.Details["shared"].Standards["SOC-2"].Equal(NewControlSet("CC6.2")) {
		t.Errorf("detail should hold the later policy's mapping, got %v",
			report.Details["shared"].Standards["SOC-2"].Sorted())
	}
	if !report.Summary.ControlsCovered["SOC-2"].Equal(NewControlSet("CC6.1", "CC6.2")) {
		t.Errorf("summary should union both policies, got %v",
			report.Summary.ControlsCovered["SOC-2"].Sorted())
	}
}

func TestAggregateUnnamedPolicies(t *testing.T) {
	m := NewMapper(testCatalog(t))

	report := m.Aggregate([]model.Policy{{}})

	if _, ok := report.Details["unknown"]; !ok {
		t.Error("policy without metadata should appear under the name \"unknown\"")
	}
}

func TestAggregateEmptyBatch(t *testing.T) {
	m := NewMapper(testCatalog(t))

	report := m.Aggregate(nil)

	if report.Summary.TotalPolicies != 0 {
		t.Errorf("TotalPolicies = %d, want 0", report.Summary.TotalPolicies)
	}
	if len(report.Summary.StandardsCovered) != 0 || len(report.Details) != 0 {
		t.Error("empty batch should produce an empty report")
	}
}
