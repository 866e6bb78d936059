package agent

import (
	"testing"

	"google.golang.org/adk/tool"

	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/model"
)

var noCtx tool.Context

func seedTestData(t *testing.T) {
	t.Helper()
	cat, err := catalog.New([]model.Standard{
		{
			ID:   "SOC-2",
			Name: "SOC 2",
			Controls: []model.Control{
				{ID: "CC6.1", Title: "Logical access controls", Severity: model.SeverityHigh},
				{ID: "CC6.2", Title: "Credential management", Severity: model.SeverityCritical},
			},
		},
		{
			ID:   "ISO-27001",
			Name: "ISO 27001",
			Controls: []model.Control{
				{ID: "A.8.24", Title: "Use of cryptography", Severity: model.SeverityMedium},
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	policies := []model.Policy{
		{Metadata: model.PolicyMetadata{
			Name:       "access-control",
			Compliance: []string{"SOC-2-CC6.1", "SOC-2-CC6.2"},
		}},
		{Metadata: model.PolicyMetadata{
			Name:       "crypto",
			Compliance: []string{"ISO-27001-A.8.24"},
		}},
	}

	setData(cat, policies)
}

func TestListStandards(t *testing.T) {
	seedTestData(t)

	result, err := listStandards(noCtx, ListStandardsParams{})
	if err != nil {
		t.Fatalf("listStandards: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	// Catalog order is sorted by ID
	if result.Standards[0].ID != "ISO-27001" || result.Standards[1].ID != "SOC-2" {
		t.Errorf("standards = %v", result.Standards)
	}
	if result.Standards[1].Controls != 2 {
		t.Errorf("SOC-2 control count = %d, want 2", result.Standards[1].Controls)
	}
}

func TestGetControlDetails(t *testing.T) {
	seedTestData(t)

	result, err := getControlDetails(noCtx, ControlDetailsParams{
		StandardID: "SOC-2",
		ControlID:  "CC6.1",
	})
	if err != nil {
		t.Fatalf("getControlDetails: %v", err)
	}
	if !result.Found {
		t.Fatal("control should be found")
	}
	if result.Title != "Logical access controls" {
		t.Errorf("title = %q", result.Title)
	}
	if result.Severity != "high" {
		t.Errorf("severity = %q, want high", result.Severity)
	}

	result, err = getControlDetails(noCtx, ControlDetailsParams{
		StandardID: "SOC-2",
		ControlID:  "CC9.9",
	})
	if err != nil {
		t.Fatalf("getControlDetails: %v", err)
	}
	if result.Found {
		t.Error("unknown control should not be found")
	}

	// Lowercase standard id falls back to the uppercase form
	result, err = getControlDetails(noCtx, ControlDetailsParams{
		StandardID: "soc-2",
		ControlID:  "CC6.1",
	})
	if err != nil {
		t.Fatalf("getControlDetails: %v", err)
	}
	if !result.Found {
		t.Error("lowercase standard id should resolve")
	}
}

func TestMapPolicy(t *testing.T) {
	seedTestData(t)

	result, err := mapPolicy(noCtx, MapPolicyParams{PolicyName: "access-control"})
	if err != nil {
		t.Fatalf("mapPolicy: %v", err)
	}
	if !result.Found {
		t.Fatal("policy should be found")
	}
	if len(result.Mappings) != 1 {
		t.Fatalf("mappings = %v, want one entry", result.Mappings)
	}
	entry := result.Mappings[0]
	if entry.StandardID != "SOC-2" {
		t.Errorf("standard = %q, want SOC-2", entry.StandardID)
	}
	if len(entry.Controls) != 2 || entry.Controls[0] != "CC6.1" || entry.Controls[1] != "CC6.2" {
		t.Errorf("controls = %v, want [CC6.1 CC6.2]", entry.Controls)
	}

	result, err = mapPolicy(noCtx, MapPolicyParams{PolicyName: "nonexistent"})
	if err != nil {
		t.Fatalf("mapPolicy: %v", err)
	}
	if result.Found {
		t.Error("unknown policy should not be found")
	}
}

func TestCoverageReport(t *testing.T) {
	seedTestData(t)

	result, err := coverageReport(noCtx, CoverageParams{})
	if err != nil {
		t.Fatalf("coverageReport: %v", err)
	}
	if result.TotalPolicies != 2 {
		t.Errorf("total_policies = %d, want 2", result.TotalPolicies)
	}
	if len(result.Standards) != 2 {
		t.Fatalf("standards = %v, want two entries", result.Standards)
	}
	for _, s := range result.Standards {
		if s.Percentage != 100 {
			t.Errorf("%s coverage = %v, want 100", s.StandardID, s.Percentage)
		}
		if len(s.Missing) != 0 {
			t.Errorf("%s missing = %v, want none", s.StandardID, s.Missing)
		}
	}
}

func TestGapCheckTool(t *testing.T) {
	seedTestData(t)

	result, err := gapCheck(noCtx, GapCheckParams{
		StandardID:       "ISO-27001",
		RequiredControls: []string{"A.8.24", "A.5.1"},
	})
	if err != nil {
		t.Fatalf("gapCheck: %v", err)
	}
	if result.CoveragePercentage != 50 {
		t.Errorf("coverage = %v, want 50", result.CoveragePercentage)
	}
	if len(result.MissingControls) != 1 || result.MissingControls[0] != "A.5.1" {
		t.Errorf("missing = %v, want [A.5.1]", result.MissingControls)
	}

	// No required list defaults to every cataloged control
	result, err = gapCheck(noCtx, GapCheckParams{StandardID: "SOC-2"})
	if err != nil {
		t.Fatalf("gapCheck: %v", err)
	}
	if result.CoveragePercentage != 100 {
		t.Errorf("coverage = %v, want 100", result.CoveragePercentage)
	}

	_, err = gapCheck(noCtx, GapCheckParams{StandardID: "PCI-DSS"})
	if err == nil {
		t.Fatal("expected error for unknown standard")
	}
}

func TestCreateTools(t *testing.T) {
	tools, err := CreateTools()
	if err != nil {
		t.Fatalf("CreateTools: %v", err)
	}
	if len(tools) != 6 {
		t.Errorf("got %d tools, want 6", len(tools))
	}
}
