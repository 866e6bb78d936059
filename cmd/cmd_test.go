package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testStandardYAML = `standard:
  id: SOC-2
  name: SOC 2
  version: "2017"
controls:
  - id: CC6.1
    title: Logical access controls
    severity: high
  - id: CC6.2
    title: Credential management
    severity: critical
`

const testPolicyYAML = `metadata:
  name: access-control
  description: Access control policy
  compliance:
    - SOC-2-CC6.1
`

func writeFixtures(t *testing.T) (standardsDir, policiesDir string) {
	t.Helper()
	standardsDir = t.TempDir()
	policiesDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(standardsDir, "soc2.yaml"), []byte(testStandardYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(policiesDir, "access.yaml"), []byte(testPolicyYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return standardsDir, policiesDir
}

func TestRunMap(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.json")

	err := RunMap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
		"-output", outPath,
	})
	if err != nil {
		t.Fatalf("RunMap: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var report struct {
		Summary struct {
			TotalPolicies    int      `json:"total_policies"`
			StandardsCovered []string `json:"standards_covered"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if report.Summary.TotalPolicies != 1 {
		t.Errorf("total_policies = %d, want 1", report.Summary.TotalPolicies)
	}
	if len(report.Summary.StandardsCovered) != 1 || report.Summary.StandardsCovered[0] != "SOC-2" {
		t.Errorf("standards_covered = %v, want [SOC-2]", report.Summary.StandardsCovered)
	}
}

func TestRunMapMarkdown(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.md")

	err := RunMap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
		"-format", "markdown",
		"-output", outPath,
	})
	if err != nil {
		t.Fatalf("RunMap: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "access-control") {
		t.Error("markdown report should mention the policy name")
	}
}

func TestRunMapMissingDir(t *testing.T) {
	err := RunMap([]string{
		"-standards", filepath.Join(t.TempDir(), "nope"),
		"-policies", t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing standards directory")
	}
}

func TestRunGap(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "gap.json")

	err := RunGap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
		"-standard", "SOC-2",
		"-controls", "CC6.1, CC6.2",
		"-output", outPath,
	})
	if err != nil {
		t.Fatalf("RunGap: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var result struct {
		Standard           string   `json:"standard"`
		CoveragePercentage float64  `json:"coverage_percentage"`
		MissingControls    []string `json:"missing_controls"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if result.Standard != "SOC-2" {
		t.Errorf("standard = %q, want SOC-2", result.Standard)
	}
	if result.CoveragePercentage != 50 {
		t.Errorf("coverage = %v, want 50", result.CoveragePercentage)
	}
	if len(result.MissingControls) != 1 || result.MissingControls[0] != "CC6.2" {
		t.Errorf("missing_controls = %v, want [CC6.2]", result.MissingControls)
	}
}

func TestRunGapDefaultsToAllControls(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "gap.json")

	err := RunGap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
		"-standard", "SOC-2",
		"-output", outPath,
	})
	if err != nil {
		t.Fatalf("RunGap: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var result struct {
		RequiredControls []string `json:"required_controls"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(result.RequiredControls) != 2 {
		t.Errorf("required_controls = %v, want both SOC-2 controls", result.RequiredControls)
	}
}

func TestRunGapUnknownStandard(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)

	err := RunGap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
		"-standard", "PCI-DSS",
	})
	if err == nil {
		t.Fatal("expected error for unknown standard")
	}
	if !strings.Contains(err.Error(), "PCI-DSS") {
		t.Errorf("error %q should name the standard", err.Error())
	}
}

func TestRunGapRequiresStandard(t *testing.T) {
	standardsDir, policiesDir := writeFixtures(t)

	err := RunGap([]string{
		"-standards", standardsDir,
		"-policies", policiesDir,
	})
	if err == nil {
		t.Fatal("expected error when -standard is missing")
	}
}

func TestDefaultDirs(t *testing.T) {
	t.Setenv("COMPMAP_STANDARDS_DIR", "")
	t.Setenv("COMPMAP_POLICIES_DIR", "")
	if got := DefaultStandardsDir(); got != "standards" {
		t.Errorf("DefaultStandardsDir() = %q, want standards", got)
	}
	if got := DefaultPoliciesDir(); got != "policies" {
		t.Errorf("DefaultPoliciesDir() = %q, want policies", got)
	}

	t.Setenv("COMPMAP_STANDARDS_DIR", "/etc/compmap/standards")
	if got := DefaultStandardsDir(); got != "/etc/compmap/standards" {
		t.Errorf("DefaultStandardsDir() = %q, want env override", got)
	}
}
