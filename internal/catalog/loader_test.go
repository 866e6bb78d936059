package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/complykit/compmap/internal/model"
)

const soc2YAML = `standard:
  id: SOC-2
  name: SOC 2 Type II
  version: "2017"
controls:
  - id: CC6.1
    title: Logical Access Controls
    description: Restrict logical access to authorized users.
    severity: high
    checks:
      - type: config
        target: iam
  - id: CC6.2
    title: User Registration
    description: Register and authorize new internal and external users.
`

const isoYAML = `standard:
  id: ISO-27001
  name: ISO/IEC 27001
  version: "2022"
controls:
  - id: A.8.24
    title: Use of cryptography
    description: Define and implement rules for cryptographic controls.
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "soc2.yaml", soc2YAML)
	writeFile(t, dir, "iso27001.yml", isoYAML)
	writeFile(t, dir, "notes.txt", "ignore me")

	cat, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	std, ok := cat.Get("SOC-2")
	if !ok {
		t.Fatal("SOC-2 should be cataloged")
	}
	if std.Name != "SOC 2 Type II" || std.Version != "2017" {
		t.Errorf("standard header = %q/%q, want SOC 2 Type II/2017", std.Name, std.Version)
	}
	if len(std.Controls) != 2 {
		t.Fatalf("controls = %d, want 2", len(std.Controls))
	}
	if std.Controls[0].Severity != model.SeverityHigh {
		t.Errorf("CC6.1 severity = %q, want high", std.Controls[0].Severity)
	}
	if std.Controls[1].Severity != model.SeverityMedium {
		t.Errorf("CC6.2 severity = %q, want medium (default)", std.Controls[1].Severity)
	}
	if len(std.Controls[0].Checks) != 1 {
		t.Errorf("CC6.1 checks = %d, want 1", len(std.Controls[0].Checks))
	}
}

func TestLoadDirDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", soc2YAML)
	writeFile(t, dir, "b.yaml", soc2YAML)

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if !strings.Contains(err.Error(), "SOC-2") {
		t.Errorf("error %q should name the duplicate id", err)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadDirBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "standard: [not: a: mapping")

	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadPolicies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "access.yaml", `metadata:
  name: access-control
  compliance:
    - SOC-2-CC6.1
    - ISO-27001-A.8.24
spec:
  rules: []
`)
	writeFile(t, dir, "bare.yml", `kind: Policy
`)

	policies, err := LoadPolicies(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(policies) != 2 {
		t.Fatalf("policies = %d, want 2", len(policies))
	}
	if policies[0].Name() != "access-control" {
		t.Errorf("first policy name = %q, want access-control", policies[0].Name())
	}
	if len(policies[0].Metadata.Compliance) != 2 {
		t.Errorf("compliance refs = %d, want 2", len(policies[0].Metadata.Compliance))
	}
	if policies[1].Name() != "unknown" {
		t.Errorf("bare policy name = %q, want unknown", policies[1].Name())
	}
	if len(policies[1].Metadata.Compliance) != 0 {
		t.Errorf("bare policy refs = %d, want 0", len(policies[1].Metadata.Compliance))
	}
}
