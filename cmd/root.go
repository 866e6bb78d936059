// Package cmd implements the compmap subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/model"
)

// DefaultStandardsDir returns the standards directory from the environment
// or the conventional default
func DefaultStandardsDir() string {
	if dir := os.Getenv("COMPMAP_STANDARDS_DIR"); dir != "" {
		return dir
	}
	return "standards"
}

// DefaultPoliciesDir returns the policies directory from the environment
// or the conventional default
func DefaultPoliciesDir() string {
	if dir := os.Getenv("COMPMAP_POLICIES_DIR"); dir != "" {
		return dir
	}
	return "policies"
}

// loadAll loads the catalog and policies from the given directories
func loadAll(standardsDir, policiesDir string) (*catalog.Catalog, []model.Policy, error) {
	cat, err := catalog.LoadDir(standardsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading standards: %w", err)
	}
	policies, err := catalog.LoadPolicies(policiesDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading policies: %w", err)
	}
	return cat, policies, nil
}

// openOutput returns the writer for a command's output, stdout when path is empty
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
