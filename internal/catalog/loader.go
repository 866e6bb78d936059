package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/complykit/compmap/internal/model"
)

// standardFile is the on-disk shape of a standard definition: a header block
// plus a flat control list.
type standardFile struct {
	Standard struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"standard"`
	Controls []model.Control `yaml:"controls"`
}

// LoadDir reads every *.yaml and *.yml standard definition in dir and builds
// a catalog from them
func LoadDir(dir string) (*Catalog, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards in %s: %w", dir, err)
	}

	standards := make([]model.Standard, 0, len(paths))
	for _, path := range paths {
		std, err := loadStandard(path)
		if err != nil {
			return nil, err
		}
		standards = append(standards, std)
	}

	cat, err := New(standards)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog from %s: %w", dir, err)
	}
	return cat, nil
}

func loadStandard(path string) (model.Standard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Standard{}, fmt.Errorf("failed to read standard %s: %w", path, err)
	}

	var file standardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return model.Standard{}, fmt.Errorf("failed to parse standard %s: %w", path, err)
	}

	return model.Standard{
		ID:       file.Standard.ID,
		Name:     file.Standard.Name,
		Version:  file.Standard.Version,
		Controls: file.Controls,
	}, nil
}

// LoadPolicies reads every *.yaml and *.yml policy definition in dir.
// A policy file without a metadata block still loads; the mapper treats it
// as having no references.
func LoadPolicies(dir string) ([]model.Policy, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies in %s: %w", dir, err)
	}

	policies := make([]model.Policy, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy %s: %w", path, err)
		}
		var policy model.Policy
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return nil, fmt.Errorf("failed to parse policy %s: %w", path, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// yamlFiles returns the sorted paths of YAML files directly under dir
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
