// Package catalog holds the in-memory collection of compliance standards
// and the loaders that build it from definition files.
package catalog

import (
	"fmt"
	"sort"

	"github.com/complykit/compmap/internal/model"
)

// Catalog is a read-only collection of standards keyed by id. Build it once
// with New and share it freely; nothing mutates it afterwards.
type Catalog struct {
	standards map[string]model.Standard
}

// New builds a catalog from standard definitions. A duplicate standard id is
// rejected rather than silently overwritten, so a misnamed definition file
// cannot shadow another standard.
func New(standards []model.Standard) (*Catalog, error) {
	byID := make(map[string]model.Standard, len(standards))
	for _, std := range standards {
		if std.ID == "" {
			return nil, fmt.Errorf("standard %q has no id", std.Name)
		}
		if _, exists := byID[std.ID]; exists {
			return nil, fmt.Errorf("duplicate standard id %q", std.ID)
		}
		for i := range std.Controls {
			if std.Controls[i].Severity == "" {
				std.Controls[i].Severity = model.SeverityMedium
			}
		}
		byID[std.ID] = std
	}
	return &Catalog{standards: byID}, nil
}

// Get returns the standard with the given id
func (c *Catalog) Get(id string) (model.Standard, bool) {
	std, ok := c.standards[id]
	return std, ok
}

// Has reports whether the catalog contains the given standard id
func (c *Catalog) Has(id string) bool {
	_, ok := c.standards[id]
	return ok
}

// Len returns the number of cataloged standards
func (c *Catalog) Len() int {
	return len(c.standards)
}

// IDs returns all standard ids in sorted order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.standards))
	for id := range c.standards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Standards returns all standards sorted by id
func (c *Catalog) Standards() []model.Standard {
	out := make([]model.Standard, 0, len(c.standards))
	for _, id := range c.IDs() {
		out = append(out, c.standards[id])
	}
	return out
}
