package mapping

import (
	"github.com/complykit/compmap/internal/catalog"
	"github.com/complykit/compmap/internal/model"
)

// PolicyStandardMapping maps a standard id to the set of control ids a
// single policy references within that standard
type PolicyStandardMapping map[string]ControlSet

// Mapper resolves policy compliance references against a catalog
type Mapper struct {
	catalog *catalog.Catalog
}

// NewMapper creates a mapper bound to a catalog
func NewMapper(cat *catalog.Catalog) *Mapper {
	return &Mapper{catalog: cat}
}

// Map resolves a policy's compliance references. References to standards
// outside the catalog are dropped. A reference that names a known standard
// but no control also produces no entry: a standard only appears in the
// mapping once at least one of its controls is referenced, and only those
// standards count as covered downstream.
func (m *Mapper) Map(policy model.Policy) PolicyStandardMapping {
	result := make(PolicyStandardMapping)

	for _, ref := range policy.Metadata.Compliance {
		standardID, controlID := ParseReference(ref)
		if !m.catalog.Has(standardID) {
			continue
		}
		if controlID == "" {
			continue
		}
		if _, ok := result[standardID]; !ok {
			result[standardID] = make(ControlSet)
		}
		result[standardID].Add(controlID)
	}

	return result
}
