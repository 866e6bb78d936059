// Package model defines the core data types for compliance standards,
// controls, and governance policies.
package model

// Check is an opaque check descriptor attached to a control. The mapper
// never inspects it; it is carried through for report consumers.
type Check map[string]any

// Control is a single requirement within a compliance standard
type Control struct {
	ID          string   `yaml:"id" json:"id"`                   // e.g., "CC6.1", "A.8.24"
	Title       string   `yaml:"title" json:"title"`             // short requirement title
	Description string   `yaml:"description" json:"description"` // full requirement text
	Severity    Severity `yaml:"severity" json:"severity"`       // defaults to medium
	Checks      []Check  `yaml:"checks" json:"checks,omitempty"` // opaque check descriptors
}

// Standard is a named, versioned catalog of controls
type Standard struct {
	ID       string    `yaml:"id" json:"id"` // globally unique, e.g., "SOC-2"
	Name     string    `yaml:"name" json:"name"`
	Version  string    `yaml:"version" json:"version"`
	Controls []Control `yaml:"controls" json:"controls"`
}

// Control returns the control with the given ID, if the standard defines it
func (s Standard) Control(id string) (Control, bool) {
	for _, c := range s.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}

// ControlIDs returns the IDs of all controls in definition order
func (s Standard) ControlIDs() []string {
	ids := make([]string, 0, len(s.Controls))
	for _, c := range s.Controls {
		ids = append(ids, c.ID)
	}
	return ids
}

// Policy is a governance policy as consumed from its definition file.
// Only the metadata block matters for mapping; everything else is ignored.
type Policy struct {
	Metadata PolicyMetadata `yaml:"metadata" json:"metadata"`
}

// PolicyMetadata holds the policy name and its compliance references
type PolicyMetadata struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Compliance  []string `yaml:"compliance" json:"compliance"` // e.g., "SOC-2-CC6.1"
}

// Name returns the policy name, defaulting to "unknown" when the metadata
// carries none
func (p Policy) Name() string {
	if p.Metadata.Name == "" {
		return "unknown"
	}
	return p.Metadata.Name
}
