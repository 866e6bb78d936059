// Package mapping resolves policy compliance references against a standard
// catalog and computes coverage reports and gap analyses.
package mapping

import "strings"

// ParseReference splits a compliance reference of the form
// STANDARD-ID[-CONTROL-ID] into its standard id and optional control id.
// The standard id is always the first two hyphen-delimited tokens; anything
// after them is the control id. A reference with fewer than two tokens is
// returned unchanged as a standard id with no control id.
//
// Parsing is total: every string is accepted, and unknown standards are
// filtered by the mapper, not here.
func ParseReference(ref string) (standardID, controlID string) {
	parts := strings.Split(ref, "-")
	if len(parts) < 2 {
		return ref, ""
	}
	standardID = parts[0] + "-" + parts[1]
	if len(parts) > 2 {
		controlID = strings.Join(parts[2:], "-")
	}
	return standardID, controlID
}
