package mapping

import "sort"

// ControlSet is a set of control ids
type ControlSet map[string]struct{}

// NewControlSet builds a set from ids, collapsing duplicates
func NewControlSet(ids ...string) ControlSet {
	s := make(ControlSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id into the set
func (s ControlSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports membership
func (s ControlSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Union merges other into s in place
func (s ControlSet) Union(other ControlSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersect returns the ids present in both sets
func (s ControlSet) Intersect(other ControlSet) ControlSet {
	out := make(ControlSet)
	for id := range s {
		if other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Diff returns the ids in s that are not in other
func (s ControlSet) Diff(other ControlSet) ControlSet {
	out := make(ControlSet)
	for id := range s {
		if !other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Equal reports whether both sets hold the same ids
func (s ControlSet) Equal(other ControlSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted materializes the set as a sorted slice. Used only at the
// serialization boundary; the core works on the set itself.
func (s ControlSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
