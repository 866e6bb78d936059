package model

import (
	"fmt"
	"strings"
)

// StandardItem wraps Standard to implement the list.Item interface
type StandardItem struct {
	Standard
}

// Title returns the display title for the list
func (s StandardItem) Title() string {
	return s.Name
}

// Description returns the secondary text for the list
func (s StandardItem) Description() string {
	version := s.Version
	if version == "" {
		version = "unversioned"
	}
	return fmt.Sprintf("%s | %s | %d controls", s.ID, version, len(s.Controls))
}

// FilterValue returns the string used for filtering
func (s StandardItem) FilterValue() string {
	return strings.Join([]string{
		s.ID,
		s.Name,
		s.Version,
	}, " ")
}
