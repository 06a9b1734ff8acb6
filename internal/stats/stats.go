// Package stats aggregates the current selection into the numbers shown in
// the picker header.
package stats

import (
	"fmt"

	"filepick/internal/registry"

	"github.com/dustin/go-humanize"
)

// Matcher reports whether a path is covered by ignore rules.
type Matcher interface {
	Matches(path string) bool
}

// Stats summarizes the enabled items.
type Stats struct {
	Total           int
	EnabledCount    int
	TotalCharacters int
	// FirstIgnoredID is the first enabled item, in input order, that the
	// rules match. Empty when there is none.
	FirstIgnoredID string
	// Unreadable counts enabled items with no cached size.
	Unreadable int
}

// Recompute derives Stats from items and rules. A nil rules value matches
// nothing.
func Recompute(items []registry.Item, rules Matcher) Stats {
	s := Stats{Total: len(items)}
	for _, it := range items {
		if !it.Enabled {
			continue
		}
		s.EnabledCount++
		if size, ok := it.CachedSize(); ok {
			s.TotalCharacters += size
		} else {
			s.Unreadable++
		}
		if s.FirstIgnoredID == "" && rules != nil && rules.Matches(it.ID) {
			s.FirstIgnoredID = it.ID
		}
	}
	return s
}

// HasWarning reports whether an ignored item is selected.
func (s Stats) HasWarning() bool {
	return s.FirstIgnoredID != ""
}

// Summary formats the stats line.
func (s Stats) Summary() string {
	line := fmt.Sprintf("Selected %d/%d · %s chars", s.EnabledCount, s.Total, humanize.Comma(int64(s.TotalCharacters)))
	if s.Unreadable > 0 {
		line += fmt.Sprintf(" · %d unreadable", s.Unreadable)
	}
	return line
}

// Warning formats the warning line, or returns "" when there is nothing to
// warn about.
func (s Stats) Warning() string {
	if !s.HasWarning() {
		return ""
	}
	return fmt.Sprintf("Warning: %s matches an ignore rule", s.FirstIgnoredID)
}
