// Package arrangement reorders and filters a song's sections by name.
package arrangement

import (
	"strings"

	"github.com/jsphweid/chordflow/model"
)

// Apply returns the sections named by order, in that order. Names match
// case-insensitively against the first section with that name; names with
// no match are skipped and sections that are never named are dropped. A
// name listed twice yields the section twice. An empty order returns
// sections as authored.
func Apply(sections []model.Section, order []string) []model.Section {
	if len(order) == 0 {
		return sections
	}

	res := make([]model.Section, 0, len(order))
	for _, name := range order {
		if sec, ok := find(sections, name); ok {
			res = append(res, sec)
		}
	}
	return res
}

func find(sections []model.Section, name string) (model.Section, bool) {
	for _, sec := range sections {
		if strings.EqualFold(sec.Name, name) {
			return sec, true
		}
	}
	return model.Section{}, false
}

// Matches counts how many names in order resolve to a section.
func Matches(sections []model.Section, order []string) int {
	var n int
	for _, name := range order {
		if _, ok := find(sections, name); ok {
			n++
		}
	}
	return n
}
