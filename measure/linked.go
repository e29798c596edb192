package measure

import "strconv"

// LinkedVariable is a value captured from another record when it was linked.
// It is never updated after capture; to change one, unlink it and link anew.
type LinkedVariable struct {
	ID    int     `yaml:"id,omitempty"`
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
	// SourceItem and SourceLine name the record the value came from.
	SourceItem string `yaml:"source_item,omitempty"`
	SourceLine string `yaml:"source_line,omitempty"`
	// Property is the name of the captured property on the source record.
	Property string `yaml:"property,omitempty"`
	Unit     string `yaml:"unit,omitempty"`
	Line     int    `yaml:"line,omitempty"`
}

// UniqueLabel returns candidate if no variable in existing uses it. Otherwise
// it returns candidate with the smallest suffix " (n)", n ≥ 2, that is free.
func UniqueLabel(existing []LinkedVariable, candidate string) string {
	used := make(map[string]bool, len(existing))
	for _, v := range existing {
		used[v.Label] = true
	}
	if !used[candidate] {
		return candidate
	}
	for n := 2; ; n++ {
		s := candidate + " (" + strconv.Itoa(n) + ")"
		if !used[s] {
			return s
		}
	}
}

// NextID returns an ID greater than any in existing.
func NextID(existing []LinkedVariable) int {
	id := 0
	for _, v := range existing {
		if v.ID > id {
			id = v.ID
		}
	}
	return id + 1
}

// Link returns a new collection with v added under a fresh ID and a label that
// is unique in existing. An empty label is derived with LinkLabel. The
// existing slice is not modified.
func Link(existing []LinkedVariable, v LinkedVariable) []LinkedVariable {
	if v.Label == "" {
		v.Label = LinkLabel(v.Property, v.SourceItem, v.Line)
	}
	v.ID = NextID(existing)
	v.Label = UniqueLabel(existing, v.Label)
	r := make([]LinkedVariable, 0, len(existing)+1)
	r = append(r, existing...)
	return append(r, v)
}

// Unlink returns a new collection without the variable with the given ID.
// The existing slice is not modified.
func Unlink(existing []LinkedVariable, id int) []LinkedVariable {
	r := make([]LinkedVariable, 0, len(existing))
	for _, v := range existing {
		if v.ID != id {
			r = append(r, v)
		}
	}
	return r
}

// LinkLabel builds the display label for a value captured from a record,
// e.g. "Concrete: Volume (line 3)". Empty parts are left out.
func LinkLabel(property, sourceItem string, line int) string {
	s := property
	if sourceItem != "" {
		if s == "" {
			s = sourceItem
		} else {
			s = sourceItem + ": " + s
		}
	}
	switch {
	case line <= 0:
	case s == "":
		s = "line " + strconv.Itoa(line)
	default:
		s += " (line " + strconv.Itoa(line) + ")"
	}
	return s
}
