package model

// FilterSpec is the structured predicate applied during tree pruning. The
// zero value is the identity constraint: empty text and nil tag sets match
// every entry. The filter-expression parser that produces it is an external
// collaborator; this package only consumes the parsed structure.
type FilterSpec struct {
	// Text is matched case-insensitively as a substring of an entry's
	// name and description.
	Text string

	// Tags maps a tag category to the set of tags an entry must carry
	// in that category. Every constrained category must intersect.
	Tags map[string][]string
}

// IsZero reports whether the spec constrains nothing.
func (s FilterSpec) IsZero() bool {
	return s.Text == "" && len(s.Tags) == 0
}

// DisplayFlags govern whether entries with no executed content, or
// skipped-status entries, are pruned even absent an explicit filter match.
// Derived from the persisted hide_empty_testcases/hide_skipped_testcases
// preferences.
type DisplayFlags struct {
	DisplayEmpty   bool
	DisplaySkipped bool
}

// ShowAll is the permissive flag set: nothing is pruned on visibility
// grounds. Interactive sessions force it so that not-yet-run or currently
// running entries are never hidden.
var ShowAll = DisplayFlags{DisplayEmpty: true, DisplaySkipped: true}
