// Package domain implements the report tree engine: filtering, expand-state
// resolution and navigation over loaded report trees.
package domain

import (
	"strings"

	m "planview.dev/pkg/planview/internal/model"
)

// FilterTree prunes a report tree against the spec and display flags and
// returns the surviving tree, or nil when nothing survives.
//
// An entry survives if it matches on its own criteria or at least one child
// survives; ancestors of a surviving descendant are always kept so the
// navigable path to it stays intact. Surviving entries are shallow copies
// with only the child list replaced (original relative order preserved);
// uid, uids, status, counter, tags and timer pass through unchanged, and
// counters are not recomputed from the filtered child set.
//
// The input tree is never mutated. Cost is one post-order pass, linear in
// the node count.
func FilterTree(root *m.Entry, spec m.FilterSpec, flags m.DisplayFlags) *m.Entry {
	if root == nil {
		return nil
	}

	var kept []*m.Entry

	for _, child := range root.Entries {
		if filtered := FilterTree(child, spec, flags); filtered != nil {
			kept = append(kept, filtered)
		}
	}

	if len(kept) == 0 && !matches(root, spec, flags) {
		return nil
	}

	survivor := *root
	survivor.Entries = kept

	return &survivor
}

// matches evaluates an entry against the spec on its own, ignoring
// descendants: the visibility gate from the display flags, the
// case-insensitive text match over name and description, and the per
// category tag intersection.
func matches(entry *m.Entry, spec m.FilterSpec, flags m.DisplayFlags) bool {
	if !flags.DisplaySkipped && entry.Status == m.StatusSkipped {
		return false
	}

	if !flags.DisplayEmpty && !entry.Executed() {
		return false
	}

	if spec.Text != "" && !textMatches(entry, spec.Text) {
		return false
	}

	for category, required := range spec.Tags {
		if len(required) == 0 {
			continue
		}

		if !intersects(entry.Tags[category], required) {
			return false
		}
	}

	return true
}

func textMatches(entry *m.Entry, text string) bool {
	needle := strings.ToLower(text)

	return strings.Contains(strings.ToLower(entry.Name), needle) ||
		strings.Contains(strings.ToLower(entry.Description), needle)
}

func intersects(have []string, required []string) bool {
	for _, tag := range have {
		for _, want := range required {
			if tag == want {
				return true
			}
		}
	}

	return false
}
