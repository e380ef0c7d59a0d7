package domain

import (
	m "planview.dev/pkg/planview/internal/model"
)

// Presentation selects how the entry list is generated.
type Presentation int

// Available Presentation values.
const (
	// PresentationTree hands the whole pruned subtree to the renderer,
	// which performs its own expand/collapse.
	PresentationTree Presentation = iota
	// PresentationFlat presents only the entry list local to the current
	// selection depth.
	PresentationFlat
)

// Session selects where the entries are drawn from.
type Session int

// Available Session values.
const (
	// SessionStatic reads the immutable pruned tree of a loaded report.
	SessionStatic Session = iota
	// SessionInteractive reads a live entry source that may change
	// between resolutions.
	SessionInteractive
)

// NavMode is the tagged pair of the two orthogonal navigation axes. Both
// axes are dispatched through the one ResolveNavigation function; there are
// no per-combination code paths to diverge.
type NavMode struct {
	Presentation Presentation
	Session      Session
}

// EntrySource supplies the current root of a live report, for interactive
// sessions where entries mutate while being viewed.
type EntrySource interface {
	Snapshot() *m.Entry
}

// EffectiveFilter adjusts a filter for the session mode. Interactive
// sessions force both display flags on and drop tag constraints: entries
// that have not run yet, or are running right now, must never be hidden.
func (mode NavMode) EffectiveFilter(spec m.FilterSpec, flags m.DisplayFlags) (m.FilterSpec, m.DisplayFlags) {
	if mode.Session != SessionInteractive {
		return spec, flags
	}

	spec.Tags = nil

	return spec, m.ShowAll
}

// ResolveNavigation derives the visible slice of the tree from a selection
// path: the entry list to present, the possibly auto-descended path and the
// selected identity key.
//
// In tree presentation the list is the identity function over the pruned
// root's children. In flat presentation the list is generated at the tip of
// the path, auto-descending while it contains exactly one entry: the lone
// entry is appended to the path and the list recomputed for the new tip,
// until the list length is 0 or >1 or the tip is a leaf. Every single-child
// suite is thereby skipped over without user interaction.
//
// Interactive sessions resolve against the live source instead of the
// static tree. A nil root (or empty source) with an empty path yields an
// empty list: a valid "no results" state, not an error.
func ResolveNavigation(mode NavMode, root *m.Entry, path m.SelectionPath, live EntrySource) m.NavState {
	if mode.Session == SessionInteractive && live != nil {
		root = live.Snapshot()
	}

	var entries []*m.Entry

	switch mode.Presentation {
	case PresentationTree:
		if root != nil {
			entries = root.Entries
		}
	case PresentationFlat:
		path, entries = autoDescend(root, path)
	}

	return m.NavState{
		Entries:     entries,
		Path:        path,
		SelectedKey: path.SelectedKey(),
	}
}

// autoDescend generates the entry list for the path tip and follows
// single-entry lists downward.
func autoDescend(root *m.Entry, path m.SelectionPath) (m.SelectionPath, []*m.Entry) {
	list := listAt(root, path.Tip())

	for len(list) == 1 {
		only := list[0]
		path = path.Descend(only)

		if only.IsLeaf() {
			// The lone entry stays presented; there is nothing
			// below it to descend into.
			return path, list
		}

		list = only.Entries
	}

	return path, list
}

// listAt returns the children of the tip, or the root's children when
// nothing is selected yet.
func listAt(root *m.Entry, tip *m.Entry) []*m.Entry {
	if tip != nil {
		return tip.Entries
	}

	if root != nil {
		return root.Entries
	}

	return nil
}
