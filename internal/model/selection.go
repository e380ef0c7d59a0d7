package model

// SelectionPath is the root-to-node chain identifying the currently focused
// entry. Length zero means nothing is selected.
type SelectionPath []*Entry

// Tip returns the focused entry, nil for an empty path.
func (p SelectionPath) Tip() *Entry {
	if len(p) == 0 {
		return nil
	}

	return p[len(p)-1]
}

// SelectedKey returns the identity key of the focused entry, empty for an
// empty path.
func (p SelectionPath) SelectedKey() string {
	tip := p.Tip()
	if tip == nil {
		return ""
	}

	return tip.Key()
}

// Descend returns a new path with entry appended. The receiver is never
// aliased, so callers can keep the old path.
func (p SelectionPath) Descend(entry *Entry) SelectionPath {
	next := make(SelectionPath, 0, len(p)+1)
	next = append(next, p...)
	next = append(next, entry)

	return next
}

// NavState is the resolver output handed to the rendering collaborator: the
// entry list to present, the possibly auto-descended selection path, and the
// effective selected identity key.
type NavState struct {
	Entries     []*Entry
	Path        SelectionPath
	SelectedKey string
}
