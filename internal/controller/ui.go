// Package controller provides output adapters for displaying report trees.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "planview.dev/pkg/planview/internal/model"
)

// ExpandState is the per-session expand/collapse resolution consumed by
// node renderers. Reads immediately observe preceding writes.
type ExpandState interface {
	SetGlobalExpand(status m.ExpandStatus)
	SetEntryExpand(keys []string, status m.ExpandStatus)
	Toggle(key string) m.ExpandStatus
	EffectiveStatus(key string) m.ExpandStatus
}

// Resolver recomputes the navigation state for a selection path, including
// auto-descent through single-entry lists.
type Resolver func(path m.SelectionPath) m.NavState

// BrowseView bundles everything the tree browser needs for one session.
type BrowseView struct {
	// Root is the pruned report tree; nil is the valid "no results" state.
	Root *m.Entry

	// Nav is the initial navigation state resolved from the selection
	// path supplied by the router collaborator.
	Nav m.NavState

	// Expand resolves per-node view state.
	Expand ExpandState

	// Resolve recomputes Nav after the selection changes.
	Resolve Resolver

	// ShowTime adds execution durations to rendered entries.
	ShowTime bool

	// ShowPath renders full identity-key paths instead of bare names.
	ShowPath bool

	Title string
}

// ListView is the flat presentation payload.
type ListView struct {
	Entries     []*m.Entry
	SelectedKey string
	ShowTime    bool
	ShowPath    bool
}

// UI defines the interface for presenting filtered report trees.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Browse presents the pruned tree interactively (or as a one-shot
	// dump for non-interactive outputs) until the user closes it.
	Browse(ctx context.Context, view BrowseView) error

	// DisplayEntryList presents a flat entry list.
	DisplayEntryList(ctx context.Context, view ListView) error
}

// NewUI selects the TUI for interactive terminals and the plain text UI
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
