package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"planview.dev/pkg/planview/internal/adapter"
	"planview.dev/pkg/planview/internal/controller"
	m "planview.dev/pkg/planview/internal/model"
)

// ViewArgs contains the arguments for browsing a report.
type ViewArgs struct {
	Report m.Path
	Spec   m.FilterSpec

	// Selection is the initial selection path supplied by the router
	// collaborator, as a chain of uids. Unresolvable segments are
	// dropped; the resolvable prefix is kept.
	Selection []string

	// Follow switches the session to interactive mode: the report is
	// re-read whenever its producer rewrites it.
	Follow bool
}

// ListArgs contains the arguments for the flat entry listing.
type ListArgs struct {
	Report m.Path
	Spec   m.FilterSpec
}

// ExportArgs contains the arguments for exporting a filtered report.
type ExportArgs struct {
	Report m.Path
	Spec   m.FilterSpec
	Format string

	// Output receives the encoded report; the cmd layer points it at a
	// file or stdout.
	Output io.Writer
}

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MergeArgs contains the arguments for merging shard reports.
type MergeArgs struct {
	Dir    m.Path
	Output m.Path
}

// Workflow defines the report viewing workflows driven by the CLI commands.
type Workflow interface {
	View(ctx context.Context, args ViewArgs) error
	List(ctx context.Context, args ListArgs) error
	Export(ctx context.Context, args ExportArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.Preferences
	controller.UI
	notifier ExpandNotifier
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	store adapter.ReportStore,
	prefs adapter.Preferences,
	ui controller.UI,
	notifier ExpandNotifier,
) Workflow {
	return &workflow{
		ReportStore: store,
		Preferences: prefs,
		UI:          ui,
		notifier:    notifier,
	}
}

// View loads, filters and presents a report. Tree presentation hands the
// pruned tree to the browser; flat presentation resolves the entry list at
// the selection path, auto-descending through single-entry lists.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	mode := NavMode{Presentation: PresentationTree, Session: SessionStatic}
	if !w.UseTreeView() {
		mode.Presentation = PresentationFlat
	}

	if args.Follow {
		mode.Session = SessionInteractive
	}

	spec, flags := mode.EffectiveFilter(args.Spec, w.DisplayFlags())

	var live EntrySource

	var pruned *m.Entry

	if mode.Session == SessionInteractive {
		source, err := adapter.NewLiveReportSource(w.ReportStore, args.Report)
		if err != nil {
			return fmt.Errorf("follow report: %w", err)
		}
		defer source.Close()

		live = &filteredSource{inner: source, spec: spec, flags: flags}
		pruned = live.Snapshot()
	} else {
		root, err := w.Load(args.Report)
		if err != nil {
			return fmt.Errorf("load report: %w", err)
		}

		pruned = FilterTree(root, spec, flags)
	}

	// Selection always resolves in flat terms so auto-descent applies;
	// tree presentation additionally hands the whole subtree to the
	// renderer below.
	resolveFlat := func(path m.SelectionPath) m.NavState {
		flat := NavMode{Presentation: PresentationFlat, Session: mode.Session}
		return ResolveNavigation(flat, pruned, path, live)
	}

	initial := SelectionFromUIDs(pruned, args.Selection)

	if mode.Presentation == PresentationFlat {
		nav := resolveFlat(initial)

		slog.Debug("resolved report view",
			"report", args.Report, "selected", nav.SelectedKey, "entries", len(nav.Entries))

		return w.DisplayEntryList(ctx, controller.ListView{
			Entries:     nav.Entries,
			SelectedKey: nav.SelectedKey,
			ShowTime:    w.DisplayTimeInfo(),
			ShowPath:    w.DisplayPath(),
		})
	}

	nav := ResolveNavigation(mode, pruned, initial, live)

	slog.Debug("resolved report view",
		"report", args.Report, "selected", nav.SelectedKey, "entries", len(nav.Entries))

	return w.Browse(ctx, controller.BrowseView{
		Root:     pruned,
		Nav:      nav,
		Expand:   NewExpandStore(w.notifier),
		Resolve:  resolveFlat,
		ShowTime: w.DisplayTimeInfo(),
		ShowPath: w.DisplayPath(),
		Title:    filepath.Base(string(args.Report)),
	})
}

// List prints the filtered leaf entries as a flat table.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	root, err := w.Load(args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	pruned := FilterTree(root, args.Spec, w.DisplayFlags())

	return w.DisplayEntryList(ctx, controller.ListView{
		Entries:  Leaves(pruned),
		ShowTime: w.DisplayTimeInfo(),
		ShowPath: w.DisplayPath(),
	})
}

// Export writes the filtered tree to args.Output in the requested format.
// A filter with no matches exports an encoded null rather than failing:
// empty is a valid result, not an error.
func (w *workflow) Export(ctx context.Context, args ExportArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	root, err := w.Load(args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	pruned := FilterTree(root, args.Spec, w.DisplayFlags())

	switch args.Format {
	case FormatJSON, "":
		encoder := gojson.NewEncoder(args.Output)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(pruned); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(args.Output)

		if err := encoder.Encode(pruned); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("flush report: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", args.Format)
	}

	return nil
}

// Merge combines shard reports under a directory into one report whose
// root is a synthesized entry holding every shard's top-level entries.
// Counters are summed from the shard roots, never recomputed from leaves.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	roots, err := w.LoadDir(args.Dir)
	if err != nil {
		return fmt.Errorf("load shard reports: %w", err)
	}

	if len(roots) == 0 {
		return fmt.Errorf("no shard reports found under %s", args.Dir)
	}

	merged := MergeReports(roots)

	if err := w.Save(args.Output, merged); err != nil {
		return fmt.Errorf("save merged report: %w", err)
	}

	slog.Info("merged shard reports",
		"dir", args.Dir, "shards", len(roots), "output", args.Output)

	return nil
}

// MergeReports synthesizes one tree out of several shard roots. The merged
// status is the worst status carried by any shard root.
func MergeReports(roots []*m.Entry) *m.Entry {
	merged := &m.Entry{
		UID:      "merged",
		Name:     "Merged Report",
		Category: m.CategorySynthesized,
		Status:   m.StatusUnknown,
	}

	for _, root := range roots {
		merged.Entries = append(merged.Entries, root.Entries...)
		merged.Counter.Passed += root.Counter.Passed
		merged.Counter.Failed += root.Counter.Failed
		merged.Counter.Error += root.Counter.Error
		merged.Status = worseStatus(merged.Status, root.Status)
	}

	m.PropagateUIDs(merged)

	return merged
}

// statusSeverity orders statuses from least to most severe for merging.
var statusSeverity = map[m.Status]int{
	m.StatusUnknown:    0,
	m.StatusSkipped:    1,
	m.StatusPassed:     2,
	m.StatusIncomplete: 3,
	m.StatusFailed:     4,
	m.StatusError:      5,
}

func worseStatus(a, b m.Status) m.Status {
	if statusSeverity[b] > statusSeverity[a] {
		return b
	}

	return a
}

// Leaves collects the leaf entries of a pruned tree in document order.
func Leaves(root *m.Entry) []*m.Entry {
	if root == nil {
		return nil
	}

	if root.IsLeaf() {
		return []*m.Entry{root}
	}

	var leaves []*m.Entry
	for _, child := range root.Entries {
		leaves = append(leaves, Leaves(child)...)
	}

	return leaves
}

// filteredSource filters every snapshot of a live source on the way out, so
// the resolver always sees entries in terms of the session's effective
// filter.
type filteredSource struct {
	inner EntrySource
	spec  m.FilterSpec
	flags m.DisplayFlags
}

func (s *filteredSource) Snapshot() *m.Entry {
	return FilterTree(s.inner.Snapshot(), s.spec, s.flags)
}

// SelectionFromUIDs rebuilds a selection path from a router-supplied uid
// chain. Segments that no longer resolve (the entry was filtered out or the
// report changed) terminate the walk; the resolvable prefix is returned.
func SelectionFromUIDs(root *m.Entry, uids []string) m.SelectionPath {
	if root == nil || len(uids) == 0 {
		return nil
	}

	// Producers sometimes include the root itself as the first segment.
	if uids[0] == root.UID {
		uids = uids[1:]
	}

	var path m.SelectionPath

	current := root

	for _, uid := range uids {
		var next *m.Entry

		for _, child := range current.Entries {
			if child.UID == uid {
				next = child
				break
			}
		}

		if next == nil {
			break
		}

		path = path.Descend(next)
		current = next
	}

	return path
}
