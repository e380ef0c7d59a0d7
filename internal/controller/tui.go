package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "planview.dev/pkg/planview/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Browse runs the interactive tree browser until the user closes it.
func (p *TUI) Browse(ctx context.Context, view BrowseView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if view.Root == nil {
		_, err := fmt.Fprintln(p.output, "no matching entries")
		return err
	}

	model := newTreeBrowserModel(view)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayEntryList prints the flat list once; a static table needs no
// event loop.
func (p *TUI) DisplayEntryList(ctx context.Context, view ListView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(view.Entries) == 0 {
		_, err := fmt.Fprintln(p.output, "no matching entries")
		return err
	}

	_, err := fmt.Fprint(p.output, renderEntryTable(view))

	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	counterStyle  = lipgloss.NewStyle().Faint(true)

	statusStyles = map[m.Status]lipgloss.Style{
		m.StatusPassed:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		m.StatusFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		m.StatusError:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		m.StatusSkipped:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		m.StatusIncomplete: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		m.StatusUnknown:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// chromeHeight is the number of non-viewport lines (title + footer).
const chromeHeight = 3

// treeRow is one visible line of the browser: an entry plus the full
// root-to-entry selection path used when the user selects it.
type treeRow struct {
	entry *m.Entry
	depth int
	path  m.SelectionPath
}

// treeBrowserModel is the Bubble Tea model for the report tree browser.
// Expand/collapse state lives in the shared session store, not in the
// model, so it survives refilters and re-renders.
type treeBrowserModel struct {
	view     BrowseView
	rows     []treeRow
	cursor   int
	selected string
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

func newTreeBrowserModel(view BrowseView) treeBrowserModel {
	model := treeBrowserModel{
		view:     view,
		selected: view.Nav.SelectedKey,
	}
	model.rows = model.visibleRows()

	return model
}

// visibleRows flattens the pruned tree, descending only into entries whose
// effective expand status is expanded.
func (tb treeBrowserModel) visibleRows() []treeRow {
	var rows []treeRow

	var walk func(entry *m.Entry, depth int, path m.SelectionPath)
	walk = func(entry *m.Entry, depth int, path m.SelectionPath) {
		entryPath := path.Descend(entry)
		rows = append(rows, treeRow{entry: entry, depth: depth, path: entryPath})

		if entry.IsLeaf() {
			return
		}

		if tb.view.Expand.EffectiveStatus(entry.Key()) != m.Expanded {
			return
		}

		for _, child := range entry.Entries {
			walk(child, depth+1, entryPath)
		}
	}

	for _, entry := range tb.view.Root.Entries {
		walk(entry, 0, nil)
	}

	return rows
}

func (tb treeBrowserModel) Init() tea.Cmd {
	return nil
}

func (tb treeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return tb.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return tb.handleKeyPress(msg)
	}

	return tb, nil
}

func (tb treeBrowserModel) resize(width, height int) treeBrowserModel {
	tb.width = width
	tb.height = height

	viewportHeight := height - chromeHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !tb.ready {
		tb.viewport = viewport.New(width, viewportHeight)
		tb.ready = true
	} else {
		tb.viewport.Width = width
		tb.viewport.Height = viewportHeight
	}

	tb.refreshContent()

	return tb
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (tb treeBrowserModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		tb.quitting = true
		return tb, tea.Quit

	case "down", "j":
		tb.moveCursor(1)

	case "up", "k":
		tb.moveCursor(-1)

	case " ":
		tb.toggleCurrent()

	case "right", "l":
		tb.setCurrent(m.Expanded)

	case "left", "h":
		tb.setCurrent(m.Collapsed)

	case "E":
		tb.view.Expand.SetGlobalExpand(m.Expanded)
		tb.rebuild()

	case "C":
		tb.view.Expand.SetGlobalExpand(m.Collapsed)
		tb.rebuild()

	case "enter":
		tb.selectCurrent()
	}

	return tb, nil
}

func (tb *treeBrowserModel) moveCursor(delta int) {
	tb.cursor += delta

	if tb.cursor < 0 {
		tb.cursor = 0
	}

	if tb.cursor >= len(tb.rows) {
		tb.cursor = len(tb.rows) - 1
	}

	tb.refreshContent()
}

func (tb *treeBrowserModel) toggleCurrent() {
	row, ok := tb.currentRow()
	if !ok || row.entry.IsLeaf() {
		return
	}

	tb.view.Expand.Toggle(row.entry.Key())
	tb.rebuild()
}

func (tb *treeBrowserModel) setCurrent(status m.ExpandStatus) {
	row, ok := tb.currentRow()
	if !ok || row.entry.IsLeaf() {
		return
	}

	tb.view.Expand.SetEntryExpand([]string{row.entry.Key()}, status)
	tb.rebuild()
}

// selectCurrent resolves the navigation state for the cursor entry. The
// resolver may auto-descend through single-entry lists; the cursor follows
// the descended selection, with its ancestors expanded so it is visible.
func (tb *treeBrowserModel) selectCurrent() {
	row, ok := tb.currentRow()
	if !ok || tb.view.Resolve == nil {
		return
	}

	nav := tb.view.Resolve(row.path)
	tb.selected = nav.SelectedKey

	if len(nav.Path) > 1 {
		keys := make([]string, 0, len(nav.Path)-1)
		for _, ancestor := range nav.Path[:len(nav.Path)-1] {
			keys = append(keys, ancestor.Key())
		}

		tb.view.Expand.SetEntryExpand(keys, m.Expanded)
	}

	tb.rebuild()
	tb.moveCursorTo(tb.selected)
}

func (tb *treeBrowserModel) moveCursorTo(key string) {
	for i, row := range tb.rows {
		if row.entry.Key() == key {
			tb.cursor = i
			tb.refreshContent()

			return
		}
	}
}

func (tb *treeBrowserModel) currentRow() (treeRow, bool) {
	if tb.cursor < 0 || tb.cursor >= len(tb.rows) {
		return treeRow{}, false
	}

	return tb.rows[tb.cursor], true
}

func (tb *treeBrowserModel) rebuild() {
	tb.rows = tb.visibleRows()

	if tb.cursor >= len(tb.rows) && len(tb.rows) > 0 {
		tb.cursor = len(tb.rows) - 1
	}

	tb.refreshContent()
}

func (tb *treeBrowserModel) refreshContent() {
	if !tb.ready {
		return
	}

	lines := make([]string, 0, len(tb.rows))
	for i, row := range tb.rows {
		lines = append(lines, tb.renderRow(row, i == tb.cursor))
	}

	tb.viewport.SetContent(strings.Join(lines, "\n"))
	tb.scrollCursorIntoView()
}

func (tb *treeBrowserModel) scrollCursorIntoView() {
	top := tb.viewport.YOffset
	bottom := top + tb.viewport.Height - 1

	if tb.cursor < top {
		tb.viewport.SetYOffset(tb.cursor)
	} else if tb.cursor > bottom {
		tb.viewport.SetYOffset(tb.cursor - tb.viewport.Height + 1)
	}
}

func (tb treeBrowserModel) renderRow(row treeRow, current bool) string {
	prefix := "  "

	if !row.entry.IsLeaf() {
		if tb.view.Expand.EffectiveStatus(row.entry.Key()) == m.Expanded {
			prefix = "▾ "
		} else {
			prefix = "▸ "
		}
	}

	label := row.entry.Name
	if tb.view.ShowPath {
		label = row.entry.Key()
	}

	var b strings.Builder

	b.WriteString(strings.Repeat("  ", row.depth))
	b.WriteString(prefix)
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(statusBadge(row.entry.Status))

	if row.entry.Executed() {
		counter := row.entry.Counter
		b.WriteString(counterStyle.Render(
			fmt.Sprintf(" %d/%d/%d", counter.Passed, counter.Failed, counter.Error)))
	}

	if tb.view.ShowTime && row.entry.Timer != nil {
		b.WriteString(counterStyle.Render(
			fmt.Sprintf(" (%s)", formatDuration(row.entry.Timer.Duration()))))
	}

	line := b.String()
	if current {
		return selectedStyle.Render(line)
	}

	return line
}

func statusBadge(status m.Status) string {
	style, ok := statusStyles[status]
	if !ok {
		style = statusStyles[m.StatusUnknown]
	}

	return style.Render("[" + string(status) + "]")
}

func (tb treeBrowserModel) View() string {
	if tb.quitting {
		return ""
	}

	if !tb.ready {
		return "loading..."
	}

	title := tb.view.Title
	if title == "" {
		title = "report"
	}

	footer := helpStyle.Render(
		"↑/↓ move · space toggle · E expand all · C collapse all · enter select · q quit")
	if tb.selected != "" {
		footer = helpStyle.Render("selected: "+tb.selected) + "\n" + footer
	} else {
		footer = "\n" + footer
	}

	return titleStyle.Render(title) + "\n" + tb.viewport.View() + "\n" + footer
}
