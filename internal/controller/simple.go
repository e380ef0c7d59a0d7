package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "planview.dev/pkg/planview/internal/model"
)

// SimpleUI implements UI using cobra Command's Printf, for pipes and
// non-interactive terminals.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Browse dumps the pruned tree as indented text. Expand state is ignored:
// a one-shot dump has no interaction that could collapse anything.
func (s *SimpleUI) Browse(ctx context.Context, view BrowseView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if view.Root == nil {
		s.printf("no matching entries\n")
		return nil
	}

	if view.Title != "" {
		s.printf("%s\n\n", view.Title)
	}

	var b strings.Builder

	renderTreeText(&b, view.Root, 0, view)

	s.printf("%s", b.String())

	return nil
}

func renderTreeText(b *strings.Builder, entry *m.Entry, depth int, view BrowseView) {
	label := entry.Name
	if view.ShowPath {
		label = entry.Key()
	}

	marker := " "
	if view.Nav.SelectedKey != "" && entry.Key() == view.Nav.SelectedKey {
		marker = ">"
	}

	fmt.Fprintf(b, "%s%s%s [%s]", marker, strings.Repeat("  ", depth), label, entry.Status)

	if entry.Executed() {
		fmt.Fprintf(b, " %d/%d/%d", entry.Counter.Passed, entry.Counter.Failed, entry.Counter.Error)
	}

	if view.ShowTime && entry.Timer != nil {
		fmt.Fprintf(b, " (%s)", formatDuration(entry.Timer.Duration()))
	}

	b.WriteString("\n")

	for _, child := range entry.Entries {
		renderTreeText(b, child, depth+1, view)
	}
}

// DisplayEntryList prints the flat entry list as a table.
func (s *SimpleUI) DisplayEntryList(ctx context.Context, view ListView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(view.Entries) == 0 {
		s.printf("no matching entries\n")
		return nil
	}

	s.printf("\n%s", renderEntryTable(view))

	return nil
}

func renderEntryTable(view ListView) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)

	header := []string{"Name", "Category", "Status", "Passed", "Failed", "Error"}
	if view.ShowPath {
		header[0] = "Path"
	}

	if view.ShowTime {
		header = append(header, "Duration")
	}

	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	totals := m.Counter{}

	for _, entry := range view.Entries {
		label := entry.Name
		if view.ShowPath {
			label = entry.Key()
		}

		row := []string{
			label,
			string(entry.Category),
			string(entry.Status),
			fmt.Sprintf("%d", entry.Counter.Passed),
			fmt.Sprintf("%d", entry.Counter.Failed),
			fmt.Sprintf("%d", entry.Counter.Error),
		}

		if view.ShowTime {
			duration := ""
			if entry.Timer != nil {
				duration = formatDuration(entry.Timer.Duration())
			}

			row = append(row, duration)
		}

		table.Append(row)

		totals.Passed += entry.Counter.Passed
		totals.Failed += entry.Counter.Failed
		totals.Error += entry.Counter.Error
	}

	footer := []string{
		fmt.Sprintf("Total Entries %d", len(view.Entries)),
		"",
		"",
		fmt.Sprintf("%d", totals.Passed),
		fmt.Sprintf("%d", totals.Failed),
		fmt.Sprintf("%d", totals.Error),
	}

	if view.ShowTime {
		footer = append(footer, "")
	}

	table.SetFooter(footer)
	table.Render()

	return tableBuffer.String()
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
