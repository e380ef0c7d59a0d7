package controller

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "planview.dev/pkg/planview/internal/model"
)

func newCaptureCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "planview"}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return cmd, buf
}

func sampleList() []*m.Entry {
	return []*m.Entry{
		{
			UID: "a1", UIDs: []string{"plan", "alpha", "a1"},
			Name: "basic assertions", Category: m.CategoryTestcase,
			Status: m.StatusPassed, Counter: m.Counter{Passed: 2},
		},
		{
			UID: "b1", UIDs: []string{"plan", "beta", "b1"},
			Name: "login flow", Category: m.CategoryTestcase,
			Status: m.StatusFailed, Counter: m.Counter{Passed: 1, Failed: 1},
		},
	}
}

func TestSimpleUI_DisplayEntryList(t *testing.T) {
	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayEntryList(context.Background(), ListView{Entries: sampleList()})

	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "basic assertions")
	assert.Contains(t, out, "login flow")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Total Entries 2")
}

func TestSimpleUI_DisplayEntryListEmpty(t *testing.T) {
	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplayEntryList(context.Background(), ListView{})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no matching entries")
}

func TestRenderEntryTable_PathColumn(t *testing.T) {
	out := renderEntryTable(ListView{Entries: sampleList(), ShowPath: true})

	assert.Contains(t, out, "plan/alpha/a1")
	assert.Contains(t, out, "plan/beta/b1")
	assert.NotContains(t, out, "basic assertions")
}

func TestRenderEntryTable_DurationColumn(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := sampleList()
	entries[0].Timer = &m.Timer{Start: start, End: start.Add(1500 * time.Millisecond)}

	out := renderEntryTable(ListView{Entries: entries, ShowTime: true})

	assert.Contains(t, out, "1.5s")
}

func TestSimpleUI_BrowseTreeDump(t *testing.T) {
	root := &m.Entry{
		UID: "plan", UIDs: []string{"plan"}, Name: "Plan",
		Category: m.CategoryTestplan, Status: m.StatusFailed,
		Counter: m.Counter{Passed: 1, Failed: 1},
		Entries: []*m.Entry{
			{
				UID: "alpha", UIDs: []string{"plan", "alpha"}, Name: "Alpha",
				Category: m.CategoryTestsuite, Status: m.StatusFailed,
				Counter: m.Counter{Passed: 1, Failed: 1},
				Entries: []*m.Entry{
					{
						UID: "a1", UIDs: []string{"plan", "alpha", "a1"}, Name: "one",
						Category: m.CategoryTestcase, Status: m.StatusFailed,
						Counter: m.Counter{Passed: 1, Failed: 1},
					},
				},
			},
		},
	}

	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	err := ui.Browse(context.Background(), BrowseView{
		Root:  root,
		Nav:   m.NavState{SelectedKey: "plan/alpha/a1"},
		Title: "report.json",
	})

	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "report.json")
	assert.Contains(t, out, "Plan [failed] 1/1/0")
	assert.Contains(t, out, ">    one [failed] 1/1/0")
}

func TestSimpleUI_BrowseNilRoot(t *testing.T) {
	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	err := ui.Browse(context.Background(), BrowseView{})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no matching entries")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd, _ := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	assert.Error(t, ui.Browse(ctx, BrowseView{}))
	assert.Error(t, ui.DisplayEntryList(ctx, ListView{}))
}
