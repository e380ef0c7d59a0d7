package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKey_UIDsChainWins(t *testing.T) {
	entry := &Entry{
		UID:  "case-1",
		UIDs: []string{"plan", "suite", "case-1"},
		Hash: "abc123",
	}

	assert.Equal(t, "plan/suite/case-1", entry.Key())
}

func TestEntryKey_FallsBackToHash(t *testing.T) {
	entry := &Entry{UID: "case-1", Hash: "abc123"}

	assert.Equal(t, "abc123", entry.Key())
}

func TestEntryKey_FallsBackToUID(t *testing.T) {
	entry := &Entry{UID: "case-1"}

	assert.Equal(t, "case-1", entry.Key())
}

func TestEntryKey_NeverFails(t *testing.T) {
	assert.Equal(t, "", (&Entry{}).Key())
}

func TestCounterTotal(t *testing.T) {
	assert.Equal(t, 0, Counter{}.Total())
	assert.Equal(t, 6, Counter{Passed: 1, Failed: 2, Error: 3}.Total())
}

func TestTimerDuration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	timer := Timer{Start: start, End: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, timer.Duration())

	// Open or inverted windows read as zero.
	inverted := Timer{Start: start, End: start.Add(-time.Second)}
	assert.Equal(t, time.Duration(0), inverted.Duration())
}

func TestPropagateUIDs(t *testing.T) {
	root := &Entry{
		UID: "plan",
		Entries: []*Entry{
			{
				UID: "suite",
				Entries: []*Entry{
					{UID: "case-1"},
					{UID: "case-2"},
				},
			},
		},
	}

	PropagateUIDs(root)

	assert.Equal(t, []string{"plan"}, root.UIDs)

	suite := root.Entries[0]
	require.Equal(t, []string{"plan", "suite"}, suite.UIDs)

	assert.Equal(t, []string{"plan", "suite", "case-1"}, suite.Entries[0].UIDs)
	assert.Equal(t, []string{"plan", "suite", "case-2"}, suite.Entries[1].UIDs)
}

func TestPropagateUIDs_OverwritesStaleChains(t *testing.T) {
	root := &Entry{
		UID: "plan",
		Entries: []*Entry{
			{UID: "suite", UIDs: []string{"other-plan", "suite"}},
		},
	}

	PropagateUIDs(root)

	assert.Equal(t, []string{"plan", "suite"}, root.Entries[0].UIDs)
}

func TestPropagateUIDs_NilRoot(t *testing.T) {
	PropagateUIDs(nil)
}

func TestSelectionPath_Empty(t *testing.T) {
	var path SelectionPath

	assert.Nil(t, path.Tip())
	assert.Equal(t, "", path.SelectedKey())
}

func TestSelectionPath_SelectedKey(t *testing.T) {
	suite := &Entry{UID: "suite", UIDs: []string{"plan", "suite"}}
	testcase := &Entry{UID: "case", UIDs: []string{"plan", "suite", "case"}}

	path := SelectionPath{suite, testcase}

	assert.Equal(t, testcase, path.Tip())
	assert.Equal(t, "plan/suite/case", path.SelectedKey())
}

func TestSelectionPath_DescendDoesNotAlias(t *testing.T) {
	a := &Entry{UID: "a"}
	b := &Entry{UID: "b"}
	c := &Entry{UID: "c"}

	base := SelectionPath{a}
	first := base.Descend(b)
	second := base.Descend(c)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, b, first.Tip())
	assert.Equal(t, c, second.Tip())
	assert.Equal(t, a, base.Tip())
}

func TestExpandStatusToggled(t *testing.T) {
	assert.Equal(t, Collapsed, Expanded.Toggled())
	assert.Equal(t, Expanded, Collapsed.Toggled())
}

func TestFilterSpecIsZero(t *testing.T) {
	assert.True(t, FilterSpec{}.IsZero())
	assert.False(t, FilterSpec{Text: "login"}.IsZero())
	assert.False(t, FilterSpec{Tags: map[string][]string{"simple": {"smoke"}}}.IsZero())
}
