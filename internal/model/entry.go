// Package model defines the data structures for hierarchical test reports.
package model

import (
	"strings"
	"time"
)

// Path represents a file system path.
type Path string

// Category classifies a report entry.
type Category string

// Available Category values.
const (
	CategoryTestplan    Category = "testplan"
	CategoryMultitest   Category = "multitest"
	CategoryTestsuite   Category = "testsuite"
	CategoryTestcase    Category = "testcase"
	CategoryAssertion   Category = "assertion"
	CategorySynthesized Category = "synthesized"
)

// Status represents the final execution status of a report entry.
type Status string

// Available Status values.
const (
	StatusPassed     Status = "passed"
	StatusFailed     Status = "failed"
	StatusError      Status = "error"
	StatusSkipped    Status = "skipped"
	StatusIncomplete Status = "incomplete"
	StatusUnknown    Status = "unknown"
)

// Counter holds aggregate pass/fail/error counts precomputed by the report
// producer. It is passed through filtering untouched, never recomputed.
type Counter struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Error  int `json:"error"`
}

// Total returns the number of executed results under the entry.
func (c Counter) Total() int {
	return c.Passed + c.Failed + c.Error
}

// Timer holds the execution window of an entry.
type Timer struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the elapsed execution time, zero for an open window.
func (t Timer) Duration() time.Duration {
	if t.End.Before(t.Start) {
		return 0
	}

	return t.End.Sub(t.Start)
}

// Entry is one node of a hierarchical test report: a testplan, multitest,
// suite, testcase or assertion. Trees are built once per loaded report and
// replaced wholesale on reload; nothing downstream mutates them.
type Entry struct {
	UID         string              `json:"uid"`
	UIDs        []string            `json:"uids,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Category    Category            `json:"category"`
	Status      Status              `json:"status"`
	Counter     Counter             `json:"counter"`
	Tags        map[string][]string `json:"tags,omitempty"`
	Timer       *Timer              `json:"timer,omitempty"`
	Hash        string              `json:"hash,omitempty"`
	Entries     []*Entry            `json:"entries,omitempty"`
}

// KeySeparator joins ancestor uids into an identity key.
const KeySeparator = "/"

// Key derives the stable identity key for the entry. Renderer keying,
// selection and expand-state lookups all depend on it, so it must stay
// identical whether or not the entry survives filtering.
//
// Derivation falls back deterministically: uids chain joined, then the
// content hash, then the bare uid. It never fails; an entry with none of
// the three yields the empty key.
func (e *Entry) Key() string {
	if len(e.UIDs) > 0 {
		return strings.Join(e.UIDs, KeySeparator)
	}

	if e.Hash != "" {
		return e.Hash
	}

	return e.UID
}

// IsLeaf reports whether the entry has no children.
func (e *Entry) IsLeaf() bool {
	return len(e.Entries) == 0
}

// Executed reports whether any test result was recorded under the entry.
func (e *Entry) Executed() bool {
	return e.Counter.Total() > 0
}

// PropagateUIDs rewrites the uids chain of every node so that a child's
// chain is its parent's chain plus the child's own uid. Report producers do
// not always emit uids; the loader calls this once before the tree is handed
// out, restoring the identity-key invariant.
func PropagateUIDs(root *Entry) {
	if root == nil {
		return
	}

	propagateUIDs(root, nil)
}

func propagateUIDs(e *Entry, prefix []string) {
	chain := make([]string, 0, len(prefix)+1)
	chain = append(chain, prefix...)
	chain = append(chain, e.UID)
	e.UIDs = chain

	for _, child := range e.Entries {
		propagateUIDs(child, chain)
	}
}
