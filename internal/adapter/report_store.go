// Package adapter contains infrastructure adapters for the planview CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	gojson "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	m "planview.dev/pkg/planview/internal/model"
)

// ReportStore abstracts loading and saving of report trees so the workflow
// logic can be tested without touching the disk. Loaded trees are handed out
// whole and never mutated afterwards; a reload produces a fresh tree.
type ReportStore interface {
	// Load reads one report file and returns its normalized root.
	Load(path m.Path) (*m.Entry, error)

	// LoadDir reads every report_*.json shard under dir, in parallel,
	// and returns the roots ordered by file name.
	LoadDir(dir m.Path) ([]*m.Entry, error)

	// Save writes a report tree to path.
	Save(path m.Path, root *m.Entry) error
}

// shardPattern matches shard report files produced by distributed runs.
const shardPattern = "report_*.json"

// LocalReportStore is the concrete ReportStore backed by the local
// filesystem and JSON encoding.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore ready to be wired into
// the workflow.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// Load reads, decodes and normalizes a single report file. Normalization
// rewrites the uids chains so identity keys satisfy the parent-chain
// invariant even for producers that omit uids.
func (s *LocalReportStore) Load(path m.Path) (*m.Entry, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var root m.Entry
	if err := gojson.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	m.PropagateUIDs(&root)

	return &root, nil
}

// LoadDir loads all shard reports under dir concurrently. Results keep the
// lexical file-name order regardless of which shard finishes first.
func (s *LocalReportStore) LoadDir(dir m.Path) ([]*m.Entry, error) {
	pattern := filepath.Join(string(dir), shardPattern)

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob reports: %w", err)
	}

	sort.Strings(files)

	roots := make([]*m.Entry, len(files))

	var group errgroup.Group

	var mu sync.Mutex

	for i, file := range files {
		group.Go(func() error {
			root, err := s.Load(m.Path(file))
			if err != nil {
				return err
			}

			mu.Lock()
			roots[i] = root
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return roots, nil
}

// Save encodes the tree as indented JSON and writes it to path.
func (s *LocalReportStore) Save(path m.Path, root *m.Entry) error {
	data, err := gojson.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
