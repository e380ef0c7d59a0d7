package domain

import (
	m "planview.dev/pkg/planview/internal/model"
)

// ExpandNotifier receives fire-and-forget notifications of global expand
// changes so an external collaborator (URL/router sync) can mirror them.
type ExpandNotifier interface {
	NotifyExpand(status m.ExpandStatus)
}

// ExpandStore resolves per-entry expand/collapse state against a single
// global override under last-write-wins ordering. One store is created per
// report-viewing session and passed by reference to every consumer; it is
// deliberately not a package-level global so concurrent sessions (tests
// included) cannot interfere.
//
// All writes go through one strictly monotonic logical counter, so
// resolution depends only on call order, never on wall-clock spacing.
// Records are never pruned, even when their entry is filtered out of the
// current view; re-showing the entry later finds its state intact.
//
// The store expects the single-threaded, event-driven call pattern of a
// user-interaction handler and performs no locking of its own.
type ExpandStore struct {
	clock    uint64
	global   *m.ExpandRecord
	records  map[string]m.ExpandRecord
	notifier ExpandNotifier
}

// DefaultExpandStatus is returned for entries with no record of any kind.
const DefaultExpandStatus = m.Collapsed

// NewExpandStore creates an empty store. notifier may be nil.
func NewExpandStore(notifier ExpandNotifier) *ExpandStore {
	return &ExpandStore{
		records:  make(map[string]m.ExpandRecord),
		notifier: notifier,
	}
}

// next advances the logical clock. Every write consumes a tick, regardless
// of which operation issued it.
func (s *ExpandStore) next() uint64 {
	s.clock++
	return s.clock
}

// SetGlobalExpand records an expand-all/collapse-all action and notifies
// the router collaborator. The new record overrides every entry whose
// individual choice predates it.
func (s *ExpandStore) SetGlobalExpand(status m.ExpandStatus) {
	s.global = &m.ExpandRecord{Status: status, Timestamp: s.next()}

	if s.notifier != nil {
		s.notifier.NotifyExpand(status)
	}
}

// SetEntryExpand records an individual choice for each identity key. Each
// write consumes one clock tick; resolution only compares relative order
// against the global record, so entries of one batch stay mutually
// unordered as far as callers can observe.
func (s *ExpandStore) SetEntryExpand(keys []string, status m.ExpandStatus) {
	for _, key := range keys {
		s.records[key] = m.ExpandRecord{Status: status, Timestamp: s.next()}
	}
}

// Toggle flips the effective status of one entry and returns the new value.
func (s *ExpandStore) Toggle(key string) m.ExpandStatus {
	status := s.EffectiveStatus(key).Toggled()
	s.SetEntryExpand([]string{key}, status)

	return status
}

// EffectiveStatus resolves the displayed status for an identity key: the
// individual record wins unless a strictly newer global record exists; an
// unknown key falls back to the global record, then to the default. Reads
// always observe the latest write; there is no caching layer in between.
func (s *ExpandStore) EffectiveStatus(key string) m.ExpandStatus {
	record, ok := s.records[key]
	if ok && (s.global == nil || record.Timestamp >= s.global.Timestamp) {
		return record.Status
	}

	if s.global != nil {
		return s.global.Status
	}

	return DefaultExpandStatus
}
