package model

// ExpandStatus is the per-node or global expanded/collapsed view state.
type ExpandStatus string

// Available ExpandStatus values.
const (
	Expanded  ExpandStatus = "expanded"
	Collapsed ExpandStatus = "collapsed"
)

// Toggled returns the opposite status.
func (s ExpandStatus) Toggled() ExpandStatus {
	if s == Expanded {
		return Collapsed
	}

	return Expanded
}

// ExpandRecord is one expand/collapse write, stamped with a logical clock
// value. A wall clock would make rapid successive writes ambiguous within
// one tick; the logical counter keeps resolution a pure function of call
// order.
type ExpandRecord struct {
	Status    ExpandStatus
	Timestamp uint64
}
