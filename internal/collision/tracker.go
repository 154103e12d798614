package collision

import (
	"github.com/arloliu/fitstat/errs"
)

// Tracker records column names with their hash identifiers while a frame is
// built and detects names that share an identifier.
type Tracker struct {
	columnNames  map[uint64]string // Hash → first name seen with that hash
	hasCollision bool
	seen         map[string]struct{}
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		columnNames: make(map[uint64]string),
		seen:        make(map[string]struct{}),
	}
}

// TrackColumn tracks a column name with its hash.
// Returns error if:
// - The column name is empty (ErrInvalidColumnName)
// - The same column name is added twice (ErrDuplicateColumn)
//
// Two different names sharing a hash are not an error; the collision flag is
// set and the frame falls back to comparing names on lookup.
func (t *Tracker) TrackColumn(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidColumnName
	}
	if _, dup := t.seen[name]; dup {
		return errs.ErrDuplicateColumn
	}

	if existing, exists := t.columnNames[hash]; exists && existing != name {
		t.hasCollision = true
	} else if !exists {
		t.columnNames[hash] = name
	}

	t.seen[name] = struct{}{}

	return nil
}

// HasCollision returns true if two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}
