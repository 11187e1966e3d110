// Package dataset holds the fixed table of sample interaction records.
//
// A Table is immutable once built. Store publishes Table snapshots so that a reloaded
// dataset file replaces the whole table at once without readers taking a lock.
package dataset

import (
	"errors"
	"fmt"

	"github.com/hyperjump/fsaptvis/internal/models"
)

// ErrInvalidRecord is returned when a record cannot be added to a table.
var ErrInvalidRecord = errors.New("invalid record")

// Entry is a keyed record used to build a Table.
type Entry struct {
	Key    string
	Record models.InteractionRecord
}

// Table is an ordered, read-only set of records keyed by pair key.
type Table struct {
	keys    []string
	records map[string]*models.InteractionRecord
}

// Snapshotter yields the table to use for one request.
type Snapshotter interface {
	Snapshot() *Table
}

// NewTable builds a Table from entries, keeping their order. Records are copied in.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		keys:    make([]string, 0, len(entries)),
		records: make(map[string]*models.InteractionRecord, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Key == "" {
			return nil, fmt.Errorf("%w: entry %d has empty key", ErrInvalidRecord, i)
		}
		if _, dup := t.records[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidRecord, e.Key)
		}
		if !e.Record.Consistent() {
			return nil, fmt.Errorf("%w: %q has %d atom indices but %d energies",
				ErrInvalidRecord, e.Key, len(e.Record.AtomIndices), len(e.Record.EnergyContributions))
		}
		t.keys = append(t.keys, e.Key)
		t.records[e.Key] = e.Record.Clone()
	}
	return t, nil
}

// Lookup returns a deep copy of the record stored under key.
func (t *Table) Lookup(key string) (*models.InteractionRecord, bool) {
	rec, ok := t.records[key]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Keys returns the pair keys in table order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.keys)
}

// Snapshot returns t itself, so a fixed Table can be used wherever a Snapshotter is expected.
func (t *Table) Snapshot() *Table {
	return t
}
