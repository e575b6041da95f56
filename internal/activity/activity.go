// Package activity keeps the in-memory trail of what a clerk did in a
// workspace: forms opened and closed, rows committed, rejected and removed.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Action is the kind of thing that happened.
type Action string

const (
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionCommit   Action = "commit"
	ActionRejected Action = "rejected"
	ActionRemove   Action = "remove"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp time.Time
	Form      string
	Action    Action
	ItemID    string
	Details   string
}

// Header is the CSV header written by WriteCSV.
const Header = "timestamp,form,action,item_id,details"

const (
	numFields    = 5
	colTimestamp = 0
	colForm      = 1
	colAction    = 2
	colItemID    = 3
	colDetails   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colForm] = e.Form
	row[colAction] = string(e.Action)
	row[colItemID] = e.ItemID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Form:      record[colForm],
		Action:    Action(record[colAction]),
		ItemID:    record[colItemID],
		Details:   record[colDetails],
	}, nil
}

// Log collects entries for the lifetime of a workspace. It is never
// written anywhere unless a caller asks for WriteCSV.
type Log struct {
	now     func() time.Time
	entries []Entry
}

// New creates an empty Log stamped with the wall clock.
func New() *Log {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty Log stamped by now.
func NewWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Record appends an entry. A nil Log discards it.
func (l *Log) Record(form string, action Action, itemID, details string) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, Entry{
		Timestamp: l.now().UTC(),
		Form:      form,
		Action:    action,
		ItemID:    itemID,
		Details:   details,
	})
}

// Entries returns a copy of all entries in recording order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// WriteCSV writes the header and every entry to w.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range l.Entries() {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads entries written by WriteCSV.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
