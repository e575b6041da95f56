package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatItemID returns a line-item ID like "FAB-000001".
func FormatItemID(prefix string, seq int) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// ParseItemID parses "FAB-000001" into prefix and seq.
func ParseItemID(id string) (prefix string, seq int, err error) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, fmt.Errorf("invalid item ID format: %q", id)
	}

	seq, err = strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid sequence in item ID %q: %w", id, err)
	}
	if seq < 1 {
		return "", 0, fmt.Errorf("invalid sequence in item ID %q: must be positive", id)
	}
	return id[:i], seq, nil
}

// Minter hands out item IDs for one form session. IDs are never reused,
// even after the row carrying one is removed.
type Minter struct {
	prefix string
	last   int
}

// NewMinter creates a Minter for prefix starting at sequence 1.
func NewMinter(prefix string) *Minter {
	return &Minter{prefix: prefix}
}

// Next returns a fresh ID.
func (m *Minter) Next() string {
	m.last++
	return FormatItemID(m.prefix, m.last)
}

// Prefix returns the minter's prefix.
func (m *Minter) Prefix() string { return m.prefix }
