package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format returns a transaction ID like "2024-01-001".
func Format(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// Parse parses "2024-01-001" into year, month, seq.
func Parse(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in transaction ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// Sequencer hands out IDs numbered 1..N within each calendar month, in the
// order dates are presented.
type Sequencer struct {
	next map[string]int
}

// NewSequencer returns a Sequencer with every month starting at 1.
func NewSequencer() *Sequencer {
	return &Sequencer{next: make(map[string]int)}
}

// Next returns the next ID for the month of date.
func (s *Sequencer) Next(date time.Time) string {
	key := date.Format("2006-01")
	s.next[key]++
	return Format(date.Year(), int(date.Month()), s.next[key])
}
