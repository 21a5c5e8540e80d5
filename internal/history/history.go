// Package history keeps an append-only CSV record of category mutations:
// categories created and keywords learned from manual edits.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions recorded in the log.
const (
	ActionAddKeyword  = "add_keyword"
	ActionAddCategory = "add_category"
)

// Entry is one row in the history log.
type Entry struct {
	Timestamp time.Time
	Session   string
	Action    string
	Category  string
	Keyword   string
}

// Header is the CSV header of the history file.
const Header = "timestamp,session,action,category,keyword"

const (
	numFields    = 5
	colTimestamp = 0
	colSession   = 1
	colAction    = 2
	colCategory  = 3
	colKeyword   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSession] = e.Session
	row[colAction] = e.Action
	row[colCategory] = e.Category
	row[colKeyword] = e.Keyword
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
		Session:   record[colSession],
		Action:    record[colAction],
		Category:  record[colCategory],
		Keyword:   record[colKeyword],
	}, nil
}

// Append writes entries to path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries in path. A missing file yields no entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
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

// Recorder appends entries for one session to a fixed path.
type Recorder struct {
	path    string
	session string
	now     func() time.Time
}

// NewRecorder returns a Recorder. An empty path disables recording.
func NewRecorder(path, session string) *Recorder {
	return &Recorder{path: path, session: session, now: time.Now}
}

// Record appends a single entry stamped with the current time.
func (r *Recorder) Record(action, category, keyword string) error {
	if r == nil || r.path == "" {
		return nil
	}
	return Append(r.path, []Entry{{
		Timestamp: r.now().UTC().Truncate(time.Second),
		Session:   r.session,
		Action:    action,
		Category:  category,
		Keyword:   keyword,
	}})
}
