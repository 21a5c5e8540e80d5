package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simplefinance/simplefinance/internal/categories"
	"github.com/simplefinance/simplefinance/internal/id"
	"github.com/simplefinance/simplefinance/internal/model"
)

// Parser converts a bank export into transactions. Implementations leave ID
// and Category empty; Load fills them in.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers. opts
// configures the statement parser.
func DefaultRegistry(opts StatementOptions) *Registry {
	r := NewRegistry()
	r.Register(NewStatementParser(opts))
	r.Register(&ChaseParser{})
	return r
}

// LoadError reports why an uploaded file was rejected. Row is the 1-based
// line in the file, or 0 when the problem is not tied to a row.
type LoadError struct {
	Row    int
	Column string
	Msg    string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, "column %q: ", e.Column)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load parses r with p, numbers the rows and classifies them against cats.
// On any failure it returns a *LoadError and no transactions.
func Load(r io.Reader, p Parser, cats *model.CategoryMap) ([]model.Transaction, error) {
	txns, err := p.Parse(r)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, le
		}
		return nil, &LoadError{Msg: "parsing " + p.Format() + " file", Err: err}
	}

	seq := id.NewSequencer()
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.ID = seq.Next(txn.Date)
		txn.Category = model.Uncategorized
		out[i] = txn
	}
	return categories.Classify(out, cats), nil
}
