// Package streets holds the street directory users subscribe against.
// The default dataset ships embedded in the binary; deployments can point
// STREETS_PATH at a newer CSV export without rebuilding.
package streets

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sl4wa/outages-bot/internal/domain"
)

//go:embed streets.csv
var embeddedFS embed.FS

// Directory is an in-memory street lookup, loaded once at startup.
type Directory struct {
	streets []domain.Street
	byID    map[int]domain.Street
}

// Load builds a Directory from the embedded CSV.
func Load() (*Directory, error) {
	f, err := embeddedFS.Open("streets.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f)
}

// LoadFile builds a Directory from an external CSV export.
func LoadFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open streets file: %w", err)
	}
	defer f.Close()
	return New(f)
}

// New parses "id,name" CSV rows (with a header line) into a Directory.
func New(r io.Reader) (*Directory, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse streets csv: %w", err)
	}

	d := &Directory{byID: make(map[int]domain.Street)}
	if len(records) < 2 {
		return d, nil
	}

	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid street id %q: %w", rec[0], err)
		}
		s := domain.Street{ID: id, Name: strings.TrimSpace(rec[1])}
		d.streets = append(d.streets, s)
		d.byID[s.ID] = s
	}
	return d, nil
}

// All returns every street in file order.
func (d *Directory) All() []domain.Street {
	return d.streets
}

// ByID looks a street up by id.
func (d *Directory) ByID(id int) (domain.Street, bool) {
	s, ok := d.byID[id]
	return s, ok
}

// SearchResult is the outcome of a street query: either a single match,
// a list of candidates for the user to pick from, or nothing.
type SearchResult struct {
	Street  domain.Street
	Found   bool
	Options []domain.Street
}

// Search resolves a user-typed street name. An exact (case-insensitive)
// match wins immediately; otherwise substring matches become options, and a
// single option is promoted to a match.
func (d *Directory) Search(query string) SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}
	}

	var options []domain.Street
	for _, s := range d.streets {
		if s.NameEquals(query) {
			return SearchResult{Street: s, Found: true}
		}
		if s.NameContains(query) {
			options = append(options, s)
		}
	}

	if len(options) == 1 {
		return SearchResult{Street: options[0], Found: true}
	}
	return SearchResult{Options: options}
}
