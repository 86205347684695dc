package terms

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// termIDField is the required header name in the reference CSV,
// matched case-sensitively.
const termIDField = "termid"

// Set is a read-only collection of known term IDs. Lookups are
// case-insensitive and return the spelling from the reference file.
// A nil *Set behaves as an empty set.
type Set struct {
	canonical map[string]string
}

// NewSet builds a Set from a list of term IDs. Empty entries are dropped;
// IDs differing only in case collapse to the first occurrence.
func NewSet(ids []string) *Set {
	s := &Set{canonical: make(map[string]string, len(ids))}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		key := strings.ToUpper(id)
		if _, exists := s.canonical[key]; !exists {
			s.canonical[key] = id
		}
	}
	return s
}

// Load reads the term reference CSV at path. A missing file yields an
// empty set with no error; downstream validation is skipped in that case.
// A file that exists but cannot be parsed, or whose header has no termid
// column, is a fatal condition for the caller.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("terms file not found, continuing without term validation",
				slog.String("path", path))
			return NewSet(nil), nil
		}
		return nil, fmt.Errorf("open terms file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse terms file %s: %w", path, err)
	}

	if len(rows) == 0 {
		// Empty but well-formed: no terms, no validation.
		return NewSet(nil), nil
	}

	header := rows[0]
	col := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == termIDField {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("terms file %s: header has no %q column", path, termIDField)
	}

	var ids []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		ids = append(ids, row[col])
	}

	set := NewSet(ids)
	slog.Info("loaded term IDs",
		slog.Int("count", set.Len()),
		slog.String("path", path))
	return set, nil
}

// Len returns the number of distinct term IDs in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.canonical)
}

// IsEmpty reports whether the set holds no term IDs.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether id is a known term, ignoring case.
func (s *Set) Contains(id string) bool {
	_, ok := s.Canonical(id)
	return ok
}

// Canonical returns the reference spelling for id, matched without regard
// to case.
func (s *Set) Canonical(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	stored, ok := s.canonical[strings.ToUpper(strings.TrimSpace(id))]
	return stored, ok
}

// All returns the term IDs ordered longest first, ties alphabetical.
// The deterministic order matters to callers that scan filenames for
// term substrings: a longer ID must win over any of its own substrings.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.canonical))
	for _, id := range s.canonical {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) > len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}
