package rates

import (
	"github.com/maplepay/payroll-engine/internal/domain"
)

type tableKey struct {
	jurisdiction domain.Jurisdiction
	year         int
}

// Store is the in-memory rate table registry, keyed by (jurisdiction, year).
// It is loaded at startup and immutable for the process lifetime; lookups are
// plain map reads with no locking because nothing writes after construction.
type Store struct {
	tables map[tableKey]*RateTable
}

// NewStore builds a store from validated tables. Any table failing its
// invariants aborts construction.
func NewStore(tables ...*RateTable) (*Store, error) {
	s := &Store{tables: make(map[tableKey]*RateTable, len(tables))}
	for _, t := range tables {
		if err := s.add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewDefaultStore builds a store preloaded with the compiled-in year tables.
func NewDefaultStore() (*Store, error) {
	return NewStore(Tables2025()...)
}

func (s *Store) add(t *RateTable) error {
	if err := Validate(t); err != nil {
		return err
	}
	key := tableKey{t.Jurisdiction, t.Year}
	if _, dup := s.tables[key]; dup {
		return &domain.ConfigurationError{
			Jurisdiction: t.Jurisdiction,
			Year:         t.Year,
			Reason:       "duplicate rate table",
		}
	}
	s.tables[key] = t
	return nil
}

// Lookup returns the table for a (jurisdiction, year). A missing table is a
// ConfigurationError; the engine never falls back to a neighbouring year.
func (s *Store) Lookup(j domain.Jurisdiction, year int) (*RateTable, error) {
	t, ok := s.tables[tableKey{j, year}]
	if !ok {
		return nil, &domain.ConfigurationError{
			Jurisdiction: j,
			Year:         year,
			Reason:       "no rate table loaded",
		}
	}
	return t, nil
}

// Years returns the tax years for which the federal table is loaded.
func (s *Store) Years() []int {
	var years []int
	for key := range s.tables {
		if key.jurisdiction == domain.Federal {
			years = append(years, key.year)
		}
	}
	return years
}
