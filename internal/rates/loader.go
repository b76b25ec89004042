package rates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ratesFile is the YAML shape of an external rate table file: a list of
// tables, each carrying its own jurisdiction and year.
type ratesFile struct {
	Tables []*RateTable `yaml:"tables"`
}

// LoadFromFile parses rate tables from a YAML file. Parsed tables are not yet
// validated; pass them to NewStore (or Store construction via
// NewStoreFromFile) to enforce the invariants.
func LoadFromFile(filename string) ([]*RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("%s contains no rate tables", filename)
	}
	return f.Tables, nil
}

// NewStoreFromFile builds a store from the compiled-in tables plus any tables
// in the given YAML file. File tables for a (jurisdiction, year) already
// compiled in are rejected as duplicates rather than silently replaced.
func NewStoreFromFile(filename string) (*Store, error) {
	extra, err := LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	all := Tables2025()
	all = append(all, extra...)
	return NewStore(all...)
}
