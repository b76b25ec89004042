package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maplepay/payroll-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overrideYAML = `
tables:
  - jurisdiction: MB
    year: 2026
    brackets:
      - threshold_low: "0"
        threshold_high: "47000"
        rate: "0.108"
        k: "0"
      - threshold_low: "47000"
        rate: "0.1275"
        k: "916.5"
    credit_rate: "0.108"
    bpa:
      amount: "15780"
`

func writeTempRates(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempRates(t, overrideYAML)

	tables, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, domain.MB, tables[0].Jurisdiction)
	assert.Equal(t, 2026, tables[0].Year)
	assert.True(t, tables[0].Brackets[1].K.Equal(d("916.5")))
}

func TestNewStoreFromFile(t *testing.T) {
	path := writeTempRates(t, overrideYAML)

	store, err := NewStoreFromFile(path)
	require.NoError(t, err)

	// Compiled-in tables and the file's 2026 table coexist.
	_, err = store.Lookup(domain.MB, 2025)
	assert.NoError(t, err)
	table, err := store.Lookup(domain.MB, 2026)
	require.NoError(t, err)
	assert.True(t, table.CreditRate.Equal(d("0.108")))
}

func TestNewStoreFromFileRejectsInvalidTable(t *testing.T) {
	bad := `
tables:
  - jurisdiction: MB
    year: 2026
    brackets:
      - threshold_low: "0"
        threshold_high: "47000"
        rate: "0.108"
        k: "0"
      - threshold_low: "47000"
        rate: "0.1275"
        k: "900"
    credit_rate: "0.108"
    bpa:
      amount: "15780"
`
	path := writeTempRates(t, bad)
	_, err := NewStoreFromFile(path)
	require.Error(t, err, "bad K constant must fail store construction")
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewStoreFromFileRejectsCompiledDuplicate(t *testing.T) {
	dup := `
tables:
  - jurisdiction: MB
    year: 2025
    brackets:
      - threshold_low: "0"
        rate: "0.108"
        k: "0"
    credit_rate: "0.108"
    bpa:
      amount: "15780"
`
	path := writeTempRates(t, dup)
	_, err := NewStoreFromFile(path)
	assert.Error(t, err, "a file table may not shadow a compiled-in year")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
