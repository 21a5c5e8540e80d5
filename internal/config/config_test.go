package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Report.Currency = "USD"
	cfg.Report.TopN = 10
	cfg.Statement.Format = "chase"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "categories.json", cfg.CategoriesFile)
	assert.Equal(t, "2 Jan 2006", cfg.Statement.DateLayout)
	assert.Equal(t, "02 Jan 2006", cfg.Export.DateLayout)
	assert.Equal(t, "Debit/Credit", cfg.Statement.DirectionColumn)
	assert.Equal(t, "AED", cfg.Report.Currency)
	assert.InDelta(t, 2.0, cfg.Report.AnomalySigma, 0.001)
	assert.Equal(t, "sample", cfg.Report.StdDev)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("report:\n  currency: EUR\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Report.Currency)
	assert.Equal(t, 5, cfg.Report.TopN)
	assert.Equal(t, "categories.json", cfg.CategoriesFile)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "categories_file: categories.json")
	assert.Contains(t, contents, "currency: AED")
	assert.Contains(t, contents, "anomaly_sigma: 2")
	assert.Contains(t, contents, "trend_period: monthly")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"top n too small", func(c *Config) { c.Report.TopN = 1 }, "report.top_n: must be at least 3"},
		{"top n too large", func(c *Config) { c.Report.TopN = 50 }, "report.top_n: must be at most 20"},
		{"bad std dev", func(c *Config) { c.Report.StdDev = "robust" }, "report.std_dev: must be one of"},
		{"bad format", func(c *Config) { c.Statement.Format = "ofx" }, "statement.format"},
		{"negative sigma", func(c *Config) { c.Report.AnomalySigma = -1 }, "report.anomaly_sigma"},
		{"missing categories file", func(c *Config) { c.CategoriesFile = "" }, "categories_file: is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SIMPLEFINANCE_CURRENCY":      "GBP",
		"SIMPLEFINANCE_TOP_N":         "7",
		"SIMPLEFINANCE_ANOMALY_SIGMA": "1.5",
		"SIMPLEFINANCE_DATE_LAYOUT":   "2006-01-02",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, lookup))
	assert.Equal(t, "GBP", cfg.Report.Currency)
	assert.Equal(t, 7, cfg.Report.TopN)
	assert.InDelta(t, 1.5, cfg.Report.AnomalySigma, 0.001)
	assert.Equal(t, "2006-01-02", cfg.Statement.DateLayout)
	assert.Equal(t, "sample", cfg.Report.StdDev)
}

func TestApplyEnv_BadNumber(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "SIMPLEFINANCE_TOP_N" {
			return "many", true
		}
		return "", false
	}
	err := ApplyEnv(Default(), lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMPLEFINANCE_TOP_N")
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SIMPLEFINANCE_CURRENCY", "CHF")

	cfg, err := LoadWithEnv(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.Report.Currency)
	assert.Equal(t, filepath.Join(dir, "categories.json"), cfg.CategoriesFile)
	assert.Equal(t, filepath.Join(dir, "exports"), cfg.Export.Dir)
}

func TestLoadWithEnv_Invalid(t *testing.T) {
	t.Setenv("SIMPLEFINANCE_TREND_PERIOD", "weekly")
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.trend_period")
}

func TestResolve_KeepsAbsolute(t *testing.T) {
	cfg := Default()
	abs := filepath.Join(t.TempDir(), "cats.json")
	cfg.CategoriesFile = abs
	cfg.Resolve("/somewhere")
	assert.Equal(t, abs, cfg.CategoriesFile)
	assert.Equal(t, filepath.Join("/somewhere", "history.csv"), cfg.HistoryFile)
}
