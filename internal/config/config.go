package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by default.
const FileName = "simplefinance.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SIMPLEFINANCE_"

// Config represents the top-level simplefinance.yaml configuration.
type Config struct {
	CategoriesFile string          `yaml:"categories_file" validate:"required"`
	HistoryFile    string          `yaml:"history_file,omitempty"`
	Statement      StatementConfig `yaml:"statement"`
	Report         ReportConfig    `yaml:"report"`
	Export         ExportConfig    `yaml:"export"`
}

// StatementConfig describes the uploaded bank export.
type StatementConfig struct {
	Format          string `yaml:"format" validate:"required,oneof=statement chase"`
	DateLayout      string `yaml:"date_layout" validate:"required"`
	DirectionColumn string `yaml:"direction_column" validate:"required"`
}

// ReportConfig controls the report command.
type ReportConfig struct {
	Currency     string  `yaml:"currency" validate:"required"`
	TopN         int     `yaml:"top_n" validate:"min=3,max=20"`
	AnomalySigma float64 `yaml:"anomaly_sigma" validate:"gte=0"`
	StdDev       string  `yaml:"std_dev" validate:"oneof=sample population"`
	TrendPeriod  string  `yaml:"trend_period" validate:"oneof=monthly yearly"`
}

// ExportConfig controls the export command.
type ExportConfig struct {
	Dir        string `yaml:"dir" validate:"required"`
	DateLayout string `yaml:"date_layout" validate:"required"`
}

// Load reads a simplefinance.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		CategoriesFile: "categories.json",
		HistoryFile:    "history.csv",
		Statement: StatementConfig{
			Format:          "statement",
			DateLayout:      "2 Jan 2006",
			DirectionColumn: "Debit/Credit",
		},
		Report: ReportConfig{
			Currency:     "AED",
			TopN:         5,
			AnomalySigma: 2,
			StdDev:       "sample",
			TrendPeriod:  "monthly",
		},
		Export: ExportConfig{
			Dir:        "exports",
			DateLayout: "02 Jan 2006",
		},
	}
}

// LoadWithEnv loads .env from the working directory if present, reads path
// (a missing file yields Default), applies SIMPLEFINANCE_* overrides and
// validates the result. Relative file paths are resolved against the
// directory holding path.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Resolve(filepath.Dir(path))
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables named
// SIMPLEFINANCE_<KEY>.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CATEGORIES_FILE":    &cfg.CategoriesFile,
		"HISTORY_FILE":       &cfg.HistoryFile,
		"FORMAT":             &cfg.Statement.Format,
		"DATE_LAYOUT":        &cfg.Statement.DateLayout,
		"DIRECTION_COLUMN":   &cfg.Statement.DirectionColumn,
		"CURRENCY":           &cfg.Report.Currency,
		"STD_DEV":            &cfg.Report.StdDev,
		"TREND_PERIOD":       &cfg.Report.TrendPeriod,
		"EXPORT_DIR":         &cfg.Export.Dir,
		"EXPORT_DATE_LAYOUT": &cfg.Export.DateLayout,
	}
	for key, field := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*field = v
		}
	}

	if v, ok := lookup(EnvPrefix + "TOP_N"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %sTOP_N: %w", EnvPrefix, err)
		}
		cfg.Report.TopN = n
	}
	if v, ok := lookup(EnvPrefix + "ANOMALY_SIGMA"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %sANOMALY_SIGMA: %w", EnvPrefix, err)
		}
		cfg.Report.AnomalySigma = f
	}
	return nil
}

// Resolve makes relative file paths relative to dir.
func (c *Config) Resolve(dir string) {
	for _, p := range []*string{&c.CategoriesFile, &c.HistoryFile, &c.Export.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation by its YAML
// key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: %s", fieldKey(fe), describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
