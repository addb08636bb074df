package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tariff-engine/internal/billing"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	// TariffFile points at the tariff document (JSON or YAML).
	TariffFile string `yaml:"tariff_file"`
	// DataFile points at the meter readings CSV.
	DataFile string `yaml:"data_file"`

	// Window optionally bounds the evaluation range, inclusive.
	Window WindowConfig `yaml:"window"`

	// Resolution is "bill" (default) or "timestep".
	Resolution string `yaml:"resolution"`

	Output OutputConfig `yaml:"output"`
}

type WindowConfig struct {
	Start string `yaml:"start"` // RFC3339 or YYYY-MM-DD
	End   string `yaml:"end"`
}

type OutputConfig struct {
	// CostPath receives the itemized cost as JSON. Empty means stdout only.
	CostPath string `yaml:"cost_path"`
	// LedgerPath receives the per-timestep ledger CSV (timestep resolution).
	LedgerPath string `yaml:"ledger_path"`
}

// Load reads and validates a config file. Relative tariff/data paths are
// resolved against the config file's directory when they exist there,
// falling back to the working directory otherwise.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.TariffFile = resolveRelative(path, c.TariffFile)
	c.DataFile = resolveRelative(path, c.DataFile)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func resolveRelative(cfgPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(filepath.Dir(cfgPath), p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TariffFile == "" {
		return errors.New("tariff_file is required")
	}
	if c.DataFile == "" {
		return errors.New("data_file is required")
	}
	switch billing.Resolution(c.Resolution) {
	case "", billing.ResolutionBill, billing.ResolutionTimestep:
	default:
		return fmt.Errorf("resolution must be %q or %q", billing.ResolutionBill, billing.ResolutionTimestep)
	}
	if _, _, err := c.ParseWindow(); err != nil {
		return err
	}
	return nil
}

// ParseWindow parses the optional start/end bounds. Empty strings yield
// zero times, which the engine treats as unbounded.
func (c *Config) ParseWindow() (start, end time.Time, err error) {
	start, err = parseBound(c.Window.Start)
	if err != nil {
		return start, end, fmt.Errorf("window.start: %w", err)
	}
	end, err = parseBound(c.Window.End)
	if err != nil {
		return start, end, fmt.Errorf("window.end: %w", err)
	}
	return start, end, nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}
