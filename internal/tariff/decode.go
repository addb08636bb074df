package tariff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a tariff document from disk. The format is picked by file
// extension: .yaml/.yml decode as YAML, everything else as JSON.
func Load(path string) (*Tariff, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	default:
		return Parse(raw)
	}
}

// Parse decodes a JSON tariff document, applies defaults and validates.
func Parse(raw []byte) (*Tariff, error) {
	var t Tariff
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode tariff: %w", err)
	}
	return finish(&t)
}

// ParseYAML decodes a YAML tariff document, applies defaults and validates.
func ParseYAML(raw []byte) (*Tariff, error) {
	var t Tariff
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode tariff: %w", err)
	}
	return finish(&t)
}

func finish(t *Tariff) (*Tariff, error) {
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ApplyDefaults fills the defaults the document schema allows to be
// omitted: charge type (consumption), billing period (monthly) and demand
// window (30min). Rate band limits and period bounds default during
// unmarshalling because their zero values are meaningful.
func (t *Tariff) ApplyDefaults() {
	if t.BillingPeriod == "" {
		t.BillingPeriod = BillMonthly
	}
	if t.DemandWindow == "" {
		t.DemandWindow = Demand30Min
	}
	for i := range t.Charges {
		if t.Charges[i].Type == "" {
			t.Charges[i].Type = ChargeConsumption
		}
	}
}

// rateBandWire distinguishes an omitted limit (defaulting to the
// effective-infinity bound) from an explicit one.
type rateBandWire struct {
	Limit *float64 `json:"limit" yaml:"limit"`
	Rate  float64  `json:"rate" yaml:"rate"`
}

func (b *RateBand) fromWire(w rateBandWire) {
	b.Rate = w.Rate
	if w.Limit != nil {
		b.Limit = *w.Limit
	} else {
		b.Limit = DefaultBandLimit
	}
}

func (b *RateBand) UnmarshalJSON(raw []byte) error {
	var w rateBandWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	b.fromWire(w)
	return nil
}

func (b *RateBand) UnmarshalYAML(value *yaml.Node) error {
	var w rateBandWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	b.fromWire(w)
	return nil
}

// periodWire lets omitted bounds default to the full week and full day.
type periodWire struct {
	FromWeekday *int `json:"from_weekday" yaml:"from_weekday"`
	ToWeekday   *int `json:"to_weekday" yaml:"to_weekday"`
	FromHour    *int `json:"from_hour" yaml:"from_hour"`
	FromMinute  *int `json:"from_minute" yaml:"from_minute"`
	ToHour      *int `json:"to_hour" yaml:"to_hour"`
	ToMinute    *int `json:"to_minute" yaml:"to_minute"`
}

func (p *Period) fromWire(w periodWire) {
	*p = FullWeekPeriod()
	if w.FromWeekday != nil {
		p.FromWeekday = *w.FromWeekday
	}
	if w.ToWeekday != nil {
		p.ToWeekday = *w.ToWeekday
	}
	if w.FromHour != nil {
		p.FromHour = *w.FromHour
	}
	if w.FromMinute != nil {
		p.FromMinute = *w.FromMinute
	}
	if w.ToHour != nil {
		p.ToHour = *w.ToHour
	}
	if w.ToMinute != nil {
		p.ToMinute = *w.ToMinute
	}
}

func (p *Period) UnmarshalJSON(raw []byte) error {
	var w periodWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	p.fromWire(w)
	return nil
}

func (p *Period) UnmarshalYAML(value *yaml.Node) error {
	var w periodWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	p.fromWire(w)
	return nil
}

// FullWeekPeriod spans every weekday and the whole day.
func FullWeekPeriod() Period {
	return Period{FromWeekday: 0, ToWeekday: 6, FromHour: 0, FromMinute: 0, ToHour: 23, ToMinute: 59}
}

type scheduleItemWire struct {
	Datetime string  `json:"datetime" yaml:"datetime"`
	Rate     float64 `json:"rate" yaml:"rate"`
}

func (s *ScheduleItem) fromWire(w scheduleItemWire) error {
	ts, err := parseNaive(w.Datetime)
	if err != nil {
		return fmt.Errorf("schedule item datetime %q: %w", w.Datetime, err)
	}
	s.Datetime = ts
	s.Rate = w.Rate
	return nil
}

func (s *ScheduleItem) UnmarshalJSON(raw []byte) error {
	var w scheduleItemWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	return s.fromWire(w)
}

func (s *ScheduleItem) UnmarshalYAML(value *yaml.Node) error {
	var w scheduleItemWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	return s.fromWire(w)
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseNaive parses a schedule timestamp, discarding any timezone offset:
// the wall-clock components are kept and interpreted in UTC, the same
// frame the meter series uses.
func parseNaive(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC), nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime format")
}
