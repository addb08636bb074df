package tariff

import (
	"fmt"
	"time"
)

// Service identifies the metered utility a tariff bills.
type Service string

const (
	ServiceElectricity Service = "electricity"
	ServiceGas         Service = "gas"
	ServiceWater       Service = "water"
)

type Sector string

const (
	SectorResidential Sector = "residential"
	SectorCommercial  Sector = "commercial"
	SectorIndustrial  Sector = "industrial"
	SectorLighting    Sector = "lighting"
)

// ChargeType distinguishes the billable families a charge can belong to.
type ChargeType string

const (
	ChargeFixed       ChargeType = "fixed"
	ChargeMinimum     ChargeType = "minimum"
	ChargeConsumption ChargeType = "consumption"
	ChargeDemand      ChargeType = "demand"
	ChargeGeneration  ChargeType = "generation"
)

// BillingPeriod is the cycle over which consumption charges and block
// accumulation reset.
type BillingPeriod string

const (
	BillDaily     BillingPeriod = "daily"
	BillMonthly   BillingPeriod = "monthly"
	BillQuarterly BillingPeriod = "quarterly"
	BillAnnually  BillingPeriod = "annually"
)

// DemandWindow is the averaging interval used to compute peak demand.
type DemandWindow string

const (
	Demand15Min  DemandWindow = "15min"
	Demand30Min  DemandWindow = "30min"
	DemandHourly DemandWindow = "hourly"
)

// Default meter channels. A charge reads ChannelImported unless it is a
// generation charge (or names a channel explicitly).
const (
	ChannelImported = "electricity_imported"
	ChannelExported = "electricity_exported"
)

// DefaultBandLimit is the effective-infinity upper bound for the last band
// of a block rate structure when no limit is given.
const DefaultBandLimit = 9999999.9

// RateBand is one tier within a block pricing structure. Usage between the
// previous band's limit and Limit is charged at Rate. Limits are expected
// to be non-decreasing across a charge's bands but this is deliberately not
// enforced; the evaluator tolerates out-of-order limits.
type RateBand struct {
	Limit float64 `json:"limit" yaml:"limit"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// Period is a recurring weekly time-of-day window, inclusive on both ends.
// Weekdays run 0=Monday .. 6=Sunday. Omitted bounds default to the full
// week and full day.
type Period struct {
	FromWeekday int `json:"from_weekday" yaml:"from_weekday"`
	ToWeekday   int `json:"to_weekday" yaml:"to_weekday"`
	FromHour    int `json:"from_hour" yaml:"from_hour"`
	FromMinute  int `json:"from_minute" yaml:"from_minute"`
	ToHour      int `json:"to_hour" yaml:"to_hour"`
	ToMinute    int `json:"to_minute" yaml:"to_minute"`
}

// Time is a named time-of-use bucket ("peak", "shoulder", ...) composed of
// one or more periods. A timestamp matches if any period matches; periods
// are expected to be non-overlapping.
type Time struct {
	Name    string   `json:"name" yaml:"name"`
	Periods []Period `json:"periods" yaml:"periods"`
}

// ScheduleItem is one entry in a scheduled or real-time price curve.
// Datetime is naive: any timezone offset in the source document is ignored.
type ScheduleItem struct {
	Datetime time.Time `json:"datetime" yaml:"datetime"`
	Rate     float64   `json:"rate" yaml:"rate"`
}

// Season is an inclusive calendar-date range recurring yearly. There is no
// year component; the range is evaluated against each reading's own year.
// A range whose from falls after its to wraps across year-end.
type Season struct {
	Name      string `json:"name" yaml:"name"`
	FromMonth int    `json:"from_month" yaml:"from_month"`
	FromDay   int    `json:"from_day" yaml:"from_day"`
	ToMonth   int    `json:"to_month" yaml:"to_month"`
	ToDay     int    `json:"to_day" yaml:"to_day"`
}

// Charge is the atomic billable rule within a tariff. Rate == 0 means no
// flat rate (supply payments use negative rates). Rate and RateBands may
// both be present; both then contribute.
type Charge struct {
	Rate         float64        `json:"rate,omitempty" yaml:"rate,omitempty"`
	RateBands    []RateBand     `json:"rate_bands,omitempty" yaml:"rate_bands,omitempty"`
	RateSchedule []ScheduleItem `json:"rate_schedule,omitempty" yaml:"rate_schedule,omitempty"`
	Time         *Time          `json:"time,omitempty" yaml:"time,omitempty"`
	Season       *Season        `json:"season,omitempty" yaml:"season,omitempty"`
	Type         ChargeType     `json:"type,omitempty" yaml:"type,omitempty"`
	Meter        string         `json:"meter,omitempty" yaml:"meter,omitempty"`
}

// MeterChannel returns the series channel this charge reads.
func (c *Charge) MeterChannel() string {
	if c.Meter != "" {
		return c.Meter
	}
	if c.Type == ChargeGeneration {
		return ChannelExported
	}
	return ChannelImported
}

// Tariff is a collection of charges associated with one utility service.
// It is immutable once constructed: evaluation never mutates it, so a single
// Tariff is safe to share across concurrent engine calls.
type Tariff struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Code        string  `json:"code,omitempty" yaml:"code,omitempty"`
	UtilityName string  `json:"utility_name,omitempty" yaml:"utility_name,omitempty"`
	UtilityCode string  `json:"utility_code,omitempty" yaml:"utility_code,omitempty"`
	Service     Service `json:"service,omitempty" yaml:"service,omitempty"`
	Sector      Sector  `json:"sector,omitempty" yaml:"sector,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Currency    string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Timezone    string  `json:"timezone,omitempty" yaml:"timezone,omitempty"`

	Charges []Charge `json:"charges,omitempty" yaml:"charges,omitempty"`

	BillingPeriod BillingPeriod `json:"billing_period,omitempty" yaml:"billing_period,omitempty"`
	DemandWindow  DemandWindow  `json:"demand_window,omitempty" yaml:"demand_window,omitempty"`

	ConsumptionUnit string `json:"consumption_unit,omitempty" yaml:"consumption_unit,omitempty"`
	DemandUnit      string `json:"demand_unit,omitempty" yaml:"demand_unit,omitempty"`
}

// Trait is a structural tag derived from which optional charge fields are
// populated. The engine uses traits to decide which evaluation passes run
// and how the series is resampled.
type Trait string

const (
	TraitSeasonal    Trait = "seasonal"
	TraitTOU         Trait = "tou"
	TraitBlock       Trait = "block"
	TraitScheduled   Trait = "scheduled"
	TraitDemand      Trait = "demand"
	TraitConsumption Trait = "consumption"
	TraitGeneration  Trait = "generation"
)

// Traits returns the set union of structural tags across all charges.
func (t *Tariff) Traits() map[Trait]bool {
	traits := make(map[Trait]bool)
	for i := range t.Charges {
		c := &t.Charges[i]
		if c.Season != nil {
			traits[TraitSeasonal] = true
		}
		if c.Time != nil {
			traits[TraitTOU] = true
		}
		if len(c.RateBands) > 0 {
			traits[TraitBlock] = true
		}
		if len(c.RateSchedule) > 0 {
			traits[TraitScheduled] = true
		}
		switch c.Type {
		case ChargeDemand:
			traits[TraitDemand] = true
		case ChargeConsumption:
			traits[TraitConsumption] = true
		case ChargeGeneration:
			traits[TraitGeneration] = true
		}
	}
	return traits
}

// ValidationError reports a structural violation in a tariff document.
// These are decoder-time failures: the engine assumes a validated tariff.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tariff: %s: %s", e.Field, e.Msg)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks enum values and calendar/clock ranges. It does not check
// rate band ordering (out-of-order limits are tolerated at evaluation).
func (t *Tariff) Validate() error {
	switch t.BillingPeriod {
	case BillDaily, BillMonthly, BillQuarterly, BillAnnually:
	default:
		return invalid("billing_period", "unknown value %q", t.BillingPeriod)
	}
	switch t.DemandWindow {
	case Demand15Min, Demand30Min, DemandHourly:
	default:
		return invalid("demand_window", "unknown value %q", t.DemandWindow)
	}
	for i := range t.Charges {
		c := &t.Charges[i]
		field := fmt.Sprintf("charges[%d]", i)
		switch c.Type {
		case ChargeFixed, ChargeMinimum, ChargeConsumption, ChargeDemand, ChargeGeneration:
		default:
			return invalid(field+".type", "unknown value %q", c.Type)
		}
		if c.Season != nil {
			if err := validateSeason(field+".season", c.Season); err != nil {
				return err
			}
		}
		if c.Time != nil {
			if err := validateTime(field+".time", c.Time); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSeason(field string, s *Season) error {
	if s.FromMonth < 1 || s.FromMonth > 12 {
		return invalid(field+".from_month", "%d out of range [1,12]", s.FromMonth)
	}
	if s.ToMonth < 1 || s.ToMonth > 12 {
		return invalid(field+".to_month", "%d out of range [1,12]", s.ToMonth)
	}
	if s.FromDay < 1 || s.FromDay > 31 {
		return invalid(field+".from_day", "%d out of range [1,31]", s.FromDay)
	}
	if s.ToDay < 1 || s.ToDay > 31 {
		return invalid(field+".to_day", "%d out of range [1,31]", s.ToDay)
	}
	return nil
}

func validateTime(field string, tm *Time) error {
	for i := range tm.Periods {
		p := &tm.Periods[i]
		pf := fmt.Sprintf("%s.periods[%d]", field, i)
		if p.FromWeekday < 0 || p.FromWeekday > 6 {
			return invalid(pf+".from_weekday", "%d out of range [0,6]", p.FromWeekday)
		}
		if p.ToWeekday < 0 || p.ToWeekday > 6 {
			return invalid(pf+".to_weekday", "%d out of range [0,6]", p.ToWeekday)
		}
		if p.FromHour < 0 || p.FromHour > 23 {
			return invalid(pf+".from_hour", "%d out of range [0,23]", p.FromHour)
		}
		if p.ToHour < 0 || p.ToHour > 23 {
			return invalid(pf+".to_hour", "%d out of range [0,23]", p.ToHour)
		}
		if p.FromMinute < 0 || p.FromMinute > 59 {
			return invalid(pf+".from_minute", "%d out of range [0,59]", p.FromMinute)
		}
		if p.ToMinute < 0 || p.ToMinute > 59 {
			return invalid(pf+".to_minute", "%d out of range [0,59]", p.ToMinute)
		}
	}
	return nil
}
