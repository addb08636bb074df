package tariff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate_bands": [{"limit": 10, "rate": 0.1}, {"rate": 0.01}]}
		]
	}`)

	trf, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, BillMonthly, trf.BillingPeriod)
	assert.Equal(t, Demand30Min, trf.DemandWindow)
	require.Len(t, trf.Charges, 1)

	c := trf.Charges[0]
	assert.Equal(t, ChargeConsumption, c.Type)
	assert.Equal(t, ChannelImported, c.MeterChannel())
	require.Len(t, c.RateBands, 2)
	assert.InDelta(t, 10, c.RateBands[0].Limit, 1e-9)
	// Omitted limit defaults to the effective-infinity bound.
	assert.InDelta(t, DefaultBandLimit, c.RateBands[1].Limit, 1e-9)
}

func TestParsePeriodDefaultsSpanFullWeek(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate": 0.1, "time": {"name": "peak", "periods": [{"from_hour": 14, "to_hour": 19, "to_minute": 59}]}}
		]
	}`)

	trf, err := Parse(raw)
	require.NoError(t, err)
	p := trf.Charges[0].Time.Periods[0]
	assert.Equal(t, 0, p.FromWeekday)
	assert.Equal(t, 6, p.ToWeekday)
	assert.Equal(t, 14, p.FromHour)
	assert.Equal(t, 0, p.FromMinute)
	assert.Equal(t, 19, p.ToHour)
	assert.Equal(t, 59, p.ToMinute)
}

func TestParseScheduleIgnoresTimezone(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate_schedule": [
				{"datetime": "2018-01-01T00:30:00Z", "rate": 0.1},
				{"datetime": "2018-01-01T01:00:00+10:00", "rate": 0.2}
			]}
		]
	}`)

	trf, err := Parse(raw)
	require.NoError(t, err)
	items := trf.Charges[0].RateSchedule
	require.Len(t, items, 2)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 30, 0, 0, time.UTC), items[0].Datetime)
	// The +10:00 offset is discarded; wall-clock components are kept.
	assert.Equal(t, time.Date(2018, 1, 1, 1, 0, 0, 0, time.UTC), items[1].Datetime)
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
service: electricity
billing_period: quarterly
charges:
  - rate: 0.1
    season:
      name: summer
      from_month: 1
      from_day: 1
      to_month: 3
      to_day: 31
`)
	trf, err := ParseYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, BillQuarterly, trf.BillingPeriod)
	require.NotNil(t, trf.Charges[0].Season)
	assert.Equal(t, "summer", trf.Charges[0].Season.Name)
}

func TestParseRejectsOutOfRangeSeason(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate": 0.1, "season": {"name": "bad", "from_month": 13, "from_day": 1, "to_month": 12, "to_day": 31}}
		]
	}`)
	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Field, "from_month")
}

func TestParseRejectsOutOfRangePeriod(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate": 0.1, "time": {"name": "peak", "periods": [{"from_hour": 24}]}}
		]
	}`)
	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseRejectsUnknownChargeType(t *testing.T) {
	raw := []byte(`{"service": "electricity", "charges": [{"rate": 0.1, "type": "standby"}]}`)
	_, err := Parse(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGenerationChargeDefaultsToExportChannel(t *testing.T) {
	raw := []byte(`{"service": "electricity", "charges": [{"rate": -0.1, "type": "generation"}]}`)
	trf, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, ChannelExported, trf.Charges[0].MeterChannel())
}

func TestTraitsDerivation(t *testing.T) {
	raw := []byte(`{
		"service": "electricity",
		"charges": [
			{"rate_bands": [{"rate": 0.1}]},
			{"rate": 0.2, "type": "demand"},
			{"rate": 0.1, "time": {"name": "peak", "periods": [{"from_hour": 14, "to_hour": 19}]}},
			{"rate": 0.1, "season": {"name": "summer", "from_month": 1, "from_day": 1, "to_month": 3, "to_day": 31}},
			{"rate_schedule": [{"datetime": "2018-01-01T00:00:00", "rate": 0.1}]}
		]
	}`)
	trf, err := Parse(raw)
	require.NoError(t, err)

	traits := trf.Traits()
	for _, want := range []Trait{TraitBlock, TraitDemand, TraitTOU, TraitSeasonal, TraitScheduled, TraitConsumption} {
		assert.True(t, traits[want], "missing trait %s", want)
	}
	assert.False(t, traits[TraitGeneration])
}
