package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tariff-engine/internal/tariff"
)

func TestCycleStart(t *testing.T) {
	midJan := time.Date(2018, 1, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period tariff.BillingPeriod
		ts     time.Time
		want   bool
	}{
		{"daily resets every row", tariff.BillDaily, midJan, true},
		{"monthly on first midnight", tariff.BillMonthly, time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"monthly not mid-month", tariff.BillMonthly, midJan, false},
		{"monthly not at first noon", tariff.BillMonthly, time.Date(2018, 2, 1, 12, 0, 0, 0, time.UTC), false},
		{"quarterly january", tariff.BillQuarterly, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"quarterly april", tariff.BillQuarterly, time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"quarterly july", tariff.BillQuarterly, time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"quarterly october", tariff.BillQuarterly, time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC), true},
		{"quarterly not february", tariff.BillQuarterly, time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"quarterly not march", tariff.BillQuarterly, time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"annually january first", tariff.BillAnnually, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"annually not july", tariff.BillAnnually, time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cycleStart(tc.period, tc.ts))
		})
	}
}

func TestBlockWalkTwoBands(t *testing.T) {
	bands := []tariff.RateBand{
		{Limit: 10, Rate: 0.1},
		{Limit: tariff.DefaultBandLimit, Rate: 0.01},
	}
	key := ChargeKey{Type: tariff.ChargeConsumption}

	accum := blockAccumulator{}
	cost := accum.apply(key, bands, 15)
	assert.InDelta(t, 10*0.1+5*0.01, cost, 1e-9)
	assert.InDelta(t, 15, accum[key], 1e-9)
}

func TestBlockWalkUnderFirstLimit(t *testing.T) {
	bands := []tariff.RateBand{
		{Limit: 10, Rate: 0.1},
		{Limit: tariff.DefaultBandLimit, Rate: 0.01},
	}
	key := ChargeKey{Type: tariff.ChargeConsumption}

	accum := blockAccumulator{}
	cost := accum.apply(key, bands, 4)
	assert.InDelta(t, 0.4, cost, 1e-9)
	assert.InDelta(t, 4, accum[key], 1e-9)
}

func TestBlockWalkToleratesOutOfOrderLimits(t *testing.T) {
	// Every band is visited; a band whose limit the running total already
	// exceeds contributes nothing instead of failing.
	bands := []tariff.RateBand{
		{Limit: tariff.DefaultBandLimit, Rate: 0.01},
		{Limit: 10, Rate: 0.1},
	}
	key := ChargeKey{Type: tariff.ChargeConsumption}

	accum := blockAccumulator{}
	cost := accum.apply(key, bands, 15)
	// The unbounded first band soaks up everything; the second is skipped.
	assert.InDelta(t, 0.15, cost, 1e-9)
}

func TestResetMakesRetieringIdempotent(t *testing.T) {
	bands := []tariff.RateBand{
		{Limit: 10, Rate: 0.1},
		{Limit: tariff.DefaultBandLimit, Rate: 0.01},
	}
	key := ChargeKey{Type: tariff.ChargeConsumption}

	accum := blockAccumulator{}
	first := accum.apply(key, bands, 15)
	accum.reset()
	second := accum.apply(key, bands, 15)
	assert.InDelta(t, first, second, 1e-9)
}
